// Package regime 根据马尔可夫切换模型的参数估计识别区制的经济含义。
package regime

import (
	"math"

	"regime-report/internal/core/model"
	"regime-report/internal/util/fastparse"
)

// DefaultDecimals 默认保留小数位
const DefaultDecimals = 4

// TwoRegimes 两区制识别结果
type TwoRegimes struct {
	Bull model.Descriptor `json:"bull"`
	Bear model.Descriptor `json:"bear"`
}

type options struct {
	round    bool
	decimals int
}

// Option 两区制识别选项
type Option func(*options)

// WithDecimals 设置取整精度
func WithDecimals(n int) Option {
	return func(o *options) {
		o.round = true
		o.decimals = n
	}
}

// WithoutRounding 关闭取整
func WithoutRounding() Option {
	return func(o *options) {
		o.round = false
	}
}

var (
	keyP00    = model.TransitionKey(0, 0)
	keyP10    = model.TransitionKey(1, 0)
	keyConst0 = model.RegimeKey(model.ParamConst, 0)
	keyConst1 = model.RegimeKey(model.ParamConst, 1)
	keyVar0   = model.RegimeKey(model.ParamSigma2, 0)
	keyVar1   = model.RegimeKey(model.ParamSigma2, 1)
)

// IdentifyTwo 从两区制模型参数中识别牛市与熊市区制
// 牛市: 常数项为正且方差更低；熊市: 常数项为负且方差更高
// 条件不能同时满足时返回 *AmbiguousRegimesError；缺少参数时返回 *MissingParamError
func IdentifyTwo(p ParamSource, opts ...Option) (*TwoRegimes, error) {
	o := options{round: true, decimals: DefaultDecimals}
	for _, opt := range opts {
		opt(&o)
	}

	var vals [6]float64
	for i, k := range []model.ParamKey{keyP00, keyP10, keyConst0, keyConst1, keyVar0, keyVar1} {
		v, ok := p.Get(k)
		if !ok {
			return nil, &MissingParamError{Key: k}
		}
		vals[i] = v
	}
	p11, p21, b1, b2, var1, var2 := vals[0], vals[1], vals[2], vals[3], vals[4], vals[5]

	p12 := 1 - p11
	p22 := 1 - p21

	if o.round {
		r := func(v float64) float64 { return Round(v, o.decimals) }
		p11, p21, p12, p22 = r(p11), r(p21), r(p12), r(p22)
		b1, b2, var1, var2 = r(b1), r(b2), r(var1), r(var2)
	}

	a := model.Descriptor{Regime: 0, Beta0: b1, Var: var1, PStay: p11, PSwitch: p12}
	b := model.Descriptor{Regime: 1, Beta0: b2, Var: var2, PStay: p22, PSwitch: p21}

	switch {
	case a.Beta0 > 0 && b.Beta0 < 0 && a.Var < b.Var:
		return &TwoRegimes{Bull: a, Bear: b}, nil
	case b.Beta0 > 0 && a.Beta0 < 0 && b.Var < a.Var:
		return &TwoRegimes{Bull: b, Bear: a}, nil
	}
	return nil, &AmbiguousRegimesError{A: a, B: b}
}

// Round 按小数位取整，对浮点数的精确二进制值就近舍入，恰为中点时取偶
// decimals 为负时取整到 10 的 -decimals 次方
func Round(v float64, decimals int) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	if decimals < 0 {
		pow := math.Pow10(-decimals)
		return math.RoundToEven(v/pow) * pow
	}
	r, err := fastparse.ParseFloat(fastparse.FormatFloat(v, decimals))
	if err != nil {
		return v
	}
	return r
}
