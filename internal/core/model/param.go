// Package model 定义区制后处理中使用的核心数据结构。
package model

import "strconv"

// NoRegime 非区制参数的区制索引（如不随区制切换的 sigma2）
const NoRegime = -1

// 常用参数名
const (
	ParamConst  = "const"
	ParamAR1    = "ar.L1"
	ParamAR2    = "ar.L2"
	ParamSigma2 = "sigma2"
	// ParamTransition 转移概率参数名，字符串形式为 p[from->to]
	ParamTransition = "p"
)

// ParamKey 参数键
// 取代 "const[0]"、"p[0->1]" 这类格式化字符串，在构造时完成校验
type ParamKey struct {
	// Name 参数名，如 const、ar.L1、sigma2
	Name string
	// Regime 区制索引；非区制参数为 NoRegime
	Regime int
	// Transition 是否为转移概率
	Transition bool
	// To 转移目标区制（仅 Transition 时有效，此时 Regime 为起点）
	To int
}

// RegimeKey 构造区制参数键
func RegimeKey(name string, regime int) ParamKey {
	return ParamKey{Name: name, Regime: regime}
}

// TransitionKey 构造转移概率键 p[from->to]
func TransitionKey(from, to int) ParamKey {
	return ParamKey{Name: ParamTransition, Regime: from, Transition: true, To: to}
}

// GlobalKey 构造非区制参数键
func GlobalKey(name string) ParamKey {
	return ParamKey{Name: name, Regime: NoRegime}
}

// String 返回规范字符串形式
func (k ParamKey) String() string {
	switch {
	case k.Transition:
		return k.Name + "[" + strconv.Itoa(k.Regime) + "->" + strconv.Itoa(k.To) + "]"
	case k.Regime == NoRegime:
		return k.Name
	default:
		return k.Name + "[" + strconv.Itoa(k.Regime) + "]"
	}
}
