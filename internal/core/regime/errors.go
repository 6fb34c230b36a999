package regime

import (
	"fmt"

	"regime-report/internal/core/model"
)

// MissingParamError 缺少必需参数
type MissingParamError struct {
	// Key 缺失的参数键
	Key model.ParamKey
}

func (e *MissingParamError) Error() string {
	return fmt.Sprintf("缺少参数: %s", e.Key)
}

// AmbiguousRegimesError 两区制的符号/方差条件不能同时满足，无法区分牛熊
type AmbiguousRegimesError struct {
	// A 区制 0 的描述（已按精度取整）
	A model.Descriptor
	// B 区制 1 的描述（已按精度取整）
	B model.Descriptor
}

func (e *AmbiguousRegimesError) Error() string {
	return fmt.Sprintf("mixed regimes: 无法明确区分牛熊区制 (beta0=%g/%g, var=%g/%g)",
		e.A.Beta0, e.B.Beta0, e.A.Var, e.B.Var)
}

// RegimeCountError const[i] 所覆盖的区制数不等于期望值
type RegimeCountError struct {
	// Want 期望区制数
	Want int
	// Found 实际检测到的区制索引
	Found []int
}

func (e *RegimeCountError) Error() string {
	return fmt.Sprintf("需要 %d 个区制的常数项，实际检测到 %d 个: %v", e.Want, len(e.Found), e.Found)
}
