package model

// Code 预测信号与真实方向比对后的分类编码
type Code int

const (
	// Unclassified 未分类（缺失或不在 {1,-1} 内）
	// 取值 -1，与合法编码及零值均不重合
	Unclassified Code = -1
	// TrueBull 预测看多，实际上涨
	TrueBull Code = 1
	// TrueBear 预测看空，实际下跌
	TrueBear Code = 2
	// FalseBull 预测看多，实际下跌
	FalseBull Code = 3
	// FalseBear 预测看空，实际上涨
	FalseBear Code = 4
)

// Classify 根据 (预测, 真实) 返回分类编码
// 输入为浮点值以兼容矩阵中的 NaN
func Classify(pred, truth float64) Code {
	switch {
	case pred == 1 && truth == 1:
		return TrueBull
	case pred == -1 && truth == -1:
		return TrueBear
	case pred == 1 && truth == -1:
		return FalseBull
	case pred == -1 && truth == 1:
		return FalseBear
	}
	return Unclassified
}

// Valid 是否为四种合法编码之一
func (c Code) Valid() bool {
	return c >= TrueBull && c <= FalseBear
}

// String 返回编码名称
func (c Code) String() string {
	switch c {
	case TrueBull:
		return "true_bull"
	case TrueBear:
		return "true_bear"
	case FalseBull:
		return "false_bull"
	case FalseBear:
		return "false_bear"
	}
	return "unclassified"
}
