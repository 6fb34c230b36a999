// Package confusion 统计分类编码的命中情况。
// hit_rate = (TB + TR) / classified
// bull_precision = TB / (TB + FB)，bear_precision = TR / (TR + FR)
package confusion

import (
	"strconv"

	"regime-report/internal/core/classify"
	"regime-report/internal/core/model"
)

// Stats 分类统计快照
type Stats struct {
	// Count 样本数（含未分类）
	Count int64 `json:"count"`
	// TrueBull 预测看多且正确
	TrueBull int64 `json:"true_bull"`
	// TrueBear 预测看空且正确
	TrueBear int64 `json:"true_bear"`
	// FalseBull 预测看多但错误
	FalseBull int64 `json:"false_bull"`
	// FalseBear 预测看空但错误
	FalseBear int64 `json:"false_bear"`
	// Unclassified 未分类样本数
	Unclassified int64 `json:"unclassified"`

	// HitRate 命中率（仅统计已分类样本）
	HitRate float64 `json:"hit_rate"`
	// BullPrecision 看多精度
	BullPrecision float64 `json:"bull_precision"`
	// BearPrecision 看空精度
	BearPrecision float64 `json:"bear_precision"`
}

// Classified 已分类样本数
func (s Stats) Classified() int64 {
	return s.TrueBull + s.TrueBear + s.FalseBull + s.FalseBear
}

// Calculator 分类统计器
// windowSize>0 时为滚动窗口，否则累计全部样本
type Calculator struct {
	windowSize int
	// buf 环形缓冲区（仅滚动窗口使用）
	buf  []model.Code
	pos  int
	full bool

	counts [5]int64 // 下标 0 为未分类，1-4 对应合法编码
}

// NewCalculator 创建分类统计器
// 参数 windowSize: 滚动窗口大小，<=0 表示累计
func NewCalculator(windowSize int) *Calculator {
	c := &Calculator{windowSize: windowSize}
	if windowSize > 0 {
		c.buf = make([]model.Code, windowSize)
	}
	return c
}

// Add 添加一个分类编码
func (c *Calculator) Add(code model.Code) {
	if c.windowSize > 0 {
		// 若环已满，移除旧样本
		if c.full {
			c.counts[slot(c.buf[c.pos])]--
		}
		c.buf[c.pos] = code
		c.pos++
		if c.pos >= c.windowSize {
			c.pos = 0
			c.full = true
		}
	}
	c.counts[slot(code)]++
}

// Stats 返回当前统计
func (c *Calculator) Stats() Stats {
	out := Stats{
		TrueBull:     c.counts[model.TrueBull],
		TrueBear:     c.counts[model.TrueBear],
		FalseBull:    c.counts[model.FalseBull],
		FalseBear:    c.counts[model.FalseBear],
		Unclassified: c.counts[0],
	}
	out.Count = out.Classified() + out.Unclassified

	out.HitRate = ratio(out.TrueBull+out.TrueBear, out.Classified())
	out.BullPrecision = ratio(out.TrueBull, out.TrueBull+out.FalseBull)
	out.BearPrecision = ratio(out.TrueBear, out.TrueBear+out.FalseBear)
	return out
}

// ColumnStats 单列统计
type ColumnStats struct {
	// Column 列名
	Column string `json:"column"`
	Stats
}

// TallyColumns 按列累计编码矩阵
// 参数 names: 列名，长度不足时以列号补齐
func TallyColumns(m *classify.CodeMatrix, names []string) []ColumnStats {
	_, cols := m.Dims()
	out := make([]ColumnStats, cols)
	for j := 0; j < cols; j++ {
		c := NewCalculator(0)
		for _, code := range m.Col(j) {
			c.Add(code)
		}
		name := "col" + strconv.Itoa(j)
		if j < len(names) {
			name = names[j]
		}
		out[j] = ColumnStats{Column: name, Stats: c.Stats()}
	}
	return out
}

func slot(code model.Code) int {
	if code.Valid() {
		return int(code)
	}
	return 0
}

func ratio(num, den int64) float64 {
	if den <= 0 {
		return 0
	}
	return float64(num) / float64(den)
}
