// Package classify 将方向预测矩阵与真实方向序列逐格比对，生成分类编码矩阵。
package classify

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"regime-report/internal/core/model"
)

// ShapeError 预测矩阵行数与真实序列长度不一致
type ShapeError struct {
	Rows      int
	TruthRows int
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("预测矩阵有 %d 行，真实序列有 %d 个值", e.Rows, e.TruthRows)
}

// CodeMatrix 分类编码矩阵，形状与预测矩阵一致
type CodeMatrix struct {
	rows, cols int
	// codes 按行优先存储
	codes []model.Code
}

// Dims 返回行数与列数
func (m *CodeMatrix) Dims() (r, c int) {
	return m.rows, m.cols
}

// At 返回 (i, j) 处的编码
func (m *CodeMatrix) At(i, j int) model.Code {
	if i < 0 || i >= m.rows || j < 0 || j >= m.cols {
		panic(fmt.Sprintf("classify: 索引越界 (%d, %d)，形状 %dx%d", i, j, m.rows, m.cols))
	}
	return m.codes[i*m.cols+j]
}

// Row 返回第 i 行编码（副本）
func (m *CodeMatrix) Row(i int) []model.Code {
	out := make([]model.Code, m.cols)
	copy(out, m.codes[i*m.cols:(i+1)*m.cols])
	return out
}

// Col 返回第 j 列编码（副本）
func (m *CodeMatrix) Col(j int) []model.Code {
	out := make([]model.Code, m.rows)
	for i := range out {
		out[i] = m.At(i, j)
	}
	return out
}

// Dense 转为浮点矩阵，未分类单元格为 NaN
func (m *CodeMatrix) Dense() *mat.Dense {
	if len(m.codes) == 0 {
		return &mat.Dense{}
	}
	data := make([]float64, len(m.codes))
	for i, c := range m.codes {
		if c.Valid() {
			data[i] = float64(c)
		} else {
			data[i] = math.NaN()
		}
	}
	return mat.NewDense(m.rows, m.cols, data)
}

// Detect 将真实序列广播到每一列后逐格分类
// (1,1)→1，(-1,-1)→2，(1,-1)→3，(-1,1)→4，其余组合为 Unclassified
// 不修改输入
func Detect(signals mat.Matrix, truth mat.Vector) (*CodeMatrix, error) {
	r, c := signals.Dims()
	if n := truth.Len(); n != r {
		return nil, &ShapeError{Rows: r, TruthRows: n}
	}

	out := &CodeMatrix{
		rows:  r,
		cols:  c,
		codes: make([]model.Code, r*c),
	}
	for i := 0; i < r; i++ {
		gt := truth.AtVec(i)
		for j := 0; j < c; j++ {
			out.codes[i*c+j] = model.Classify(signals.At(i, j), gt)
		}
	}
	return out, nil
}
