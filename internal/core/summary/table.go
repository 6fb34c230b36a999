// Package summary 构建三区制参数汇总表（区制 × 参数）。
package summary

import (
	"fmt"
	"math"

	"regime-report/internal/core/model"
	"regime-report/internal/core/regime"
)

// 参数展示名
const (
	ParamConstant = "Constant"
	ParamAR1      = "AR(1)"
	ParamAR2      = "AR(2)"
	ParamStdDev   = "Std. Deviation"
)

// paramRow 参数展示名与键前缀
type paramRow struct {
	prefix string
	pretty string
}

// paramRows 每个区制下参数行的固定顺序
var paramRows = []paramRow{
	{model.ParamConst, ParamConstant},
	{model.ParamAR1, ParamAR1},
	{model.ParamAR2, ParamAR2},
	{model.ParamSigma2, ParamStdDev},
}

// Row 汇总表的一行
type Row struct {
	// Regime 区制标签
	Regime model.Label `json:"regime"`
	// Parameter 参数展示名
	Parameter string `json:"parameter"`
	// Estimate 估计值；Std. Deviation 行为 sqrt(sigma2)
	Estimate float64 `json:"estimate"`
	// TStat t 统计量
	TStat float64 `json:"t_statistic"`
	// PValue p 值
	PValue float64 `json:"p_value"`
}

// Table 三区制汇总表
// 行序固定: Bull、Bear、Chop，每个区制下依次为 Constant、AR(1)、AR(2)、Std. Deviation
type Table struct {
	// Labels 生成此表所用的标签映射
	Labels model.LabelMap
	// Rows 按固定顺序排列的行
	Rows []Row
}

// Lookup 按 (区制, 参数) 查找行
func (t *Table) Lookup(label model.Label, parameter string) (Row, bool) {
	for _, r := range t.Rows {
		if r.Regime == label && r.Parameter == parameter {
			return r, true
		}
	}
	return Row{}, false
}

// Source 参数查找接口，由 *params.Set 实现
type Source interface {
	Get(k model.ParamKey) (float64, bool)
}

// LabelMapError 标签映射不是三个区制上的双射
type LabelMapError struct {
	Labels model.LabelMap
}

func (e *LabelMapError) Error() string {
	return fmt.Sprintf("标签映射非法，三个区制索引必须互不相同: %+v", e.Labels)
}

// BuildThreeRegimeTable 使用给定标签映射构建汇总表
// 缺失的参数以 NaN 占位而不报错
func BuildThreeRegimeTable(estimates, tvalues, pvalues Source, labels model.LabelMap) (*Table, error) {
	if !labels.IsBijection() {
		return nil, &LabelMapError{Labels: labels}
	}

	t := &Table{
		Labels: labels,
		Rows:   make([]Row, 0, len(model.Labels)*len(paramRows)),
	}
	for _, label := range model.Labels {
		idx, _ := labels.Index(label)
		for _, pr := range paramRows {
			k := model.RegimeKey(pr.prefix, idx)
			est := lookup(estimates, k)
			if pr.prefix == model.ParamSigma2 && !math.IsNaN(est) {
				est = math.Sqrt(est)
			}
			t.Rows = append(t.Rows, Row{
				Regime:    label,
				Parameter: pr.pretty,
				Estimate:  est,
				TStat:     lookup(tvalues, k),
				PValue:    lookup(pvalues, k),
			})
		}
	}
	return t, nil
}

// BuildThreeRegimeSummary 自动识别 Bull/Bear/Chop 后构建汇总表
func BuildThreeRegimeSummary(estimates regime.ParamSource, tvalues, pvalues Source) (*Table, error) {
	labels, err := regime.IdentifyThree(estimates)
	if err != nil {
		return nil, fmt.Errorf("识别三区制失败: %w", err)
	}
	return BuildThreeRegimeTable(estimates, tvalues, pvalues, labels)
}

func lookup(s Source, k model.ParamKey) float64 {
	if s == nil {
		return math.NaN()
	}
	if v, ok := s.Get(k); ok {
		return v
	}
	return math.NaN()
}
