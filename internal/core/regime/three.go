package regime

import (
	"sort"

	"regime-report/internal/core/model"
)

// ParamSource 参数查找接口，由 *params.Set 实现
type ParamSource interface {
	Get(k model.ParamKey) (float64, bool)
	Regimes(name string) []int
}

// IdentifyThree 按常数项排序为三个区制分配标签
// 常数项最低 → Bear，居中 → Chop，最高 → Bull；常数项相同时索引小者在前
// const[i] 不恰好覆盖三个区制时返回 *RegimeCountError
func IdentifyThree(p ParamSource) (model.LabelMap, error) {
	idx := p.Regimes(model.ParamConst)
	if len(idx) != 3 {
		return model.LabelMap{}, &RegimeCountError{Want: 3, Found: idx}
	}

	consts := make(map[int]float64, 3)
	for _, i := range idx {
		v, _ := p.Get(model.RegimeKey(model.ParamConst, i))
		consts[i] = v
	}

	sorted := append([]int(nil), idx...)
	sort.SliceStable(sorted, func(a, b int) bool {
		return consts[sorted[a]] < consts[sorted[b]]
	})

	return model.LabelMap{
		Bear: sorted[0],
		Chop: sorted[1],
		Bull: sorted[2],
	}, nil
}
