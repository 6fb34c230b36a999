package params

import (
	"fmt"
	"sort"

	"go.uber.org/multierr"

	"regime-report/internal/core/model"
)

// Set 有序、只读的参数集合（估计值、t 统计量或 p 值序列）
type Set struct {
	keys   []model.ParamKey
	values map[model.ParamKey]float64
}

// NewSet 从并列的键名与数值构建参数集合
// 所有非法键与重复键会合并为一个错误返回
func NewSet(names []string, values []float64) (*Set, error) {
	if len(names) != len(values) {
		return nil, fmt.Errorf("键数量 %d 与数值数量 %d 不一致", len(names), len(values))
	}

	s := &Set{
		keys:   make([]model.ParamKey, 0, len(names)),
		values: make(map[model.ParamKey]float64, len(names)),
	}
	var errs error
	for i, name := range names {
		k, err := ParseKey(name)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		if _, dup := s.values[k]; dup {
			errs = multierr.Append(errs, fmt.Errorf("重复的参数键 %q", name))
			continue
		}
		s.keys = append(s.keys, k)
		s.values[k] = values[i]
	}
	if errs != nil {
		return nil, errs
	}
	return s, nil
}

// FromMap 从字符串键映射构建参数集合
// map 无序，结果按规范字符串排序
func FromMap(m map[string]float64) (*Set, error) {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)

	values := make([]float64, len(names))
	for i, name := range names {
		values[i] = m[name]
	}
	return NewSet(names, values)
}

// Empty 返回空集合
func Empty() *Set {
	return &Set{values: map[model.ParamKey]float64{}}
}

// Len 参数个数
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.keys)
}

// Keys 按输入顺序返回参数键（副本）
func (s *Set) Keys() []model.ParamKey {
	if s == nil {
		return nil
	}
	out := make([]model.ParamKey, len(s.keys))
	copy(out, s.keys)
	return out
}

// Get 按键查找
func (s *Set) Get(k model.ParamKey) (float64, bool) {
	if s == nil {
		return 0, false
	}
	v, ok := s.values[k]
	return v, ok
}

// Regime 查找 name[idx]
func (s *Set) Regime(name string, idx int) (float64, bool) {
	return s.Get(model.RegimeKey(name, idx))
}

// Transition 查找 p[from->to]
func (s *Set) Transition(from, to int) (float64, bool) {
	return s.Get(model.TransitionKey(from, to))
}

// Regimes 返回带有参数 name 的全部区制索引（升序）
// NewSet 已拒绝重复键，结果不含重复索引
func (s *Set) Regimes(name string) []int {
	if s == nil {
		return nil
	}
	var out []int
	for _, k := range s.keys {
		if k.Transition || k.Regime == model.NoRegime || k.Name != name {
			continue
		}
		out = append(out, k.Regime)
	}
	sort.Ints(out)
	return out
}
