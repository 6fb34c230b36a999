// Package params 将模型输出的参数字符串键解析为类型化的参数集合。
// 键格式: <name>[<regime>]、p[<from>-><to>]，或不带区制的 <name>。
package params

import (
	"fmt"
	"strings"

	"regime-report/internal/core/model"
	"regime-report/internal/util/fastparse"
)

// ParseKey 解析参数键字符串
// 参数 s: 如 "const[0]"、"ar.L1[2]"、"p[1->0]"、"sigma2"
// 返回: 类型化的参数键，格式非法时返回错误
func ParseKey(s string) (model.ParamKey, error) {
	open := strings.IndexByte(s, '[')
	if open < 0 {
		if s == "" || strings.ContainsAny(s, "]") {
			return model.ParamKey{}, fmt.Errorf("非法参数键 %q", s)
		}
		return model.GlobalKey(s), nil
	}

	name := s[:open]
	if name == "" {
		return model.ParamKey{}, fmt.Errorf("非法参数键 %q: 参数名为空", s)
	}
	if !strings.HasSuffix(s, "]") || strings.Count(s, "[") != 1 || strings.Count(s, "]") != 1 {
		return model.ParamKey{}, fmt.Errorf("非法参数键 %q: 括号不匹配", s)
	}
	inner := s[open+1 : len(s)-1]

	// p[from->to]
	if from, to, ok := strings.Cut(inner, "->"); ok {
		if name != model.ParamTransition {
			return model.ParamKey{}, fmt.Errorf("非法参数键 %q: 仅 %s 可表示转移概率", s, model.ParamTransition)
		}
		f, okF := fastparse.ParseIndex(from)
		t, okT := fastparse.ParseIndex(to)
		if !okF || !okT {
			return model.ParamKey{}, fmt.Errorf("非法参数键 %q: 转移区制索引必须为非负整数", s)
		}
		return model.TransitionKey(f, t), nil
	}

	idx, ok := fastparse.ParseIndex(inner)
	if !ok {
		return model.ParamKey{}, fmt.Errorf("非法参数键 %q: 区制索引必须为非负整数", s)
	}
	return model.RegimeKey(name, idx), nil
}
