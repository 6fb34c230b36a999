// Package fastparse 提供参数键与 CSV 单元格的字符串解析函数。
package fastparse

import (
	"math"
	"strconv"
	"strings"
)

// ParseFloat 解析浮点数字符串
func ParseFloat(s string) (float64, error) {
	return strconv.ParseFloat(s, 64)
}

// ParseCell 解析 CSV 单元格
// 空单元格与 NaN/NA 视为缺失，返回 NaN
func ParseCell(s string) (float64, error) {
	s = strings.TrimSpace(s)
	switch s {
	case "", "NaN", "nan", "NA", "<NA>":
		return math.NaN(), nil
	}
	return ParseFloat(s)
}

// ParseIndex 解析非负整数索引，如区制编号
// 拒绝符号、空白与前导 +
func ParseIndex(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, false
		}
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return v, true
}

// FormatFloat 格式化浮点数为字符串
// 参数 prec: 小数位数，-1 表示最短表示
func FormatFloat(f float64, prec int) string {
	return strconv.FormatFloat(f, 'f', prec, 64)
}
