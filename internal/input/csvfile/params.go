// Package csvfile 从 CSV 文件加载模型参数估计与方向信号。
package csvfile

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"regime-report/internal/params"
	"regime-report/internal/util/fastparse"
)

// 参数文件列名
const (
	ColParam    = "param"
	ColEstimate = "estimate"
	ColTValue   = "tvalue"
	ColPValue   = "pvalue"
)

// ParamTables 参数文件中的三个并列序列
type ParamTables struct {
	Estimates *params.Set
	TValues   *params.Set
	PValues   *params.Set
}

// LoadParams 从文件加载参数估计
// 表头必须包含 param 与 estimate，tvalue/pvalue 可选
func LoadParams(path string) (*ParamTables, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("打开参数文件 %s 失败: %w", path, err)
	}
	defer f.Close()

	pt, err := ReadParams(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return pt, nil
}

// ReadParams 从 reader 读取参数 CSV
func ReadParams(r io.Reader) (*ParamTables, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("读取表头失败: %w", err)
	}
	col := make(map[string]int, len(header))
	for i, h := range header {
		col[strings.ToLower(strings.TrimSpace(h))] = i
	}
	iName, ok := col[ColParam]
	if !ok {
		return nil, fmt.Errorf("表头缺少 %q 列", ColParam)
	}
	iEst, ok := col[ColEstimate]
	if !ok {
		return nil, fmt.Errorf("表头缺少 %q 列", ColEstimate)
	}
	iT, hasT := col[ColTValue]
	iP, hasP := col[ColPValue]

	var names []string
	var est, tv, pv []float64
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("读取第 %d 行失败: %w", line, err)
		}
		if len(rec) == 1 && rec[0] == "" {
			continue
		}
		names = append(names, strings.TrimSpace(rec[iName]))

		v, err := cell(rec, iEst, line)
		if err != nil {
			return nil, err
		}
		est = append(est, v)
		if hasT {
			if v, err = cell(rec, iT, line); err != nil {
				return nil, err
			}
			tv = append(tv, v)
		}
		if hasP {
			if v, err = cell(rec, iP, line); err != nil {
				return nil, err
			}
			pv = append(pv, v)
		}
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("参数文件没有数据行")
	}

	out := &ParamTables{TValues: params.Empty(), PValues: params.Empty()}
	if out.Estimates, err = params.NewSet(names, est); err != nil {
		return nil, fmt.Errorf("解析参数键失败: %w", err)
	}
	if hasT {
		if out.TValues, err = params.NewSet(names, tv); err != nil {
			return nil, err
		}
	}
	if hasP {
		if out.PValues, err = params.NewSet(names, pv); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func cell(rec []string, i, line int) (float64, error) {
	if i >= len(rec) {
		return 0, fmt.Errorf("第 %d 行缺少第 %d 列", line, i+1)
	}
	v, err := fastparse.ParseCell(rec[i])
	if err != nil {
		return 0, fmt.Errorf("解析第 %d 行第 %d 列 (%q) 失败: %w", line, i+1, rec[i], err)
	}
	return v, nil
}
