// Package csvfile CSV 输入测试
package csvfile

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"regime-report/internal/core/model"
)

const paramsCSV = `param,estimate,tvalue,pvalue
p[0->0],0.9,12.1,0.0
p[1->0],0.2,3.3,0.001
const[0],0.02,2.1,0.04
const[1],-0.03,-1.8,0.07
sigma2[0],0.01,,
sigma2[1],0.05,5.0,0.0001
`

func TestReadParams(t *testing.T) {
	pt, err := ReadParams(strings.NewReader(paramsCSV))
	if err != nil {
		t.Fatalf("ReadParams: %v", err)
	}
	if pt.Estimates.Len() != 6 || pt.TValues.Len() != 6 || pt.PValues.Len() != 6 {
		t.Fatalf("len=%d/%d/%d, want 6", pt.Estimates.Len(), pt.TValues.Len(), pt.PValues.Len())
	}
	if v, ok := pt.Estimates.Transition(1, 0); !ok || v != 0.2 {
		t.Fatalf("p[1->0]=%v,%v", v, ok)
	}
	if v, ok := pt.TValues.Regime(model.ParamConst, 1); !ok || v != -1.8 {
		t.Fatalf("t const[1]=%v,%v", v, ok)
	}
	// 空单元格为 NaN
	if v, ok := pt.TValues.Regime(model.ParamSigma2, 0); !ok || !math.IsNaN(v) {
		t.Fatalf("t sigma2[0]=%v,%v, want NaN", v, ok)
	}
}

func TestReadParams_EstimateOnly(t *testing.T) {
	pt, err := ReadParams(strings.NewReader("Param, Estimate\nconst[0],1\nconst[1],2\n"))
	if err != nil {
		t.Fatalf("ReadParams: %v", err)
	}
	if pt.Estimates.Len() != 2 || pt.TValues.Len() != 0 || pt.PValues.Len() != 0 {
		t.Fatalf("len=%d/%d/%d", pt.Estimates.Len(), pt.TValues.Len(), pt.PValues.Len())
	}
}

func TestReadParams_Errors(t *testing.T) {
	cases := map[string]string{
		"缺少 param 列":    "name,estimate\nconst[0],1\n",
		"缺少 estimate 列": "param,value\nconst[0],1\n",
		"非法数值":          "param,estimate\nconst[0],abc\n",
		"非法键":           "param,estimate\nconst[x],1\n",
		"无数据":           "param,estimate\n",
		"空文件":           "",
	}
	for name, in := range cases {
		if _, err := ReadParams(strings.NewReader(in)); err == nil {
			t.Fatalf("%s: 应返回错误", name)
		}
	}
}

const signalsCSV = `date,ms2,ms3,truth
2024-01-01,1,-1,1
2024-01-02,-1,-1,1
2024-01-03,1,,-1
2024-01-04,-1,1,-1
`

func TestReadSignals(t *testing.T) {
	sf, err := ReadSignals(strings.NewReader(signalsCSV), "truth")
	if err != nil {
		t.Fatalf("ReadSignals: %v", err)
	}
	if len(sf.Index) != 4 || sf.Index[2] != "2024-01-03" {
		t.Fatalf("Index=%v", sf.Index)
	}
	if len(sf.Columns) != 2 || sf.Columns[0] != "ms2" || sf.Columns[1] != "ms3" {
		t.Fatalf("Columns=%v", sf.Columns)
	}
	r, c := sf.Signals.Dims()
	if r != 4 || c != 2 {
		t.Fatalf("Dims=%dx%d", r, c)
	}
	if sf.Signals.At(1, 0) != -1 || !math.IsNaN(sf.Signals.At(2, 1)) {
		t.Fatalf("Signals 数值错误")
	}
	if sf.Truth.Len() != 4 || sf.Truth.AtVec(3) != -1 {
		t.Fatalf("Truth 数值错误")
	}
}

func TestReadSignals_TruthInMiddle(t *testing.T) {
	sf, err := ReadSignals(strings.NewReader("i,a,gt,b\n0,1,1,-1\n"), "gt")
	if err != nil {
		t.Fatalf("ReadSignals: %v", err)
	}
	if len(sf.Columns) != 2 || sf.Columns[1] != "b" || sf.Signals.At(0, 1) != -1 || sf.Truth.AtVec(0) != 1 {
		t.Fatalf("frame=%+v", sf)
	}
}

func TestReadSignals_Errors(t *testing.T) {
	cases := map[string]string{
		"缺少真实列": "date,ms2,ms3\n2024,1,1\n",
		"列数不足":  "date,truth\n2024,1\n",
		"非法数值":  "date,ms2,truth\n2024,x,1\n",
		"无数据":   "date,ms2,truth\n",
		"行长度错误": "date,ms2,truth\n2024,1\n",
	}
	for name, in := range cases {
		if _, err := ReadSignals(strings.NewReader(in), "truth"); err == nil {
			t.Fatalf("%s: 应返回错误", name)
		}
	}
}

func TestLoadFiles(t *testing.T) {
	dir := t.TempDir()
	pp := filepath.Join(dir, "params.csv")
	sp := filepath.Join(dir, "signals.csv")
	if err := os.WriteFile(pp, []byte(paramsCSV), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if err := os.WriteFile(sp, []byte(signalsCSV), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := LoadParams(pp); err != nil {
		t.Fatalf("LoadParams: %v", err)
	}
	if _, err := LoadSignals(sp, "truth"); err != nil {
		t.Fatalf("LoadSignals: %v", err)
	}
	if _, err := LoadParams(filepath.Join(dir, "missing.csv")); err == nil {
		t.Fatal("文件不存在应返回错误")
	}
}
