package csvfile

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// SignalFrame 方向信号表
// 第一列为行索引（通常为日期），其余为各信号序列，另含一列真实方向
type SignalFrame struct {
	// Index 行索引
	Index []string
	// Columns 信号列名（不含真实方向列）
	Columns []string
	// Signals 信号矩阵（行=时间，列=序列）
	Signals *mat.Dense
	// Truth 真实方向序列
	Truth *mat.VecDense
}

// LoadSignals 从文件加载信号表
// 参数 truthColumn: 真实方向列名
func LoadSignals(path, truthColumn string) (*SignalFrame, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("打开信号文件 %s 失败: %w", path, err)
	}
	defer f.Close()

	sf, err := ReadSignals(f, truthColumn)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return sf, nil
}

// ReadSignals 从 reader 读取信号 CSV
func ReadSignals(r io.Reader, truthColumn string) (*SignalFrame, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("读取表头失败: %w", err)
	}
	if len(header) < 3 {
		return nil, fmt.Errorf("表头至少需要索引列、一个信号列与真实方向列，实际 %d 列", len(header))
	}

	truthIdx := -1
	var columns []string
	var signalIdx []int
	for j := 1; j < len(header); j++ {
		name := strings.TrimSpace(header[j])
		if name == truthColumn {
			truthIdx = j
			continue
		}
		columns = append(columns, name)
		signalIdx = append(signalIdx, j)
	}
	if truthIdx < 0 {
		return nil, fmt.Errorf("表头缺少真实方向列 %q", truthColumn)
	}

	var (
		index []string
		data  []float64
		truth []float64
	)
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
		if len(rec) != len(header) {
			return nil, fmt.Errorf("第 %d 行: 期望 %d 列，实际 %d 列", line, len(header), len(rec))
		}

		index = append(index, rec[0])
		for _, j := range signalIdx {
			v, err := cell(rec, j, line)
			if err != nil {
				return nil, err
			}
			data = append(data, v)
		}
		v, err := cell(rec, truthIdx, line)
		if err != nil {
			return nil, err
		}
		truth = append(truth, v)
	}
	if len(index) == 0 {
		return nil, fmt.Errorf("信号文件没有数据行")
	}

	return &SignalFrame{
		Index:   index,
		Columns: columns,
		Signals: mat.NewDense(len(index), len(columns), data),
		Truth:   mat.NewVecDense(len(truth), truth),
	}, nil
}
