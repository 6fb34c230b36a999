package summary

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"text/tabwriter"

	"regime-report/internal/util/fastparse"
)

// Header 表头
var Header = []string{"Regime", "Parameter", "Estimate", "t-statistic", "p-value"}

// WriteText 以对齐文本形式输出汇总表
func (t *Table) WriteText(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t\n", Header[0], Header[1], Header[2], Header[3], Header[4])
	var last string
	for _, r := range t.Rows {
		// 同一区制只在首行标出
		regime := string(r.Regime)
		if regime == last {
			regime = ""
		} else {
			last = regime
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t\n", regime, r.Parameter,
			formatCell(r.Estimate, 4), formatCell(r.TStat, 3), formatCell(r.PValue, 3))
	}
	return tw.Flush()
}

// WriteCSV 以 CSV 形式输出汇总表，NaN 输出为空单元格
func (t *Table) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return err
	}
	for _, r := range t.Rows {
		rec := []string{
			string(r.Regime),
			r.Parameter,
			csvCell(r.Estimate),
			csvCell(r.TStat),
			csvCell(r.PValue),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// MarshalJSON NaN 字段输出为 null（encoding/json 不接受 NaN）
func (r Row) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Regime    string   `json:"regime"`
		Parameter string   `json:"parameter"`
		Estimate  *float64 `json:"estimate"`
		TStat     *float64 `json:"t_statistic"`
		PValue    *float64 `json:"p_value"`
	}{
		Regime:    string(r.Regime),
		Parameter: r.Parameter,
		Estimate:  nullable(r.Estimate),
		TStat:     nullable(r.TStat),
		PValue:    nullable(r.PValue),
	})
}

func nullable(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

func formatCell(v float64, prec int) string {
	if math.IsNaN(v) {
		return "NaN"
	}
	return fastparse.FormatFloat(v, prec)
}

func csvCell(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	return fastparse.FormatFloat(v, -1)
}
