// Package main 是区制报告工具的入口点。
// 读取马尔可夫切换模型的参数估计与方向信号，输出区制标签、参数汇总表与信号分类结果。
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"regime-report/internal/config"
	"regime-report/internal/core/classify"
	"regime-report/internal/core/regime"
	"regime-report/internal/core/summary"
	"regime-report/internal/input/csvfile"
	"regime-report/internal/output/jsonl"
	"regime-report/internal/stats/confusion"
)

// 记录类型
const (
	kindTwoRegimes     = "two_regimes"
	kindLabelMap       = "label_map"
	kindSummaryRow     = "summary_row"
	kindClassification = "classification"
	kindTally          = "tally"
)

// classificationRow classifications.jsonl 中的一行
type classificationRow struct {
	Index string         `json:"index"`
	Codes map[string]int `json:"codes"`
}

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "config.yaml", "配置文件路径")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "加载配置失败: %v\n", err)
		os.Exit(1)
	}

	logger := newLogger(cfg.App.LogLevel)
	defer logger.Sync()
	logger = logger.With(zap.String("app", cfg.App.Name))

	if err := run(cfg, logger, os.Stdout); err != nil {
		logger.Error("生成报告失败", append(errorFields(err), zap.Error(err))...)
		os.Exit(1)
	}
	logger.Info("报告生成完成")
}

func newLogger(level string) *zap.Logger {
	lvl := zapcore.InfoLevel
	if err := lvl.Set(level); err != nil {
		lvl = zapcore.InfoLevel
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

// run 按配置执行参数汇总与信号分类
func run(cfg *config.Config, logger *zap.Logger, stdout io.Writer) error {
	if cfg.Input.ParamsPath != "" {
		if err := runRegimes(cfg, logger, stdout); err != nil {
			return err
		}
	}
	if cfg.Input.SignalsPath != "" {
		if err := runClassifications(cfg, logger); err != nil {
			return err
		}
	}
	return nil
}

func runRegimes(cfg *config.Config, logger *zap.Logger, stdout io.Writer) error {
	pt, err := csvfile.LoadParams(cfg.Input.ParamsPath)
	if err != nil {
		return err
	}
	logger.Debug("参数加载完成", zap.String("path", cfg.Input.ParamsPath), zap.Int("params", pt.Estimates.Len()))

	if cfg.Regimes.Count == 2 {
		opts := []regime.Option{regime.WithoutRounding()}
		if cfg.Regimes.RoundingEnabled() {
			opts = []regime.Option{regime.WithDecimals(cfg.Regimes.DecimalPlaces())}
		}
		res, err := regime.IdentifyTwo(pt.Estimates, opts...)
		if err != nil {
			return fmt.Errorf("识别两区制失败: %w", err)
		}
		logger.Info("两区制识别完成",
			zap.Int("bull", res.Bull.Regime), zap.Float64("bull_beta0", res.Bull.Beta0), zap.Float64("bull_var", res.Bull.Var),
			zap.Int("bear", res.Bear.Regime), zap.Float64("bear_beta0", res.Bear.Beta0), zap.Float64("bear_var", res.Bear.Var))
		fmt.Fprintf(stdout, "Bull: regime %d  beta0=%g  var=%g  p_stay=%g  p_switch=%g\n",
			res.Bull.Regime, res.Bull.Beta0, res.Bull.Var, res.Bull.PStay, res.Bull.PSwitch)
		fmt.Fprintf(stdout, "Bear: regime %d  beta0=%g  var=%g  p_stay=%g  p_switch=%g\n",
			res.Bear.Regime, res.Bear.Beta0, res.Bear.Var, res.Bear.PStay, res.Bear.PSwitch)
		if !cfg.Output.SummaryEnabled {
			return nil
		}
		return writeRecords(cfg, "regimes.jsonl", jsonl.NewRecord(kindTwoRegimes, res))
	}

	table, err := summary.BuildThreeRegimeSummary(pt.Estimates, pt.TValues, pt.PValues)
	if err != nil {
		return err
	}
	logger.Info("三区制识别完成",
		zap.Int("bull", table.Labels.Bull), zap.Int("bear", table.Labels.Bear), zap.Int("chop", table.Labels.Chop))

	if cfg.Output.Format == "csv" {
		err = table.WriteCSV(stdout)
	} else {
		err = table.WriteText(stdout)
	}
	if err != nil {
		return fmt.Errorf("输出汇总表失败: %w", err)
	}

	if !cfg.Output.SummaryEnabled {
		return nil
	}
	if err := writeRecords(cfg, "regimes.jsonl", jsonl.NewRecord(kindLabelMap, table.Labels)); err != nil {
		return err
	}
	rows := make([]jsonl.Record, 0, len(table.Rows))
	for _, row := range table.Rows {
		rows = append(rows, jsonl.NewRecord(kindSummaryRow, row))
	}
	return writeRecords(cfg, "summary.jsonl", rows...)
}

// writeRecords 结果就绪后才创建输出文件，失败时保留上一次的输出
func writeRecords(cfg *config.Config, name string, recs ...jsonl.Record) error {
	w, err := jsonl.NewWriter(filepath.Join(cfg.Output.Dir, name), cfg.Output.BufferSize)
	if err != nil {
		return err
	}
	for _, r := range recs {
		if err := w.Write(r); err != nil {
			_ = w.Close()
			return err
		}
	}
	return w.Close()
}

func runClassifications(cfg *config.Config, logger *zap.Logger) error {
	sf, err := csvfile.LoadSignals(cfg.Input.SignalsPath, cfg.Input.TruthColumn)
	if err != nil {
		return err
	}

	codes, err := classify.Detect(sf.Signals, sf.Truth)
	if err != nil {
		return fmt.Errorf("信号分类失败: %w", err)
	}
	tally := confusion.TallyColumns(codes, sf.Columns)
	for _, ts := range tally {
		logger.Info("信号分类统计",
			zap.String("column", ts.Column),
			zap.Int64("count", ts.Count),
			zap.Int64("unclassified", ts.Unclassified),
			zap.Float64("hit_rate", ts.HitRate),
			zap.Float64("bull_precision", ts.BullPrecision),
			zap.Float64("bear_precision", ts.BearPrecision))
	}

	if !cfg.Output.ClassificationsEnabled {
		return nil
	}
	cw, err := jsonl.NewWriter(filepath.Join(cfg.Output.Dir, "classifications.jsonl"), cfg.Output.BufferSize)
	if err != nil {
		return err
	}
	tw, err := jsonl.NewWriter(filepath.Join(cfg.Output.Dir, "tally.jsonl"), cfg.Output.BufferSize)
	if err != nil {
		_ = cw.Close()
		return err
	}

	rows, _ := codes.Dims()
	for i := 0; i < rows; i++ {
		rec := classificationRow{Index: sf.Index[i], Codes: make(map[string]int, len(sf.Columns))}
		for j, code := range codes.Row(i) {
			// 未分类单元格不输出
			if code.Valid() {
				rec.Codes[sf.Columns[j]] = int(code)
			}
		}
		_ = cw.Write(jsonl.NewRecord(kindClassification, rec))
	}
	for _, ts := range tally {
		_ = tw.Write(jsonl.NewRecord(kindTally, ts))
	}
	return errors.Join(cw.Close(), tw.Close())
}

// errorFields 为已知错误类型补充结构化日志字段
func errorFields(err error) []zap.Field {
	var missing *regime.MissingParamError
	var ambiguous *regime.AmbiguousRegimesError
	var count *regime.RegimeCountError
	var shape *classify.ShapeError
	switch {
	case errors.As(err, &missing):
		return []zap.Field{zap.String("reason", "missing_param"), zap.Stringer("key", missing.Key)}
	case errors.As(err, &ambiguous):
		return []zap.Field{
			zap.String("reason", "mixed_regimes"),
			zap.Float64("beta0_0", ambiguous.A.Beta0), zap.Float64("var_0", ambiguous.A.Var),
			zap.Float64("beta0_1", ambiguous.B.Beta0), zap.Float64("var_1", ambiguous.B.Var),
		}
	case errors.As(err, &count):
		return []zap.Field{zap.String("reason", "regime_count"), zap.Ints("found", count.Found)}
	case errors.As(err, &shape):
		return []zap.Field{zap.String("reason", "shape_mismatch"), zap.Int("rows", shape.Rows), zap.Int("truth_rows", shape.TruthRows)}
	}
	return nil
}
