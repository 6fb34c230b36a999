// Package config 配置模块测试
package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// **Feature: regime-report, Property 9: Config Validation Correctness**

// TestConfigValidation_RegimeCount 测试区制数验证
// 属性: 仅 2 与 3 通过验证
func TestConfigValidation_RegimeCount(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	properties.Property("区制数非 2/3 应验证失败", prop.ForAll(
		func(n int) bool {
			cfg := createValidConfig()
			cfg.Regimes.Count = n
			err := cfg.Validate()
			if n == 2 || n == 3 {
				return err == nil
			}
			return err != nil
		},
		gen.IntRange(-10, 10),
	))

	properties.TestingRun(t)
}

// TestConfigValidation_Decimals 测试取整精度验证
func TestConfigValidation_Decimals(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	properties.Property("小数位在 [0, 15] 内应通过验证", prop.ForAll(
		func(d int) bool {
			cfg := createValidConfig()
			cfg.Regimes.Decimals = &d
			return cfg.Validate() == nil
		},
		gen.IntRange(0, 15),
	))

	properties.Property("小数位为负应验证失败", prop.ForAll(
		func(d int) bool {
			cfg := createValidConfig()
			cfg.Regimes.Decimals = &d
			return cfg.Validate() != nil
		},
		gen.IntRange(-100, -1),
	))

	properties.Property("小数位超过 15 应验证失败", prop.ForAll(
		func(d int) bool {
			cfg := createValidConfig()
			cfg.Regimes.Decimals = &d
			return cfg.Validate() != nil
		},
		gen.IntRange(16, 100),
	))

	properties.TestingRun(t)
}

// TestConfigValidation_LogLevel 测试日志级别验证
func TestConfigValidation_LogLevel(t *testing.T) {
	for _, lvl := range []string{"debug", "info", "warn", "error", "INFO"} {
		cfg := createValidConfig()
		cfg.App.LogLevel = lvl
		if err := cfg.Validate(); err != nil {
			t.Errorf("日志级别 %q 应通过验证: %v", lvl, err)
		}
	}
	cfg := createValidConfig()
	cfg.App.LogLevel = "verbose"
	if err := cfg.Validate(); err == nil {
		t.Error("无效日志级别应验证失败")
	}
}

// TestConfigValidation_NoInput 测试未配置输入文件
func TestConfigValidation_NoInput(t *testing.T) {
	cfg := createValidConfig()
	cfg.Input.ParamsPath = ""
	cfg.Input.SignalsPath = ""
	err := cfg.Validate()
	if err == nil {
		t.Fatal("未配置任何输入应验证失败")
	}
	if !strings.Contains(err.Error(), "input") {
		t.Errorf("错误信息应指出 input: %v", err)
	}
}

// TestConfigValidation_MultipleErrors 测试多个错误一并返回
func TestConfigValidation_MultipleErrors(t *testing.T) {
	cfg := createValidConfig()
	cfg.Regimes.Count = 5
	cfg.Output.Format = "xml"
	err := cfg.Validate()
	if err == nil {
		t.Fatal("应验证失败")
	}
	for _, want := range []string{"regimes.count", "output.format"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("错误信息缺少 %s: %v", want, err)
		}
	}
}

// createValidConfig 创建一个有效的配置用于测试
func createValidConfig() *Config {
	on := true
	d := 4
	return &Config{
		App: AppConfig{
			Name:     "test",
			LogLevel: "info",
		},
		Input: InputConfig{
			ParamsPath:  "params.csv",
			SignalsPath: "signals.csv",
			TruthColumn: "truth",
		},
		Regimes: RegimesConfig{
			Count:    3,
			Rounding: &on,
			Decimals: &d,
		},
		Output: OutputConfig{
			Dir:        "./output",
			Format:     "text",
			BufferSize: 1000,
		},
	}
}

// TestLoad_ValidFile 测试加载有效配置文件
func TestLoad_ValidFile(t *testing.T) {
	content := `
app:
  name: test-report
  log_level: debug

input:
  params_path: ./data/params.csv
  signals_path: ./data/signals.csv
  truth_column: spx

regimes:
  count: 2
  decimals: 2

output:
  dir: ./out
  format: csv
  summary_enabled: true
  classifications_enabled: true
`
	tmpDir := t.TempDir()
	tmpFile := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(tmpFile, []byte(content), 0644); err != nil {
		t.Fatalf("创建临时文件失败: %v", err)
	}

	cfg, err := Load(tmpFile)
	if err != nil {
		t.Fatalf("加载配置失败: %v", err)
	}

	if cfg.App.Name != "test-report" {
		t.Errorf("App.Name = %s, want test-report", cfg.App.Name)
	}
	if cfg.Input.TruthColumn != "spx" {
		t.Errorf("Input.TruthColumn = %s, want spx", cfg.Input.TruthColumn)
	}
	if cfg.Regimes.Count != 2 {
		t.Errorf("Regimes.Count = %d, want 2", cfg.Regimes.Count)
	}
	if !cfg.Regimes.RoundingEnabled() || cfg.Regimes.DecimalPlaces() != 2 {
		t.Errorf("rounding=%v decimals=%d, want true/2", cfg.Regimes.RoundingEnabled(), cfg.Regimes.DecimalPlaces())
	}
	// 未配置的项使用默认值
	if cfg.Output.BufferSize != 1000 {
		t.Errorf("Output.BufferSize = %d, want 1000", cfg.Output.BufferSize)
	}
}

// TestParse_Defaults 测试默认值
func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse([]byte("input:\n  params_path: p.csv\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.App.Name != "regime-report" || cfg.App.LogLevel != "info" {
		t.Errorf("App = %+v", cfg.App)
	}
	if cfg.Regimes.Count != 3 {
		t.Errorf("Regimes.Count = %d, want 3", cfg.Regimes.Count)
	}
	if !cfg.Regimes.RoundingEnabled() || cfg.Regimes.DecimalPlaces() != 4 {
		t.Errorf("默认应取整到 4 位")
	}
	if cfg.Input.TruthColumn != "truth" || cfg.Output.Format != "text" || cfg.Output.Dir != "./output" {
		t.Errorf("默认值错误: %+v %+v", cfg.Input, cfg.Output)
	}
}

// TestParse_RoundingDisabled 测试关闭取整
func TestParse_RoundingDisabled(t *testing.T) {
	cfg, err := Parse([]byte("input:\n  params_path: p.csv\nregimes:\n  count: 2\n  rounding: false\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.Regimes.RoundingEnabled() {
		t.Error("rounding: false 应关闭取整")
	}
}

// TestLoad_InvalidFile 测试加载无效文件
func TestLoad_InvalidFile(t *testing.T) {
	_, err := Load("/nonexistent/path/config.yaml")
	if err == nil {
		t.Error("加载不存在的文件应返回错误")
	}
}

// TestLoad_InvalidYAML 测试加载无效 YAML
func TestLoad_InvalidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	tmpFile := filepath.Join(tmpDir, "invalid.yaml")
	if err := os.WriteFile(tmpFile, []byte("invalid: yaml: content:"), 0644); err != nil {
		t.Fatalf("创建临时文件失败: %v", err)
	}

	_, err := Load(tmpFile)
	if err == nil {
		t.Error("加载无效 YAML 应返回错误")
	}
}
