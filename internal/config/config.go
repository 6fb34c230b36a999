// Package config 负责加载和验证 YAML 配置文件。
// 提供报告生成所需的配置项，包括输入文件、区制识别参数与输出设置。
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config 应用配置根结构
type Config struct {
	// App 应用基础配置
	App AppConfig `yaml:"app"`
	// Input 输入文件配置
	Input InputConfig `yaml:"input"`
	// Regimes 区制识别配置
	Regimes RegimesConfig `yaml:"regimes"`
	// Output 输出配置
	Output OutputConfig `yaml:"output"`
}

// AppConfig 应用基础配置
type AppConfig struct {
	// Name 应用名称，用于日志标识
	Name string `yaml:"name"`
	// LogLevel 日志级别: debug, info, warn, error
	LogLevel string `yaml:"log_level"`
}

// InputConfig 输入文件配置
type InputConfig struct {
	// ParamsPath 参数估计 CSV（param,estimate,tvalue,pvalue）
	ParamsPath string `yaml:"params_path"`
	// SignalsPath 方向信号 CSV（索引列 + 信号列 + 真实方向列）
	SignalsPath string `yaml:"signals_path"`
	// TruthColumn 信号 CSV 中真实方向列名
	TruthColumn string `yaml:"truth_column"`
}

// RegimesConfig 区制识别配置
type RegimesConfig struct {
	// Count 模型区制数: 2 或 3
	Count int `yaml:"count"`
	// Rounding 两区制结果是否取整，默认 true
	Rounding *bool `yaml:"rounding"`
	// Decimals 取整小数位，默认 4
	Decimals *int `yaml:"decimals"`
}

// OutputConfig 输出配置
type OutputConfig struct {
	// Dir 输出目录
	Dir string `yaml:"dir"`
	// Format 汇总表标准输出格式: text 或 csv
	Format string `yaml:"format"`
	// SummaryEnabled 是否输出 regimes.jsonl 与 summary.jsonl
	SummaryEnabled bool `yaml:"summary_enabled"`
	// ClassificationsEnabled 是否输出 classifications.jsonl 与 tally.jsonl
	ClassificationsEnabled bool `yaml:"classifications_enabled"`
	// BufferSize 异步写入缓冲区大小
	BufferSize int `yaml:"buffer_size"`
}

// Load 从文件加载配置并验证
// 参数 path: 配置文件路径
// 返回: 解析后的配置对象，若失败则返回错误
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取配置文件失败: %w", err)
	}
	return Parse(data)
}

// Parse 解析 YAML 内容、设置默认值并验证
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("解析配置文件失败: %w", err)
	}

	cfg.setDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("配置验证失败: %w", err)
	}
	return &cfg, nil
}

// setDefaults 设置配置默认值
func (c *Config) setDefaults() {
	if c.App.Name == "" {
		c.App.Name = "regime-report"
	}
	if c.App.LogLevel == "" {
		c.App.LogLevel = "info"
	}

	if c.Input.TruthColumn == "" {
		c.Input.TruthColumn = "truth"
	}

	if c.Regimes.Count == 0 {
		c.Regimes.Count = 3
	}
	if c.Regimes.Rounding == nil {
		on := true
		c.Regimes.Rounding = &on
	}
	if c.Regimes.Decimals == nil {
		d := 4
		c.Regimes.Decimals = &d
	}

	if c.Output.Dir == "" {
		c.Output.Dir = "./output"
	}
	if c.Output.Format == "" {
		c.Output.Format = "text"
	}
	if c.Output.BufferSize == 0 {
		c.Output.BufferSize = 1000
	}
}

// Validate 验证配置合法性
// 返回: 若配置无效则返回描述性错误（汇总所有问题）
func (c *Config) Validate() error {
	var errs []string

	if c.Input.ParamsPath == "" && c.Input.SignalsPath == "" {
		errs = append(errs, "input: params_path 与 signals_path 至少配置一个")
	}

	if c.Regimes.Count != 2 && c.Regimes.Count != 3 {
		errs = append(errs, fmt.Sprintf("regimes.count: 仅支持 2 或 3，当前值: %d", c.Regimes.Count))
	}
	if c.Regimes.Decimals != nil && (*c.Regimes.Decimals < 0 || *c.Regimes.Decimals > 15) {
		errs = append(errs, fmt.Sprintf("regimes.decimals: 必须在 0-15 之间，当前值: %d", *c.Regimes.Decimals))
	}

	switch c.Output.Format {
	case "text", "csv":
	default:
		errs = append(errs, fmt.Sprintf("output.format: 无效的格式 '%s'，有效值: text, csv", c.Output.Format))
	}
	if c.Output.BufferSize < 0 {
		errs = append(errs, "output.buffer_size: 缓冲区大小不能为负数")
	}
	if (c.Output.SummaryEnabled || c.Output.ClassificationsEnabled) && c.Output.Dir == "" {
		errs = append(errs, "output.dir: 启用输出时目录不能为空")
	}

	validLogLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true,
	}
	if !validLogLevels[strings.ToLower(c.App.LogLevel)] {
		errs = append(errs, fmt.Sprintf("app.log_level: 无效的日志级别 '%s'，有效值: debug, info, warn, error", c.App.LogLevel))
	}

	if len(errs) > 0 {
		return fmt.Errorf("配置验证错误:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}

// RoundingEnabled 两区制结果是否取整
func (r RegimesConfig) RoundingEnabled() bool {
	return r.Rounding == nil || *r.Rounding
}

// DecimalPlaces 取整小数位
func (r RegimesConfig) DecimalPlaces() int {
	if r.Decimals == nil {
		return 4
	}
	return *r.Decimals
}
