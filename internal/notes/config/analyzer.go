package config

import "time"

// AnalyzerConfig описывает внешний процесс анализа текста.
// Текст передается последним позиционным аргументом после Args.
type AnalyzerConfig struct {
	Command       string        `yaml:"command" env:"ANALYZER_COMMAND" env-default:"analyzer"`
	Args          []string      `yaml:"args" env:"ANALYZER_ARGS" env-separator:" "`
	WorkDir       string        `yaml:"work_dir" env:"ANALYZER_WORK_DIR" env-default:""`
	Timeout       time.Duration `yaml:"timeout" env:"ANALYZER_TIMEOUT" env-default:"30s"`
	MaxConcurrent int           `yaml:"max_concurrent" env:"ANALYZER_MAX_CONCURRENT" env-default:"4"`

	BreakerThreshold int           `yaml:"breaker_threshold" env:"ANALYZER_BREAKER_THRESHOLD" env-default:"5"`
	BreakerTimeout   time.Duration `yaml:"breaker_timeout" env:"ANALYZER_BREAKER_TIMEOUT" env-default:"30s"`
}
