// Package analyzer содержит реализации порта анализа текста:
// запуск внешнего процесса и декораторы над ним.
package analyzer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"

	"smartnotes/internal/notes/domain/entities"
	"smartnotes/internal/notes/ports/services"
	"smartnotes/pkg/logger"
)

// Ошибки процесса анализа.
var (
	ErrInvalidOutput   = errors.New("analyzer produced invalid output")
	ErrAnalyzerTimeout = errors.New("analyzer timed out")
	ErrProcessStart    = errors.New("failed to start analyzer process")
)

// Константы для логирования.
const (
	LogAnalyzerStderr   = "analyzer stderr"
	LogAnalyzerExitCode = "analyzer exited with non-zero status"
	LogAnalyzerStarted  = "analyzer process started"
	LogAnalyzerFinished = "analyzer process finished"

	defaultTimeout       = 30 * time.Second
	defaultMaxConcurrent = 4
	waitDelay            = 2 * time.Second
)

// ProcessConfig описывает запуск внешнего анализатора.
type ProcessConfig struct {
	Command       string
	Args          []string
	WorkDir       string
	Timeout       time.Duration
	MaxConcurrent int
}

// ProcessAnalyzer запускает внешний процесс на каждый текст.
// Текст передается последним аргументом, результат читается из stdout как JSON.
type ProcessAnalyzer struct {
	cfg ProcessConfig
	sem *semaphore.Weighted
}

// NewProcessAnalyzer создает анализатор с ограничением числа одновременных процессов.
func NewProcessAnalyzer(cfg ProcessConfig) *ProcessAnalyzer {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.MaxConcurrent <= 0 {
		cfg.MaxConcurrent = defaultMaxConcurrent
	}

	return &ProcessAnalyzer{
		cfg: cfg,
		sem: semaphore.NewWeighted(int64(cfg.MaxConcurrent)),
	}
}

var _ services.Analyzer = (*ProcessAnalyzer)(nil)

// Analyze запускает процесс и разбирает его вывод.
func (a *ProcessAnalyzer) Analyze(ctx context.Context, text string) (*entities.Summary, error) {
	log := logger.Log(ctx).With(
		zap.String("method", "ProcessAnalyzer.Analyze"),
		zap.String("command", a.cfg.Command),
	)

	ctx, cancel := context.WithTimeout(ctx, a.cfg.Timeout)
	defer cancel()

	if err := a.sem.Acquire(ctx, 1); err != nil {
		return nil, contextError(ctx)
	}
	defer a.sem.Release(1)

	args := make([]string, 0, len(a.cfg.Args)+1)
	args = append(args, a.cfg.Args...)
	args = append(args, text)

	var stdout bytes.Buffer
	stderr := newLineLogger(ctx, log)

	cmd := exec.CommandContext(ctx, a.cfg.Command, args...)
	cmd.Dir = a.cfg.WorkDir
	cmd.Stdout = &stdout
	cmd.Stderr = stderr
	cmd.WaitDelay = waitDelay

	started := time.Now()
	if err := cmd.Start(); err != nil {
		log.Error(ctx, ErrProcessStart.Error(), zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrProcessStart, err)
	}
	log.Debug(ctx, LogAnalyzerStarted, zap.Int("pid", cmd.Process.Pid))

	waitErr := cmd.Wait()
	stderr.Flush()

	if ctx.Err() != nil {
		log.Warn(ctx, ErrAnalyzerTimeout.Error(), zap.Duration("elapsed", time.Since(started)))
		return nil, contextError(ctx)
	}

	log.Debug(ctx, LogAnalyzerFinished,
		zap.Duration("elapsed", time.Since(started)),
		zap.Int("stdoutBytes", stdout.Len()),
	)

	summary, decodeErr := decodeSummary(stdout.Bytes())
	if waitErr != nil {
		if decodeErr != nil {
			log.Error(ctx, ErrInvalidOutput.Error(), zap.Error(waitErr), zap.NamedError("decodeError", decodeErr))
			return nil, fmt.Errorf("%w: %w", ErrInvalidOutput, errors.Join(decodeErr, waitErr))
		}
		log.Warn(ctx, LogAnalyzerExitCode, zap.Error(waitErr))
		return summary, nil
	}

	if decodeErr != nil {
		log.Error(ctx, ErrInvalidOutput.Error(), zap.Error(decodeErr))
		return nil, fmt.Errorf("%w: %w", ErrInvalidOutput, decodeErr)
	}

	return summary, nil
}

// contextError превращает завершившийся контекст в ошибку анализатора.
func contextError(ctx context.Context) error {
	err := ctx.Err()
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", ErrAnalyzerTimeout, err)
	}
	return fmt.Errorf("analyzer call aborted: %w", err)
}

type rawSummary struct {
	Summary  *string  `json:"summary"`
	Keywords []string `json:"keywords"`
}

// decodeSummary разбирает ровно один JSON-объект; пробелы после него допустимы.
func decodeSummary(data []byte) (*entities.Summary, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	var raw rawSummary
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode analyzer output: %w", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("unexpected data after analyzer output")
	}
	if raw.Summary == nil {
		return nil, errors.New("analyzer output has no summary field")
	}

	return &entities.Summary{
		Summary:  *raw.Summary,
		Keywords: entities.NormalizeKeywords(raw.Keywords),
	}, nil
}
