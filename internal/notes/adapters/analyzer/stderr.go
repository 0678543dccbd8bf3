package analyzer

import (
	"bytes"
	"context"
	"sync"

	"go.uber.org/zap"

	"smartnotes/pkg/logger"
)

// lineLogger пишет каждую строку stderr процесса в лог уровня warn.
type lineLogger struct {
	ctx context.Context
	log *logger.Logger

	mu  sync.Mutex
	buf bytes.Buffer
}

func newLineLogger(ctx context.Context, log *logger.Logger) *lineLogger {
	return &lineLogger{ctx: ctx, log: log}
}

func (l *lineLogger) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.buf.Write(p)
	for {
		idx := bytes.IndexByte(l.buf.Bytes(), '\n')
		if idx < 0 {
			break
		}
		line := l.buf.Next(idx + 1)
		l.emit(line[:idx])
	}
	return len(p), nil
}

// Flush выводит остаток без завершающего перевода строки.
func (l *lineLogger) Flush() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.buf.Len() > 0 {
		l.emit(l.buf.Bytes())
		l.buf.Reset()
	}
}

func (l *lineLogger) emit(line []byte) {
	line = bytes.TrimRight(line, "\r")
	if len(line) == 0 {
		return
	}
	l.log.Warn(l.ctx, LogAnalyzerStderr, zap.ByteString("line", line))
}
