package analyzer

import "golang.org/x/sync/semaphore"

// Semaphore открывает ограничитель параллелизма для тестов.
func (a *ProcessAnalyzer) Semaphore() *semaphore.Weighted {
	return a.sem
}
