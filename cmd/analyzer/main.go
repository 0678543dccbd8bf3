// Command analyzer - эталонный анализатор текста для сервиса заметок.
// Принимает текст первым аргументом и печатает в stdout один JSON-объект
// {"summary": ..., "keywords": [...]}. Диагностика пишется только в stderr.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"smartnotes/internal/analysis"
	"smartnotes/internal/notes/domain/entities"
)

// ErrorSummary - выжимка, которую анализатор печатает при внутренней ошибке.
const ErrorSummary = "Error in analyzer"

func main() {
	cmd := newRootCmd(os.Stdout, os.Stderr)
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "analyzer [text]",
		Short: "Summarize text with TextRank and extract keywords",
		Long: "Prints one JSON object {\"summary\", \"keywords\"} to stdout.\n" +
			"The text is taken verbatim from the first argument, so flags are not parsed.",
		Args:               cobra.ArbitraryArgs,
		DisableFlagParsing: true,
		SilenceUsage:       true,
		SilenceErrors:      true,
		RunE: func(_ *cobra.Command, args []string) error {
			return run(stdout, stderr, args)
		},
	}
}

// run всегда печатает результат, ошибки анализа попадают в keywords.
func run(stdout, stderr io.Writer, args []string) (err error) {
	result := analysis.NoText()

	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(stderr, "analyzer panic: %v\n", r)
			result = &entities.Summary{Summary: ErrorSummary, Keywords: []string{fmt.Sprint(r)}}
		}
		if encErr := json.NewEncoder(stdout).Encode(result); encErr != nil {
			err = fmt.Errorf("write result: %w", encErr)
		}
	}()

	if len(args) > 0 {
		result = analysis.Analyze(args[0], analysis.DefaultOptions())
	}
	return nil
}
