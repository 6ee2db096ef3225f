package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/veridict/veridict/internal/model"
)

// Analyzer runs one credibility analysis
type Analyzer interface {
	Analyze(ctx context.Context, raw string) (*model.Report, error)
}

// AnalyzeJob analyzes one input line from a batch
type AnalyzeJob struct {
	Input    string
	Analyzer Analyzer
	Limiter  *Limiter
}

// Execute runs the analysis, pacing URL inputs through the limiter
func (j *AnalyzeJob) Execute(ctx context.Context) Result {
	if j.Limiter != nil && strings.HasPrefix(j.Input, "http") {
		if err := j.Limiter.Wait(ctx, j.Input); err != nil {
			return &AnalyzeResult{Input: j.Input, Error: err}
		}
	}

	report, err := j.Analyzer.Analyze(ctx, j.Input)
	return &AnalyzeResult{Input: j.Input, Report: report, Error: err}
}

// AnalyzeResult is the outcome of one batch entry
type AnalyzeResult struct {
	Input  string
	Report *model.Report
	Error  error
}

// Err returns the analysis error, if any
func (r *AnalyzeResult) Err() error {
	return r.Error
}

// BatchProcessor analyzes many inputs concurrently
type BatchProcessor struct {
	analyzer    Analyzer
	limiter     *Limiter
	concurrency int
}

// NewBatchProcessor creates a batch processor. limiter may be nil.
func NewBatchProcessor(analyzer Analyzer, limiter *Limiter, concurrency int) *BatchProcessor {
	return &BatchProcessor{
		analyzer:    analyzer,
		limiter:     limiter,
		concurrency: concurrency,
	}
}

// Process analyzes the given inputs concurrently
func (b *BatchProcessor) Process(ctx context.Context, inputs []string) []*AnalyzeResult {
	if len(inputs) == 0 {
		return []*AnalyzeResult{}
	}

	pool := NewPool(b.concurrency)
	pool.Start()

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			pool.Shutdown()
		case <-done:
		}
	}()

	for _, input := range inputs {
		pool.Submit(&AnalyzeJob{
			Input:    input,
			Analyzer: b.analyzer,
			Limiter:  b.limiter,
		})
	}

	results := pool.Wait()

	out := make([]*AnalyzeResult, 0, len(results))
	for _, r := range results {
		out = append(out, r.(*AnalyzeResult))
	}
	return out
}

// ProcessFile reads inputs from a file (one per line) and analyzes them
func (b *BatchProcessor) ProcessFile(ctx context.Context, path string) ([]*AnalyzeResult, error) {
	inputs, err := ReadInputsFromFile(path)
	if err != nil {
		return nil, fmt.Errorf("read inputs: %w", err)
	}
	return b.Process(ctx, inputs), nil
}

// ReadInputsFromFile reads one input per line, skipping blanks and
// comment lines, deduplicating while preserving order.
func ReadInputsFromFile(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var inputs []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if !seen[line] {
			seen[line] = true
			inputs = append(inputs, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return inputs, nil
}
