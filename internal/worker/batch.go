package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
)

// SlugProcessor runs the collection pipeline for one tool slug
type SlugProcessor interface {
	ProcessSlug(ctx context.Context, slug string) error
}

// SlugJob collects evidence for one slug
type SlugJob struct {
	Slug      string
	Processor SlugProcessor
}

// Execute implements Job
func (j *SlugJob) Execute(ctx context.Context) Result {
	return &SlugResult{Slug: j.Slug, Error: j.Processor.ProcessSlug(ctx, j.Slug)}
}

// SlugResult is the outcome of one slug's collection run
type SlugResult struct {
	Slug  string
	Error error
}

// GetError implements Result
func (r *SlugResult) GetError() error {
	return r.Error
}

// BatchProcessor fans slugs out over a worker pool
type BatchProcessor struct {
	processor   SlugProcessor
	concurrency int
}

// NewBatchProcessor creates a batch processor with the given concurrency
func NewBatchProcessor(processor SlugProcessor, concurrency int) *BatchProcessor {
	return &BatchProcessor{processor: processor, concurrency: concurrency}
}

// ProcessSlugs runs the processor over every slug concurrently and returns
// one result per slug.
func (b *BatchProcessor) ProcessSlugs(ctx context.Context, slugs []string) []*SlugResult {
	if len(slugs) == 0 {
		return []*SlugResult{}
	}

	pool := NewPool(b.concurrency)
	pool.Start()

	for _, slug := range slugs {
		pool.Submit(&SlugJob{Slug: slug, Processor: b.processor})
	}

	results := pool.Wait()
	slugResults := make([]*SlugResult, len(results))
	for i, result := range results {
		slugResults[i] = result.(*SlugResult)
	}
	return slugResults
}

// ProcessFile reads slugs from a file (one per line) and processes them
func (b *BatchProcessor) ProcessFile(ctx context.Context, filePath string) ([]*SlugResult, error) {
	slugs, err := ReadSlugsFromFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("read slugs: %w", err)
	}
	return b.ProcessSlugs(ctx, slugs), nil
}

// ReadSlugsFromFile reads slugs from a file, skipping blanks, comments,
// and duplicates.
func ReadSlugsFromFile(filePath string) ([]string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var slugs []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if !seen[line] {
			seen[line] = true
			slugs = append(slugs, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}
	return slugs, nil
}
