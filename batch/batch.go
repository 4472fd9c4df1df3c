// Package batch tokenizes many files with a bounded worker pool.
package batch

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"
	"slices"
	"strings"
	"sync"

	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"

	"github.com/gnolang/syntax/scanner"
	"github.com/gnolang/syntax/tokenizer"
)

// Processor tokenizes a single file.
type Processor interface {
	TokenizeFile(path string) (source string, tokens []tokenizer.Token, err error)
}

// TokenizerProcessor reads files from disk and runs a tokenizer over them.
type TokenizerProcessor struct {
	Tokenizer *tokenizer.Tokenizer
}

func (p TokenizerProcessor) TokenizeFile(path string) (string, []tokenizer.Token, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", nil, err
	}
	source := string(data)
	tokens, err := p.Tokenizer.TokenizeAll(source)
	return source, tokens, err
}

// FileTokens is the outcome for one file. Err holds a per-file failure,
// typically a *tokenizer.Error.
type FileTokens struct {
	Path   string
	Source string
	Tokens []tokenizer.Token
	Err    error
}

// Runner drives a Processor over files and directories.
type Runner struct {
	Processor  Processor
	Logger     *zap.Logger
	Extensions []string  // for directories; empty matches every file
	Workers    int       // defaults to runtime.NumCPU()
	Progress   io.Writer // progress bar destination; nil disables it
}

// ProcessPaths processes every path in order and returns results sorted by
// file path.
func (r *Runner) ProcessPaths(ctx context.Context, paths []string) ([]FileTokens, error) {
	var all []FileTokens
	for _, path := range paths {
		results, err := r.ProcessPath(ctx, path)
		if err != nil {
			r.logger().Error("Error processing path", zap.String("path", path), zap.Error(err))
			return nil, err
		}
		all = append(all, results...)
	}
	sortResults(all)
	return all, nil
}

// ProcessPath processes a single file, or every matching file below a
// directory. Explicitly named files are processed whatever their extension.
func (r *Runner) ProcessPath(ctx context.Context, path string) ([]FileTokens, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("error accessing %s: %w", path, err)
	}
	if !info.IsDir() {
		return []FileTokens{r.process(path)}, nil
	}

	files, err := scanner.New(path, r.Extensions...).Scan()
	if err != nil {
		return nil, fmt.Errorf("error scanning %s: %w", path, err)
	}

	bar := r.newBar(path, len(files))
	results := make([]FileTokens, len(files))
	sem := make(chan struct{}, r.workers())
	var wg sync.WaitGroup

	for i, f := range files {
		select {
		case <-ctx.Done():
			wg.Wait()
			return nil, ctx.Err()
		default:
		}
		sem <- struct{}{}

		wg.Add(1)
		go func(i int, fp string) {
			defer wg.Done()
			defer func() { <-sem }()

			results[i] = r.process(fp)
			_ = bar.Add(1)
		}(i, f.Path)
	}
	wg.Wait()
	_ = bar.Finish()

	return results, nil
}

func (r *Runner) process(path string) FileTokens {
	source, tokens, err := r.Processor.TokenizeFile(path)
	if err != nil {
		r.logger().Debug("Error tokenizing file", zap.String("file", path), zap.Error(err))
		return FileTokens{Path: path, Source: source, Err: err}
	}
	r.logger().Debug("Tokenized file", zap.String("file", path), zap.Int("tokens", len(tokens)))
	return FileTokens{Path: path, Source: source, Tokens: tokens}
}

func (r *Runner) newBar(description string, total int) *progressbar.ProgressBar {
	w := r.Progress
	if w == nil {
		w = io.Discard
	}
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription(description),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
	)
}

func (r *Runner) workers() int {
	if r.Workers > 0 {
		return r.Workers
	}
	return runtime.NumCPU()
}

func (r *Runner) logger() *zap.Logger {
	if r.Logger == nil {
		return zap.NewNop()
	}
	return r.Logger
}

func sortResults(results []FileTokens) {
	slices.SortStableFunc(results, func(a, b FileTokens) int {
		return strings.Compare(a.Path, b.Path)
	})
}

// Failed returns the results that carry an error.
func Failed(results []FileTokens) []FileTokens {
	var out []FileTokens
	for _, r := range results {
		if r.Err != nil {
			out = append(out, r)
		}
	}
	return out
}
