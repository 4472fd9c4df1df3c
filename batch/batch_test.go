package batch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/gnolang/syntax/tokenizer"
)

type mockProcessor struct {
	mock.Mock
}

func (m *mockProcessor) TokenizeFile(path string) (string, []tokenizer.Token, error) {
	args := m.Called(path)
	return args.String(0), args.Get(1).([]tokenizer.Token), args.Error(2)
}

func digits() *tokenizer.Tokenizer {
	return tokenizer.New(
		tokenizer.MustPatternModule("NUMBER", `[0-9]+`),
		tokenizer.MustPatternModule("SPACE", `\s+`),
	)
}

func writeFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for path, content := range files {
		full := filepath.Join(dir, path)
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, os.WriteFile(full, []byte(content), 0o644))
	}
}

func TestProcessPathSingleFile(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"a.dat": "12 34"})
	path := filepath.Join(dir, "a.dat")

	p := new(mockProcessor)
	p.On("TokenizeFile", path).Return("12 34", []tokenizer.Token{}, nil)

	r := &Runner{Processor: p, Extensions: []string{".txt"}}
	results, err := r.ProcessPath(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, path, results[0].Path)
	assert.NoError(t, results[0].Err)
	p.AssertExpectations(t)
}

func TestProcessPathPropagatesFileErrors(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"a.txt": "x"})
	path := filepath.Join(dir, "a.txt")
	errBroken := errors.New("broken")

	p := new(mockProcessor)
	p.On("TokenizeFile", path).Return("x", []tokenizer.Token(nil), errBroken)

	r := &Runner{Processor: p}
	results, err := r.ProcessPath(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Same(t, errBroken, results[0].Err)
	assert.Len(t, Failed(results), 1)
}

func TestProcessPathDirectory(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"a.txt":     "1 2 3",
		"b.txt":     "4 x",
		"skip.md":   "not tokenized",
		"sub/c.txt": "56",
	})

	r := &Runner{
		Processor:  TokenizerProcessor{Tokenizer: digits()},
		Logger:     zap.NewNop(),
		Extensions: []string{".txt"},
		Workers:    2,
	}
	results, err := r.ProcessPath(context.Background(), dir)
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, filepath.Join(dir, "a.txt"), results[0].Path)
	assert.Len(t, results[0].Tokens, 5)
	assert.Equal(t, "1 2 3", results[0].Source)

	assert.ErrorIs(t, results[1].Err, tokenizer.ErrNoUsableModule)
	assert.Nil(t, results[1].Tokens)

	assert.Equal(t, filepath.Join(dir, "sub", "c.txt"), results[2].Path)
	assert.Len(t, results[2].Tokens, 1)
}

func TestProcessPathsSortsAndFailsOnMissing(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"b.txt": "2", "a.txt": "1"})

	r := &Runner{Processor: TokenizerProcessor{Tokenizer: digits()}}
	results, err := r.ProcessPaths(context.Background(), []string{
		filepath.Join(dir, "b.txt"),
		filepath.Join(dir, "a.txt"),
	})
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, filepath.Join(dir, "a.txt"), results[0].Path)

	_, err = r.ProcessPaths(context.Background(), []string{filepath.Join(dir, "missing.txt")})
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestProcessPathCancelled(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"a.txt": "1", "b.txt": "2"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := &Runner{Processor: TokenizerProcessor{Tokenizer: digits()}, Workers: 1}
	_, err := r.ProcessPath(ctx, dir)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestTokenizerProcessorMissingFile(t *testing.T) {
	t.Parallel()
	p := TokenizerProcessor{Tokenizer: digits()}
	_, _, err := p.TokenizeFile(filepath.Join(t.TempDir(), "nope"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
