package batch

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gnolang/syntax/tokenizer"
)

func TestCacheServesUnchangedFiles(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"a.txt": "1 2"})
	path := filepath.Join(dir, "a.txt")

	p := new(mockProcessor)
	p.On("TokenizeFile", path).Return("1 2", []tokenizer.Token{}, nil)

	c := NewCache(p)
	for range 3 {
		source, _, err := c.TokenizeFile(path)
		require.NoError(t, err)
		assert.Equal(t, "1 2", source)
	}
	p.AssertNumberOfCalls(t, "TokenizeFile", 1)
	assert.Equal(t, 1, c.Len())

	require.NoError(t, os.WriteFile(path, []byte("3 4"), 0o644))
	_, _, err := c.TokenizeFile(path)
	require.NoError(t, err)
	p.AssertNumberOfCalls(t, "TokenizeFile", 2)
}

func TestCacheRealTokenizer(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"a.txt": "12 34"})
	path := filepath.Join(dir, "a.txt")

	c := NewCache(TokenizerProcessor{Tokenizer: digits()})
	_, first, err := c.TokenizeFile(path)
	require.NoError(t, err)
	_, second, err := c.TokenizeFile(path)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Len(t, second, 3)
}

func TestCacheDoesNotKeepFailures(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"a.txt": "x"})
	path := filepath.Join(dir, "a.txt")

	failure := errors.New("boom")
	p := new(mockProcessor)
	p.On("TokenizeFile", path).Return("x", []tokenizer.Token(nil), failure)

	c := NewCache(p)
	for range 2 {
		_, _, err := c.TokenizeFile(path)
		assert.ErrorIs(t, err, failure)
	}
	p.AssertNumberOfCalls(t, "TokenizeFile", 2)
	assert.Zero(t, c.Len())
}

func TestCacheInvalidation(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"a.txt": "1", "b.txt": "2"})
	a := filepath.Join(dir, "a.txt")
	b := filepath.Join(dir, "b.txt")

	p := new(mockProcessor)
	p.On("TokenizeFile", a).Return("1", []tokenizer.Token{}, nil)
	p.On("TokenizeFile", b).Return("2", []tokenizer.Token{}, nil)

	c := NewCache(p)
	for _, path := range []string{a, b} {
		_, _, err := c.TokenizeFile(path)
		require.NoError(t, err)
	}
	assert.Equal(t, 2, c.Len())

	c.Invalidate(a)
	assert.Equal(t, 1, c.Len())

	c.InvalidateAll()
	assert.Zero(t, c.Len())

	t.Run("max age", func(t *testing.T) {
		c.SetMaxAge(time.Nanosecond)
		_, _, err := c.TokenizeFile(a)
		require.NoError(t, err)
		time.Sleep(time.Millisecond)
		_, _, err = c.TokenizeFile(a)
		require.NoError(t, err)
		p.AssertNumberOfCalls(t, "TokenizeFile", 4)
	})
}

func TestCacheMissingFile(t *testing.T) {
	t.Parallel()
	p := new(mockProcessor)
	c := NewCache(p)

	_, _, err := c.TokenizeFile(filepath.Join(t.TempDir(), "missing.txt"))
	assert.ErrorIs(t, err, os.ErrNotExist)
	p.AssertNumberOfCalls(t, "TokenizeFile", 0)
}
