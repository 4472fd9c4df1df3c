package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gnolang/syntax/config"
	"github.com/gnolang/syntax/formatter"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

// execute runs the root command with fresh flag values. The commands share
// package state, so these tests do not run in parallel.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cfgFile = config.DefaultPath
	timeout = defaultTimeout
	verbose = false
	tokenizeJSON = false
	outPath = ""

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return stdout.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestInitCmd(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lexicon.yaml")

	out, err := execute(t, "init", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Configuration file created/updated: "+path)

	lex, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, config.Default(), lex)
}

func TestEvalCmd(t *testing.T) {
	out, err := execute(t, "eval", "1 + 2 * 3", "(1+2)*3", "10/4")
	require.NoError(t, err)
	assert.Equal(t, "1 + 2 * 3 = 7\n(1+2)*3 = 9\n10/4 = 2.5\n", out)
}

func TestEvalCmdErrors(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		contains []string
	}{
		{
			name:     "division by zero",
			args:     []string{"eval", "1/0", "2+2"},
			contains: []string{"error: 1/0: ", "2+2 = 4"},
		},
		{
			name:     "unknown character",
			args:     []string{"eval", "1+a"},
			contains: []string{"error: no usable module", "<expr>:1:3", "1 | 1+a"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, tt.args...)
			require.ErrorIs(t, err, errFailed)
			for _, s := range tt.contains {
				assert.Contains(t, out, s)
			}
		})
	}
}

func TestTreeCmd(t *testing.T) {
	out, err := execute(t, "tree", "1+2")
	require.NoError(t, err)
	expected := "<root>\n" +
		"  PLUS:\"+\"\n" +
		"    NUMBER:\"1\"\n" +
		"    NUMBER:\"2\"\n"
	assert.Equal(t, expected, out)
}

func TestTokenizeCmd(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "lexicon.yaml")
	require.NoError(t, config.Write(cfg, config.Default()))
	file := writeFile(t, dir, "a.txt", "hi 42")

	out, err := execute(t, "tokenize", "--config", cfg, file)
	require.NoError(t, err)
	assert.Contains(t, out, file)
	assert.Contains(t, out, `WORD         "hi"`)
	assert.Contains(t, out, `NUMBER       "42"`)
}

func TestTokenizeCmdFailure(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "lexicon.yaml")
	lex := &config.Lexicon{
		Name:       "digits",
		Extensions: []string{".txt"},
		Modules:    []config.Module{{Name: "NUMBER", Pattern: `[0-9]+`}},
	}
	require.NoError(t, config.Write(cfg, lex))
	writeFile(t, dir, "ok.txt", "123")
	writeFile(t, dir, "bad.txt", "12x")

	out, err := execute(t, "tokenize", "--config", cfg, dir)
	require.ErrorIs(t, err, errFailed)
	assert.Contains(t, out, "error: no usable module")
	assert.Contains(t, out, "bad.txt:1:3")
	assert.Contains(t, out, `NUMBER       "123"`)
}

func TestTokenizeCmdJSON(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "lexicon.yaml")
	require.NoError(t, config.Write(cfg, config.Default()))
	file := writeFile(t, dir, "a.txt", "x=1")
	output := filepath.Join(dir, "out.json")

	_, err := execute(t, "tokenize", "--config", cfg, "--json", "-o", output, file)
	require.NoError(t, err)

	d, err := os.ReadFile(output)
	require.NoError(t, err)

	var reports map[string]struct {
		Tokens []formatter.Record `json:"tokens"`
		Error  string             `json:"error"`
	}
	require.NoError(t, json.Unmarshal(d, &reports))
	require.Contains(t, reports, file)

	rep := reports[file]
	assert.Empty(t, rep.Error)
	require.Len(t, rep.Tokens, 3)
	assert.Equal(t, "WORD", rep.Tokens[0].Module)
	assert.Equal(t, "PUNCT", rep.Tokens[1].Module)
	assert.Equal(t, formatter.Record{Module: "NUMBER", Value: "1", Start: 2, End: 3, Line: 1, Col: 3}, rep.Tokens[2])
}

func TestLoadLexiconFallback(t *testing.T) {
	t.Chdir(t.TempDir())
	cfgFile = config.DefaultPath

	lex, err := loadLexicon()
	require.NoError(t, err)
	assert.Equal(t, config.Default(), lex)

	cfgFile = "missing.yaml"
	_, err = loadLexicon()
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestRootCmdTokenizesPaths(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "lexicon.yaml")
	require.NoError(t, config.Write(cfg, config.Default()))
	file := writeFile(t, dir, "a.txt", "ok")

	out, err := execute(t, "--config", cfg, file)
	require.NoError(t, err)
	assert.Contains(t, out, `WORD         "ok"`)
}
