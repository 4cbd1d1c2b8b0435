package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"vigcrack/internal/cipher"
	"vigcrack/internal/config"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setup(t *testing.T) *cobra.Command {
	t.Helper()
	logger = zap.NewNop()
	cfg = config.DefaultConfig()
	cfg.Dictionary.Path = filepath.Join(t.TempDir(), "missing.txt")

	cmd := &cobra.Command{}
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	return cmd
}

func output(cmd *cobra.Command) string {
	return cmd.OutOrStdout().(*bytes.Buffer).String()
}

func writeDict(t *testing.T, words ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dict.txt")
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(words, "\n")+"\n"), 0644))
	return path
}

func TestParsePositive(t *testing.T) {
	n, err := parsePositive("key_length", "3")
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	_, err = parsePositive("key_length", "0")
	assert.Error(t, err)

	_, err = parsePositive("key_length", "-2")
	assert.Error(t, err)

	_, err = parsePositive("first_word_length", "five")
	assert.ErrorContains(t, err, "first_word_length")
}

func TestRunCrack_FindsKey(t *testing.T) {
	cmd := setup(t)
	dict := writeDict(t, "hello", "world")

	err := runCrack(cmd, []string{cipher.Encrypt("AB", "HELLOWORLD"), "2", "5", dict})
	require.NoError(t, err)

	out := output(cmd)
	assert.True(t, strings.HasPrefix(out, "Completed permutations "), out)
	assert.Contains(t, out, "\nKeys:\n")
	assert.Contains(t, out, "        \"AB\",\n        \"HELLOWORLD\",\n")
	assert.Contains(t, out, "Completed in ")
}

func TestRunCrack_DictionaryFromConfig(t *testing.T) {
	cmd := setup(t)
	cfg.Dictionary.Path = writeDict(t, "attack")

	err := runCrack(cmd, []string{cipher.Encrypt("K", "ATTACK AT DAWN"), "1", "6"})
	require.NoError(t, err)
	assert.Contains(t, output(cmd), "\"ATTACK AT DAWN\"")
}

func TestRunCrack_MissingDictionary(t *testing.T) {
	cmd := setup(t)

	err := runCrack(cmd, []string{"ABC", "1", "3"})
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Empty(t, output(cmd), "no report on fatal error")
}

func TestRunCrack_BadArguments(t *testing.T) {
	cmd := setup(t)

	assert.Error(t, runCrack(cmd, []string{"ABC", "zero", "3"}))
	assert.Error(t, runCrack(cmd, []string{"ABC", "1", "0"}))
}

func TestRunCrack_Export(t *testing.T) {
	cmd := setup(t)
	cfg.Output.File = filepath.Join(t.TempDir(), "out.json")
	cfg.Output.Progress = true
	dict := writeDict(t, "hello")

	require.NoError(t, runCrack(cmd, []string{cipher.Encrypt("AB", "HELLOWORLD"), "2", "5", dict}))

	data, err := os.ReadFile(cfg.Output.File)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"key": "AB"`)
}

func TestRunEncrypt(t *testing.T) {
	cmd := setup(t)

	require.NoError(t, runEncrypt(cmd, []string{"AB", "HELLOWORLD"}))
	assert.Equal(t, "HFLMOXOSLE\n", output(cmd))

	assert.Error(t, runEncrypt(cmd, []string{"A1", "HELLO"}))
	assert.Error(t, runEncrypt(cmd, []string{"", "HELLO"}))
}

func TestRunConfigInit(t *testing.T) {
	cmd := setup(t)
	path := filepath.Join(t.TempDir(), "vigcrack.yaml")

	require.NoError(t, runConfigInit(cmd, []string{path}))
	assert.Contains(t, output(cmd), path)

	loaded, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg.Search, loaded.Search)
}

func TestRootCommand_EndToEnd(t *testing.T) {
	dict := writeDict(t, "hello")
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs([]string{
		"--config", filepath.Join(t.TempDir(), "none.yaml"),
		"--workers", "4",
		"--buffer", "8",
		cipher.Encrypt("AB", "HELLOWORLD"), "2", "5", dict,
	})
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	})

	require.NoError(t, rootCmd.Execute())
	assert.Equal(t, 4, cfg.Search.Workers)
	assert.Equal(t, 8, cfg.Search.BufferSize)
	assert.Contains(t, out.String(), "\"HELLOWORLD\"")
}
