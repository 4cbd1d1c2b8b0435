package report

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"vigcrack/internal/crack"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func sampleResult() *crack.Result {
	return &crack.Result{
		RunID:      "run-1",
		Ciphertext: "HFLMOXOSLE",
		KeyLength:  2,
		KeySpace:   676,
		Tested:     676,
		Pairs:      []crack.Pair{{Key: "AB", Plaintext: "HELLOWORLD"}},
		Elapsed:    1500 * time.Millisecond,
	}
}

func TestFormatPairs(t *testing.T) {
	assert.Equal(t, "[]", FormatPairs(nil))

	want := "[\n" +
		"    (\n" +
		"        \"AB\",\n" +
		"        \"HELLO \\\"WORLD\\\"\",\n" +
		"    ),\n" +
		"]"
	assert.Equal(t, want, FormatPairs([]crack.Pair{{Key: "AB", Plaintext: `HELLO "WORLD"`}}))
}

func TestPrint(t *testing.T) {
	var buf bytes.Buffer
	Generated(&buf, 3*time.Millisecond)
	Print(&buf, sampleResult())

	out := buf.String()
	assert.Contains(t, out, "Completed permutations 3ms\n")
	assert.Contains(t, out, "\nKeys:\n[\n")
	assert.Contains(t, out, `"HELLOWORLD",`)
	assert.Contains(t, out, "Completed in 1.5s\n")
}

func TestExport_JSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "result.json")
	require.NoError(t, Export(path, sampleResult()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var got crack.Result
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, sampleResult(), &got)
}

func TestExport_YAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "result.yml")
	require.NoError(t, Export(path, sampleResult()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var got crack.Result
	require.NoError(t, yaml.Unmarshal(data, &got))
	assert.Equal(t, sampleResult().Pairs, got.Pairs)
	assert.Equal(t, 1500*time.Millisecond, got.Elapsed)
}

func TestExport_UnknownExtension(t *testing.T) {
	err := Export(filepath.Join(t.TempDir(), "result.csv"), sampleResult())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported export format")
}

func TestProgress(t *testing.T) {
	var buf bytes.Buffer
	p := NewProgress(&buf, 100)
	p.Add(60)
	p.Add(40)
	p.Finish()
	assert.Contains(t, buf.String(), "100")

	var nilProgress *Progress
	assert.NotPanics(t, func() {
		nilProgress.Add(1)
		nilProgress.Finish()
	})
}
