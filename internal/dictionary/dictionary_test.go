package dictionary

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRead(t *testing.T) {
	set, err := Read(strings.NewReader("hello\n\nWorld\r\nHeLLo\n"))
	require.NoError(t, err)

	assert.Equal(t, 2, set.Len())
	assert.True(t, set.Contains("HELLO"))
	assert.True(t, set.Contains("WORLD"))
	assert.False(t, set.Contains(""))
}

func TestContains_CaseNormalizedExactMatch(t *testing.T) {
	set := New("apple", "Banana")

	assert.True(t, set.Contains("APPLE"))
	assert.True(t, set.Contains("apple"))
	assert.True(t, set.Contains("bAnAnA"))
	assert.False(t, set.Contains("APPLES"), "no stemming")
	assert.False(t, set.Contains("APPL"), "no prefix matching")
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.txt")
	require.NoError(t, os.WriteFile(path, []byte("attack\ndawn\n"), 0644))

	set, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2, set.Len())
	assert.True(t, set.Contains("ATTACK"))
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.txt"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Contains(t, err.Error(), "failed to open dictionary")
}
