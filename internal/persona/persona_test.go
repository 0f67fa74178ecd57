package persona

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "persona.json")
	content := `{"name": "Dave", "examples": [{"user": "hi", "bot": "hello"}]}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	p := Load(path)
	require.NotNil(t, p)
	assert.Equal(t, "Dave", p.Name)
	require.Len(t, p.Examples, 1)
	assert.Equal(t, "hi", p.Examples[0].User)
	assert.Equal(t, "hello", p.Examples[0].Bot)
}

func TestLoadMissingFileReturnsNil(t *testing.T) {
	assert.Nil(t, Load(filepath.Join(t.TempDir(), "nope.json")))
}

func TestLoadMalformedFileReturnsNil(t *testing.T) {
	path := filepath.Join(t.TempDir(), "persona.json")
	require.NoError(t, os.WriteFile(path, []byte("{broken"), 0o644))

	assert.Nil(t, Load(path))
}
