package shaders

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMaterializeWritesDefaults(t *testing.T) {
	dir := t.TempDir()
	paths, err := Materialize(dir)
	require.NoError(t, err)
	require.Len(t, paths, 4)

	for _, name := range []string{Geometry, CrytekSSAO, TextureDebug, TextureDebugDepth} {
		path, ok := paths[name]
		require.True(t, ok, name)
		assert.Equal(t, filepath.Join(dir, name), path)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), "vs_main")
	}
}

func TestMaterializeKeepsUserEdits(t *testing.T) {
	dir := t.TempDir()
	_, err := Materialize(dir)
	require.NoError(t, err)

	edited := "// edited by hand\n"
	path := filepath.Join(dir, Geometry)
	require.NoError(t, os.WriteFile(path, []byte(edited), 0o644))

	paths, err := Materialize(dir)
	require.NoError(t, err)

	data, err := os.ReadFile(paths[Geometry])
	require.NoError(t, err)
	assert.Equal(t, edited, string(data))
}
