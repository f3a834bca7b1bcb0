// Package shaders carries the sandbox's default WGSL sources. They are
// embedded for distribution, but pipelines always read their source back
// from disk, so Materialize first writes the defaults into an editable
// directory.
package shaders

import (
	"embed"
	"os"
	"path/filepath"
)

//go:embed *.wgsl
var defaults embed.FS

const (
	Geometry          = "geometry.wgsl"
	CrytekSSAO        = "crytek_ssao.wgsl"
	TextureDebug      = "texture_debug.wgsl"
	TextureDebugDepth = "texture_debug_depth.wgsl"
)

var names = []string{Geometry, CrytekSSAO, TextureDebug, TextureDebugDepth}

// Materialize writes every embedded shader missing from dir and returns the
// on-disk path of each by name. Files already present are left alone so
// user edits survive restarts.
func Materialize(dir string) (map[string]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	paths := make(map[string]string, len(names))
	for _, name := range names {
		dst := filepath.Join(dir, name)
		if _, err := os.Stat(dst); os.IsNotExist(err) {
			src, err := defaults.ReadFile(name)
			if err != nil {
				return nil, err
			}
			if err := os.WriteFile(dst, src, 0o644); err != nil {
				return nil, err
			}
		}
		paths[name] = dst
	}
	return paths, nil
}
