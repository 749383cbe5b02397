package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectOutputDirectories(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "package.json"), `{
  "scripts": {"build": "tsc --outDir out-js", "lint": "eslint ."},
  "build": {"outDir": "bundle"}
}`)
	writeFile(t, filepath.Join(root, "tsconfig.json"), `{"compilerOptions": {"outDir": "./lib/"}}`)
	writeFile(t, filepath.Join(root, "Cargo.toml"), "[package]\nname = \"x\"\n\n[build]\ntarget-dir = \"rust-out\"\n")
	writeFile(t, filepath.Join(root, "pyproject.toml"), "[tool.poetry.build]\ntarget-dir = \"wheelhouse\"\n")

	got := NewBuildArtifactDetector(root).DetectOutputDirectories()

	assert.ElementsMatch(t, []string{
		"**/out-js/**",
		"**/bundle/**",
		"**/lib/**",
		"**/rust-out/**",
		"**/wheelhouse/**",
	}, got)
}

func TestDetectOutputDirectories_NoManifests(t *testing.T) {
	assert.Empty(t, NewBuildArtifactDetector(t.TempDir()).DetectOutputDirectories())
}

func TestDetectOutputDirectories_IgnoresUnsafeDirs(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "tsconfig.json"), `{"compilerOptions": {"outDir": "../elsewhere"}}`)
	writeFile(t, filepath.Join(root, "Cargo.toml"), "[build]\ntarget-dir = \".\"\n")

	assert.Empty(t, NewBuildArtifactDetector(root).DetectOutputDirectories())
}

func TestDirPattern(t *testing.T) {
	assert.Equal(t, "**/dist/**", dirPattern("dist"))
	assert.Equal(t, "**/dist/**", dirPattern("'./dist/'"))
	assert.Equal(t, "**/build/web/**", dirPattern("build/web"))
	assert.Equal(t, "", dirPattern(""))
	assert.Equal(t, "", dirPattern("."))
}
