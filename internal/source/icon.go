package source

import (
	"path"
	"strings"

	"github.com/standardbeagle/fzmatch/internal/types"
)

// Icons are Nerd Font glyphs from the Basic Multilingual Plane private use
// area. Each encodes to 3 bytes, so glyph plus separator is types.IconWidth.
const (
	iconDefault   = "\uf15b"
	iconDirectory = "\uf115"
	iconConfig    = "\ue615"
	iconGit       = "\ue702"
	iconLock      = "\uf023"
)

var extensionIcons = map[string]string{
	".go":   "\ue627",
	".mod":  "\ue627",
	".sum":  "\ue627",
	".rs":   "\ue7a8",
	".py":   "\ue606",
	".js":   "\ue74e",
	".mjs":  "\ue74e",
	".ts":   "\ue628",
	".tsx":  "\ue7ba",
	".jsx":  "\ue7ba",
	".json": "\ue60b",
	".md":   "\ue609",
	".c":    "\ue61e",
	".h":    "\ue61e",
	".cpp":  "\ue61d",
	".hpp":  "\ue61d",
	".java": "\ue738",
	".rb":   "\ue791",
	".lua":  "\ue620",
	".vim":  "\ue62b",
	".sh":   "\ue795",
	".bash": "\ue795",
	".zsh":  "\ue795",
	".html": "\ue736",
	".css":  "\ue749",
	".yml":  iconConfig,
	".yaml": iconConfig,
	".toml": iconConfig,
	".kdl":  iconConfig,
	".ini":  iconConfig,
	".conf": iconConfig,
	".lock": iconLock,
}

var nameIcons = map[string]string{
	".gitignore":     iconGit,
	".gitattributes": iconGit,
	".gitmodules":    iconGit,
	".editorconfig":  iconConfig,
	"Makefile":       "\ue779",
	"Dockerfile":     "\ue7b0",
}

// IconFor returns the icon block for a slash-separated path: a glyph
// followed by one space.
func IconFor(p string) string {
	if strings.HasSuffix(p, "/") {
		return iconDirectory + " "
	}
	name := path.Base(p)
	if glyph, ok := nameIcons[name]; ok {
		return glyph + " "
	}
	if glyph, ok := extensionIcons[strings.ToLower(path.Ext(name))]; ok {
		return glyph + " "
	}
	return iconDefault + " "
}

// PrependIcon returns p prefixed with its icon block
func PrependIcon(p string) string {
	return IconFor(p) + p
}

// StripIcon removes a leading icon block
func StripIcon(line string) string {
	if len(line) < types.IconWidth {
		return line
	}
	return line[types.IconWidth:]
}
