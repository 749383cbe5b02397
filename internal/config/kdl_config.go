package config

import (
	"fmt"
	"strings"

	kdl "github.com/sblinch/kdl-go"
	"github.com/sblinch/kdl-go/document"

	"github.com/standardbeagle/fzmatch/internal/debug"
)

// applyKDL applies a .fzmatch.kdl document on top of cfg:
//
//	match {
//	    width 120
//	    enable_icon true
//	    line_splitter "FileNameOnly"
//	    algo "sahilm"
//	    dedup true
//	    limit 50
//	}
//	performance {
//	    workers 4
//	    parallel_threshold 2000
//	    watch_debounce_ms 200
//	}
//	files {
//	    root "."
//	    respect_gitignore false
//	    detect_build_outputs false
//	    include "**/*.go" "**/*.md"
//	    exclude "**/testdata/**"
//	}
//
// Unknown nodes are ignored.
func applyKDL(cfg *Config, content string) error {
	doc, err := kdl.Parse(strings.NewReader(content))
	if err != nil {
		return fmt.Errorf("failed to parse KDL config: %w", err)
	}

	for _, n := range doc.Nodes {
		switch nodeName(n) {
		case "version":
			if v, ok := firstIntArg(n); ok {
				cfg.Version = v
			}
		case "match":
			for _, cn := range n.Children {
				switch nodeName(cn) {
				case "width":
					if v, ok := firstIntArg(cn); ok {
						cfg.Match.Width = v
					}
				case "enable_icon":
					if b, ok := firstBoolArg(cn); ok {
						cfg.Match.EnableIcon = b
					}
				case "line_splitter":
					assignSimpleString(cn, "line_splitter", func(v string) { cfg.Match.LineSplitter = v })
				case "algo":
					assignSimpleString(cn, "algo", func(v string) { cfg.Match.Algo = v })
				case "dedup":
					if b, ok := firstBoolArg(cn); ok {
						cfg.Match.Dedup = b
					}
				case "limit":
					if v, ok := firstIntArg(cn); ok {
						cfg.Match.Limit = v
					}
				}
			}
		case "performance":
			for _, cn := range n.Children {
				switch nodeName(cn) {
				case "workers":
					if v, ok := firstIntArg(cn); ok {
						cfg.Performance.Workers = v
					}
				case "parallel_threshold":
					if v, ok := firstIntArg(cn); ok {
						cfg.Performance.ParallelThreshold = v
					}
				case "watch_debounce_ms":
					if v, ok := firstIntArg(cn); ok {
						cfg.Performance.WatchDebounceMs = v
					}
				}
			}
		case "files":
			for _, cn := range n.Children {
				switch nodeName(cn) {
				case "root":
					assignSimpleString(cn, "root", func(v string) { cfg.Files.Root = v })
				case "respect_gitignore":
					if b, ok := firstBoolArg(cn); ok {
						cfg.Files.RespectGitignore = b
					}
				case "detect_build_outputs":
					if b, ok := firstBoolArg(cn); ok {
						cfg.Files.DetectBuildOutputs = b
					}
				case "include":
					cfg.Files.Include = collectStringArgs(cn)
				case "exclude":
					cfg.Files.Exclude = DeduplicatePatterns(append(cfg.Files.Exclude, collectStringArgs(cn)...))
				}
			}
		default:
			debug.Log("CONFIG", "ignoring unknown KDL node %q\n", nodeName(n))
		}
	}

	return nil
}

func nodeName(n *document.Node) string {
	if n == nil || n.Name == nil {
		return ""
	}
	return n.Name.NodeNameString()
}

func firstIntArg(n *document.Node) (int, bool) {
	if len(n.Arguments) == 0 {
		return 0, false
	}
	switch v := n.Arguments[0].Value.(type) {
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	default:
		return 0, false
	}
}

func firstStringArg(n *document.Node) (string, bool) {
	if len(n.Arguments) == 0 {
		return "", false
	}
	if s, ok := n.Arguments[0].Value.(string); ok {
		return s, true
	}
	return "", false
}

func firstBoolArg(n *document.Node) (bool, bool) {
	if len(n.Arguments) == 0 {
		return false, false
	}
	if b, ok := n.Arguments[0].Value.(bool); ok {
		return b, true
	}
	return false, false
}

// collectStringArgs accepts both `include "a" "b"` and the block form
// `include { "a"; "b" }`, where each child node's name is the value.
func collectStringArgs(n *document.Node) []string {
	if n == nil {
		return nil
	}
	out := make([]string, 0, len(n.Arguments))
	for _, a := range n.Arguments {
		if s, ok := a.Value.(string); ok {
			out = append(out, s)
		}
	}

	if len(out) == 0 && len(n.Children) > 0 {
		for _, child := range n.Children {
			if s, ok := firstStringArg(child); ok {
				out = append(out, s)
			} else if child.Name != nil {
				if s, ok := child.Name.Value.(string); ok {
					out = append(out, s)
				}
			}
		}
	}

	return out
}

func assignSimpleString(n *document.Node, target string, set func(string)) {
	if nodeName(n) == target {
		if s, ok := firstStringArg(n); ok {
			set(s)
		}
	}
}
