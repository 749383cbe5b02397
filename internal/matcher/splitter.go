package matcher

import (
	"strings"

	"github.com/standardbeagle/fzmatch/internal/types"
)

// splitLine returns the part of line the single-term scorer should see and
// the byte offset of that part within line. Lines that do not have the
// shape a splitter expects are matched whole.
func splitLine(line string, splitter types.LineSplitter) (string, int) {
	switch splitter {
	case types.SplitTagNameOnly:
		// name:lnum [kind] path
		if idx := strings.IndexByte(line, ':'); idx >= 0 {
			return line[:idx], 0
		}
	case types.SplitFileNameOnly:
		if idx := strings.LastIndexByte(line, '/'); idx >= 0 {
			return line[idx+1:], idx + 1
		}
	case types.SplitGrepExcludeFilePath:
		if start, ok := grepContentStart(line); ok {
			return line[start:], start
		}
	}
	return line, 0
}

// grepContentStart finds the content of a `path:lnum:col:content` line,
// i.e. the byte after the first `:digits:digits:` run. Paths may contain
// colons themselves, so every colon is tried as the end of the path.
func grepContentStart(line string) (int, bool) {
	for i := 0; i < len(line); i++ {
		if line[i] != ':' {
			continue
		}
		lnumEnd := skipDigits(line, i+1)
		if lnumEnd == i+1 || lnumEnd >= len(line) || line[lnumEnd] != ':' {
			continue
		}
		colEnd := skipDigits(line, lnumEnd+1)
		if colEnd == lnumEnd+1 || colEnd >= len(line) || line[colEnd] != ':' {
			continue
		}
		return colEnd + 1, true
	}
	return 0, false
}

func skipDigits(s string, i int) int {
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	return i
}
