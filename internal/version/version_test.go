package version

import (
	"strings"
	"testing"
)

func TestFullInfo(t *testing.T) {
	info := FullInfo()
	if !strings.HasPrefix(info, "fzmatch "+Version) {
		t.Errorf("FullInfo() = %q, want prefix %q", info, "fzmatch "+Version)
	}
	if !strings.Contains(info, GitCommit) {
		t.Errorf("FullInfo() = %q, missing commit %q", info, GitCommit)
	}
}

func TestBuildID_Stable(t *testing.T) {
	first := BuildID()
	if first == "" {
		t.Fatal("BuildID() returned empty string")
	}
	if second := BuildID(); second != first {
		t.Errorf("BuildID() changed between calls: %q then %q", first, second)
	}
}
