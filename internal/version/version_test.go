package version

import (
	"strings"
	"testing"
)

func TestGetInfoIncludesVersion(t *testing.T) {
	info := GetInfo()
	if !strings.HasPrefix(info, Version+" ") {
		t.Fatalf("unexpected info %q", info)
	}
}
