package buildinfo

import (
	"strings"
	"testing"
)

func TestStrings(t *testing.T) {
	old := Version
	defer func() { Version = old }()
	Version = "v1.2.3"

	if got := UserAgent(); got != "graphdesk/v1.2.3" {
		t.Errorf("UserAgent() = %q", got)
	}
	if !strings.Contains(String(), "version: v1.2.3") {
		t.Errorf("String() = %q", String())
	}
	if !strings.HasPrefix(Template(), "{{.Name}} version v1.2.3") {
		t.Errorf("Template() = %q", Template())
	}
}
