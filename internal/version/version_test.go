package version

import (
	"regexp"
	"strings"
	"testing"
)

func TestGet(t *testing.T) {
	v := Get()
	if v == "" {
		t.Fatal("version is empty")
	}
	if v != strings.TrimSpace(v) {
		t.Errorf("version %q has surrounding whitespace", v)
	}
	if !regexp.MustCompile(`^\d+\.\d+\.\d+`).MatchString(v) {
		t.Errorf("version %q is not semver", v)
	}
}

func TestString(t *testing.T) {
	if got := String(); got != "triage version "+Get() {
		t.Errorf("String() = %q", got)
	}
}
