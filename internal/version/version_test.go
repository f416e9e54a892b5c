package version

import (
	"runtime/debug"
	"strings"
	"testing"
)

func TestFillFromSettings(t *testing.T) {
	oldVersion, oldCommit := Version, Commit
	defer func() { Version, Commit = oldVersion, oldCommit }()

	Version, Commit = "", ""
	fillFromSettings([]debug.BuildSetting{
		{Key: "vcs.revision", Value: "0123456789abcdef"},
		{Key: "vcs.modified", Value: "true"},
		{Key: "vcs.time", Value: "2026-03-01T10:00:00Z"},
	})

	if Commit != "0123456-dirty" {
		t.Errorf("Commit = %q, want 0123456-dirty", Commit)
	}
	if Version != "dev-20260301" {
		t.Errorf("Version = %q, want dev-20260301", Version)
	}
}

func TestFillFromSettingsKeepsLdflags(t *testing.T) {
	oldVersion, oldCommit := Version, Commit
	defer func() { Version, Commit = oldVersion, oldCommit }()

	Version, Commit = "v1.0.0", "abc1234"
	fillFromSettings([]debug.BuildSetting{
		{Key: "vcs.revision", Value: "fffffffffff"},
	})

	if Version != "v1.0.0" || Commit != "abc1234" {
		t.Errorf("ldflags values overwritten: %s", Full())
	}
}

func TestUserAgent(t *testing.T) {
	if !strings.HasPrefix(UserAgent(), "wsdemo/") {
		t.Errorf("UserAgent() = %q", UserAgent())
	}
}
