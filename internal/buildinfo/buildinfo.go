// Package buildinfo resolves the build marker reported by /api/build.
package buildinfo

import (
	"os/exec"
	"strings"
)

// Resolve picks the build identifier once at startup: an explicit override
// wins, then the commit injected by the deploy platform, then the short hash
// of the working tree. All sources missing resolves to "".
func Resolve(override, commit string) string {
	if v := strings.TrimSpace(override); v != "" {
		return v
	}
	if v := strings.TrimSpace(commit); v != "" {
		return shorten(v)
	}
	return gitShortHash()
}

func shorten(commit string) string {
	if len(commit) > 7 {
		return commit[:7]
	}
	return commit
}

// gitShortHash is best-effort; outside a git checkout (e.g. a container
// image) it returns "".
func gitShortHash() string {
	out, err := exec.Command("git", "rev-parse", "--short", "HEAD").Output()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(out))
}
