// Package hashmark carries the release version of the hashmark module.
//
// The library lives in the document, mention and editor packages; the
// hashmark binary is under cmd/hashmark.
package hashmark

import (
	_ "embed"
	"fmt"
	"regexp"
	"runtime"
	"strings"
)

var semverRE = regexp.MustCompile(`^(0|[1-9]\d*)\.(0|[1-9]\d*)\.(0|[1-9]\d*)(?:-[0-9A-Za-z-]+(?:\.[0-9A-Za-z-]+)*)?(?:\+[0-9A-Za-z-]+(?:\.[0-9A-Za-z-]+)*)?$`)

//go:embed VERSION
var embeddedVersion string

// Version returns the module version in SemVer format, without a leading "v".
func Version() string {
	return strings.TrimSpace(embeddedVersion)
}

// VersionTag returns the git tag form of Version.
func VersionTag() string {
	return "v" + Version()
}

// IsSemver reports whether v matches SemVer 2.0.0.
func IsSemver(v string) bool {
	return semverRE.MatchString(strings.TrimSpace(v))
}

// BuildInfo is the one-line version banner printed by `hashmark version`.
func BuildInfo() string {
	return fmt.Sprintf("hashmark %s (%s %s/%s)", VersionTag(), runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
