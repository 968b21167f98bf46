// Package lattice is a block-structured outline editor: a flat block
// document model under block/ and a Bubble Tea component under editor/.
package lattice

import (
	_ "embed"
	"regexp"
	"strings"
)

// The release version ships inside the binary so hosts can report it
// without reading the module cache.
//
//go:embed VERSION
var rawVersion string

var semverRE = regexp.MustCompile(`^(0|[1-9]\d*)\.(0|[1-9]\d*)\.(0|[1-9]\d*)(?:-[0-9A-Za-z-]+(?:\.[0-9A-Za-z-]+)*)?(?:\+[0-9A-Za-z-]+(?:\.[0-9A-Za-z-]+)*)?$`)

// Version is the library release, without the leading v.
func Version() string { return strings.TrimSpace(rawVersion) }

// VersionTag is the release's git tag form (v-prefixed).
func VersionTag() string { return "v" + Version() }

// IsSemver reports whether v is a well-formed SemVer 2.0.0 version.
func IsSemver(v string) bool { return semverRE.MatchString(strings.TrimSpace(v)) }

// VersionIsSemver reports whether the embedded release version is well
// formed. It guards against a malformed VERSION file slipping into a tag.
func VersionIsSemver() bool { return IsSemver(Version()) }
