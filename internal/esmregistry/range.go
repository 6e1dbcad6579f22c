// SPDX-License-Identifier: MPL-2.0

package esmregistry

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// prereleaseVersion finds "major.minor.patch-pre" inside a comparator set.
var prereleaseVersion = regexp.MustCompile(`(\d+)\.(\d+)\.(\d+)-[0-9A-Za-z.-]+`)

type (
	// npmRange is a dependency range split on "||". A prerelease version
	// only matches a comparator set that names a prerelease of the same
	// major.minor.patch, the way npm resolves ranges.
	npmRange struct {
		sets []comparatorSet
	}

	comparatorSet struct {
		constraints *semver.Constraints
		prereleases []versionTuple
	}

	versionTuple struct {
		major, minor, patch uint64
	}
)

func parseRange(rng string) (*npmRange, error) {
	parts := strings.Split(rng, "||")
	r := &npmRange{sets: make([]comparatorSet, 0, len(parts))}
	for _, part := range parts {
		part = normalizeRange(part)
		c, err := semver.NewConstraint(part)
		if err != nil {
			return nil, err
		}
		r.sets = append(r.sets, comparatorSet{constraints: c, prereleases: prereleaseTuples(part)})
	}
	return r, nil
}

// Check reports whether v satisfies at least one comparator set.
func (r *npmRange) Check(v *semver.Version) bool {
	for _, set := range r.sets {
		if !set.constraints.Check(v) {
			continue
		}
		if v.Prerelease() == "" || set.allowsPrerelease(v) {
			return true
		}
	}
	return false
}

func (s comparatorSet) allowsPrerelease(v *semver.Version) bool {
	want := versionTuple{major: v.Major(), minor: v.Minor(), patch: v.Patch()}
	for _, t := range s.prereleases {
		if t == want {
			return true
		}
	}
	return false
}

func prereleaseTuples(set string) []versionTuple {
	var tuples []versionTuple
	for _, m := range prereleaseVersion.FindAllStringSubmatch(set, -1) {
		major, errMajor := strconv.ParseUint(m[1], 10, 64)
		minor, errMinor := strconv.ParseUint(m[2], 10, 64)
		patch, errPatch := strconv.ParseUint(m[3], 10, 64)
		if errMajor != nil || errMinor != nil || errPatch != nil {
			continue
		}
		tuples = append(tuples, versionTuple{major: major, minor: minor, patch: patch})
	}
	return tuples
}

// normalizeRange maps npm's "any version" spellings onto "*".
func normalizeRange(rng string) string {
	rng = strings.TrimSpace(rng)
	switch rng {
	case "", "x", "X":
		return "*"
	}
	return rng
}
