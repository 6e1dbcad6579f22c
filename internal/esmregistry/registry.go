// SPDX-License-Identifier: MPL-2.0

package esmregistry

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/Masterminds/semver/v3"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/cjsify/cjsify/pkg/manifest"
	"github.com/cjsify/cjsify/pkg/npm"
)

// rangeCacheSize bounds the parsed-range cache. A single tree rarely
// declares more distinct ranges than this.
const rangeCacheSize = 512

type (
	// Registry maps package names to the ordered versions found ESM-only.
	Registry struct {
		versions map[npm.PackageName][]npm.Version
		parsed   map[npm.Version]*semver.Version
		ranges   *lru.Cache[string, *npmRange]
	}

	// Entry is one registry row, used for display.
	Entry struct {
		Name     npm.PackageName
		Versions []npm.Version
	}
)

// New creates an empty Registry.
func New() *Registry {
	// lru.New only fails for a non-positive size.
	cache, _ := lru.New[string, *npmRange](rangeCacheSize)
	return &Registry{
		versions: make(map[npm.PackageName][]npm.Version),
		parsed:   make(map[npm.Version]*semver.Version),
		ranges:   cache,
	}
}

// Build creates a Registry from scanned manifests, recording every
// ESM-only one in scan order.
func Build(manifests []*manifest.Manifest) *Registry {
	r := New()
	for _, m := range manifests {
		if manifest.IsESMOnly(m) {
			r.Add(m.Name, m.Version)
		}
	}
	return r
}

// Add records version of name as ESM-only. Duplicate versions are ignored.
func (r *Registry) Add(name npm.PackageName, version npm.Version) {
	if slices.Contains(r.versions[name], version) {
		return
	}
	r.versions[name] = append(r.versions[name], version)
	if v, err := semver.NewVersion(string(version)); err == nil {
		r.parsed[version] = v
	}
}

// Len returns the number of distinct package names.
func (r *Registry) Len() int { return len(r.versions) }

// IsEmpty reports whether no ESM-only package was recorded.
func (r *Registry) IsEmpty() bool { return len(r.versions) == 0 }

// Versions returns the recorded versions of name.
func (r *Registry) Versions(name npm.PackageName) []npm.Version {
	return slices.Clone(r.versions[name])
}

// Satisfies reports whether at least one recorded version of name satisfies
// the dependency range. Ranges that are not valid semver ranges (dist-tags,
// URLs, aliases) never match, and prerelease versions follow npm's rule
// that the range must name a prerelease of the same major.minor.patch.
func (r *Registry) Satisfies(name npm.PackageName, rng string) bool {
	versions := r.versions[name]
	if len(versions) == 0 {
		return false
	}

	parsed, err := r.rangeFor(rng)
	if err != nil {
		return false
	}

	for _, version := range versions {
		if v, ok := r.parsed[version]; ok && parsed.Check(v) {
			return true
		}
	}
	return false
}

// Entries returns the registry rows sorted by name.
func (r *Registry) Entries() []Entry {
	names := slices.Sorted(maps.Keys(r.versions))

	entries := make([]Entry, 0, len(names))
	for _, name := range names {
		entries = append(entries, Entry{Name: name, Versions: r.Versions(name)})
	}
	return entries
}

// String renders "name v1, v2" for each entry on its own line.
func (e Entry) String() string {
	versions := make([]string, len(e.Versions))
	for i, v := range e.Versions {
		versions[i] = string(v)
	}
	return fmt.Sprintf("%s %s", e.Name, strings.Join(versions, ", "))
}

func (r *Registry) rangeFor(rng string) (*npmRange, error) {
	key := strings.TrimSpace(rng)
	if parsed, ok := r.ranges.Get(key); ok {
		return parsed, nil
	}
	parsed, err := parseRange(key)
	if err != nil {
		return nil, err
	}
	r.ranges.Add(key, parsed)
	return parsed, nil
}
