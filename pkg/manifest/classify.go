// SPDX-License-Identifier: MPL-2.0

package manifest

const (
	// KindCommonJS packages have no type, "commonjs", or only a legacy entry point.
	KindCommonJS Kind = iota + 1
	// KindDual packages declare "module" but also expose "main".
	KindDual
	// KindESMOnly packages declare "module" and expose no legacy entry point.
	KindESMOnly
)

// Kind is the derived module kind of a manifest. It is never stored.
type Kind int

// Classify derives the module kind from the "type" and "main" fields.
// The "exports" map plays no part: a CommonJS consumer can only rely on
// "main" when the package is not declared as a module.
func Classify(m *Manifest) Kind {
	isESM := m.Type == TypeModule
	isCJS := m.Type == TypeAbsent || m.Type == TypeCommonJS || m.HasMain()

	switch {
	case isESM && !isCJS:
		return KindESMOnly
	case isESM && isCJS:
		return KindDual
	default:
		return KindCommonJS
	}
}

// IsESMOnly reports whether the package needs conversion.
func IsESMOnly(m *Manifest) bool {
	return Classify(m) == KindESMOnly
}

// String returns a readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindCommonJS:
		return "commonjs"
	case KindDual:
		return "dual"
	case KindESMOnly:
		return "esm-only"
	default:
		return "unknown"
	}
}
