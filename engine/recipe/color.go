package recipe

import (
	"regexp"
	"strings"

	"github.com/luxweave/luxweave/engine/core"
)

// Role is a palette indirection tag resolved against the runtime palette at
// render time.
type Role string

const (
	RolePrimary   Role = "PALETTE_PRIMARY"
	RoleSecondary Role = "PALETTE_SECONDARY"
	RoleAccent    Role = "PALETTE_ACCENT"
	RoleNeutral   Role = "PALETTE_NEUTRAL"
)

// KnownRoles enumerates every role the model accepts; unknown roles are
// rejected at construction, not at render time.
var KnownRoles = map[Role]bool{
	RolePrimary:   true,
	RoleSecondary: true,
	RoleAccent:    true,
	RoleNeutral:   true,
}

var hexColorPattern = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)

// ColorSource is either a literal color or a palette role, never both.
type ColorSource struct {
	Literal string `json:"literal,omitempty" yaml:"literal,omitempty"`
	Role    Role   `json:"role,omitempty"    yaml:"role,omitempty"`
}

// LiteralColor creates a concrete color source that bypasses palette
// resolution.
func LiteralColor(hex string) ColorSource {
	return ColorSource{Literal: hex}
}

// RoleColor creates a palette-role color source.
func RoleColor(role Role) ColorSource {
	return ColorSource{Role: role}
}

// ParseColorSource interprets a raw artifact string: "#RRGGBB" forms are
// literals, anything else must be a known role tag.
func ParseColorSource(s string) (ColorSource, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "#") {
		src := LiteralColor(s)
		return src, src.validate()
	}
	src := RoleColor(Role(strings.ToUpper(s)))
	return src, src.validate()
}

// IsLiteral reports whether the source is a concrete color.
func (c ColorSource) IsLiteral() bool {
	return c.Literal != ""
}

func (c ColorSource) validate() error {
	hasLiteral := c.Literal != ""
	hasRole := c.Role != ""
	if hasLiteral == hasRole {
		return core.NewError(nil, core.CodeValidation, map[string]any{
			"reason": "color source must carry exactly one of literal or role",
		})
	}
	if hasLiteral && !hexColorPattern.MatchString(c.Literal) {
		return core.NewError(nil, core.CodeValidation, map[string]any{
			"color":  c.Literal,
			"reason": "literal color must be #RGB, #RRGGBB, or #RRGGBBAA",
		})
	}
	if hasRole && !KnownRoles[c.Role] {
		return core.NewError(nil, core.CodeValidation, map[string]any{
			"role":   string(c.Role),
			"reason": "unknown palette role",
		})
	}
	return nil
}

// PaletteSpec is the ordered color plan of a recipe.
type PaletteSpec []ColorSource

func (p PaletteSpec) validate() error {
	for i, src := range p {
		if err := src.validate(); err != nil {
			return core.NewError(err, core.CodeValidation, map[string]any{
				"palette_index": i,
			})
		}
	}
	return nil
}
