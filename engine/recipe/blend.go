package recipe

import (
	"strings"

	"github.com/luxweave/luxweave/engine/core"
)

// BlendMode controls how a layer's output combines with the layers below it.
type BlendMode string

const (
	BlendReplace  BlendMode = "replace"
	BlendAdd      BlendMode = "add"
	BlendMultiply BlendMode = "multiply"
	BlendScreen   BlendMode = "screen"
)

func (m BlendMode) String() string {
	return string(m)
}

// ParseBlendMode parses a blend mode tag; unknown tags are rejected.
func ParseBlendMode(s string) (BlendMode, error) {
	switch BlendMode(strings.ToLower(strings.TrimSpace(s))) {
	case BlendReplace:
		return BlendReplace, nil
	case BlendAdd:
		return BlendAdd, nil
	case BlendMultiply:
		return BlendMultiply, nil
	case BlendScreen:
		return BlendScreen, nil
	default:
		return "", core.NewError(nil, core.CodeValidation, map[string]any{
			"blend_mode": s,
			"reason":     "unknown blend mode",
		})
	}
}
