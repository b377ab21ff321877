package recipe

import (
	"fmt"

	"github.com/luxweave/luxweave/engine/core"
	"github.com/luxweave/luxweave/pkg/exprengine"
)

// defaultExprEngine backs expression compilation for all recipe
// construction in the process. The CEL environment is static and safe for
// unsynchronized concurrent use.
var defaultExprEngine = exprengine.MustNewEngine()

// ParamValue is one layer parameter: either a static literal or a dynamic
// expression over energy/density, with optional clamp bounds applied to
// numeric results at render time.
type ParamValue struct {
	Literal    any      `json:"literal,omitempty"    yaml:"literal,omitempty"`
	Expression string   `json:"expression,omitempty" yaml:"expression,omitempty"`
	Min        *float64 `json:"min,omitempty"        yaml:"min,omitempty"`
	Max        *float64 `json:"max,omitempty"        yaml:"max,omitempty"`

	program *exprengine.Program
}

// NewLiteralParam creates a static parameter value.
func NewLiteralParam(value any) *ParamValue {
	return &ParamValue{Literal: value}
}

// NewDynamicParam creates a dynamic parameter value computed from
// energy/density at render time.
func NewDynamicParam(expression string) *ParamValue {
	return &ParamValue{Expression: expression}
}

// WithBounds attaches clamp bounds and returns the same value for chaining.
func (p *ParamValue) WithBounds(minVal, maxVal float64) *ParamValue {
	p.Min = &minVal
	p.Max = &maxVal
	return p
}

// IsDynamic reports whether the value is expression-driven.
func (p *ParamValue) IsDynamic() bool {
	return p.Expression != ""
}

// Program returns the compiled expression. Values built through recipe
// construction are compiled there; values decoded straight from artifacts
// are compiled on demand without caching, so concurrent renders never
// mutate shared state.
func (p *ParamValue) Program() (*exprengine.Program, error) {
	if !p.IsDynamic() {
		return nil, core.NewError(nil, core.CodeEvaluation, map[string]any{
			"reason": "parameter is not dynamic",
		})
	}
	if p.program != nil {
		return p.program, nil
	}
	return defaultExprEngine.Compile(p.Expression)
}

func (p *ParamValue) validate(name string) error {
	fail := func(reason string, cause error) error {
		return core.NewError(cause, core.CodeValidation, map[string]any{
			"param":  name,
			"reason": reason,
		})
	}
	hasLiteral := p.Literal != nil
	if hasLiteral == p.IsDynamic() {
		return fail("parameter must carry exactly one of literal or expression", nil)
	}
	if hasLiteral {
		switch p.Literal.(type) {
		case float64, float32, int, int32, int64, uint, uint32, uint64, string, bool:
		default:
			return fail(fmt.Sprintf("literal type %T is not supported", p.Literal), nil)
		}
	} else {
		prg, err := defaultExprEngine.Compile(p.Expression)
		if err != nil {
			return fail("invalid expression", err)
		}
		p.program = prg
	}
	if p.Min != nil && p.Max != nil && *p.Min > *p.Max {
		return fail(fmt.Sprintf("min %v exceeds max %v", *p.Min, *p.Max), nil)
	}
	return nil
}
