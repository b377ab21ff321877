// Package exprengine compiles and evaluates the restricted expressions used
// by dynamic recipe parameters. The grammar is CEL limited to two bound
// variables (energy, density), numeric/bool literals, arithmetic, comparison,
// and logical operators. Compilation happens once, at recipe construction;
// evaluation is a pure function of (energy, density).
package exprengine

import (
	"fmt"

	"github.com/google/cel-go/cel"
	celast "github.com/google/cel-go/common/ast"
	"github.com/google/cel-go/common/operators"

	"github.com/luxweave/luxweave/engine/core"
)

// VarEnergy and VarDensity are the only names an expression may reference.
const (
	VarEnergy  = "energy"
	VarDensity = "density"
)

// allowedFunctions is the operator whitelist. CEL models every operator as a
// function call with a reserved name; anything outside this set (declared
// functions, member calls, macros) is rejected at compile time.
var allowedFunctions = map[string]bool{
	operators.Add:           true,
	operators.Subtract:      true,
	operators.Multiply:      true,
	operators.Divide:        true,
	operators.Modulo:        true,
	operators.Negate:        true,
	operators.Equals:        true,
	operators.NotEquals:     true,
	operators.Less:          true,
	operators.LessEquals:    true,
	operators.Greater:       true,
	operators.GreaterEquals: true,
	operators.LogicalAnd:    true,
	operators.LogicalOr:     true,
	operators.LogicalNot:    true,
	operators.Conditional:   true,
}

// Engine owns the CEL environment. It is immutable and safe for concurrent
// use; one engine is shared by all recipe constructions in a process.
type Engine struct {
	env *cel.Env
}

func NewEngine() (*Engine, error) {
	env, err := cel.NewEnv(
		cel.ClearMacros(),
		cel.Variable(VarEnergy, cel.DoubleType),
		cel.Variable(VarDensity, cel.DoubleType),
	)
	if err != nil {
		return nil, fmt.Errorf("exprengine: create environment: %w", err)
	}
	return &Engine{env: env}, nil
}

// MustNewEngine panics on environment construction failure; the environment
// is static, so failure indicates a programming error.
func MustNewEngine() *Engine {
	eng, err := NewEngine()
	if err != nil {
		panic(err)
	}
	return eng
}

// Program is a compiled expression ready for evaluation.
type Program struct {
	source string
	prg    cel.Program
}

// Source returns the original expression text.
func (p *Program) Source() string {
	return p.source
}

// Compile parses, type-checks, and whitelist-verifies an expression. Any
// reference to a name other than energy/density, any function or member
// call, and any non-scalar construct fails here, never at render time.
func (e *Engine) Compile(source string) (*Program, error) {
	ast, issues := e.env.Compile(source)
	if issues != nil && issues.Err() != nil {
		return nil, core.NewError(issues.Err(), core.CodeValidation, map[string]any{
			"expression": source,
		})
	}
	if err := verifyExpr(source, ast.NativeRep().Expr()); err != nil {
		return nil, err
	}
	switch ast.OutputType() {
	case cel.DoubleType, cel.IntType, cel.UintType, cel.BoolType:
	default:
		return nil, core.NewError(nil, core.CodeValidation, map[string]any{
			"expression": source,
			"reason":     fmt.Sprintf("expression must produce a number or bool, got %s", ast.OutputType()),
		})
	}
	prg, err := e.env.Program(ast)
	if err != nil {
		return nil, core.NewError(err, core.CodeValidation, map[string]any{
			"expression": source,
		})
	}
	return &Program{source: source, prg: prg}, nil
}

// Eval evaluates the program against concrete energy/density values. The
// result is a float64 for numeric expressions or a bool for comparisons.
func (p *Program) Eval(energy, density float64) (any, error) {
	out, _, err := p.prg.Eval(map[string]any{
		VarEnergy:  energy,
		VarDensity: density,
	})
	if err != nil {
		return nil, core.NewError(err, core.CodeEvaluation, map[string]any{
			"expression": p.source,
		})
	}
	switch v := out.Value().(type) {
	case float64:
		return v, nil
	case int64:
		return float64(v), nil
	case uint64:
		return float64(v), nil
	case bool:
		return v, nil
	default:
		return nil, core.NewError(nil, core.CodeEvaluation, map[string]any{
			"expression": p.source,
			"reason":     fmt.Sprintf("unsupported result type %T", out.Value()),
		})
	}
}

// EvalNumber evaluates the program and requires a numeric result.
func (p *Program) EvalNumber(energy, density float64) (float64, error) {
	v, err := p.Eval(energy, density)
	if err != nil {
		return 0, err
	}
	f, ok := v.(float64)
	if !ok {
		return 0, core.NewError(nil, core.CodeEvaluation, map[string]any{
			"expression": p.source,
			"reason":     fmt.Sprintf("expected numeric result, got %T", v),
		})
	}
	return f, nil
}

func verifyExpr(source string, expr celast.Expr) error {
	var verifyErr error
	reject := func(reason string) {
		if verifyErr == nil {
			verifyErr = core.NewError(nil, core.CodeValidation, map[string]any{
				"expression": source,
				"reason":     reason,
			})
		}
	}
	celast.PostOrderVisit(expr, celast.NewExprVisitor(func(e celast.Expr) {
		switch e.Kind() {
		case celast.LiteralKind:
		case celast.IdentKind:
			name := e.AsIdent()
			if name != VarEnergy && name != VarDensity {
				reject(fmt.Sprintf("reference to disallowed name %q", name))
			}
		case celast.CallKind:
			call := e.AsCall()
			if call.IsMemberFunction() {
				reject(fmt.Sprintf("member call %q is not allowed", call.FunctionName()))
				return
			}
			if !allowedFunctions[call.FunctionName()] {
				reject(fmt.Sprintf("function %q is not allowed", call.FunctionName()))
			}
		case celast.SelectKind:
			reject("attribute access is not allowed")
		default:
			reject(fmt.Sprintf("construct %v is not allowed", e.Kind()))
		}
	}))
	return verifyErr
}
