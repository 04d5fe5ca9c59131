package script

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/grafiek/internal/ops"
	"github.com/vk/grafiek/internal/signature"
	"github.com/vk/grafiek/internal/value"
)

// timeVariable is implicitly bound to the execution clock and never becomes
// an input slot.
const timeVariable = "time"

const defaultSource = "0"

// Expr evaluates one HCL expression. Every distinct variable in the source
// becomes a float input slot, in first-use order, and the result lands in a
// single float output. A failed edit keeps the previous program running.
type Expr struct {
	ops.Base
	expr hclsyntax.Expression
	vars []string
}

// NewExpr returns an expression operator evaluating the constant 0.
func NewExpr() *Expr { return &Expr{} }

func (*Expr) Path() ops.OpPath { return ExprPath }

func (*Expr) Setup(_ *ops.ExecContext, sig *signature.Registry) error {
	signature.AddConfig[string](sig, "source").
		Meta(signature.StringMeta{Kind: signature.StringCode, Multiline: true}).
		Default(defaultSource).
		Tooltip("Expression over the node's inputs. The variable time carries the host clock.").
		OnNodeBody(true)
	return nil
}

func (e *Expr) Configure(_ *ops.ExecContext, config value.Inputs, sig *signature.Registry) error {
	src, err := config.Str(0)
	if err != nil {
		return err
	}

	// Parse before touching the signature so a bad edit leaves the node on
	// its previous program.
	expr, diags := hclsyntax.ParseExpression([]byte(src), "expr", hcl.InitialPos)
	if diags.HasErrors() {
		return scriptError(diags)
	}

	sig.ClearInputs()
	sig.ClearOutputs()
	e.expr = expr
	e.vars = e.vars[:0]

	seen := map[string]bool{timeVariable: true}
	for _, traversal := range expr.Variables() {
		name := traversal.RootName()
		if seen[name] {
			continue
		}
		seen[name] = true
		e.vars = append(e.vars, name)
		signature.AddInput[float32](sig, name)
	}
	signature.AddOutput[float32](sig, "result")
	return nil
}

func (e *Expr) Execute(ectx *ops.ExecContext, in value.Inputs, out value.Outputs) error {
	if e.expr == nil {
		return ops.NewScriptError("no expression configured")
	}

	vars := make(map[string]cty.Value, len(e.vars)+1)
	for i, name := range e.vars {
		f, err := in.F32(i)
		if err != nil {
			return err
		}
		vars[name] = cty.NumberFloatVal(float64(f))
	}
	vars[timeVariable] = cty.NumberFloatVal(float64(ectx.Time()))

	result, diags := e.expr.Value(&hcl.EvalContext{Variables: vars})
	if diags.HasErrors() {
		return scriptError(diags)
	}
	if result.Type() != cty.Number {
		return ops.NewScriptError(fmt.Sprintf("expression produced %s, want number", result.Type().FriendlyName()))
	}
	f, _ := result.AsBigFloat().Float32()
	return out.SetF32(0, f)
}

// scriptError converts HCL diagnostics into the engine's positioned script
// error so clients can mark the offending spans.
func scriptError(diags hcl.Diagnostics) *ops.ScriptError {
	errs := make([]ops.LocatedError, 0, len(diags))
	for _, d := range diags {
		if d.Severity != hcl.DiagError {
			continue
		}
		le := ops.LocatedError{Message: d.Summary, Line: 1, Column: 1}
		if d.Detail != "" {
			le.Message = d.Summary + ": " + d.Detail
		}
		if d.Subject != nil {
			le.Line = d.Subject.Start.Line
			le.Column = d.Subject.Start.Column
		}
		errs = append(errs, le)
	}
	return &ops.ScriptError{Diags: errs}
}
