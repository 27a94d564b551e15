// Package calc implements the deterministic calculator tool. Expressions are
// evaluated numerically with support for common unary functions and the
// constants pi and e. Failures never escape the tool boundary; they come back
// as failed results carrying a stable error code.
package calc

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"github.com/expr-lang/expr"

	"github.com/kiranalabs/kirana/pkg/sanitize"
	"github.com/kiranalabs/kirana/pkg/tools"
)

const ToolName = "calculate"

var errDomain = errors.New("domain error")

// Spec describes the calculator to the registry: one required string
// parameter holding the arithmetic expression.
func Spec() tools.ToolSpec {
	return tools.ToolSpec{
		Name:        ToolName,
		Description: "Evaluate a mathematical expression, e.g. 2+2*3, sqrt(16), sin(pi/2).",
		Params: []tools.ParamSpec{
			{Name: "expression", Type: "string", Required: true},
		},
	}
}

// Entry builds the registry entry: spec, handler, and the expression
// sanitizer applied by the dispatcher before execution.
func Entry() tools.Entry {
	return tools.Entry{
		Spec:    Spec(),
		Handler: Handle,
		Sanitize: func(args map[string]any) map[string]any {
			out := make(map[string]any, len(args))
			for k, v := range args {
				out[k] = v
			}
			if raw, ok := out["expression"].(string); ok {
				out["expression"] = sanitize.Expression(raw)
			}
			return out
		},
	}
}

// Handle executes the calculator against validated arguments.
func Handle(ctx context.Context, args map[string]any) tools.Result {
	return Evaluate(tools.StringArg(args, "expression"))
}

// Evaluate parses and numerically evaluates a sanitized expression. Malformed
// input, division by zero, and domain errors all produce a failed result; no
// evaluator fault propagates past this function.
func Evaluate(expression string) tools.Result {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return tools.Fail(ToolName, tools.ErrCodeEvaluation)
	}
	env := evalEnv()
	program, err := expr.Compile(expression, expr.Env(env))
	if err != nil {
		slog.Debug("calc_parse_error", "error", err)
		return tools.Fail(ToolName, tools.ErrCodeEvaluation)
	}
	out, err := expr.Run(program, env)
	if err != nil {
		slog.Debug("calc_eval_error", "error", err, "kind", classify(err))
		return tools.Fail(ToolName, tools.ErrCodeEvaluation)
	}
	value, err := formatNumber(out)
	if err != nil {
		slog.Debug("calc_result_error", "error", err)
		return tools.Fail(ToolName, tools.ErrCodeEvaluation)
	}
	return tools.Ok(ToolName, value)
}

func evalEnv() map[string]any {
	return map[string]any{
		"pi": math.Pi,
		"e":  math.E,

		"sqrt":  unary("sqrt", math.Sqrt),
		"sin":   unary("sin", math.Sin),
		"cos":   unary("cos", math.Cos),
		"tan":   unary("tan", math.Tan),
		"log":   unary("log", math.Log),
		"ln":    unary("ln", math.Log),
		"log2":  unary("log2", math.Log2),
		"log10": unary("log10", math.Log10),
		"exp":   unary("exp", math.Exp),
		"abs":   unary("abs", math.Abs),
		"floor": unary("floor", math.Floor),
		"ceil":  unary("ceil", math.Ceil),
		"round": unary("round", math.Round),
		"pow": func(a, b any) (float64, error) {
			x, err := toFloat(a)
			if err != nil {
				return 0, err
			}
			y, err := toFloat(b)
			if err != nil {
				return 0, err
			}
			return checkFinite("pow", math.Pow(x, y))
		},
	}
}

func unary(name string, fn func(float64) float64) func(any) (float64, error) {
	return func(v any) (float64, error) {
		x, err := toFloat(v)
		if err != nil {
			return 0, err
		}
		return checkFinite(name, fn(x))
	}
}

func toFloat(v any) (float64, error) {
	switch n := v.(type) {
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	default:
		return 0, fmt.Errorf("non-numeric argument %v", v)
	}
}

func checkFinite(name string, v float64) (float64, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%s: %w", name, errDomain)
	}
	return v, nil
}

func classify(err error) string {
	if errors.Is(err, errDomain) {
		return "domain"
	}
	if strings.Contains(err.Error(), "divide by zero") {
		return "divide_by_zero"
	}
	return "evaluation"
}

// formatNumber renders the result as a decimal string, without a trailing
// fraction for whole numbers (4, not 4.000000).
func formatNumber(v any) (string, error) {
	switch n := v.(type) {
	case int:
		return strconv.Itoa(n), nil
	case int64:
		return strconv.FormatInt(n, 10), nil
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return "", fmt.Errorf("non-finite result: %w", errDomain)
		}
		return strconv.FormatFloat(n, 'f', -1, 64), nil
	case float32:
		return formatNumber(float64(n))
	default:
		return "", fmt.Errorf("non-numeric result %v", v)
	}
}
