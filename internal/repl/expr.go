package repl

import (
	"context"
	"fmt"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// ExprPrefix marks a handler reference as an inline expression in
// "register <name> expr:<expression>".
const ExprPrefix = "expr:"

// exprHandler evaluates a compiled expression with the argument tokens
// bound to args and argc.
type exprHandler struct {
	source  string
	program *vm.Program
}

func exprEnv(args []string) map[string]any {
	if args == nil {
		args = []string{}
	}
	return map[string]any{
		"args": args,
		"argc": len(args),
	}
}

func compileExpression(source string) (*exprHandler, error) {
	if source == "" {
		return nil, fmt.Errorf("%w: empty expression", ErrInvalidExpression)
	}
	program, err := expr.Compile(source, expr.Env(exprEnv(nil)), expr.AllowUndefinedVariables())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidExpression, err)
	}
	return &exprHandler{source: source, program: program}, nil
}

func (h *exprHandler) Execute(_ context.Context, args []string) Result {
	out, err := expr.Run(h.program, exprEnv(args))
	if err != nil {
		return Text(fmt.Sprintf("Expression failed: %v", err))
	}
	return toResult(out)
}

// toResult maps expression output to a Result: lists of lists become tables,
// everything else is rendered as text.
func toResult(v any) Result {
	switch typed := v.(type) {
	case nil:
		return Text("")
	case string:
		return Text(typed)
	case []any:
		rows := make([][]string, 0, len(typed))
		for _, row := range typed {
			cells, ok := row.([]any)
			if !ok {
				return Text(joinValues(typed))
			}
			out := make([]string, len(cells))
			for i, c := range cells {
				out[i] = fmt.Sprint(c)
			}
			rows = append(rows, out)
		}
		return Table(rows, false)
	default:
		return Text(fmt.Sprint(typed))
	}
}

func joinValues(values []any) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = fmt.Sprint(v)
	}
	return strings.Join(parts, " ")
}
