package tools

// Error codes carried by failed results. They are stable identifiers for the
// dispatcher's apology mapping and never shown to the user verbatim.
const (
	ErrCodeEvaluation        = "EvaluationError"
	ErrCodeSearchUnavailable = "SearchUnavailable"
)

// Result is the outcome of a single tool execution. It is consumed
// immediately by the dispatcher and never persisted.
type Result struct {
	Tool    string
	Success bool
	Value   string
	Err     string
}

// Ok builds a successful result.
func Ok(tool, value string) Result {
	return Result{Tool: tool, Success: true, Value: value}
}

// Fail builds a failed result carrying a stable error code.
func Fail(tool, code string) Result {
	return Result{Tool: tool, Err: code}
}
