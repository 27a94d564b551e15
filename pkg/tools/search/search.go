// Package search implements the literature-search tool as a thin adapter over
// an external search collaborator. Retries, if any, belong to the
// collaborator; this layer only validates, delegates, and formats.
package search

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/kiranalabs/kirana/pkg/tools"
)

const ToolName = "search"

// Entry is one search hit: a paper title plus its identifier.
type Entry struct {
	Title      string
	Identifier string
}

// Searcher is the external search collaborator. A failure must be signaled
// distinctly from an empty-but-successful result.
type Searcher interface {
	Search(ctx context.Context, query string) ([]Entry, error)
}

// SearcherFunc adapts a plain function to the Searcher interface.
type SearcherFunc func(ctx context.Context, query string) ([]Entry, error)

func (f SearcherFunc) Search(ctx context.Context, query string) ([]Entry, error) {
	return f(ctx, query)
}

// Spec describes the search tool: one required string query.
func Spec() tools.ToolSpec {
	return tools.ToolSpec{
		Name:        ToolName,
		Description: "Search academic literature for papers matching a query.",
		Params: []tools.ParamSpec{
			{Name: "query", Type: "string", Required: true},
		},
	}
}

// NewEntry builds the registry entry backed by the given collaborator.
func NewEntry(searcher Searcher) tools.Entry {
	return tools.Entry{
		Spec: Spec(),
		Handler: func(ctx context.Context, args map[string]any) tools.Result {
			return execute(ctx, searcher, tools.StringArg(args, "query"))
		},
	}
}

func execute(ctx context.Context, searcher Searcher, query string) tools.Result {
	query = strings.TrimSpace(query)
	if searcher == nil || query == "" {
		return tools.Fail(ToolName, tools.ErrCodeSearchUnavailable)
	}
	entries, err := searcher.Search(ctx, query)
	if err != nil {
		slog.Warn("search_collaborator_error", "error", err)
		return tools.Fail(ToolName, tools.ErrCodeSearchUnavailable)
	}
	if len(entries) == 0 {
		return tools.Fail(ToolName, tools.ErrCodeSearchUnavailable)
	}
	return tools.Ok(ToolName, Format(entries))
}

// Format renders results as a concise multi-entry block, one numbered line
// per paper with its identifier.
func Format(entries []Entry) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Found %d papers:\n", len(entries))
	for i, entry := range entries {
		fmt.Fprintf(&b, "%d. %s (%s)\n", i+1, strings.TrimSpace(entry.Title), entry.Identifier)
	}
	return strings.TrimRight(b.String(), "\n")
}
