package mock

import (
	"context"

	"github.com/kiranalabs/kirana/pkg/tools/search"
)

type SearcherConfig struct {
	Entries []search.Entry
	Err     error
}

// Searcher returns fixed search results or a fixed error.
type Searcher struct {
	cfg SearcherConfig
}

func NewSearcher(cfg SearcherConfig) *Searcher {
	return &Searcher{cfg: cfg}
}

func (s *Searcher) Search(ctx context.Context, query string) ([]search.Entry, error) {
	if s.cfg.Err != nil {
		return nil, s.cfg.Err
	}
	return s.cfg.Entries, nil
}

var _ search.Searcher = (*Searcher)(nil)
