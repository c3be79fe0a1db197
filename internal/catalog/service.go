package catalog

import (
	"context"

	"booktrack/internal/platform/googlebooks"
)

// Searcher is the slice of the catalog client this package needs.
type Searcher interface {
	Search(ctx context.Context, query string, maxResults int) (googlebooks.SearchResult, error)
}

// Service turns raw catalog volumes into normalized drafts the library
// can store once the user picks one.
type Service struct {
	client Searcher
}

func NewService(client Searcher) *Service {
	return &Service{client: client}
}

func (s *Service) Search(ctx context.Context, query string, maxResults int) ([]googlebooks.Book, error) {
	result, err := s.client.Search(ctx, query, maxResults)
	if err != nil {
		return nil, err
	}

	drafts := make([]googlebooks.Book, 0, len(result.Items))
	for _, v := range result.Items {
		drafts = append(drafts, googlebooks.Normalize(v))
	}
	return drafts, nil
}
