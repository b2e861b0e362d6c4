package advisor

import (
	"context"
	"fmt"

	"github.com/finadvisor/finadvisor/internal/domain"
)

// Lister lists an owner's uploaded statements.
type Lister interface {
	List(ctx context.Context, owner string) ([]domain.StoredObject, error)
}

// StatementAdvisor attaches the owner's most recent uploads to each question.
type StatementAdvisor struct {
	Base  Advisor
	Store Lister
	// Limit caps the attached documents; zero means 5.
	Limit int
}

func (s StatementAdvisor) Ask(ctx context.Context, q domain.Question) (domain.Answer, error) {
	docs, err := s.Store.List(ctx, q.Owner)
	if err != nil {
		return domain.Answer{}, fmt.Errorf("list statements: %w", err)
	}
	limit := s.Limit
	if limit <= 0 {
		limit = 5
	}
	if len(docs) > limit {
		docs = docs[:limit]
	}
	q.Documents = docs
	return s.Base.Ask(ctx, q)
}
