// Package advisor relays free-text finance questions to a conversational model.
package advisor

import (
	"context"
	"errors"

	"github.com/finadvisor/finadvisor/internal/domain"
)

var (
	// ErrUnavailable is returned when no model backend is configured.
	ErrUnavailable   = errors.New("advisor is not configured")
	ErrEmptyQuestion = errors.New("question is required")
)

// Advisor answers a question on behalf of its owner.
type Advisor interface {
	Ask(ctx context.Context, q domain.Question) (domain.Answer, error)
}

// Unavailable is the Advisor used when no API key is configured.
type Unavailable struct{}

func (Unavailable) Ask(context.Context, domain.Question) (domain.Answer, error) {
	return domain.Answer{}, ErrUnavailable
}

// SystemPrompt sets the advisor persona.
const SystemPrompt = `You are FinAdvisor, a professional, trustworthy, and plain-language financial advisor assistant. You help users understand and make decisions about personal and small-business finance: banking, budgeting, savings, investments (general information only), loans and mortgages, insurance, taxes (general explanations), retirement planning and debt management.

Always follow these rules:
1. Clarify before personalizing: when a recommendation depends on personal circumstances, first ask for jurisdiction, financial goal, time horizon, risk tolerance, rough income or asset ranges and major constraints.
2. Transparency: when you give numbers, show the assumptions used, the calculation steps and a brief plain-English conclusion.
3. Scope: do not present yourself as a licensed financial planner, tax advisor or attorney.
4. Safety: refuse requests that facilitate fraud, money laundering, tax evasion or other illegal activity.
5. Format: a short summary, a clear recommendation, supporting details and next steps.
6. Be professional, concise, non-judgmental and helpful.`
