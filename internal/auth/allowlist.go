package auth

import (
	"context"
	"strings"
)

// Decision is the tri-state outcome of an allow-list check. The explicit
// states keep "nobody configured a list yet" distinct from "the list is
// empty", which deny different things.
type Decision int

const (
	// DecisionUnconfigured means no allow-list exists yet; access is
	// granted so the first users can bootstrap the instance.
	DecisionUnconfigured Decision = iota
	// DecisionAllowed means the list exists and contains the email.
	DecisionAllowed
	// DecisionDenied means the list exists and does not contain the
	// email. Only pre-registered accounts keep working.
	DecisionDenied
)

func (d Decision) Allowed() bool {
	return d != DecisionDenied
}

// AllowlistRepository loads the configured emails. configured is false
// when no list has been stored at all.
type AllowlistRepository interface {
	Emails(ctx context.Context) (emails []string, configured bool, err error)
	Replace(ctx context.Context, emails []string) error
}

// Policy evaluates the allow-list for an email.
type Policy struct {
	repo AllowlistRepository
}

func NewPolicy(repo AllowlistRepository) *Policy {
	return &Policy{repo: repo}
}

func (p *Policy) Decide(ctx context.Context, email string) (Decision, error) {
	emails, configured, err := p.repo.Emails(ctx)
	if err != nil {
		return DecisionDenied, err
	}
	if !configured {
		return DecisionUnconfigured, nil
	}

	email = strings.ToLower(strings.TrimSpace(email))
	for _, allowed := range emails {
		if strings.ToLower(strings.TrimSpace(allowed)) == email {
			return DecisionAllowed, nil
		}
	}
	return DecisionDenied, nil
}
