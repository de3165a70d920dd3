// Package matching remembers which client sends money under which bank
// statement description.
package matching

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/fleetledger/internal/apperr"
)

// Mapping ties a fragment of a bank statement description to the client
// who pays under it.
type Mapping struct {
	ID         uuid.UUID `json:"id"`
	RawPattern string    `json:"raw_pattern"`
	ClientID   uuid.UUID `json:"client_id"`
	CreatedAt  time.Time `json:"created_at"`
}

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=matching
type Repository interface {
	FindClient(ctx context.Context, rawDescription string) (uuid.UUID, bool, error)
	CreateMapping(ctx context.Context, mapping *Mapping) error
	ListMappings(ctx context.Context) ([]*Mapping, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Suggest returns the client whose longest learned pattern occurs in
// rawDescription. ok is false when nothing matches.
func (s *Service) Suggest(ctx context.Context, rawDescription string) (clientID uuid.UUID, ok bool, err error) {
	if strings.TrimSpace(rawDescription) == "" {
		return uuid.Nil, false, nil
	}

	return s.repo.FindClient(ctx, rawDescription)
}

// Learn remembers that statement lines containing rawPattern come from clientID.
func (s *Service) Learn(ctx context.Context, rawPattern string, clientID uuid.UUID) (*Mapping, error) {
	pattern := strings.TrimSpace(rawPattern)

	if len(pattern) < 3 {
		return nil, apperr.Validation("raw_pattern must be at least 3 characters")
	}

	if clientID == uuid.Nil {
		return nil, apperr.Validation("client_id is required")
	}

	m := &Mapping{RawPattern: pattern, ClientID: clientID}
	if err := s.repo.CreateMapping(ctx, m); err != nil {
		return nil, err
	}

	return m, nil
}

func (s *Service) List(ctx context.Context) ([]*Mapping, error) {
	return s.repo.ListMappings(ctx)
}
