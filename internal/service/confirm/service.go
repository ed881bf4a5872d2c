// Package confirm issues the one-time tokens that turn a deletion into a
// two-step action: the record is shown first, then the token authorizes the
// delete.
package confirm

import (
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	apperrors "github.com/jwalitptl/hims-api/pkg/errors"
)

// Message returned when a delete arrives without a valid token.
const Message = "Deletion must be confirmed: request a confirmation token first"

type target struct {
	entity string
	id     string
}

type Service struct {
	tokens *cache.Cache
	ttl    time.Duration
}

// NewService keeps tokens for ttl. Expired tokens are pruned when new ones
// are issued; no janitor goroutine runs.
func NewService(ttl time.Duration) *Service {
	return &Service{
		tokens: cache.New(ttl, 0),
		ttl:    ttl,
	}
}

// Issue returns a token valid for deleting exactly entity/id.
func (s *Service) Issue(entity, id string) (string, time.Time) {
	s.tokens.DeleteExpired()

	token := uuid.NewString()
	s.tokens.Set(token, target{entity: entity, id: id}, s.ttl)
	return token, time.Now().Add(s.ttl)
}

// Check fails with a precondition error unless token was issued for
// entity/id and has not expired or been used.
func (s *Service) Check(entity, id, token string) error {
	if token == "" {
		return apperrors.PreconditionFailed(Message)
	}
	v, ok := s.tokens.Get(token)
	if !ok {
		return apperrors.PreconditionFailed(Message)
	}
	if t, _ := v.(target); t.entity != entity || t.id != id {
		return apperrors.PreconditionFailed(Message)
	}
	return nil
}

// Revoke invalidates token once the deletion it authorized has happened.
func (s *Service) Revoke(token string) {
	s.tokens.Delete(token)
}
