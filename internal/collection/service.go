// Package collection is the consumer side of the match authority: it reads
// match lists through a short-lived cache, sends actions one request at a
// time and groups matches by the state derived from their fields.
package collection

import (
	"context"
	"time"

	"github.com/dimitrije/futbol-api/internal/match"
	"github.com/dimitrije/futbol-api/internal/models"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

const (
	keyAll  = "list:all"
	keyMine = "list:mine"
)

// Categories groups matches by derived state.
type Categories map[match.State][]models.Match

// Group derives the state of every match. Order within a category follows
// the input.
func Group(matches []models.Match) Categories {
	groups := make(Categories)
	for _, m := range matches {
		s := match.Derive(&m)
		groups[s] = append(groups[s], m)
	}
	return groups
}

type Overview struct {
	Available Categories
	Mine      Categories
}

type Service struct {
	authority Authority
	lists     *Cache[[]models.Match]
	matches   *Cache[*models.Match]
}

func NewService(authority Authority, maxAge time.Duration) *Service {
	return &Service{
		authority: authority,
		lists:     NewCache[[]models.Match](maxAge),
		matches:   NewCache[*models.Match](maxAge),
	}
}

// Available lists the matches third parties can still act on. Confirmed
// matches are only shown under Mine.
func (s *Service) Available(ctx context.Context) ([]models.Match, error) {
	all, err := s.lists.Get(ctx, keyAll, func(ctx context.Context) ([]models.Match, error) {
		return s.authority.ListMatches(ctx, models.ScopeAll)
	})
	if err != nil {
		return nil, err
	}

	available := make([]models.Match, 0, len(all))
	for _, m := range all {
		if !match.Derive(&m).IsTerminal() {
			available = append(available, m)
		}
	}
	return available, nil
}

// Mine lists the matches the user's team plays on either side.
func (s *Service) Mine(ctx context.Context) ([]models.Match, error) {
	return s.lists.Get(ctx, keyMine, func(ctx context.Context) ([]models.Match, error) {
		return s.authority.ListMatches(ctx, models.ScopeMine)
	})
}

func (s *Service) Overview(ctx context.Context) (*Overview, error) {
	var available, mine []models.Match

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		available, err = s.Available(gCtx)
		return err
	})
	g.Go(func() error {
		var err error
		mine, err = s.Mine(gCtx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &Overview{
		Available: Group(available),
		Mine:      Group(mine),
	}, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*models.Match, error) {
	return s.matches.Get(ctx, id.String(), func(ctx context.Context) (*models.Match, error) {
		return s.authority.GetMatch(ctx, id)
	})
}

// State derives the current state of a match from a fresh or cached read.
func (s *Service) State(ctx context.Context, id uuid.UUID) (match.State, error) {
	m, err := s.Get(ctx, id)
	if err != nil {
		return "", err
	}
	return match.Derive(m), nil
}

func (s *Service) CreateMatch(ctx context.Context, venueID uuid.UUID, scheduledAt time.Time) (*models.Match, error) {
	m, err := s.authority.CreateMatch(ctx, venueID, scheduledAt)
	s.lists.Invalidate(keyAll, keyMine)
	return m, err
}

func (s *Service) Join(ctx context.Context, id uuid.UUID) (*models.Match, error) {
	defer s.invalidate(id)
	return s.authority.JoinMatch(ctx, id)
}

func (s *Service) Leave(ctx context.Context, id uuid.UUID) (*models.Match, error) {
	defer s.invalidate(id)
	return s.authority.LeaveMatch(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	defer s.invalidate(id)
	return s.authority.DeleteMatch(ctx, id)
}

func (s *Service) SubmitResult(ctx context.Context, id uuid.UUID, result models.Result) (*models.Match, error) {
	defer s.invalidate(id)
	return s.authority.SubmitResult(ctx, id, result)
}

func (s *Service) Confirm(ctx context.Context, id uuid.UUID) (*models.Match, error) {
	defer s.invalidate(id)
	return s.authority.ConfirmResult(ctx, id)
}

func (s *Service) Reject(ctx context.Context, id uuid.UUID) (*models.Match, error) {
	defer s.invalidate(id)
	return s.authority.RejectResult(ctx, id)
}

// invalidate runs after every action whatever its outcome: a rejection means
// the cached view was wrong, a transport failure means it may be.
func (s *Service) invalidate(id uuid.UUID) {
	s.matches.Invalidate(id.String())
	s.lists.Invalidate(keyAll, keyMine)
}
