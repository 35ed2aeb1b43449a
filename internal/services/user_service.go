package services

import (
	"context"
	"errors"
	"time"

	"profilematch/internal/events"
	"profilematch/internal/matching"
	"profilematch/internal/metrics"
	"profilematch/internal/models"
	"profilematch/internal/repository"
)

// UserService is the operation set the HTTP layer talks to.
type UserService interface {
	CreateUser(ctx context.Context, input models.CreateUserInput) (*models.User, error)
	ListUsers(ctx context.Context, skip, limit int) ([]models.User, error)
	GetUser(ctx context.Context, id uint) (*models.User, error)
	UpdateUser(ctx context.Context, id uint, patch models.UserPatch) (*models.User, error)
	DeactivateUser(ctx context.Context, id uint) error
	FindMatches(ctx context.Context, id uint, skip, limit int) ([]matching.Match, error)
}

type userService struct {
	repo     repository.UserRepository
	engine   *matching.Engine
	observer events.Observer
}

func NewUserService(repo repository.UserRepository, engine *matching.Engine, observer events.Observer) UserService {
	if observer == nil {
		observer = events.Nop
	}
	return &userService{repo: repo, engine: engine, observer: observer}
}

func (s *userService) CreateUser(ctx context.Context, input models.CreateUserInput) (*models.User, error) {
	user := input.ToUser()
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.observer.Notify(ctx, events.NewEvent(user.ID, events.ActionCreated))
	return user, nil
}

func (s *userService) ListUsers(ctx context.Context, skip, limit int) ([]models.User, error) {
	return s.repo.List(ctx, skip, limit)
}

func (s *userService) GetUser(ctx context.Context, id uint) (*models.User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *userService) UpdateUser(ctx context.Context, id uint, patch models.UserPatch) (*models.User, error) {
	user, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}

	s.observer.Notify(ctx, events.NewEvent(id, events.ActionUpdated))
	return user, nil
}

func (s *userService) DeactivateUser(ctx context.Context, id uint) error {
	if err := s.repo.Deactivate(ctx, id); err != nil {
		return err
	}

	s.observer.Notify(ctx, events.NewEvent(id, events.ActionDeactivated))
	return nil
}

func (s *userService) FindMatches(ctx context.Context, id uint, skip, limit int) (matches []matching.Match, err error) {
	start := time.Now()
	defer func() {
		metrics.MatchDuration.Observe(time.Since(start).Seconds())
		metrics.MatchRequestsTotal.WithLabelValues(matchOutcome(err)).Inc()
	}()

	requester, err := s.repo.GetActiveByID(ctx, id)
	if err != nil {
		return nil, err
	}

	candidates, err := s.repo.FindCandidates(ctx, requester)
	if err != nil {
		return nil, err
	}
	metrics.MatchCandidates.Observe(float64(len(candidates)))

	return s.engine.Rank(requester, candidates, skip, limit), nil
}

func matchOutcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, repository.ErrNotFound):
		return "not_found"
	default:
		return "error"
	}
}
