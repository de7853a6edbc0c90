package core

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/astronote/pkg/scheduler"
)

// Service handles the business logic for tracked notes on top of a NoteStore.
// The clock is injected so review flows are testable against a fixed time.
type Service struct {
	store  NoteStore
	now    func() time.Time
	logger *slog.Logger
}

// NewService creates a Service over the given store.
func NewService(store NoteStore, opts ...ServiceOption) *Service {
	s := &Service{
		store:  store,
		now:    utcNow,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// utcNow is the default service clock. The engine stores and compares
// timestamps in UTC at second granularity, so the clock hands out exactly
// what the backends can persist.
func utcNow() time.Time {
	return time.Now().UTC().Truncate(time.Second)
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithClock overrides the service clock.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *Service) { s.now = now }
}

// WithLogger sets the logger for the service.
func WithLogger(logger *slog.Logger) ServiceOption {
	return func(s *Service) { s.logger = logger }
}

// Track registers the given identities for review, each with a fresh default
// scheduler and due immediately. Already-tracked identities are left alone
// (Create is idempotent). Returns the number of identities processed.
func (s *Service) Track(ctx context.Context, identities []string) (int, error) {
	now := s.now()
	for _, identity := range identities {
		if identity == "" {
			return 0, fmt.Errorf("%w: empty identity", ErrInvalidIdentity)
		}
		if err := s.store.Create(ctx, New(identity, now)); err != nil {
			return 0, err
		}
		s.logger.Debug("tracked note", "identity", identity)
	}
	return len(identities), nil
}

// Due returns the notes scheduled for review, oldest due first.
// ignoreSchedule surfaces every note regardless of due date.
func (s *Service) Due(ctx context.Context, limit int, ignoreSchedule bool) ([]*Note, error) {
	return s.store.ListDue(ctx, limit, s.now(), ignoreSchedule)
}

// Get retrieves a single tracked note.
func (s *Service) Get(ctx context.Context, identity string) (*Note, error) {
	return s.store.FindByIdentity(ctx, identity)
}

// Review applies a response quality to the note and persists the advanced
// schedule. Quality outside [0,6] is rejected here; the algorithm's own
// clamping is a second line of defense, not the policy.
func (s *Service) Review(ctx context.Context, identity string, quality int) (*Note, error) {
	if quality < scheduler.MinQuality || quality > scheduler.MaxQuality {
		return nil, fmt.Errorf("%w: %d", ErrInvalidQuality, quality)
	}
	note, err := s.store.FindByIdentity(ctx, identity)
	if err != nil {
		return nil, err
	}
	if err := note.Review(quality, s.now()); err != nil {
		return nil, err
	}
	if err := s.store.Update(ctx, note); err != nil {
		return nil, err
	}
	s.logger.Debug("reviewed note", "identity", identity, "quality", quality, "next_due", note.NextDue)
	return note, nil
}

// Previews returns the due date each response quality would yield for the
// note, without committing anything.
func (s *Service) Previews(ctx context.Context, identity string) ([scheduler.MaxQuality + 1]time.Time, error) {
	note, err := s.store.FindByIdentity(ctx, identity)
	if err != nil {
		return [scheduler.MaxQuality + 1]time.Time{}, err
	}
	return note.Previews(s.now())
}

// Reset replaces the note's scheduler with a fresh default and makes it due
// now. Destructive by design: repetition history is gone afterwards.
func (s *Service) Reset(ctx context.Context, identity string) (*Note, error) {
	note, err := s.store.FindByIdentity(ctx, identity)
	if err != nil {
		return nil, err
	}
	note.Reset(s.now())
	if err := s.store.Update(ctx, note); err != nil {
		return nil, err
	}
	s.logger.Debug("reset note", "identity", identity)
	return note, nil
}

// Postpone reschedules the note to now + days, bypassing the scheduler.
func (s *Service) Postpone(ctx context.Context, identity string, days int) (*Note, error) {
	note, err := s.store.FindByIdentity(ctx, identity)
	if err != nil {
		return nil, err
	}
	if err := note.ForceNext(days, s.now()); err != nil {
		return nil, err
	}
	if err := s.store.Update(ctx, note); err != nil {
		return nil, err
	}
	s.logger.Debug("postponed note", "identity", identity, "days", days)
	return note, nil
}

// Remove stops tracking the note. ErrNotFound if it was never tracked.
func (s *Service) Remove(ctx context.Context, identity string) error {
	note, err := s.store.FindByIdentity(ctx, identity)
	if err != nil {
		return err
	}
	return s.store.Delete(ctx, note)
}
