package core_test

import (
	"context"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/aretw0/astronote/pkg/core"
	"github.com/aretw0/astronote/pkg/scheduler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memStore implements core.NoteStore in memory with the same idempotence
// semantics as the real backends.
type memStore struct {
	notes map[string]core.SerializedNote
}

func newMemStore() *memStore {
	return &memStore{notes: make(map[string]core.SerializedNote)}
}

func (m *memStore) Initialize(ctx context.Context) error { return nil }
func (m *memStore) Close() error                         { return nil }

func (m *memStore) Create(ctx context.Context, n *core.Note) error {
	if _, exists := m.notes[n.Identity]; exists {
		return nil
	}
	s, err := n.Serialize()
	if err != nil {
		return err
	}
	m.notes[n.Identity] = s
	return nil
}

func (m *memStore) Update(ctx context.Context, n *core.Note) error {
	if _, exists := m.notes[n.Identity]; !exists {
		return nil
	}
	s, err := n.Serialize()
	if err != nil {
		return err
	}
	m.notes[n.Identity] = s
	return nil
}

func (m *memStore) FindByIdentity(ctx context.Context, identity string) (*core.Note, error) {
	s, ok := m.notes[identity]
	if !ok {
		return nil, fmt.Errorf("%w: %s", core.ErrNotFound, identity)
	}
	return s.Deserialize()
}

func (m *memStore) ListDue(ctx context.Context, limit int, now time.Time, ignoreSchedule bool) ([]*core.Note, error) {
	var out []*core.Note
	for _, s := range m.notes {
		note, err := s.Deserialize()
		if err != nil {
			return nil, err
		}
		if ignoreSchedule || note.Due(now) {
			out = append(out, note)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].NextDue.Before(out[j].NextDue) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *memStore) Delete(ctx context.Context, n *core.Note) error {
	if _, ok := m.notes[n.Identity]; !ok {
		return fmt.Errorf("%w: %s", core.ErrNotFound, n.Identity)
	}
	delete(m.notes, n.Identity)
	return nil
}

func fixedClock(t time.Time) core.ServiceOption {
	return core.WithClock(func() time.Time { return t })
}

func TestServiceTrackAndDue(t *testing.T) {
	now := time.Date(2026, 8, 25, 10, 0, 0, 0, time.UTC)
	store := newMemStore()
	svc := core.NewService(store, fixedClock(now))
	ctx := context.Background()

	n, err := svc.Track(ctx, []string{"a.md", "b/c.md"})
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	due, err := svc.Due(ctx, 0, false)
	require.NoError(t, err)
	assert.Len(t, due, 2, "new notes are due immediately")

	// Tracking again is a no-op, not an error.
	_, err = svc.Track(ctx, []string{"a.md"})
	require.NoError(t, err)
	due, err = svc.Due(ctx, 0, false)
	require.NoError(t, err)
	assert.Len(t, due, 2)
}

func TestServiceTrackRejectsEmptyIdentity(t *testing.T) {
	svc := core.NewService(newMemStore())
	_, err := svc.Track(context.Background(), []string{""})
	require.ErrorIs(t, err, core.ErrInvalidIdentity)
}

func TestServiceReview(t *testing.T) {
	now := time.Date(2026, 8, 25, 10, 0, 0, 0, time.UTC)
	store := newMemStore()
	svc := core.NewService(store, fixedClock(now))
	ctx := context.Background()

	_, err := svc.Track(ctx, []string{"a.md"})
	require.NoError(t, err)

	note, err := svc.Review(ctx, "a.md", 5)
	require.NoError(t, err)
	assert.True(t, note.NextDue.Equal(now.AddDate(0, 0, 1)))

	// The advanced schedule must have been persisted.
	stored, err := svc.Get(ctx, "a.md")
	require.NoError(t, err)
	assert.True(t, stored.NextDue.Equal(note.NextDue))

	due, err := svc.Due(ctx, 0, false)
	require.NoError(t, err)
	assert.Empty(t, due)

	due, err = svc.Due(ctx, 0, true)
	require.NoError(t, err)
	assert.Len(t, due, 1, "ignoreSchedule surfaces everything")
}

func TestServiceReviewRejectsOutOfRangeQuality(t *testing.T) {
	store := newMemStore()
	svc := core.NewService(store)
	ctx := context.Background()
	_, err := svc.Track(ctx, []string{"a.md"})
	require.NoError(t, err)

	for _, q := range []int{-1, 7, 100} {
		_, err := svc.Review(ctx, "a.md", q)
		assert.ErrorIs(t, err, core.ErrInvalidQuality, "quality %d", q)
	}
}

func TestServiceReviewMissingNote(t *testing.T) {
	svc := core.NewService(newMemStore())
	_, err := svc.Review(context.Background(), "ghost.md", 4)
	require.ErrorIs(t, err, core.ErrNotFound)
}

func TestServiceResetAndPostpone(t *testing.T) {
	now := time.Date(2026, 8, 25, 10, 0, 0, 0, time.UTC)
	store := newMemStore()
	svc := core.NewService(store, fixedClock(now))
	ctx := context.Background()

	_, err := svc.Track(ctx, []string{"a.md"})
	require.NoError(t, err)
	_, err = svc.Review(ctx, "a.md", 5)
	require.NoError(t, err)

	note, err := svc.Reset(ctx, "a.md")
	require.NoError(t, err)
	assert.True(t, note.NextDue.Equal(now))
	sm2 := note.Scheduler.(*scheduler.SuperMemo2)
	assert.Equal(t, 0, sm2.Counter)

	note, err = svc.Postpone(ctx, "a.md", 14)
	require.NoError(t, err)
	assert.True(t, note.NextDue.Equal(now.AddDate(0, 0, 14)))
	assert.Equal(t, 0, note.Scheduler.(*scheduler.SuperMemo2).Counter, "postpone leaves state alone")
}

func TestServiceRemove(t *testing.T) {
	store := newMemStore()
	svc := core.NewService(store)
	ctx := context.Background()

	_, err := svc.Track(ctx, []string{"a.md"})
	require.NoError(t, err)
	require.NoError(t, svc.Remove(ctx, "a.md"))

	err = svc.Remove(ctx, "a.md")
	require.ErrorIs(t, err, core.ErrNotFound)
}

func TestServicePreviewsMatchReview(t *testing.T) {
	now := time.Date(2026, 8, 25, 10, 0, 0, 0, time.UTC)
	store := newMemStore()
	svc := core.NewService(store, fixedClock(now))
	ctx := context.Background()

	_, err := svc.Track(ctx, []string{"a.md"})
	require.NoError(t, err)

	previews, err := svc.Previews(ctx, "a.md")
	require.NoError(t, err)

	note, err := svc.Review(ctx, "a.md", 4)
	require.NoError(t, err)
	assert.True(t, previews[4].Equal(note.NextDue))
}
