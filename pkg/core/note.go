package core

import (
	"fmt"
	"time"

	"github.com/aretw0/astronote/pkg/scheduler"
)

// Note is the central entity of the domain: a tracked file bound to a due
// date and an owned scheduling-algorithm instance.
//
// Identity is a slash-separated path relative to the configured root, unique
// within a store. NextDue is always the last value the scheduler computed;
// Reset and ForceNext are the only sanctioned ways to change it otherwise.
type Note struct {
	ID        int64
	Identity  string
	NextDue   time.Time
	Scheduler scheduler.Algorithm
}

// New creates a Note for the given identity with a fresh default scheduler
// and a due date of now, i.e. immediately reviewable.
func New(identity string, now time.Time) *Note {
	return &Note{
		Identity:  identity,
		NextDue:   now,
		Scheduler: scheduler.Default(),
	}
}

// Review feeds a response quality to the scheduler and advances NextDue.
func (n *Note) Review(quality int, now time.Time) error {
	due, err := n.Scheduler.Advance(quality, now)
	if err != nil {
		return fmt.Errorf("failed to advance schedule for %s: %w", n.Identity, err)
	}
	n.NextDue = due
	return nil
}

// Previews returns the due date each response quality would produce,
// indexed by quality. The note is not mutated.
func (n *Note) Previews(now time.Time) ([scheduler.MaxQuality + 1]time.Time, error) {
	var out [scheduler.MaxQuality + 1]time.Time
	for q := scheduler.MinQuality; q <= scheduler.MaxQuality; q++ {
		due, err := n.Scheduler.Preview(q, now)
		if err != nil {
			return out, fmt.Errorf("failed to preview quality %d for %s: %w", q, n.Identity, err)
		}
		out[q] = due
	}
	return out, nil
}

// Reset discards the scheduler state wholesale, replacing it with a fresh
// default instance and making the note due now. Destructive: all repetition
// history is lost.
func (n *Note) Reset(now time.Time) {
	n.Scheduler = scheduler.Default()
	n.NextDue = now
}

// ForceNext reschedules the note to now + days without consulting the
// scheduler. An escape hatch for manual rescheduling: the scheduler state is
// left as-is, so NextDue may no longer match what the algorithm would have
// computed.
func (n *Note) ForceNext(days int, now time.Time) error {
	due := now.AddDate(0, 0, days)
	if due.Year() > 9999 {
		return fmt.Errorf("%w: %d days from %s", scheduler.ErrOverflow, days, now.Format(time.RFC3339))
	}
	n.NextDue = due
	return nil
}

// Due reports whether the note should be surfaced for review at the given time.
func (n *Note) Due(now time.Time) bool {
	return !n.NextDue.After(now)
}
