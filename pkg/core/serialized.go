package core

import (
	"fmt"
	"time"

	"github.com/aretw0/astronote/pkg/scheduler"
)

// SerializedNote is the storage-safe projection of a Note.
//
// The scheduler's concrete type and state are folded into a self-describing
// map carrying a "type" tag, so both backends can hold notes whose algorithm
// varies over time without a schema change, and a reader never has to know
// in advance which algorithm wrote the record.
//
// ID is relational-backend bookkeeping and is excluded from the file backend
// (yaml:"-").
type SerializedNote struct {
	ID        int64          `json:"id" yaml:"-"`
	Identity  string         `json:"identity" yaml:"identity"`
	NextDue   time.Time      `json:"next_due" yaml:"next_due"`
	Scheduler map[string]any `json:"scheduler" yaml:"scheduler"`
}

// Serialize projects the note into its storage form.
func (n *Note) Serialize() (SerializedNote, error) {
	state, err := scheduler.Encode(n.Scheduler)
	if err != nil {
		return SerializedNote{}, fmt.Errorf("%w: %s: %v", ErrSerialization, n.Identity, err)
	}
	return SerializedNote{
		ID:        n.ID,
		Identity:  n.Identity,
		NextDue:   n.NextDue,
		Scheduler: state,
	}, nil
}

// Deserialize reconstructs the in-memory Note, dispatching on the scheduler
// type tag. Fails with scheduler.ErrUnknownType for tags written by an
// algorithm this build does not know.
func (s SerializedNote) Deserialize() (*Note, error) {
	alg, err := scheduler.Decode(s.Scheduler)
	if err != nil {
		return nil, fmt.Errorf("failed to decode scheduler for %s: %w", s.Identity, err)
	}
	return &Note{
		ID:        s.ID,
		Identity:  s.Identity,
		NextDue:   s.NextDue,
		Scheduler: alg,
	}, nil
}
