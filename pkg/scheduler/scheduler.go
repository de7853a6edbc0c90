// Package scheduler defines the spaced-repetition contract and the codec that
// lets stores persist algorithm state without knowing its concrete type.
package scheduler

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// Sentinel errors for the scheduler package.
// Use errors.Is to check: errors.Is(err, scheduler.ErrUnknownType)
var (
	ErrUnknownType = errors.New("astronote: unknown scheduler type")
	ErrOverflow    = errors.New("astronote: date arithmetic out of range")
)

// Quality bounds for a review response.
const (
	MinQuality = 0
	MaxQuality = 6
)

// Algorithm is the capability contract for a spaced-repetition strategy.
//
// Implementations own their internal state and must expose it through
// exported, JSON/YAML-taggable fields so the codec can round-trip it.
// Quality outside [MinQuality, MaxQuality] is clamped to the nearest bound;
// callers that want strict validation must reject before calling.
type Algorithm interface {
	// Type returns the stable tag identifying the algorithm in storage.
	Type() string

	// Advance consumes a review response, mutates internal state and returns
	// the next due timestamp. Deterministic given state, quality and now.
	Advance(quality int, now time.Time) (time.Time, error)

	// Preview performs the same computation as Advance against a disposable
	// copy of the state. The receiver is never mutated.
	Preview(quality int, now time.Time) (time.Time, error)
}

// factories maps a storage tag to a constructor returning a zero-value
// instance of the algorithm. A closed registry: algorithms register at
// package init, stores only ever decode tags registered here.
var factories = map[string]func() Algorithm{}

// Register makes an algorithm decodable under the given tag.
// Registering a duplicate tag panics; tags are part of the storage format.
func Register(tag string, factory func() Algorithm) {
	if _, dup := factories[tag]; dup {
		panic(fmt.Sprintf("scheduler: duplicate tag %q", tag))
	}
	factories[tag] = factory
}

// Default returns a fresh instance of the default algorithm (SM-2).
func Default() Algorithm {
	return NewSuperMemo2()
}

// typeKey is the discriminant field in the serialized form.
const typeKey = "type"

// Encode projects an algorithm into a self-describing map: the algorithm's
// state fields plus a "type" tag. The map marshals identically to JSON
// (relational backend) and YAML (file backend).
func Encode(a Algorithm) (map[string]any, error) {
	raw, err := json.Marshal(a)
	if err != nil {
		return nil, fmt.Errorf("failed to encode scheduler state: %w", err)
	}
	state := make(map[string]any)
	if err := json.Unmarshal(raw, &state); err != nil {
		return nil, fmt.Errorf("failed to encode scheduler state: %w", err)
	}
	state[typeKey] = a.Type()
	return state, nil
}

// Decode reconstructs an algorithm from its serialized form.
// Returns ErrUnknownType when the tag is missing or unregistered, so a store
// written by a newer version fails loudly instead of decoding garbage.
func Decode(state map[string]any) (Algorithm, error) {
	tag, ok := state[typeKey].(string)
	if !ok {
		return nil, fmt.Errorf("%w: missing %q field", ErrUnknownType, typeKey)
	}
	factory, ok := factories[tag]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, tag)
	}

	fields := make(map[string]any, len(state))
	for k, v := range state {
		if k != typeKey {
			fields[k] = v
		}
	}
	raw, err := json.Marshal(fields)
	if err != nil {
		return nil, fmt.Errorf("failed to decode scheduler state: %w", err)
	}
	a := factory()
	if err := json.Unmarshal(raw, a); err != nil {
		return nil, fmt.Errorf("failed to decode %q scheduler state: %w", tag, err)
	}
	return a, nil
}

// clampQuality folds out-of-range responses to the nearest bound.
// Lenient on purpose; strict rejection belongs to the caller.
func clampQuality(q int) int {
	if q < MinQuality {
		return MinQuality
	}
	if q > MaxQuality {
		return MaxQuality
	}
	return q
}

// dueAfter computes now + days with an explicit range check.
// RFC3339, SQLite text ordering and YAML timestamps all stop at year 9999,
// so anything past that is an overflow, not a schedulable date.
func dueAfter(now time.Time, days int) (time.Time, error) {
	due := now.AddDate(0, 0, days)
	if due.Year() > 9999 || due.Before(now) && days > 0 {
		return time.Time{}, fmt.Errorf("%w: %d days from %s", ErrOverflow, days, now.Format(time.RFC3339))
	}
	return due, nil
}
