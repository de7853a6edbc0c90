package scheduler

import (
	"math"
	"time"
)

// TypeSuperMemo2 is the storage tag for the SM-2 algorithm.
const TypeSuperMemo2 = "SuperMemo2"

// SM-2 constants.
const (
	intervalFirst  = 1 // days after the first successful repetition
	intervalSecond = 6 // days after the second
	passThreshold  = 3 // quality below this is a lapse
	easinessFloor  = 1.3
	easinessStart  = 2.5
)

func init() {
	Register(TypeSuperMemo2, func() Algorithm { return &SuperMemo2{} })
}

// SuperMemo2 implements the SM-2 spaced-repetition recurrence.
//
// Counter is the number of repetitions since the last lapse, Interval the
// days until the next review after a successful repetition, Easiness the
// multiplicative scaling applied to intervals (never below 1.3).
// Interval is derived from Counter, Easiness and the response quality;
// callers must not set it directly.
type SuperMemo2 struct {
	Counter  int     `json:"counter" yaml:"counter"`
	Interval int     `json:"interval" yaml:"interval"`
	Easiness float64 `json:"easiness_factor" yaml:"easiness_factor"`
}

// NewSuperMemo2 returns SM-2 in its initial state: no repetitions yet,
// easiness factor 2.5.
func NewSuperMemo2() *SuperMemo2 {
	return &SuperMemo2{Counter: 0, Interval: 0, Easiness: easinessStart}
}

// Type implements Algorithm.
func (s *SuperMemo2) Type() string { return TypeSuperMemo2 }

// Advance implements Algorithm. The new state is computed on a scratch copy
// and only committed once the due date is known to be representable, so a
// failed call leaves the receiver untouched.
func (s *SuperMemo2) Advance(quality int, now time.Time) (time.Time, error) {
	next := *s
	due, err := next.step(quality, now)
	if err != nil {
		return time.Time{}, err
	}
	*s = next
	return due, nil
}

// Preview implements Algorithm. Same arithmetic as Advance, discarded copy.
func (s *SuperMemo2) Preview(quality int, now time.Time) (time.Time, error) {
	next := *s
	return next.step(quality, now)
}

// step advances the recurrence in place and returns the next due timestamp.
// Whole-day granularity: the due date keeps now's time of day.
func (s *SuperMemo2) step(quality int, now time.Time) (time.Time, error) {
	q := clampQuality(quality)
	if err := s.updateInterval(q); err != nil {
		return time.Time{}, err
	}
	return dueAfter(now, s.Interval)
}

// updateInterval applies one repetition with response quality q.
//
// The recurrence: 1 day after the first repetition, 6 after the second, then
// ceil(previous interval x easiness). A lapse (q < 3) at the third repetition
// or later zeroes the counter and restarts the cycle within the same call,
// which always lands on the 1-day branch.
func (s *SuperMemo2) updateInterval(q int) error {
	for {
		s.Counter++
		switch {
		case s.Counter == 1:
			s.Interval = intervalFirst
		case s.Counter == 2:
			s.Interval = intervalSecond
		default:
			if q < passThreshold {
				s.Counter = 0
				continue
			}
			s.updateEasiness(q)
			scaled := math.Ceil(float64(s.Interval) * s.Easiness)
			if scaled > math.MaxInt32 {
				return ErrOverflow
			}
			s.Interval = int(scaled)
		}
		return nil
	}
}

// updateEasiness applies the SM-2 easiness update for quality q.
// The original formula is defined for q in [0,5]; a 6 counts as a 5 here
// even though the response scale goes to 6.
func (s *SuperMemo2) updateEasiness(q int) {
	if q > 5 {
		q = 5
	}
	diff := float64(5 - q)
	s.Easiness += 0.1 - diff*(0.08+diff*0.02)
	s.Easiness = math.Max(s.Easiness, easinessFloor)
}
