// Package streak evaluates daily-activity streak continuity. The evaluation
// is pure computation over already-fetched profile values; persisting the
// outcome is the caller's responsibility.
package streak

import "time"

// LostEvent is emitted exactly once when a streak breaks, carrying the
// streak length the user just lost.
type LostEvent struct {
	PreviousStreak int `json:"previous_streak"`
}

// Result is the outcome of a streak evaluation.
type Result struct {
	CurrentStreak int        `json:"current_streak"`
	LongestStreak int        `json:"longest_streak"`
	Lost          *LostEvent `json:"streak_lost,omitempty"`
	// Counted reports whether today was newly counted. False means the user
	// already checked in today and nothing should be written back.
	Counted bool `json:"-"`
}

// Evaluate decides whether today's visit extends, resets or starts a streak.
//
// Re-invocation on a day that has already been counted is a no-op, which
// makes the caller's once-per-day write idempotent. A one-day gap extends
// the streak; a longer gap with a live streak resets it to 1 and emits a
// LostEvent. A first visit, or a gap after the streak already hit zero,
// starts at 1 without an event. The longest streak never decreases.
func Evaluate(current, longest int, lastActive *time.Time, today time.Time) Result {
	if lastActive != nil && sameDay(*lastActive, today) {
		return Result{CurrentStreak: current, LongestStreak: longest}
	}

	if lastActive != nil && daysBetween(*lastActive, today) == 1 {
		next := current + 1
		return Result{
			CurrentStreak: next,
			LongestStreak: max(longest, next),
			Counted:       true,
		}
	}

	res := Result{CurrentStreak: 1, LongestStreak: max(longest, 1), Counted: true}
	if lastActive != nil && current > 0 {
		res.Lost = &LostEvent{PreviousStreak: current}
	}
	return res
}

// sameDay reports whether a and b fall on the same calendar date.
func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// daysBetween returns the whole calendar days from a to b, ignoring the
// time-of-day component of both.
func daysBetween(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	start := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	end := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(end.Sub(start).Hours() / 24)
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
