package transcription

import (
	"context"
	"fmt"
	"time"

	apperrors "github.com/scribeworks/transcriber-api/pkg/errors"
)

// SlidingWindowLimiter caps per-user transcriptions using a sliding window
// log: it recounts the user's persisted records against "now" on every
// check, so the window boundary moves continuously instead of resetting at
// fixed intervals.
//
// The check and the caller's subsequent record insert are not atomic, so
// simultaneous requests from one user can both pass before either record
// lands. Enforcement is eventually consistent under bursts.
type SlidingWindowLimiter struct {
	repo   Repository
	window time.Duration
	limit  int64

	// now is swapped out in tests
	now func() time.Time
}

// NewSlidingWindowLimiter creates a limiter counting repo records
func NewSlidingWindowLimiter(repo Repository, window time.Duration, limit int) *SlidingWindowLimiter {
	if window <= 0 {
		window = 24 * time.Hour
	}
	if limit <= 0 {
		limit = 4
	}
	return &SlidingWindowLimiter{
		repo:   repo,
		window: window,
		limit:  int64(limit),
		now:    time.Now,
	}
}

// CheckAndAdmit denies when the user already has limit-many records inside
// the trailing window. The count is recomputed fresh per call; nothing is
// cached and nothing is written.
func (l *SlidingWindowLimiter) CheckAndAdmit(ctx context.Context, userID uint) error {
	windowStart := l.now().Add(-l.window)

	count, err := l.repo.CountByUserSince(ctx, userID, windowStart)
	if err != nil {
		return apperrors.DatabaseError("rate-limit count", err)
	}

	if count >= l.limit {
		return apperrors.RateLimitError("transcriptions",
			fmt.Sprintf("%d per %s", l.limit, l.window)).
			WithDetail("user_id", userID).
			WithDetail("window_count", count)
	}

	return nil
}
