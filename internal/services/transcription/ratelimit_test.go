package transcription

import (
	"context"
	"testing"
	"time"

	apperrors "github.com/scribeworks/transcriber-api/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSlidingWindowLimiter_CheckAndAdmit(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		count     int64
		limit     int
		wantAdmit bool
	}{
		{name: "no records admits", count: 0, limit: 4, wantAdmit: true},
		{name: "below limit admits", count: 3, limit: 4, wantAdmit: true},
		{name: "at limit denies", count: 4, limit: 4, wantAdmit: false},
		{name: "above limit denies", count: 9, limit: 4, wantAdmit: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockRepository)
			limiter := NewSlidingWindowLimiter(mockRepo, 24*time.Hour, tt.limit)
			limiter.now = func() time.Time { return now }

			mockRepo.On("CountByUserSince", ctx, uint(1), now.Add(-24*time.Hour)).
				Return(tt.count, nil)

			err := limiter.CheckAndAdmit(ctx, 1)
			if tt.wantAdmit {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.True(t, apperrors.Is(err, apperrors.ErrCodeAPIRateLimit))
			}
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestSlidingWindowLimiter_WindowSlides(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockRepository)
	limiter := NewSlidingWindowLimiter(mockRepo, time.Hour, 4)

	first := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	second := first.Add(30 * time.Minute)

	// The cutoff must be recomputed against the current time on every
	// check, not frozen at construction.
	limiter.now = func() time.Time { return first }
	mockRepo.On("CountByUserSince", ctx, uint(1), first.Add(-time.Hour)).Return(int64(0), nil).Once()
	require.NoError(t, limiter.CheckAndAdmit(ctx, 1))

	limiter.now = func() time.Time { return second }
	mockRepo.On("CountByUserSince", ctx, uint(1), second.Add(-time.Hour)).Return(int64(0), nil).Once()
	require.NoError(t, limiter.CheckAndAdmit(ctx, 1))

	mockRepo.AssertExpectations(t)
}

func TestSlidingWindowLimiter_Defaults(t *testing.T) {
	mockRepo := new(MockRepository)
	limiter := NewSlidingWindowLimiter(mockRepo, 0, 0)

	assert.Equal(t, 24*time.Hour, limiter.window)
	assert.Equal(t, int64(4), limiter.limit)
}

func TestSlidingWindowLimiter_RepositoryError(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockRepository)
	limiter := NewSlidingWindowLimiter(mockRepo, 24*time.Hour, 4)

	mockRepo.On("CountByUserSince", ctx, uint(1), mock.AnythingOfType("time.Time")).
		Return(int64(0), assert.AnError)

	err := limiter.CheckAndAdmit(ctx, 1)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrCodeDatabaseQuery))
}
