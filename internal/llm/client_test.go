package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/googleapi"
)

func newRetryClient(maxRetries int) (*GeminiClient, *[]time.Duration) {
	var sleeps []time.Duration
	c := &GeminiClient{
		config: &Config{MaxRetries: maxRetries, RetryBackoff: 100 * time.Millisecond},
		sleep: func(_ context.Context, d time.Duration) error {
			sleeps = append(sleeps, d)
			return nil
		},
	}
	return c, &sleeps
}

func TestRetry_TransientThenSuccess(t *testing.T) {
	c, sleeps := newRetryClient(3)
	calls := 0

	err := c.retry(context.Background(), "embed", "test-model", func() error {
		calls++
		if calls < 3 {
			return &googleapi.Error{Code: http.StatusServiceUnavailable}
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, calls)
	assert.Equal(t, []time.Duration{100 * time.Millisecond, 200 * time.Millisecond}, *sleeps)
}

func TestRetry_PermanentErrorFailsFast(t *testing.T) {
	c, sleeps := newRetryClient(3)
	calls := 0

	err := c.retry(context.Background(), "generate", "test-model", func() error {
		calls++
		return &googleapi.Error{Code: http.StatusBadRequest}
	})
	require.Error(t, err)
	assert.Equal(t, 1, calls)
	assert.Empty(t, *sleeps)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "generate", apiErr.Op)
	assert.Equal(t, "test-model", apiErr.Model)
}

func TestRetry_GivesUpAfterMaxRetries(t *testing.T) {
	c, sleeps := newRetryClient(2)
	calls := 0

	err := c.retry(context.Background(), "embed", "m", func() error {
		calls++
		return &googleapi.Error{Code: http.StatusTooManyRequests}
	})
	require.Error(t, err)
	assert.Equal(t, 3, calls)
	assert.Len(t, *sleeps, 2)
	assert.Contains(t, err.Error(), "3 attempt(s)")
}

func TestRetry_StopsWhenContextDone(t *testing.T) {
	c, _ := newRetryClient(5)
	c.sleep = sleepCtx
	c.config.RetryBackoff = time.Hour

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := c.retry(ctx, "embed", "m", func() error {
		return fmt.Errorf("%w: no candidates", errEmptyResponse)
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestIsTransient(t *testing.T) {
	assert.True(t, isTransient(&googleapi.Error{Code: http.StatusInternalServerError}))
	assert.True(t, isTransient(&googleapi.Error{Code: http.StatusTooManyRequests}))
	assert.True(t, isTransient(fmt.Errorf("wrapped: %w", errEmptyResponse)))
	assert.False(t, isTransient(&googleapi.Error{Code: http.StatusForbidden}))
	assert.False(t, isTransient(context.DeadlineExceeded))
	assert.False(t, isTransient(errors.New("invalid argument")))
}

func TestResponseText(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []genai.Part{genai.Text("go, "), genai.Text("kubernetes")}},
		}},
	}
	text, err := responseText(resp)
	require.NoError(t, err)
	assert.Equal(t, "go, kubernetes", text)

	_, err = responseText(&genai.GenerateContentResponse{})
	assert.ErrorIs(t, err, errEmptyResponse)

	_, err = responseText(&genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{FinishReason: genai.FinishReasonSafety}},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "safety")
}

func TestTruncateRunes(t *testing.T) {
	assert.Equal(t, "héllo", truncateRunes("héllo", 0))
	assert.Equal(t, "hél", truncateRunes("héllo", 3))
	assert.Equal(t, "héllo", truncateRunes("héllo", 10))
}
