package github

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"testing"
	"time"

	gh "github.com/google/go-github/v80/github"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClientWithToken(t *testing.T) {
	t.Run("authenticated", func(t *testing.T) {
		client := NewClientWithToken(context.Background(), "token", nil)

		require.NotNil(t, client.GitHub())
		require.NotNil(t, client.RateLimiter())
	})

	t.Run("unauthenticated", func(t *testing.T) {
		client := NewClientWithToken(context.Background(), "", nil)

		require.NotNil(t, client.GitHub())
	})

	t.Run("uses the supplied limiter", func(t *testing.T) {
		rl := NewRateLimiter(0, nil)
		client := NewClientWithToken(context.Background(), "token", rl)

		assert.Same(t, rl, client.RateLimiter())
	})
}

func TestClient_SetBaseURL(t *testing.T) {
	client := NewClientWithHTTPClient(http.DefaultClient, nil)

	require.NoError(t, client.SetBaseURL("https://ghe.example.com/api/v3"))

	assert.Equal(t, "https://ghe.example.com/api/v3/", client.GitHub().BaseURL.String())
}

func TestClient_WrapError(t *testing.T) {
	client := NewClientWithHTTPClient(http.DefaultClient, nil)

	t.Run("returns nil for nil error", func(t *testing.T) {
		assert.NoError(t, client.wrapError(nil, "test operation"))
	})

	t.Run("wraps github ErrorResponse as APIError", func(t *testing.T) {
		testURL, _ := url.Parse("https://api.github.com/search/repositories")
		ghErr := &gh.ErrorResponse{
			Response: &http.Response{
				StatusCode: 422,
				Request:    &http.Request{URL: testURL},
			},
			Message: "Validation Failed",
		}

		err := client.wrapError(ghErr, "search")

		var apiErr *APIError
		require.True(t, errors.As(err, &apiErr))
		assert.Equal(t, 422, apiErr.StatusCode)
		assert.Equal(t, "Validation Failed", apiErr.Message)
		assert.Equal(t, testURL.String(), apiErr.URL)
		assert.True(t, IsValidationFailed(err))
	})

	t.Run("wraps github RateLimitError with its reset", func(t *testing.T) {
		reset := time.Now().Add(time.Hour).Truncate(time.Second)
		ghErr := &gh.RateLimitError{
			Rate: gh.Rate{
				Limit:     30,
				Remaining: 0,
				Reset:     gh.Timestamp{Time: reset},
			},
		}

		err := client.wrapError(ghErr, "search")

		var rateLimitErr *RateLimitError
		require.True(t, errors.As(err, &rateLimitErr))
		assert.Equal(t, 30, rateLimitErr.Limit)
		assert.Equal(t, 0, rateLimitErr.Remaining)
		assert.True(t, reset.Equal(rateLimitErr.ResetAt))
	})

	t.Run("wraps secondary rate limit", func(t *testing.T) {
		retry := 90 * time.Second
		err := client.wrapError(&gh.AbuseRateLimitError{RetryAfter: &retry}, "search")

		assert.True(t, IsRateLimited(err))
	})

	t.Run("treats 429 as rate limited", func(t *testing.T) {
		ghErr := &gh.ErrorResponse{Response: &http.Response{StatusCode: http.StatusTooManyRequests}}

		assert.True(t, IsRateLimited(client.wrapError(ghErr, "search")))
	})

	t.Run("wraps generic error with operation", func(t *testing.T) {
		err := client.wrapError(errors.New("network error"), "fetch data")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "fetch data")
		assert.Contains(t, err.Error(), "network error")
	})
}

func TestErrorHelpers(t *testing.T) {
	tests := []struct {
		name         string
		err          error
		validation   bool
		rateLimited  bool
		unauthorized bool
	}{
		{"422", &APIError{StatusCode: 422}, true, false, false},
		{"401", &APIError{StatusCode: 401}, false, false, true},
		{"404", &APIError{StatusCode: 404}, false, false, false},
		{"rate limit", &RateLimitError{}, false, true, false},
		{"wrapped rate limit", errors.Join(errors.New("ctx"), &RateLimitError{}), false, true, false},
		{"plain", errors.New("boom"), false, false, false},
		{"nil", nil, false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.validation, IsValidationFailed(tt.err))
			assert.Equal(t, tt.rateLimited, IsRateLimited(tt.err))
			assert.Equal(t, tt.unauthorized, IsUnauthorized(tt.err))
		})
	}
}

func TestAPIError_Error(t *testing.T) {
	err := &APIError{StatusCode: 500, Message: "Server Error", URL: "https://api.github.com/x"}

	assert.Equal(t, "github: API error 500: Server Error (URL: https://api.github.com/x)", err.Error())
}

func TestRateLimitError_Error(t *testing.T) {
	reset := time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)
	err := &RateLimitError{ResetAt: reset}

	assert.Contains(t, err.Error(), "rate limit exceeded")
	assert.Contains(t, err.Error(), "2024-01-15T10:30:00Z")
}
