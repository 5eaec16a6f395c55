//go:build !testsignal

package crawler_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hanhngo/linkhound/internal/crawler"
)

func TestStatus_Bad(t *testing.T) {
	t.Parallel()

	assert.False(t, crawler.Status{Kind: crawler.StatusSuccess, Code: 200}.Bad())
	assert.True(t, crawler.Status{Kind: crawler.StatusFailure, Code: 404}.Bad())
	assert.True(t, crawler.Status{Kind: crawler.StatusUnreachable, Cause: errors.New("timeout")}.Bad())
}

func TestStatus_Detail(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		scenario string
		status   crawler.Status
		expected string
	}{
		{
			scenario: "success",
			status:   crawler.Status{Kind: crawler.StatusSuccess, Code: 200},
			expected: "http 200 OK",
		},
		{
			scenario: "failure",
			status:   crawler.Status{Kind: crawler.StatusFailure, Code: 404},
			expected: "http 404 Not Found",
		},
		{
			scenario: "server error",
			status:   crawler.Status{Kind: crawler.StatusFailure, Code: 500},
			expected: "http 500 Internal Server Error",
		},
		{
			scenario: "unreachable",
			status:   crawler.Status{Kind: crawler.StatusUnreachable, Cause: errors.New("connection refused")},
			expected: "unreachable: connection refused",
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.scenario, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.expected, tc.status.Detail())
		})
	}
}
