package claimctl

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClient_FetchProfile(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/v1/users/profile", r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"success": true,
			"user": {
				"balance": 320,
				"daily_streak": 5,
				"last_daily_claim": 1717243200000
			}
		}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-token")

	profile, err := client.FetchProfile(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 320, profile.Balance)
	assert.Equal(t, 5, profile.DailyStreak)
	assert.Equal(t, int64(1717243200000), profile.LastDailyClaim)
}

func TestClient_FetchProfileUnauthorized(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"success": false, "message": "Invalid or expired session"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "stale-token")

	_, err := client.FetchProfile(context.Background())

	// An auth failure on the profile endpoint is not a claim rejection.
	var netErr *NetworkError
	assert.ErrorAs(t, err, &netErr)
	assert.Equal(t, "fetch profile", netErr.Op)
}

func TestClient_SubmitClaim(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/users/claim-daily", r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"success": true,
			"message": "Claimed 10 GC! Streak: 7 days",
			"amount": 10,
			"streak": 7,
			"new_balance": 510
		}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-token")

	result, err := client.SubmitClaim(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, "Claimed 10 GC! Streak: 7 days", result.Message)
	assert.Equal(t, 10, result.Amount)
	assert.Equal(t, 7, result.Streak)
	assert.Equal(t, 510, result.NewBalance)
}

func TestClient_SubmitClaimRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"success": false, "message": "Daily bonus not ready yet"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-token")

	_, err := client.SubmitClaim(context.Background())

	var rejected *ClaimRejectedError
	assert.ErrorAs(t, err, &rejected)
	assert.Equal(t, "Daily bonus not ready yet", rejected.Message)
}

func TestClient_SubmitClaimUnauthorized(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"success": false, "message": "Invalid or expired session"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "stale-token")

	_, err := client.SubmitClaim(context.Background())

	// An expired session is a transport-level failure, never a
	// cooldown rejection, even though the body carries a message.
	var rejected *ClaimRejectedError
	assert.False(t, errors.As(err, &rejected))

	var netErr *NetworkError
	assert.ErrorAs(t, err, &netErr)
	assert.Equal(t, "submit claim", netErr.Op)
}

func TestClient_SubmitClaimServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-token")

	_, err := client.SubmitClaim(context.Background())

	var netErr *NetworkError
	assert.ErrorAs(t, err, &netErr)
}

func TestClient_ConnectionRefused(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := NewClient(server.URL, "test-token")

	_, err := client.FetchProfile(context.Background())

	var netErr *NetworkError
	assert.ErrorAs(t, err, &netErr)
}
