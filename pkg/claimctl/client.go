package claimctl

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/goccy/go-json"
)

const requestTimeout = 10 * time.Second

// Client talks to the GigSpace API with a session bearer token. It
// implements both ProfileFetcher and ClaimSubmitter.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL:    baseURL,
		token:      token,
		httpClient: &http.Client{Timeout: requestTimeout},
	}
}

type profileResponse struct {
	Success bool `json:"success"`
	User    struct {
		Balance        int   `json:"balance"`
		DailyStreak    int   `json:"daily_streak"`
		LastDailyClaim int64 `json:"last_daily_claim"`
	} `json:"user"`
}

func (c *Client) FetchProfile(ctx context.Context) (*Profile, error) {
	status, body, err := c.do(ctx, http.MethodGet, "/api/v1/users/profile", "fetch profile")
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, &NetworkError{Op: "fetch profile", Err: fmt.Errorf("unexpected status %d", status)}
	}

	var out profileResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, &NetworkError{Op: "fetch profile", Err: fmt.Errorf("malformed response: %w", err)}
	}

	return &Profile{
		Balance:        out.User.Balance,
		DailyStreak:    out.User.DailyStreak,
		LastDailyClaim: out.User.LastDailyClaim,
	}, nil
}

type claimResponse struct {
	Success    bool   `json:"success"`
	Message    string `json:"message"`
	Amount     int    `json:"amount"`
	Streak     int    `json:"streak"`
	NewBalance int    `json:"new_balance"`
}

func (c *Client) SubmitClaim(ctx context.Context) (*ClaimResult, error) {
	status, body, err := c.do(ctx, http.MethodPost, "/api/v1/users/claim-daily", "submit claim")
	if err != nil {
		return nil, err
	}

	// A 4xx with a server message is a rejection (stale client view of
	// the cooldown), not a transport failure. Auth failures are not
	// rejections: an expired session must not read as "on cooldown".
	if status >= 400 && status < 500 &&
		status != http.StatusUnauthorized && status != http.StatusForbidden {
		var rejection struct {
			Message string `json:"message"`
		}
		if err := json.Unmarshal(body, &rejection); err == nil && rejection.Message != "" {
			return nil, &ClaimRejectedError{Message: rejection.Message}
		}
	}
	if status != http.StatusOK {
		return nil, &NetworkError{Op: "submit claim", Err: fmt.Errorf("unexpected status %d", status)}
	}

	var out claimResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, &NetworkError{Op: "submit claim", Err: fmt.Errorf("malformed response: %w", err)}
	}

	return &ClaimResult{
		Message:    out.Message,
		Amount:     out.Amount,
		NewBalance: out.NewBalance,
		Streak:     out.Streak,
	}, nil
}

func (c *Client) do(ctx context.Context, method, path, op string) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, nil)
	if err != nil {
		return 0, nil, &NetworkError{Op: op, Err: err}
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, &NetworkError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, &NetworkError{Op: op, Err: err}
	}

	return resp.StatusCode, body, nil
}
