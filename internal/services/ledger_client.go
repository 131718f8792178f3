package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// LedgerClient talks to the identity & reputation ledger service over its
// internal HTTP contract.
type LedgerClient struct {
	baseURL    string
	httpClient *http.Client
	log        *zap.Logger
}

func NewLedgerClient(baseURL string, log *zap.Logger) *LedgerClient {
	return &LedgerClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 5 * time.Second,
		},
		log: log,
	}
}

type LedgerUserInfo struct {
	ID         uuid.UUID `json:"id"`
	Email      string    `json:"email"`
	Username   string    `json:"username"`
	Role       string    `json:"role"`
	Reputation int       `json:"reputation"`
}

// Me resolves the caller's profile from their bearer token. Used only to
// denormalize the username into audit entries; callers treat failure as
// non-fatal.
func (c *LedgerClient) Me(ctx context.Context, token string) (*LedgerUserInfo, error) {
	url := fmt.Sprintf("%s/auth/me", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ledger service unavailable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("ledger service returned %d: %s", resp.StatusCode, string(body))
	}

	var info LedgerUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, err
	}
	return &info, nil
}

type ReputationResult struct {
	UserID     uuid.UUID `json:"userId"`
	Reputation int       `json:"reputation"`
	Role       string    `json:"role"`
	Promoted   bool      `json:"promoted"`
}

// AdjustReputation delivers one reputation delta. The deliveryID lets the
// ledger dedupe replays of the same outbox entry. A non-2xx status is an
// error so the outbox dispatcher retries it.
func (c *LedgerClient) AdjustReputation(ctx context.Context, userID uuid.UUID, points int, deliveryID uuid.UUID) (*ReputationResult, error) {
	body, err := json.Marshal(map[string]any{"points": points, "deliveryId": deliveryID})
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/users/%s/reputation", c.baseURL, userID.String())
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, strings.NewReader(string(body)))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ledger service unavailable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("ledger service returned %d: %s", resp.StatusCode, string(b))
	}

	var result ReputationResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}
	return &result, nil
}
