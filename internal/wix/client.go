// Package wix talks to the Wix HTTP-function backend that owns the raw
// collections. Every endpoint expects a short-lived HS256 token whose subject
// claim identifies the collection being requested; the backend rejects
// anything else. The client downloads a collection and persists it as a
// pretty-printed JSON array so the prepared-data step and the insight hub can
// read it locally.
package wix

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	defaultTimeout  = 30 * time.Second
	defaultTokenTTL = 5 * time.Minute
)

// Client fetches collections from the Wix backend.
type Client struct {
	secret     []byte
	tokenTTL   time.Duration
	httpClient *http.Client
}

func NewClient(secret string) (*Client, error) {
	if secret == "" {
		return nil, errors.New("wix auth secret cannot be empty")
	}
	return &Client{
		secret:   []byte(secret),
		tokenTTL: defaultTokenTTL,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
	}, nil
}

// signToken issues a short-lived token for one collection subject.
func (c *Client) signToken(subject string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(c.tokenTTL)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
}

// FetchCollection downloads one collection and returns its decoded records.
// The backend answers data requests with a JSON array; an object payload is
// an error report and is surfaced as such.
func (c *Client) FetchCollection(ctx context.Context, endpoint, subject string) ([]any, error) {
	token, err := c.signToken(subject)
	if err != nil {
		return nil, fmt.Errorf("sign token for %s: %w", subject, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build request for %s: %w", endpoint, err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call wix endpoint %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read wix response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("wix endpoint returned status %d: %.200s", resp.StatusCode, body)
	}

	var records []any
	if err := json.Unmarshal(body, &records); err != nil {
		// The backend reports failures as {"error": "..."} objects.
		var report struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(body, &report) == nil && report.Error != "" {
			return nil, fmt.Errorf("wix endpoint error: %s", report.Error)
		}
		return nil, fmt.Errorf("decode wix payload: %w", err)
	}
	return records, nil
}

// Download fetches a collection and persists it to localPath, creating the
// parent directory if needed. It returns the number of records written.
func (c *Client) Download(ctx context.Context, endpoint, subject, localPath string) (int, error) {
	records, err := c.FetchCollection(ctx, endpoint, subject)
	if err != nil {
		return 0, err
	}
	if err := WriteRecords(localPath, records); err != nil {
		return 0, err
	}
	return len(records), nil
}

// WriteRecords persists an already-fetched record collection to localPath.
func WriteRecords(localPath string, records []any) error {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encode records: %w", err)
	}
	if dir := filepath.Dir(localPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create data directory: %w", err)
		}
	}
	if err := os.WriteFile(localPath, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", localPath, err)
	}
	return nil
}
