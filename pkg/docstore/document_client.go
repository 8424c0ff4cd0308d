package docstore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"golang.org/x/oauth2"
)

// Client talks to the per-user document service. Documents are keyed by
// user ID; writes are merges, so fields other than the ones sent are
// preserved server-side.
type Client struct {
	HttpClient *http.Client
	BaseURL    string
}

type PositionEntry struct {
	Ticker string  `json:"ticker"`
	Weight float64 `json:"weight"`
}

type Document struct {
	Positions map[string]PositionEntry `json:"positions"`
}

type writeDocumentRequest struct {
	Positions map[string]PositionEntry `json:"positions"`
}

func (c Client) documentURL(userID string) string {
	return strings.TrimRight(c.BaseURL, "/") + "/users/" + userID
}

// ReadDocument returns the user's document, or nil when none has been
// written yet.
func (c Client) ReadDocument(ctx context.Context, ts oauth2.TokenSource, userID string) (*Document, error) {
	token, err := ts.Token()
	if err != nil {
		return nil, fmt.Errorf("failed to read access token: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.documentURL(userID), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token.AccessToken)

	response, err := c.HttpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer response.Body.Close()

	if response.StatusCode == http.StatusNotFound {
		return nil, nil
	}

	responseBytes, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, fmt.Errorf("received status code %d and failed to read body: %w", response.StatusCode, err)
	}
	if response.StatusCode != 200 {
		return nil, fmt.Errorf("failed to read document with status code %d: %s", response.StatusCode, readErrorMessage(responseBytes))
	}

	var doc Document
	err = json.Unmarshal(responseBytes, &doc)
	if err != nil {
		return nil, fmt.Errorf("failed to parse document: %w", err)
	}

	return &doc, nil
}

// WriteDocument upserts the positions field of the user's document with
// merge semantics. Last writer wins; no version check is performed.
func (c Client) WriteDocument(ctx context.Context, ts oauth2.TokenSource, userID string, positions map[string]PositionEntry) error {
	token, err := ts.Token()
	if err != nil {
		return fmt.Errorf("failed to read access token: %w", err)
	}

	body, err := json.Marshal(writeDocumentRequest{Positions: positions})
	if err != nil {
		return fmt.Errorf("failed to serialize document: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, c.documentURL(userID)+"?merge=true", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+token.AccessToken)
	req.Header.Set("Content-Type", "application/json")

	response, err := c.HttpClient.Do(req)
	if err != nil {
		return err
	}
	defer response.Body.Close()

	if response.StatusCode < 200 || response.StatusCode > 299 {
		responseBytes, readErr := io.ReadAll(response.Body)
		if readErr != nil {
			return fmt.Errorf("failed to write document with status code %d", response.StatusCode)
		}
		return fmt.Errorf("failed to write document with status code %d: %s", response.StatusCode, readErrorMessage(responseBytes))
	}

	return nil
}

func readErrorMessage(responseBytes []byte) string {
	type errResponse struct {
		Error string `json:"error"`
	}
	errJson := errResponse{}
	if err := json.Unmarshal(responseBytes, &errJson); err != nil || errJson.Error == "" {
		return string(responseBytes)
	}
	return errJson.Error
}
