package googleauth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"golang.org/x/oauth2"
)

const userInfoURL = "https://www.googleapis.com/oauth2/v1/userinfo"

type Client struct {
	HttpClient *http.Client
}

type GetUserDetailsResponse struct {
	Email         string `json:"email"`
	EmailVerified bool   `json:"verified_email"`
	PictureUrl    string `json:"picture"`
	FirstName     string `json:"given_name"`
	LastName      string `json:"family_name"`
}

// GetUserDetails fetches the Google profile behind an OAuth access token.
// Used to enrich a Principal when the identity token carries sparse claims.
func (c Client) GetUserDetails(ctx context.Context, ts oauth2.TokenSource) (*GetUserDetailsResponse, error) {
	token, err := ts.Token()
	if err != nil {
		return nil, fmt.Errorf("failed to read access token: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, userInfoURL+"?access_token="+token.AccessToken, nil)
	if err != nil {
		return nil, err
	}
	response, err := c.HttpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer response.Body.Close()

	responseBytes, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, fmt.Errorf("received status code %d and failed to read body: %w", response.StatusCode, err)
	}
	if response.StatusCode != 200 {
		type errResponse struct {
			Error string `json:"error"`
		}
		errJson := errResponse{}
		err = json.Unmarshal(responseBytes, &errJson)
		if err != nil {
			return nil, fmt.Errorf("received status code %d and failed to read error: %w", response.StatusCode, err)
		}
		return nil, fmt.Errorf("failed with status code %d: %s", response.StatusCode, errJson.Error)
	}

	var responseJson GetUserDetailsResponse
	err = json.Unmarshal(responseBytes, &responseJson)
	if err != nil {
		return nil, err
	}

	return &responseJson, nil
}
