package gymsdk

import (
	"net/http"
	"strings"
	"time"
)

// SDKClient is a client for the gymtab service.
type SDKClient struct {
	BaseURL    string
	HTTPClient *http.Client

	// CheckScopes makes sessions refuse requests their declared scopes
	// cannot satisfy before calling the server. Tests turn it off to
	// exercise server-side checks.
	CheckScopes bool
}

// NewSDKClient creates a client with scope checking enabled.
func NewSDKClient(baseURL string) *SDKClient {
	return &SDKClient{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		CheckScopes: true,
	}
}

// NewSession wraps a bearer token. scopes are the scopes the token was
// minted with; when empty no client-side scope check is made.
func (c *SDKClient) NewSession(accessToken string, scopes ...string) *Session {
	granted := make(map[string]bool, len(scopes))
	for _, s := range scopes {
		granted[s] = true
	}
	return &Session{
		client:      c,
		accessToken: accessToken,
		scopes:      granted,
	}
}
