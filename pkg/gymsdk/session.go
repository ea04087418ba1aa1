package gymsdk

import "fmt"

// Session is a bearer-authenticated view of the API. Tokens are minted
// out of band (gymctl token mint) and are not refreshed.
type Session struct {
	client      *SDKClient
	accessToken string
	scopes      map[string]bool
}

// HasScope reports whether the session was declared with scope.
func (s *Session) HasScope(scope string) bool {
	return s.scopes[scope]
}

// checkScopes passes when any of required was declared, when the session
// declared no scopes, or when checking is disabled.
func (s *Session) checkScopes(required ...string) error {
	if !s.client.CheckScopes || len(required) == 0 || len(s.scopes) == 0 {
		return nil
	}
	for _, scope := range required {
		if s.scopes[scope] {
			return nil
		}
	}
	return fmt.Errorf("%w: need one of %v", ErrInsufficientScope, required)
}
