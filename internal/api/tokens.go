package api

import (
	"encoding/json"
	"fmt"
	"io"
)

// TokenPair is a credential pair returned by the auth endpoints.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// The backend is not consistent about token key spelling across endpoints:
// login uses hyphenated keys, registration uses underscores, and refresh has
// been seen using a bare TOKEN key. Decode all spellings.
var (
	accessTokenKeys  = []string{"access_token", "access-token", "token", "TOKEN"}
	refreshTokenKeys = []string{"refresh_token", "refresh-token"}
)

// ParseTokenPair decodes a token response body, accepting any of the key
// spellings the backend produces. The refresh token may be absent (the
// backend does not always rotate it); a missing access token is an error.
func ParseTokenPair(r io.Reader) (TokenPair, error) {
	var raw map[string]json.RawMessage
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return TokenPair{}, fmt.Errorf("decode token response: %w", err)
	}

	pair := TokenPair{
		AccessToken:  firstString(raw, accessTokenKeys),
		RefreshToken: firstString(raw, refreshTokenKeys),
	}

	if pair.AccessToken == "" {
		return TokenPair{}, fmt.Errorf("token response carries no access token")
	}

	return pair, nil
}

func firstString(raw map[string]json.RawMessage, keys []string) string {
	for _, key := range keys {
		msg, ok := raw[key]
		if !ok {
			continue
		}
		var s string
		if err := json.Unmarshal(msg, &s); err == nil && s != "" {
			return s
		}
	}
	return ""
}
