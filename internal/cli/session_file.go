package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/3ricLu/Symptomfy-sub001/internal/session"
)

// sessionFile is the on-disk token record. It mirrors the session store's
// two keys and nothing else.
type sessionFile struct {
	AccessToken  string `json:"access_token,omitempty"`
	RefreshToken string `json:"refresh_token,omitempty"`
}

func defaultSessionPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config dir: %w", err)
	}
	return filepath.Join(dir, appName, "session.json"), nil
}

// loadSessionFile seeds the store from disk. A missing file means a fresh,
// unauthenticated session and is not an error.
func loadSessionFile(path string, st *session.Store) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return err
	}

	var f sessionFile
	if err := json.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	if f.AccessToken != "" {
		st.SetAccessToken(f.AccessToken)
	}
	if f.RefreshToken != "" {
		st.SetRefreshToken(f.RefreshToken)
	}
	return nil
}

// saveSessionFile writes the store's tokens back to disk. An empty store
// removes the file so a logged-out session leaves nothing behind.
func saveSessionFile(path string, st *session.Store) error {
	var f sessionFile
	f.AccessToken, _ = st.AccessToken()
	f.RefreshToken, _ = st.RefreshToken()

	if f.AccessToken == "" && f.RefreshToken == "" {
		err := os.Remove(path)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	data, err := json.Marshal(f)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}
