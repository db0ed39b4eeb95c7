package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/3ricLu/Symptomfy-sub001/internal/session"
)

func TestSessionFile_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.json")

	st := session.NewStore()
	st.SetTokens("access-abc", "refresh-xyz")
	require.NoError(t, saveSessionFile(path, st))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	loaded := session.NewStore()
	require.NoError(t, loadSessionFile(path, loaded))

	access, ok := loaded.AccessToken()
	require.True(t, ok)
	assert.Equal(t, "access-abc", access)

	refresh, ok := loaded.RefreshToken()
	require.True(t, ok)
	assert.Equal(t, "refresh-xyz", refresh)
}

func TestLoadSessionFile_MissingFileIsFreshSession(t *testing.T) {
	st := session.NewStore()
	require.NoError(t, loadSessionFile(filepath.Join(t.TempDir(), "absent.json"), st))

	_, ok := st.AccessToken()
	assert.False(t, ok)
}

func TestLoadSessionFile_Corrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	err := loadSessionFile(path, session.NewStore())
	assert.Error(t, err)
}

func TestSaveSessionFile_EmptyStoreRemovesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")

	st := session.NewStore()
	st.SetTokens("a", "r")
	require.NoError(t, saveSessionFile(path, st))
	require.FileExists(t, path)

	st.Clear()
	require.NoError(t, saveSessionFile(path, st))
	assert.NoFileExists(t, path)

	// Removing an already-absent file stays quiet.
	require.NoError(t, saveSessionFile(path, st))
}
