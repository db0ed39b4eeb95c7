package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/3ricLu/Symptomfy-sub001/internal/profile"
)

// roleServer serves the three profile endpoints, answering 403 for every
// role except the one it impersonates.
func roleServer(role string) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		forbidden := func() {
			w.WriteHeader(http.StatusForbidden)
			_, _ = w.Write([]byte(`{"error":{"code":"FORBIDDEN","message":"wrong role"}}`))
		}
		switch r.URL.Path {
		case "/api/patient":
			if role != "patient" {
				forbidden()
				return
			}
			_, _ = w.Write([]byte(`{"user_id":"u1","name":"Pat","email":"pat@example.com"}`))
		case "/api/doctor":
			if role != "doctor" {
				forbidden()
				return
			}
			_, _ = w.Write([]byte(`{"user_id":"u2","name":"Dr. Who","email":"doc@example.com","specialty":"gp"}`))
		case "/api/admin":
			if role != "admin" {
				forbidden()
				return
			}
			_, _ = w.Write([]byte(`{"user_id":"u3","name":"Root","email":"admin@example.com"}`))
		default:
			http.NotFound(w, r)
		}
	}))
}

func TestProfileAPI_Patient(t *testing.T) {
	server := roleServer("patient")
	defer server.Close()

	p := NewProfileAPI(server.URL, plainDoer{})
	got, err := p.Patient(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "u1", got.UserID)
	assert.Equal(t, "Pat", got.Name)
}

func TestProfileAPI_Resolve_Patient(t *testing.T) {
	server := roleServer("patient")
	defer server.Close()

	p := NewProfileAPI(server.URL, plainDoer{})
	prof, err := p.Resolve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, profile.RolePatient, prof.Role)
	require.NotNil(t, prof.Patient)
	assert.Nil(t, prof.Doctor)
	assert.Nil(t, prof.Admin)
}

func TestProfileAPI_Resolve_Doctor(t *testing.T) {
	server := roleServer("doctor")
	defer server.Close()

	p := NewProfileAPI(server.URL, plainDoer{})
	prof, err := p.Resolve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, profile.RoleDoctor, prof.Role)
	require.NotNil(t, prof.Doctor)
	assert.Equal(t, "gp", prof.Doctor.Specialty)
}

func TestProfileAPI_Resolve_Admin(t *testing.T) {
	server := roleServer("admin")
	defer server.Close()

	p := NewProfileAPI(server.URL, plainDoer{})
	prof, err := p.Resolve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, profile.RoleAdmin, prof.Role)
	require.NotNil(t, prof.Admin)
}

func TestProfileAPI_Resolve_NoRole(t *testing.T) {
	server := roleServer("nobody")
	defer server.Close()

	p := NewProfileAPI(server.URL, plainDoer{})
	prof, err := p.Resolve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, profile.RoleNone, prof.Role)
	assert.Empty(t, prof.UserID())
}

func TestProfileAPI_Resolve_404CountsAsMismatch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/doctor" {
			_, _ = w.Write([]byte(`{"user_id":"u2","name":"Dr. Who","email":"doc@example.com"}`))
			return
		}
		http.NotFound(w, r)
	}))
	defer server.Close()

	p := NewProfileAPI(server.URL, plainDoer{})
	prof, err := p.Resolve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, profile.RoleDoctor, prof.Role)
}

func TestProfileAPI_Resolve_ServerErrorPropagates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"message":"boom"}`))
	}))
	defer server.Close()

	p := NewProfileAPI(server.URL, plainDoer{})
	_, err := p.Resolve(context.Background())
	assert.Error(t, err, "a real failure must not be swallowed as RoleNone")
}
