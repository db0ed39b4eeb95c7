package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/3ricLu/Symptomfy-sub001/pkg/errors"
)

func TestAppointmentAPI_FreeSlots(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/api/appointment/free", r.URL.Path)
		_, _ = w.Write([]byte(`[
			{"id":"s1","doctor_id":"d1","doctor_name":"Dr. Demo","starts_at":"2026-09-01T09:00:00Z","ends_at":"2026-09-01T10:00:00Z"},
			{"id":"s2","doctor_id":"d1","doctor_name":"Dr. Demo","starts_at":"2026-09-01T10:00:00Z","ends_at":"2026-09-01T11:00:00Z"}
		]`))
	}))
	defer server.Close()

	a := NewAppointmentAPI(server.URL, plainDoer{})
	slots, err := a.FreeSlots(context.Background())
	require.NoError(t, err)
	require.Len(t, slots, 2)
	assert.Equal(t, "s1", slots[0].ID)
	assert.Equal(t, "Dr. Demo", slots[0].DoctorName)
	assert.Equal(t, time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC), slots[0].StartsAt)
}

func TestAppointmentAPI_Mine(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/appointment", r.URL.Path)
		_, _ = w.Write([]byte(`[{"id":"appt1","slot_id":"s1","doctor_name":"Dr. Demo","starts_at":"2026-09-01T09:00:00Z","status":"booked"}]`))
	}))
	defer server.Close()

	a := NewAppointmentAPI(server.URL, plainDoer{})
	appts, err := a.Mine(context.Background())
	require.NoError(t, err)
	require.Len(t, appts, 1)
	assert.Equal(t, "appt1", appts[0].ID)
	assert.Equal(t, "booked", appts[0].Status)
}

func TestAppointmentAPI_Book(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/appointment", r.URL.Path)

		body, _ := io.ReadAll(r.Body)
		var req map[string]string
		require.NoError(t, json.Unmarshal(body, &req))
		assert.Equal(t, "s1", req["slot_id"])

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":"appt1","slot_id":"s1","doctor_name":"Dr. Demo","starts_at":"2026-09-01T09:00:00Z","status":"booked"}`))
	}))
	defer server.Close()

	a := NewAppointmentAPI(server.URL, plainDoer{})
	appt, err := a.Book(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, "appt1", appt.ID)
	assert.Equal(t, "s1", appt.SlotID)
}

func TestAppointmentAPI_Book_Conflict(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"error":{"code":"ALREADY_EXISTS","message":"slot already booked"}}`))
	}))
	defer server.Close()

	a := NewAppointmentAPI(server.URL, plainDoer{})
	_, err := a.Book(context.Background(), "s1")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrAlreadyExists)
}
