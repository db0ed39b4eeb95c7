package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/3ricLu/Symptomfy-sub001/internal/transport"
)

// Slot is a bookable appointment slot.
type Slot struct {
	ID         string    `json:"id"`
	DoctorID   string    `json:"doctor_id"`
	DoctorName string    `json:"doctor_name"`
	StartsAt   time.Time `json:"starts_at"`
	EndsAt     time.Time `json:"ends_at"`
}

// Appointment is a booked slot belonging to the current user.
type Appointment struct {
	ID         string    `json:"id"`
	SlotID     string    `json:"slot_id"`
	DoctorName string    `json:"doctor_name"`
	StartsAt   time.Time `json:"starts_at"`
	Status     string    `json:"status"`
}

type bookRequest struct {
	SlotID string `json:"slot_id"`
}

// AppointmentAPI calls the booking endpoints through the authenticated client.
type AppointmentAPI struct {
	baseURL string
	client  Doer
}

// NewAppointmentAPI creates a client for the appointment endpoints.
func NewAppointmentAPI(baseURL string, client Doer) *AppointmentAPI {
	return &AppointmentAPI{baseURL: baseURL, client: client}
}

// FreeSlots lists currently bookable slots via GET /api/appointment/free.
func (a *AppointmentAPI) FreeSlots(ctx context.Context) ([]Slot, error) {
	var out []Slot
	if err := a.getJSON(ctx, "/api/appointment/free", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Mine lists the current user's appointments via GET /api/appointment.
func (a *AppointmentAPI) Mine(ctx context.Context) ([]Appointment, error) {
	var out []Appointment
	if err := a.getJSON(ctx, "/api/appointment", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Book reserves a slot via POST /api/appointment.
func (a *AppointmentAPI) Book(ctx context.Context, slotID string) (*Appointment, error) {
	body, err := json.Marshal(bookRequest{SlotID: slotID})
	if err != nil {
		return nil, fmt.Errorf("marshal book request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+"/api/appointment", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("POST /api/appointment: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, transport.ParseResponseError(resp, "/api/appointment")
	}

	var out Appointment
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode appointment response: %w", err)
	}
	return &out, nil
}

func (a *AppointmentAPI) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.baseURL+path, http.NoBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	resp, err := a.client.Do(ctx, req)
	if err != nil {
		return fmt.Errorf("GET %s: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return transport.ParseResponseError(resp, path)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}
