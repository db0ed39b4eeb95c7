package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/3ricLu/Symptomfy-sub001/internal/profile"
	"github.com/3ricLu/Symptomfy-sub001/internal/transport"
	apperrors "github.com/3ricLu/Symptomfy-sub001/pkg/errors"
)

// ProfileAPI reads the role-specific profile endpoints.
type ProfileAPI struct {
	baseURL string
	client  Doer
}

// NewProfileAPI creates a client for the profile endpoints.
func NewProfileAPI(baseURL string, client Doer) *ProfileAPI {
	return &ProfileAPI{baseURL: baseURL, client: client}
}

// Patient fetches GET /api/patient.
func (p *ProfileAPI) Patient(ctx context.Context) (*profile.Patient, error) {
	var out profile.Patient
	if err := p.get(ctx, "/api/patient", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Doctor fetches GET /api/doctor.
func (p *ProfileAPI) Doctor(ctx context.Context) (*profile.Doctor, error) {
	var out profile.Doctor
	if err := p.get(ctx, "/api/doctor", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Admin fetches GET /api/admin.
func (p *ProfileAPI) Admin(ctx context.Context) (*profile.Admin, error) {
	var out profile.Admin
	if err := p.get(ctx, "/api/admin", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Resolve determines the session's role by probing the profile endpoints in
// order: patient, then doctor, then admin. A 403 or 404 means "not this
// role" and moves on; any other failure propagates. When no endpoint
// matches, the profile carries RoleNone.
func (p *ProfileAPI) Resolve(ctx context.Context) (*profile.Profile, error) {
	patient, err := p.Patient(ctx)
	if err == nil {
		return &profile.Profile{Role: profile.RolePatient, Patient: patient}, nil
	}
	if !isRoleMismatch(err) {
		return nil, err
	}

	doctor, err := p.Doctor(ctx)
	if err == nil {
		return &profile.Profile{Role: profile.RoleDoctor, Doctor: doctor}, nil
	}
	if !isRoleMismatch(err) {
		return nil, err
	}

	admin, err := p.Admin(ctx)
	if err == nil {
		return &profile.Profile{Role: profile.RoleAdmin, Admin: admin}, nil
	}
	if !isRoleMismatch(err) {
		return nil, err
	}

	return &profile.Profile{Role: profile.RoleNone}, nil
}

func isRoleMismatch(err error) bool {
	return errors.Is(err, apperrors.ErrForbidden) || errors.Is(err, apperrors.ErrNotFound)
}

func (p *ProfileAPI) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+path, http.NoBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	resp, err := p.client.Do(ctx, req)
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
