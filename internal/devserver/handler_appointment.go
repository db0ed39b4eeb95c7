package devserver

import (
	"log/slog"
	"net/http"

	"github.com/3ricLu/Symptomfy-sub001/pkg/httputil"
	"github.com/3ricLu/Symptomfy-sub001/pkg/middleware"
	"github.com/3ricLu/Symptomfy-sub001/pkg/validator"
)

// AppointmentHandler serves the booking endpoints.
type AppointmentHandler struct {
	appointments *AppointmentStore
	logger       *slog.Logger
}

// NewAppointmentHandler creates the appointment HTTP handler.
func NewAppointmentHandler(appointments *AppointmentStore, logger *slog.Logger) *AppointmentHandler {
	return &AppointmentHandler{appointments: appointments, logger: logger}
}

type bookRequest struct {
	SlotID string `json:"slot_id" validate:"required,uuid"`
}

// Free handles GET /api/appointment/free.
func (h *AppointmentHandler) Free(w http.ResponseWriter, r *http.Request) {
	slots := h.appointments.Free()
	if slots == nil {
		slots = []*Slot{}
	}
	httputil.WriteJSON(w, http.StatusOK, slots)
}

// Mine handles GET /api/appointment.
func (h *AppointmentHandler) Mine(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())
	appts := h.appointments.ForUser(userID)
	if appts == nil {
		appts = []*Appointment{}
	}
	httputil.WriteJSON(w, http.StatusOK, appts)
}

// Book handles POST /api/appointment.
func (h *AppointmentHandler) Book(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)

	var req bookRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	userID := middleware.UserIDFromContext(r.Context())
	appt, err := h.appointments.Book(userID, req.SlotID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	h.logger.InfoContext(r.Context(), "appointment booked",
		slog.String("user_id", userID),
		slog.String("slot_id", req.SlotID),
	)

	httputil.WriteJSON(w, http.StatusCreated, appt)
}
