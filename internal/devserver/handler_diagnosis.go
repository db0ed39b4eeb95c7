package devserver

import (
	"log/slog"
	"net/http"

	"github.com/3ricLu/Symptomfy-sub001/pkg/httputil"
	"github.com/3ricLu/Symptomfy-sub001/pkg/validator"
)

// DiagnosisHandler serves the scripted question flow.
type DiagnosisHandler struct {
	logger *slog.Logger
}

// NewDiagnosisHandler creates the diagnosis HTTP handler.
func NewDiagnosisHandler(logger *slog.Logger) *DiagnosisHandler {
	return &DiagnosisHandler{logger: logger}
}

type generateRequest struct {
	Answers       map[string]string `json:"answers"`
	BodyLocations []string          `json:"body_locations" validate:"required,min=1"`
}

// Generate handles POST /api/questions/generate.
func (h *DiagnosisHandler) Generate(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)

	var req generateRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	step := nextStep(req.Answers)

	h.logger.DebugContext(r.Context(), "diagnosis step",
		slog.Int("answered", len(req.Answers)),
		slog.Bool("final", step.IsFinal),
	)

	httputil.WriteJSON(w, http.StatusOK, step)
}
