package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/3ricLu/Symptomfy-sub001/internal/transport"
)

// FlowResponse is the union payload returned by POST /api/questions/generate:
// either the next question or a final diagnosis.
type FlowResponse struct {
	Question       string   `json:"question,omitempty"`
	QuestionID     string   `json:"question_id,omitempty"`
	Type           string   `json:"type,omitempty"`
	Options        []string `json:"options,omitempty"`
	IsFinal        bool     `json:"is_final"`
	QuestionNumber int      `json:"question_number,omitempty"`
	TotalQuestions int      `json:"total_questions,omitempty"`

	Diagnosis      string `json:"diagnosis,omitempty"`
	Confidence     string `json:"confidence,omitempty"`
	Recommendation string `json:"recommendation,omitempty"`
	Advice         string `json:"advice,omitempty"`
}

type generateRequest struct {
	Answers       map[string]string `json:"answers"`
	BodyLocations []string          `json:"body_locations"`
}

// DiagnosisAPI drives the remote diagnosis service. It should be constructed
// over a circuit-breaker-wrapped client: the service is external and slow.
type DiagnosisAPI struct {
	baseURL string
	client  Doer
}

// NewDiagnosisAPI creates a client for the diagnosis endpoint.
func NewDiagnosisAPI(baseURL string, client Doer) *DiagnosisAPI {
	return &DiagnosisAPI{baseURL: baseURL, client: client}
}

// Generate submits the accumulated answers and body locations and returns
// the next step of the flow.
func (d *DiagnosisAPI) Generate(ctx context.Context, answers map[string]string, bodyLocations []string) (*FlowResponse, error) {
	if answers == nil {
		answers = map[string]string{}
	}

	body, err := json.Marshal(generateRequest{Answers: answers, BodyLocations: bodyLocations})
	if err != nil {
		return nil, fmt.Errorf("marshal generate request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.baseURL+"/api/questions/generate", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("POST /api/questions/generate: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, transport.ParseResponseError(resp, "/api/questions/generate")
	}

	var out FlowResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode generate response: %w", err)
	}
	return &out, nil
}
