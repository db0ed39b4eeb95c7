// Package diagnosis drives the multi-turn question-and-answer flow against
// the remote diagnosis service.
package diagnosis

import (
	"context"
	"errors"
	"fmt"

	"github.com/3ricLu/Symptomfy-sub001/internal/api"
)

// ErrMalformedResponse is returned when the diagnosis service answers with a
// payload that is neither a usable question nor a complete diagnosis. It is
// surfaced to the user as a dismissable error; the flow is not retried
// automatically.
var ErrMalformedResponse = errors.New("malformed diagnosis response")

// ErrFlowFinished is returned when an answer is submitted after the flow has
// already produced a final diagnosis.
var ErrFlowFinished = errors.New("diagnosis flow already finished")

// Generator produces the next step of the flow from the accumulated answers.
type Generator interface {
	Generate(ctx context.Context, answers map[string]string, bodyLocations []string) (*api.FlowResponse, error)
}

// Question is the next question to put to the user.
type Question struct {
	ID      string
	Text    string
	Type    string
	Options []string
	Number  int
	Total   int
}

// Result is the final diagnosis.
type Result struct {
	Diagnosis      string
	Confidence     string
	Recommendation string
	Advice         string
}

// Step is one turn of the flow: exactly one of Question or Result is set.
type Step struct {
	Question *Question
	Result   *Result
}

// Flow accumulates answers keyed by question id and asks the service for the
// next step. Not safe for concurrent use; one flow belongs to one user
// interaction.
type Flow struct {
	gen           Generator
	bodyLocations []string
	answers       map[string]string
	finished      bool
}

// NewFlow starts a flow for the given body locations.
func NewFlow(gen Generator, bodyLocations []string) *Flow {
	return &Flow{
		gen:           gen,
		bodyLocations: bodyLocations,
		answers:       make(map[string]string),
	}
}

// Start requests the first question.
func (f *Flow) Start(ctx context.Context) (*Step, error) {
	if len(f.bodyLocations) == 0 {
		return nil, fmt.Errorf("at least one body location is required")
	}
	return f.next(ctx)
}

// Answer records the answer for a question and requests the next step.
func (f *Flow) Answer(ctx context.Context, questionID, answer string) (*Step, error) {
	if f.finished {
		return nil, ErrFlowFinished
	}
	if questionID == "" {
		return nil, fmt.Errorf("question id is required")
	}
	f.answers[questionID] = answer
	return f.next(ctx)
}

// Answers returns a copy of the accumulated answers.
func (f *Flow) Answers() map[string]string {
	out := make(map[string]string, len(f.answers))
	for k, v := range f.answers {
		out[k] = v
	}
	return out
}

// Finished reports whether a final diagnosis has been produced.
func (f *Flow) Finished() bool {
	return f.finished
}

func (f *Flow) next(ctx context.Context) (*Step, error) {
	resp, err := f.gen.Generate(ctx, f.answers, f.bodyLocations)
	if err != nil {
		return nil, err
	}

	if resp.IsFinal {
		if resp.Diagnosis == "" {
			return nil, fmt.Errorf("final payload missing diagnosis: %w", ErrMalformedResponse)
		}
		f.finished = true
		return &Step{Result: &Result{
			Diagnosis:      resp.Diagnosis,
			Confidence:     resp.Confidence,
			Recommendation: resp.Recommendation,
			Advice:         resp.Advice,
		}}, nil
	}

	if resp.QuestionID == "" || resp.Question == "" {
		return nil, fmt.Errorf("question payload missing id or text: %w", ErrMalformedResponse)
	}

	return &Step{Question: &Question{
		ID:      resp.QuestionID,
		Text:    resp.Question,
		Type:    resp.Type,
		Options: resp.Options,
		Number:  resp.QuestionNumber,
		Total:   resp.TotalQuestions,
	}}, nil
}
