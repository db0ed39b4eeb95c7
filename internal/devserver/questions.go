package devserver

// The question script is a fixture standing in for the remote diagnosis
// service, not a medical model. It walks a fixed sequence of questions and
// produces a canned diagnosis based on one branching answer.

type scriptedQuestion struct {
	ID      string
	Text    string
	Type    string
	Options []string
}

var questionScript = []scriptedQuestion{
	{
		ID:      "q_duration",
		Text:    "How long have you had these symptoms?",
		Type:    "single_choice",
		Options: []string{"Less than a day", "1-3 days", "More than 3 days"},
	},
	{
		ID:      "q_fever",
		Text:    "Do you have a fever?",
		Type:    "single_choice",
		Options: []string{"Yes", "No"},
	},
	{
		ID:      "q_severity",
		Text:    "How severe is the discomfort?",
		Type:    "single_choice",
		Options: []string{"Mild", "Moderate", "Severe"},
	},
	{
		ID:   "q_notes",
		Text: "Anything else you would like to mention?",
		Type: "text",
	},
}

// flowPayload mirrors the union response of POST /api/questions/generate.
type flowPayload struct {
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

// nextStep returns the first unanswered scripted question, or the final
// diagnosis once every question has an answer.
func nextStep(answers map[string]string) flowPayload {
	for i, q := range questionScript {
		if _, answered := answers[q.ID]; !answered {
			return flowPayload{
				Question:       q.Text,
				QuestionID:     q.ID,
				Type:           q.Type,
				Options:        q.Options,
				IsFinal:        false,
				QuestionNumber: i + 1,
				TotalQuestions: len(questionScript),
			}
		}
	}

	if answers["q_fever"] == "Yes" {
		return flowPayload{
			IsFinal:        true,
			Diagnosis:      "Flu",
			Confidence:     "high",
			Recommendation: "self_care",
			Advice:         "Rest, stay hydrated, and monitor your temperature.",
		}
	}

	severity := answers["q_severity"]
	if severity == "Severe" {
		return flowPayload{
			IsFinal:        true,
			Diagnosis:      "Acute strain",
			Confidence:     "medium",
			Recommendation: "see_doctor",
			Advice:         "Book an appointment; severe symptoms should be examined.",
		}
	}

	return flowPayload{
		IsFinal:        true,
		Diagnosis:      "Minor ailment",
		Confidence:     "low",
		Recommendation: "self_care",
		Advice:         "Rest and re-run the check if symptoms persist.",
	}
}
