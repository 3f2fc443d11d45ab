package applicant

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type stubChatModel struct {
	response   string
	err        error
	calls      int
	lastSystem string
	lastUser   string
}

func (s *stubChatModel) Ask(_ context.Context, systemPrompt, userPrompt string) (string, error) {
	s.calls++
	s.lastSystem = systemPrompt
	s.lastUser = userPrompt
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

func TestEvaluateParsesWrappedJSON(t *testing.T) {
	stub := &stubChatModel{response: "Sure, here is the analysis:\n```json\n" + `{
		"fit_score": 0.72,
		"summary": "Solid backend engineer",
		"education": ["BSc Computer Science"],
		"skills": ["Go", "PostgreSQL"],
		"experience": ["Backend developer at Acme"],
		"projects": ["Payment gateway"],
		"weak_areas": ["No Kubernetes"],
		"recommendations": ["Learn Kubernetes"],
		"candidate_name": "Jane Doe",
		"candidate_email": "jane@example.com",
		"confidence": "high"
	}` + "\n```"}
	e := NewEvaluator(stub, zap.NewNop())

	got := e.Evaluate(context.Background(), "Go developer wanted", "resume text")

	assert.Equal(t, 0.72, got.FitScore)
	assert.Equal(t, "Solid backend engineer", got.Summary)
	assert.Equal(t, []string{"Go", "PostgreSQL"}, got.Skills)
	assert.Equal(t, []string{"No Kubernetes"}, got.WeakAreas)
	assert.Equal(t, "Jane Doe", got.CandidateName)
	assert.Equal(t, "jane@example.com", got.CandidateEmail)
	// the unknown "confidence" key is simply ignored
}

func TestEvaluateMissingKeysKeepDefaults(t *testing.T) {
	stub := &stubChatModel{response: `{"fit_score": 0.4, "skills": ["Go"]}`}
	e := NewEvaluator(stub, zap.NewNop())

	got := e.Evaluate(context.Background(), "jd", "resume")

	assert.Equal(t, 0.4, got.FitScore)
	assert.Equal(t, []string{"Go"}, got.Skills)
	assert.Equal(t, fallbackSummary, got.Summary)
	assert.Empty(t, got.Education)
	assert.Empty(t, got.Recommendations)
	assert.Equal(t, "", got.CandidateEmail)
}

func TestEvaluateMalformedReplyDegradesToDefaults(t *testing.T) {
	for name, reply := range map[string]string{
		"no json object": "I cannot analyze this resume, sorry.",
		"broken json":    `{"fit_score": 0.9, "skills": [unquoted]}`,
	} {
		t.Run(name, func(t *testing.T) {
			e := NewEvaluator(&stubChatModel{response: reply}, zap.NewNop())

			got := e.Evaluate(context.Background(), "jd", "resume")

			assert.Equal(t, 0.0, got.FitScore)
			assert.Equal(t, fallbackSummary, got.Summary)
			assert.Empty(t, got.Skills)
			assert.Empty(t, got.WeakAreas)
		})
	}
}

func TestEvaluateModelFailureDegradesToDefaults(t *testing.T) {
	e := NewEvaluator(&stubChatModel{err: errors.New("service unreachable")}, zap.NewNop())

	got := e.Evaluate(context.Background(), "jd", "resume")

	assert.Equal(t, 0.0, got.FitScore)
	assert.Equal(t, fallbackSummary, got.Summary)
	assert.Empty(t, got.Education)
}

func TestEvaluateClampsScore(t *testing.T) {
	e := NewEvaluator(&stubChatModel{response: `{"fit_score": 1.7}`}, zap.NewNop())
	assert.Equal(t, 1.0, e.Evaluate(context.Background(), "jd", "resume").FitScore)

	e = NewEvaluator(&stubChatModel{response: `{"fit_score": -0.3}`}, zap.NewNop())
	assert.Equal(t, 0.0, e.Evaluate(context.Background(), "jd", "resume").FitScore)
}

func TestEvaluateTruncatesLongResumes(t *testing.T) {
	stub := &stubChatModel{response: `{"fit_score": 0.5}`}
	e := NewEvaluator(stub, zap.NewNop())

	long := make([]byte, 20_000)
	for i := range long {
		long[i] = 'a'
	}
	e.Evaluate(context.Background(), "jd", string(long))

	assert.Less(t, len(stub.lastUser), 15_000)
}

func TestComposeRejectionStripsPreamble(t *testing.T) {
	stub := &stubChatModel{response: "Of course! Here is the polite rejection email.\nDear Jane,\n\nThank you for applying."}
	e := NewEvaluator(stub, zap.NewNop())

	body, err := e.ComposeRejection(context.Background(), "Jane Doe", "Go Developer", "Acme", 0.42)

	assert.NoError(t, err)
	assert.Equal(t, "Dear Jane,\n\nThank you for applying.", body)
	assert.Contains(t, stub.lastUser, "42.00%")
	assert.Contains(t, stub.lastUser, "Go Developer position at Acme")
}

func TestComposeRejectionPropagatesModelError(t *testing.T) {
	e := NewEvaluator(&stubChatModel{err: errors.New("quota exceeded")}, zap.NewNop())

	_, err := e.ComposeRejection(context.Background(), "", "Go Developer", "Acme", 0.1)

	assert.Error(t, err)
}

func TestFindEmail(t *testing.T) {
	assert.Equal(t, "jane.doe+cv@example-mail.com",
		FindEmail("reach me at jane.doe+cv@example-mail.com or by phone"))
	assert.Equal(t, "", FindEmail("no contact details here"))
}
