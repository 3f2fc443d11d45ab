package applicant

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/ai-hr-system/backend/pkg/llm"
)

// fallbackSummary is stored when the model yields nothing usable for a resume
// that did produce text. Evaluation failure is not upload failure.
const fallbackSummary = "Parsing failed"

const evaluationSystemPrompt = "You are an AI HR assistant. Analyze resumes against job descriptions and return only valid JSON."

const evaluationPromptTemplate = `Analyze this resume against the job description.
Return ONLY a valid JSON like this:
{
  "fit_score": <float 0-1>,
  "summary": "<short professional summary>",
  "education": ["<degree/institution>"],
  "skills": ["<skill1>", "<skill2>"],
  "experience": ["<role1>", "<role2>"],
  "projects": ["<project1>", "<project2>"],
  "weak_areas": ["<weak1>", "<weak2>"],
  "recommendations": ["<rec1>", "<rec2>"],
  "candidate_name": "<full name if available>",
  "candidate_email": "<email if available>"
}
Job Description:
%s
Resume Text:
%s`

const rejectionPromptTemplate = `Generate ONLY a professional, polite, and encouraging rejection email for %s
who applied for the %s position at %s.
Mention that they scored %.2f%% in the initial screening.
Do NOT include any extra commentary or mention AI generation.
Return ONLY the email text.`

var (
	// Models rarely return pure JSON; take the first balanced-looking span.
	reJSONSpan = regexp.MustCompile(`(?s)\{.*\}`)
	// Chatty assistants prefix composed emails with boilerplate like
	// "Of course! Here is the email."
	reRejectionPreamble = regexp.MustCompile(`(?is)^(of course.*?email\.?)\s*`)
)

// evaluationSchema is the fixed response schema. Unknown keys in the model
// reply are ignored, missing keys keep their defaults.
type evaluationSchema struct {
	FitScore        float64  `json:"fit_score"`
	Summary         string   `json:"summary"`
	Education       []string `json:"education"`
	Skills          []string `json:"skills"`
	Experience      []string `json:"experience"`
	Projects        []string `json:"projects"`
	WeakAreas       []string `json:"weak_areas"`
	Recommendations []string `json:"recommendations"`
	CandidateName   string   `json:"candidate_name"`
	CandidateEmail  string   `json:"candidate_email"`
}

// Evaluator scores resume text against a job description via the chat model.
type Evaluator struct {
	llm      llm.ChatModel
	log      *zap.Logger
	maxChars int
}

func NewEvaluator(model llm.ChatModel, log *zap.Logger) *Evaluator {
	return &Evaluator{llm: model, log: log, maxChars: 12_000}
}

// Evaluate never fails: when the model is unreachable or returns unparseable
// content the zero-value record (score 0, empty lists) is returned so the
// pipeline can still persist the upload.
func (e *Evaluator) Evaluate(ctx context.Context, jobDescription, resumeText string) Evaluation {
	out := defaultEvaluation()

	text := resumeText
	if len(text) > e.maxChars {
		text = text[:e.maxChars]
	}
	prompt := fmt.Sprintf(evaluationPromptTemplate, jobDescription, text)
	raw, err := e.llm.Ask(ctx, evaluationSystemPrompt, prompt)
	if err != nil {
		e.log.Warn("resume evaluation degraded: model call failed", zap.Error(err))
		return out
	}

	span := reJSONSpan.FindString(raw)
	if span == "" {
		e.log.Warn("resume evaluation degraded: no JSON object in model reply")
		return out
	}
	schema := evaluationSchema{Summary: out.Summary}
	if err := json.Unmarshal([]byte(span), &schema); err != nil {
		e.log.Warn("resume evaluation degraded: model reply is not valid JSON", zap.Error(err))
		return out
	}

	out.FitScore = clampScore(schema.FitScore)
	out.Summary = schema.Summary
	out.Education = emptyIfNil(schema.Education)
	out.Skills = emptyIfNil(schema.Skills)
	out.Experience = emptyIfNil(schema.Experience)
	out.Projects = emptyIfNil(schema.Projects)
	out.WeakAreas = emptyIfNil(schema.WeakAreas)
	out.Recommendations = emptyIfNil(schema.Recommendations)
	out.CandidateName = strings.TrimSpace(schema.CandidateName)
	out.CandidateEmail = strings.TrimSpace(schema.CandidateEmail)
	return out
}

// ComposeRejection asks the model for a rejection email body and strips the
// known boilerplate preamble. Best-effort: on failure the caller skips the
// email, it is never retried.
func (e *Evaluator) ComposeRejection(ctx context.Context, candidateName, jobTitle, companyName string, fitScore float64) (string, error) {
	if candidateName == "" {
		candidateName = "Candidate"
	}
	prompt := fmt.Sprintf(rejectionPromptTemplate, candidateName, jobTitle, companyName, fitScore*100)
	raw, err := e.llm.Ask(ctx, "You are an HR assistant writing candidate-facing emails.", prompt)
	if err != nil {
		return "", err
	}
	body := strings.TrimSpace(raw)
	body = reRejectionPreamble.ReplaceAllString(body, "")
	return body, nil
}

func defaultEvaluation() Evaluation {
	return Evaluation{
		FitScore:        0,
		Summary:         fallbackSummary,
		Education:       []string{},
		Skills:          []string{},
		Experience:      []string{},
		Projects:        []string{},
		WeakAreas:       []string{},
		Recommendations: []string{},
	}
}

func clampScore(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
