package applicant

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ai-hr-system/backend/pkg/auth"
	"github.com/ai-hr-system/backend/pkg/job"
)

type fakeJobRepo struct {
	jobs map[uuid.UUID]job.Job
}

func (f *fakeJobRepo) Create(_ context.Context, j job.Job) error {
	f.jobs[j.ID] = j
	return nil
}

func (f *fakeJobRepo) GetByID(_ context.Context, id uuid.UUID) (job.Job, error) {
	j, ok := f.jobs[id]
	if !ok {
		return job.Job{}, job.ErrNotFound
	}
	return j, nil
}

func (f *fakeJobRepo) List(_ context.Context, _, _ int) ([]job.Job, error) {
	out := make([]job.Job, 0, len(f.jobs))
	for _, j := range f.jobs {
		out = append(out, j)
	}
	return out, nil
}

type fakeUserRepo struct {
	users map[string]auth.User
}

func (f *fakeUserRepo) Create(_ context.Context, u auth.User) error {
	f.users[u.Email] = u
	return nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (auth.User, error) {
	u, ok := f.users[email]
	if !ok {
		return auth.User{}, auth.ErrNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) UpdatePasswordHash(_ context.Context, email, hash string) error {
	u, ok := f.users[email]
	if !ok {
		return auth.ErrNotFound
	}
	u.PasswordHash = hash
	f.users[email] = u
	return nil
}

type fakeApplicantRepo struct {
	inserted  []Evaluation
	insertErr error
}

func (f *fakeApplicantRepo) Insert(_ context.Context, e Evaluation) (uuid.UUID, error) {
	if f.insertErr != nil {
		return uuid.Nil, f.insertErr
	}
	f.inserted = append(f.inserted, e)
	return e.ID, nil
}

func (f *fakeApplicantRepo) ListByJob(_ context.Context, jobID uuid.UUID, _, _ int) ([]Evaluation, error) {
	var out []Evaluation
	for _, e := range f.inserted {
		if e.JobID == jobID {
			out = append(out, e)
		}
	}
	return out, nil
}

type fakeNotifier struct {
	calls       int
	lastEval    Evaluation
	lastCompany string
	attempted   bool
}

func (f *fakeNotifier) SendDecision(_ context.Context, e Evaluation, _ job.Job, companyName string) bool {
	f.calls++
	f.lastEval = e
	f.lastCompany = companyName
	return f.attempted
}

type pipelineFixture struct {
	jobs     *fakeJobRepo
	users    *fakeUserRepo
	repo     *fakeApplicantRepo
	model    *stubChatModel
	notifier *fakeNotifier
	pipeline *Pipeline
	jobID    uuid.UUID
}

func newPipelineFixture(t *testing.T, modelReply string) *pipelineFixture {
	t.Helper()

	jobID := uuid.New()
	jobs := &fakeJobRepo{jobs: map[uuid.UUID]job.Job{
		jobID: {
			ID:          jobID,
			Title:       "Go Developer",
			Description: "Backend role, Go and PostgreSQL",
			CreatedBy:   "hr@acme.com",
			CompanyName: "Acme",
		},
	}}
	users := &fakeUserRepo{users: map[string]auth.User{
		"hr@acme.com": {ID: uuid.New(), Email: "hr@acme.com", CompanyName: "Acme"},
	}}
	repo := &fakeApplicantRepo{}
	model := &stubChatModel{response: modelReply}
	notifier := &fakeNotifier{attempted: true}

	evaluator := NewEvaluator(model, zap.NewNop())
	p := NewPipeline(jobs, users, repo, evaluator, notifier, zap.NewNop())
	return &pipelineFixture{
		jobs:     jobs,
		users:    users,
		repo:     repo,
		model:    model,
		notifier: notifier,
		pipeline: p,
		jobID:    jobID,
	}
}

func TestProcessPersistsAndNotifiesOnLowScore(t *testing.T) {
	fx := newPipelineFixture(t, `{"fit_score": 0.4, "summary": "Junior profile", "candidate_name": "Jane Doe", "candidate_email": "jane@example.com"}`)
	data := buildDocx(t, "Jane Doe", "Junior Go developer", "jane@example.com")

	res, err := fx.pipeline.Process(context.Background(), fx.jobID, "resume.docx", data)

	require.NoError(t, err)
	assert.Equal(t, StageDone, res.Stage)
	require.Len(t, fx.repo.inserted, 1)
	stored := fx.repo.inserted[0]
	assert.Equal(t, fx.jobID, stored.JobID)
	assert.Equal(t, "resume.docx", stored.Filename)
	assert.Equal(t, 0.4, stored.FitScore)
	assert.NotEmpty(t, stored.ResumeText)
	assert.Equal(t, res.ApplicantID, stored.ID)

	assert.Equal(t, 1, fx.notifier.calls)
	assert.Equal(t, "jane@example.com", fx.notifier.lastEval.CandidateEmail)
	assert.Equal(t, "Acme", fx.notifier.lastCompany)
}

func TestProcessUnreadableFilePersistsZeroScoreWithoutModelCall(t *testing.T) {
	fx := newPipelineFixture(t, `{"fit_score": 0.9}`)

	res, err := fx.pipeline.Process(context.Background(), fx.jobID, "resume.pdf", []byte("not a real pdf"))

	require.NoError(t, err)
	assert.Equal(t, StageDone, res.Stage)
	assert.Equal(t, 0, fx.model.calls)
	require.Len(t, fx.repo.inserted, 1)
	stored := fx.repo.inserted[0]
	assert.Equal(t, 0.0, stored.FitScore)
	assert.Equal(t, "Parsing failed (no text found)", stored.Summary)
	assert.Equal(t, "", stored.ResumeText)
	// no text means no email either, so nothing to notify
	assert.Equal(t, 0, fx.notifier.calls)
}

func TestProcessUnknownJob(t *testing.T) {
	fx := newPipelineFixture(t, `{}`)

	_, err := fx.pipeline.Process(context.Background(), uuid.New(), "resume.docx", buildDocx(t, "text"))

	assert.ErrorIs(t, err, job.ErrNotFound)
	assert.Empty(t, fx.repo.inserted)
}

func TestProcessStorageFault(t *testing.T) {
	fx := newPipelineFixture(t, `{"fit_score": 0.3}`)
	fx.repo.insertErr = errors.New("connection refused")

	_, err := fx.pipeline.Process(context.Background(), fx.jobID, "resume.docx", buildDocx(t, "some resume text"))

	require.Error(t, err)
	assert.NotErrorIs(t, err, job.ErrNotFound)
	assert.Contains(t, err.Error(), "connection refused")
	assert.Equal(t, 0, fx.notifier.calls)
}

func TestProcessFallsBackToEmailFromResumeText(t *testing.T) {
	// The model found no email, the resume body carries one.
	fx := newPipelineFixture(t, `{"fit_score": 0.5, "candidate_name": "Jane"}`)
	data := buildDocx(t, "Jane Doe", "Contact: jane.doe@example.com")

	_, err := fx.pipeline.Process(context.Background(), fx.jobID, "resume.docx", data)

	require.NoError(t, err)
	assert.Equal(t, 1, fx.notifier.calls)
	assert.Equal(t, "jane.doe@example.com", fx.notifier.lastEval.CandidateEmail)
}

func TestProcessSkipsNotificationWithoutResolvableEmail(t *testing.T) {
	fx := newPipelineFixture(t, `{"fit_score": 0.2, "candidate_name": "Jane"}`)
	data := buildDocx(t, "Jane Doe", "no contact details in this resume")

	res, err := fx.pipeline.Process(context.Background(), fx.jobID, "resume.docx", data)

	require.NoError(t, err)
	assert.Equal(t, StageDone, res.Stage)
	require.Len(t, fx.repo.inserted, 1)
	assert.Equal(t, 0, fx.notifier.calls)
}

func TestProcessDegradedEvaluationStillPersisted(t *testing.T) {
	fx := newPipelineFixture(t, "")
	fx.model.err = errors.New("model unavailable")
	data := buildDocx(t, "Readable resume text without contact info")

	res, err := fx.pipeline.Process(context.Background(), fx.jobID, "resume.docx", data)

	require.NoError(t, err)
	require.Len(t, fx.repo.inserted, 1)
	assert.Equal(t, 0.0, fx.repo.inserted[0].FitScore)
	assert.Equal(t, fallbackSummary, fx.repo.inserted[0].Summary)
	assert.Equal(t, StageDone, res.Stage)
}

func TestProcessCompanyFallsBackToJobWhenHRMissing(t *testing.T) {
	fx := newPipelineFixture(t, `{"fit_score": 0.1, "candidate_email": "jane@example.com"}`)
	delete(fx.users.users, "hr@acme.com")

	_, err := fx.pipeline.Process(context.Background(), fx.jobID, "resume.docx", buildDocx(t, "text"))

	require.NoError(t, err)
	assert.Equal(t, 1, fx.notifier.calls)
	assert.Equal(t, "Acme", fx.notifier.lastCompany)
}
