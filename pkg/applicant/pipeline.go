package applicant

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ai-hr-system/backend/pkg/auth"
	"github.com/ai-hr-system/backend/pkg/job"
)

// Stage tracks how far an upload progressed through the pipeline.
// Everything after a file is accepted degrades forward: only a missing job or
// a storage fault is terminal.
type Stage string

const (
	StageReceived     Stage = "RECEIVED"
	StageExtracted    Stage = "EXTRACTED"
	StageEvaluated    Stage = "EVALUATED"
	StagePersisted    Stage = "PERSISTED"
	StageNotified     Stage = "NOTIFIED"
	StageSkippedNotif Stage = "SKIPPED_NOTIFY"
	StageDone         Stage = "DONE"
	StageError        Stage = "ERROR"
)

// DecisionNotifier sends the automatic decision email for a freshly persisted
// evaluation. Returns true when a send was attempted. Transport failures on
// this path are swallowed by the implementation.
type DecisionNotifier interface {
	SendDecision(ctx context.Context, e Evaluation, j job.Job, companyName string) bool
}

// Result is what the upload endpoint reports back.
type Result struct {
	ApplicantID uuid.UUID
	Evaluation  Evaluation
	Stage       Stage
}

// Pipeline orchestrates extract -> evaluate -> persist -> notify for one
// uploaded resume. Processing is synchronous; each upload blocks its request
// for the extraction, the model calls, the insert and any outbound email.
type Pipeline struct {
	jobs      job.Repository
	users     auth.UserRepository
	repo      Repository
	evaluator *Evaluator
	notifier  DecisionNotifier
	log       *zap.Logger
}

func NewPipeline(jobs job.Repository, users auth.UserRepository, repo Repository, evaluator *Evaluator, notifier DecisionNotifier, log *zap.Logger) *Pipeline {
	return &Pipeline{
		jobs:      jobs,
		users:     users,
		repo:      repo,
		evaluator: evaluator,
		notifier:  notifier,
		log:       log,
	}
}

// Process runs the pipeline for one accepted upload. The returned error is
// either job.ErrNotFound (structural) or a storage fault; every other failure
// mode produces a degraded but persisted evaluation.
func (p *Pipeline) Process(ctx context.Context, jobID uuid.UUID, filename string, data []byte) (Result, error) {
	stage := StageReceived

	j, err := p.jobs.GetByID(ctx, jobID)
	if err != nil {
		return Result{Stage: StageError}, job.ErrNotFound
	}

	text := Text(filename, data)
	stage = StageExtracted

	var eval Evaluation
	if text == "" {
		// Unreadable document: store the zero-score record, skip the model.
		eval = defaultEvaluation()
		eval.Summary = "Parsing failed (no text found)"
		p.log.Warn("resume text extraction yielded nothing",
			zap.String("job_id", jobID.String()),
			zap.String("filename", filename))
	} else {
		eval = p.evaluator.Evaluate(ctx, j.Description, text)
	}
	stage = StageEvaluated

	eval.ID = uuid.New()
	eval.JobID = j.ID
	eval.Filename = filename
	eval.ResumeText = text
	eval.CreatedAt = time.Now().UTC()

	id, err := p.repo.Insert(ctx, eval)
	if err != nil {
		return Result{Stage: StageError}, fmt.Errorf("store applicant evaluation: %w", err)
	}
	eval.ID = id
	stage = StagePersisted

	stage = p.notify(ctx, eval, j)

	p.log.Info("resume processed",
		zap.String("job_id", j.ID.String()),
		zap.String("applicant_id", id.String()),
		zap.Float64("fit_score", eval.FitScore),
		zap.String("stage", string(stage)))

	return Result{ApplicantID: id, Evaluation: eval, Stage: StageDone}, nil
}

// notify resolves the candidate email and hands off to the dispatcher.
// The decision email is best-effort; nothing here can fail the request.
func (p *Pipeline) notify(ctx context.Context, eval Evaluation, j job.Job) Stage {
	email := eval.CandidateEmail
	if email == "" {
		email = FindEmail(eval.ResumeText)
	}
	if email == "" {
		p.log.Info("no candidate email resolvable, skipping notification",
			zap.String("applicant_id", eval.ID.String()))
		return StageSkippedNotif
	}
	eval.CandidateEmail = email

	company := j.CompanyName
	if hr, err := p.users.GetByEmail(ctx, j.CreatedBy); err == nil && hr.CompanyName != "" {
		company = hr.CompanyName
	}
	if company == "" {
		company = "Our Company"
	}

	if p.notifier.SendDecision(ctx, eval, j, company) {
		return StageNotified
	}
	return StageSkippedNotif
}
