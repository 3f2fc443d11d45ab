package notify

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/ai-hr-system/backend/pkg/applicant"
	"github.com/ai-hr-system/backend/pkg/job"
	"github.com/ai-hr-system/backend/pkg/mailer"
)

// RejectionComposer produces the natural-language rejection email body.
type RejectionComposer interface {
	ComposeRejection(ctx context.Context, candidateName, jobTitle, companyName string, fitScore float64) (string, error)
}

// Sender is the best-effort delivery port. Returns whether the message went out.
type Sender interface {
	SendBestEffort(m mailer.Message) bool
}

// Dispatcher applies the threshold policy to a persisted evaluation:
// at or above the award cutoff no email is sent (a human schedules the
// interview out of band); below it a rejection is composed and sent
// best-effort.
type Dispatcher struct {
	composer  RejectionComposer
	sender    Sender
	threshold float64
	log       *zap.Logger
}

func NewDispatcher(composer RejectionComposer, sender Sender, threshold float64, log *zap.Logger) *Dispatcher {
	return &Dispatcher{composer: composer, sender: sender, threshold: threshold, log: log}
}

// SendDecision reports true when a send was attempted. The evaluation's
// CandidateEmail must already be resolved by the caller.
func (d *Dispatcher) SendDecision(ctx context.Context, e applicant.Evaluation, j job.Job, companyName string) bool {
	if e.FitScore >= d.threshold {
		d.log.Info("candidate above award threshold, awaiting HR scheduling",
			zap.String("candidate", e.CandidateName),
			zap.Float64("fit_score", e.FitScore))
		return false
	}

	body, err := d.composer.ComposeRejection(ctx, e.CandidateName, j.Title, companyName, e.FitScore)
	if err != nil {
		// Best-effort path: no retry, no propagation.
		d.log.Warn("rejection email composition failed, skipping send",
			zap.String("applicant_id", e.ID.String()),
			zap.Error(err))
		return false
	}

	msg := mailer.Message{
		To:      e.CandidateEmail,
		Subject: fmt.Sprintf("Application Update for %s at %s", j.Title, companyName),
		Body:    body,
	}
	d.sender.SendBestEffort(msg)
	return true
}
