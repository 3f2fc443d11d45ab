package notify

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ai-hr-system/backend/pkg/applicant"
	"github.com/ai-hr-system/backend/pkg/job"
	"github.com/ai-hr-system/backend/pkg/mailer"
)

type stubComposer struct {
	body  string
	err   error
	calls int
}

func (s *stubComposer) ComposeRejection(_ context.Context, _, _, _ string, _ float64) (string, error) {
	s.calls++
	return s.body, s.err
}

type stubSender struct {
	ok   bool
	sent []mailer.Message
}

func (s *stubSender) SendBestEffort(m mailer.Message) bool {
	s.sent = append(s.sent, m)
	return s.ok
}

func TestSendDecisionAboveThresholdSendsNothing(t *testing.T) {
	composer := &stubComposer{body: "unused"}
	sender := &stubSender{ok: true}
	d := NewDispatcher(composer, sender, 0.85, zap.NewNop())

	attempted := d.SendDecision(context.Background(), applicant.Evaluation{
		FitScore:       0.85,
		CandidateEmail: "jane@example.com",
	}, job.Job{Title: "Go Developer"}, "Acme")

	assert.False(t, attempted)
	assert.Equal(t, 0, composer.calls)
	assert.Empty(t, sender.sent)
}

func TestSendDecisionBelowThresholdSendsRejection(t *testing.T) {
	composer := &stubComposer{body: "Dear Jane,\n\nThank you for applying."}
	sender := &stubSender{ok: true}
	d := NewDispatcher(composer, sender, 0.85, zap.NewNop())

	attempted := d.SendDecision(context.Background(), applicant.Evaluation{
		FitScore:       0.4,
		CandidateName:  "Jane Doe",
		CandidateEmail: "jane@example.com",
	}, job.Job{Title: "Go Developer"}, "Acme")

	assert.True(t, attempted)
	assert.Equal(t, 1, composer.calls)
	require.Len(t, sender.sent, 1)
	msg := sender.sent[0]
	assert.Equal(t, "jane@example.com", msg.To)
	assert.Equal(t, "Application Update for Go Developer at Acme", msg.Subject)
	assert.Equal(t, composer.body, msg.Body)
}

func TestSendDecisionCompositionFailureSkipsSend(t *testing.T) {
	composer := &stubComposer{err: errors.New("model unavailable")}
	sender := &stubSender{ok: true}
	d := NewDispatcher(composer, sender, 0.85, zap.NewNop())

	attempted := d.SendDecision(context.Background(), applicant.Evaluation{
		FitScore:       0.2,
		CandidateEmail: "jane@example.com",
	}, job.Job{Title: "Go Developer"}, "Acme")

	assert.False(t, attempted)
	assert.Empty(t, sender.sent)
}

func TestSendDecisionTransportFailureStillCountsAsAttempt(t *testing.T) {
	composer := &stubComposer{body: "Dear Candidate"}
	sender := &stubSender{ok: false}
	d := NewDispatcher(composer, sender, 0.85, zap.NewNop())

	attempted := d.SendDecision(context.Background(), applicant.Evaluation{
		FitScore:       0.5,
		CandidateEmail: "jane@example.com",
	}, job.Job{Title: "Go Developer"}, "Acme")

	assert.True(t, attempted)
	assert.Len(t, sender.sent, 1)
}
