package notification

import (
	"context"
	"fmt"
	"recruitment-backend/lib/smtp"
	connectionhub "recruitment-backend/lib/ws/hub/connection-hub"
	"recruitment-backend/models"
	wsmodels "recruitment-backend/models/ws"
	"strings"
	"sync"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

type fakeMailer struct {
	mu         sync.Mutex
	configured bool
	failFor    string
	sent       []smtp.Mail
}

func (f *fakeMailer) IsConfigured() bool {
	return f.configured
}

func (f *fakeMailer) SendEMail(ctx context.Context, mail smtp.Mail) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if mail.To == f.failFor {
		return "", errors.New("550 mailbox unavailable")
	}
	f.sent = append(f.sent, mail)
	return fmt.Sprintf("<%d@test>", len(f.sent)), nil
}

type fakeHub struct {
	connectionhub.Provider
	mu   sync.Mutex
	msgs []wsmodels.ServerMessage
}

func (f *fakeHub) SendMessage(msg wsmodels.ServerMessage) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.msgs = append(f.msgs, msg)
}

func newDispatcher(mailer *fakeMailer, hub connectionhub.Provider) Provider {
	return NewInstance(mailer, hub, Config{AppName: "Recruitment Management System", Concurrency: 2})
}

func TestNotify(t *testing.T) {
	recipient := models.Recipient{UserID: "u1", Email: "bob@example.com", Name: "Bob"}
	data := models.NotificationData{JobTitle: "Go Developer", Status: models.ApplicationStatusShortlisted}

	t.Run("sent", func(t *testing.T) {
		mailer := &fakeMailer{configured: true}
		hub := &fakeHub{}
		status := newDispatcher(mailer, hub).Notify(context.Background(), models.NotificationApplicationStatusChanged, recipient, data)
		require.True(t, status.Success)
		require.False(t, status.Skipped)
		require.Equal(t, "<1@test>", status.MessageID)
		require.Len(t, mailer.sent, 1)
		require.Equal(t, "Application Status Updated | Recruitment Management System", mailer.sent[0].Subject)
		require.Contains(t, mailer.sent[0].Text, "updated to: shortlisted")
		require.Contains(t, mailer.sent[0].HTML, "SHORTLISTED")
		require.Contains(t, mailer.sent[0].HTML, "Hello Bob,")
		require.Len(t, hub.msgs, 1)
		require.Equal(t, "u1", hub.msgs[0].ToUserID)
		require.Equal(t, string(models.NotificationApplicationStatusChanged), hub.msgs[0].Code)
	})
	t.Run("missing recipient", func(t *testing.T) {
		status := newDispatcher(&fakeMailer{configured: true}, nil).Notify(context.Background(), models.NotificationApplicationSubmitted, models.Recipient{}, data)
		require.True(t, status.Skipped)
		require.Equal(t, models.NotifyReasonMissingRecipient, status.Reason)
	})
	t.Run("smtp not configured", func(t *testing.T) {
		status := newDispatcher(&fakeMailer{}, nil).Notify(context.Background(), models.NotificationApplicationSubmitted, recipient, data)
		require.True(t, status.Skipped)
		require.Equal(t, models.NotifyReasonSmtpNotConfigured, status.Reason)
	})
	t.Run("send failed", func(t *testing.T) {
		mailer := &fakeMailer{configured: true, failFor: "bob@example.com"}
		status := newDispatcher(mailer, nil).Notify(context.Background(), models.NotificationApplicationSubmitted, recipient, data)
		require.False(t, status.Success)
		require.False(t, status.Skipped)
		require.Equal(t, models.NotifyReasonSendFailed, status.Reason)
		require.Contains(t, status.Error, "mailbox unavailable")
	})
	t.Run("unknown kind", func(t *testing.T) {
		status := newDispatcher(&fakeMailer{configured: true}, nil).Notify(context.Background(), "promo", recipient, data)
		require.True(t, status.Skipped)
		require.Equal(t, models.NotifyReasonUnknownKind, status.Reason)
	})
	t.Run("job closed reasons", func(t *testing.T) {
		mailer := &fakeMailer{configured: true}
		dispatcher := newDispatcher(mailer, nil)
		dispatcher.Notify(context.Background(), models.NotificationJobClosed, recipient, models.NotificationData{JobTitle: "QA", Reason: models.JobCloseReasonVacanciesFilled})
		dispatcher.Notify(context.Background(), models.NotificationJobClosed, recipient, models.NotificationData{JobTitle: "QA", Reason: models.JobCloseReasonManual})
		require.Len(t, mailer.sent, 2)
		require.Contains(t, mailer.sent[0].Text, "all vacancies have been filled")
		require.Contains(t, mailer.sent[1].Text, "manually closed by the hiring team")
	})
	t.Run("html escapes user input", func(t *testing.T) {
		mailer := &fakeMailer{configured: true}
		newDispatcher(mailer, nil).Notify(context.Background(), models.NotificationApplicationSubmitted,
			models.Recipient{Email: "x@example.com", Name: "<script>alert(1)</script>"}, data)
		require.Len(t, mailer.sent, 1)
		require.NotContains(t, mailer.sent[0].HTML, "<script>")
	})
}

func TestBroadcast(t *testing.T) {
	mailer := &fakeMailer{configured: true, failFor: "carol@example.com"}
	recipients := []models.Recipient{
		{UserID: "u1", Email: "bob@example.com", Name: "Bob"},
		{UserID: "u2", Email: "BOB@example.com", Name: "Bobby"},
		{UserID: "u3", Email: "carol@example.com"},
		{UserID: "u4", Email: ""},
		{UserID: "u5", Email: "dave@example.com", Name: "Dave"},
	}
	results := newDispatcher(mailer, nil).Broadcast(context.Background(), models.NotificationJobClosed, recipients,
		models.NotificationData{JobTitle: "Go Developer", Reason: models.JobCloseReasonVacanciesFilled})

	require.Len(t, results, 3)
	byEmail := map[string]models.NotifyStatus{}
	for _, result := range results {
		byEmail[strings.ToLower(result.Recipient.Email)] = result.Status
	}
	require.True(t, byEmail["bob@example.com"].Success)
	require.True(t, byEmail["dave@example.com"].Success)
	require.Equal(t, models.NotifyReasonSendFailed, byEmail["carol@example.com"].Reason)
	require.Len(t, mailer.sent, 2)
	for _, mail := range mailer.sent {
		if mail.To == "bob@example.com" {
			require.Contains(t, mail.Text, "Hi Bob,")
		}
	}
}

func TestDedupRecipients(t *testing.T) {
	list := DedupRecipients([]models.Recipient{
		{Email: " a@x.com "},
		{Email: "A@X.COM", Name: "second"},
		{Email: "b@x.com", Name: "B"},
	})
	require.Len(t, list, 2)
	require.Equal(t, "Candidate", list[0].Name)
	require.Equal(t, "B", list[1].Name)
}
