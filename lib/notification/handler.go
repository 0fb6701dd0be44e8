package notification

import (
	"context"
	"fmt"
	"recruitment-backend/lib/smtp"
	connectionhub "recruitment-backend/lib/ws/hub/connection-hub"
	"recruitment-backend/models"
	wsmodels "recruitment-backend/models/ws"
	"strings"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

type Provider interface {
	// Notify sends one notification. It never fails, the outcome is described by the returned status.
	Notify(ctx context.Context, kind models.NotificationKind, recipient models.Recipient, data models.NotificationData) models.NotifyStatus
	// Broadcast notifies every distinct recipient (by email) concurrently and waits for all of them.
	Broadcast(ctx context.Context, kind models.NotificationKind, recipients []models.Recipient, data models.NotificationData) []BroadcastResult
	// Push delivers an in-app event to a connected user, if any.
	Push(userID string, kind models.NotificationKind, msg string)
}

type BroadcastResult struct {
	Recipient models.Recipient
	Status    models.NotifyStatus
}

type Config struct {
	AppName     string
	Timeout     time.Duration
	Concurrency int
}

var Instance Provider

func NewHandler(mailer smtp.Provider, hub connectionhub.Provider, cfg Config) {
	Instance = NewInstance(mailer, hub, cfg)
}

func NewInstance(mailer smtp.Provider, hub connectionhub.Provider, cfg Config) Provider {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 8
	}
	return &impl{
		mailer: mailer,
		hub:    hub,
		cfg:    cfg,
	}
}

type impl struct {
	mailer smtp.Provider
	hub    connectionhub.Provider
	cfg    Config
}

func (i impl) Notify(ctx context.Context, kind models.NotificationKind, recipient models.Recipient, data models.NotificationData) (status models.NotifyStatus) {
	logger := log.
		WithField("kind", kind).
		WithField("to", recipient.Email)
	defer func() {
		if r := recover(); r != nil {
			logger.Errorf("notification panic: %v", r)
			status = models.NotifyFailed(errors.Errorf("%v", r))
		}
	}()

	if data.Name == "" {
		data.Name = recipient.Name
	}
	msg, err := render(i.cfg.AppName, kind, data)
	if err != nil {
		if errors.Is(err, errUnknownKind) {
			logger.Warn("unknown notification kind")
			return models.NotifySkipped(models.NotifyReasonUnknownKind)
		}
		logger.WithError(err).Error("notification rendering failed")
		return models.NotifyFailed(err)
	}
	i.Push(recipient.UserID, kind, msg.Text)

	if strings.TrimSpace(recipient.Email) == "" {
		return models.NotifySkipped(models.NotifyReasonMissingRecipient)
	}
	if i.mailer == nil || !i.mailer.IsConfigured() {
		logger.Warn("SMTP is not configured, email skipped")
		return models.NotifySkipped(models.NotifyReasonSmtpNotConfigured)
	}

	sendCtx, cancel := context.WithTimeout(ctx, i.cfg.Timeout)
	defer cancel()
	messageID, err := i.mailer.SendEMail(sendCtx, smtp.Mail{
		To:      recipient.Email,
		Subject: msg.Subject,
		Text:    msg.Text,
		HTML:    msg.HTML,
	})
	if err != nil {
		return models.NotifyFailed(err)
	}
	return models.NotifySent(messageID)
}

func (i impl) Broadcast(ctx context.Context, kind models.NotificationKind, recipients []models.Recipient, data models.NotificationData) []BroadcastResult {
	unique := DedupRecipients(recipients)
	results := make([]BroadcastResult, len(unique))
	g := errgroup.Group{}
	g.SetLimit(i.cfg.Concurrency)
	for idx, recipient := range unique {
		idx, recipient := idx, recipient
		g.Go(func() error {
			recData := data
			recData.Name = recipient.Name
			results[idx] = BroadcastResult{
				Recipient: recipient,
				Status:    i.Notify(ctx, kind, recipient, recData),
			}
			return nil
		})
	}
	_ = g.Wait()

	sent := 0
	for _, result := range results {
		if result.Status.Success {
			sent++
		}
	}
	log.
		WithField("kind", kind).
		WithField("job_title", data.JobTitle).
		Info(fmt.Sprintf("broadcast finished: %d of %d sent", sent, len(results)))
	return results
}

func (i impl) Push(userID string, kind models.NotificationKind, msg string) {
	if i.hub == nil || userID == "" {
		return
	}
	i.hub.SendMessage(wsmodels.ServerMessage{
		ToUserID: userID,
		Time:     time.Now().Format(time.RFC3339),
		Code:     string(kind),
		Msg:      msg,
	})
}

// DedupRecipients keeps the first recipient of each email (case insensitive) and drops those without email.
func DedupRecipients(recipients []models.Recipient) []models.Recipient {
	result := make([]models.Recipient, 0, len(recipients))
	seen := make(map[string]bool, len(recipients))
	for _, recipient := range recipients {
		key := strings.ToLower(strings.TrimSpace(recipient.Email))
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		if recipient.Name == "" {
			recipient.Name = "Candidate"
		}
		result = append(result, recipient)
	}
	return result
}
