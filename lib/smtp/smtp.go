package smtp

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/emersion/go-sasl"
	"github.com/emersion/go-smtp"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gopkg.in/gomail.v2"
)

type Provider interface {
	// IsConfigured is false when host, port or sender are missing; sending is then skipped by callers.
	IsConfigured() bool
	// SendEMail delivers a multipart text/html message and returns its Message-Id.
	SendEMail(ctx context.Context, mail Mail) (messageID string, err error)
}

type Mail struct {
	To      string
	Subject string
	Text    string
	HTML    string
}

type Config struct {
	User       string
	Password   string
	Host       string
	Port       string
	From       string
	TLSEnabled bool
}

type sendFunc func(addr string, a sasl.Client, from string, to []string, body []byte) error

func NewClient(cfg Config) Provider {
	if cfg.From == "" {
		cfg.From = cfg.User
	}
	return &impl{
		cfg:  cfg,
		send: transport(cfg.TLSEnabled),
	}
}

type impl struct {
	cfg  Config
	send sendFunc
}

func (i impl) IsConfigured() bool {
	return i.cfg.Host != "" && i.cfg.Port != "" && i.cfg.From != ""
}

func (i impl) SendEMail(ctx context.Context, mail Mail) (messageID string, err error) {
	logger := log.WithField("to", mail.To)
	if !i.IsConfigured() {
		return "", errors.New("smtp client is not configured")
	}
	messageID = fmt.Sprintf("<%s@%s>", uuid.New().String(), i.cfg.Host)
	body, err := buildMessage(i.cfg.From, messageID, mail)
	if err != nil {
		return "", err
	}

	var auth sasl.Client
	if i.cfg.User != "" {
		auth = sasl.NewPlainClient("", i.cfg.User, i.cfg.Password)
	}
	done := make(chan error, 1)
	go func() {
		done <- i.send(i.cfg.Host+":"+i.cfg.Port, auth, envelopeFrom(i.cfg.From), []string{mail.To}, body)
	}()
	select {
	case <-ctx.Done():
		logger.Warn("email sending interrupted by timeout")
		return "", errors.Wrap(ctx.Err(), "email sending interrupted")
	case err = <-done:
	}
	if err != nil {
		logger.WithError(err).Error("email sending failed")
		return "", errors.Wrap(err, "email sending failed")
	}
	logger.WithField("message_id", messageID).Info("email sent")
	return messageID, nil
}

func buildMessage(from, messageID string, mail Mail) ([]byte, error) {
	msg := gomail.NewMessage()
	msg.SetHeader("From", from)
	msg.SetHeader("To", mail.To)
	msg.SetHeader("Subject", mail.Subject)
	msg.SetHeader("Message-Id", messageID)
	msg.SetDateHeader("Date", time.Now())
	msg.SetBody("text/plain", mail.Text)
	if mail.HTML != "" {
		msg.AddAlternative("text/html", mail.HTML)
	}
	buf := bytes.Buffer{}
	if _, err := msg.WriteTo(&buf); err != nil {
		return nil, errors.Wrap(err, "failed to build email")
	}
	return buf.Bytes(), nil
}

// envelopeFrom extracts the bare address from `Name <addr>`.
func envelopeFrom(from string) string {
	start := strings.LastIndex(from, "<")
	end := strings.LastIndex(from, ">")
	if start >= 0 && end > start {
		return from[start+1 : end]
	}
	return from
}

func transport(tlsEnabled bool) sendFunc {
	return func(addr string, a sasl.Client, from string, to []string, body []byte) error {
		if tlsEnabled {
			return smtp.SendMailTLS(addr, a, from, to, bytes.NewReader(body))
		}
		return smtp.SendMail(addr, a, from, to, bytes.NewReader(body))
	}
}
