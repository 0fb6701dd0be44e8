package initializers

import (
	"recruitment-backend/config"
	"recruitment-backend/lib/smtp"

	log "github.com/sirupsen/logrus"
)

func InitSmtp() smtp.Provider {
	client := smtp.NewClient(smtp.Config{
		User:       config.Conf.Smtp.User,
		Password:   config.Conf.Smtp.Password,
		Host:       config.Conf.Smtp.Host,
		Port:       config.Conf.Smtp.Port,
		From:       config.Conf.Smtp.From,
		TLSEnabled: *config.Conf.Smtp.TLSEnabled,
	})
	if !client.IsConfigured() {
		log.Warn("SMTP is not configured, emails will be skipped")
	}
	return client
}
