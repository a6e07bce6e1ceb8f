package mail_fx

import (
	"os"
	"strconv"

	"go.uber.org/fx"

	"astracms/internal/services"
)

var Module = fx.Provide(provideMailService)

func provideMailService() services.IMailService {
	port, err := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if err != nil {
		port = 587 // STARTTLS; use 465 with UseSSL=true for SMTPS
	}

	cfg := services.SMTPConfig{
		Host:       os.Getenv("SMTP_HOST"),
		Port:       port,
		Username:   os.Getenv("SMTP_USERNAME"),
		Password:   os.Getenv("SMTP_PASSWORD"),
		From:       os.Getenv("FROM_EMAIL"),
		FromName:   "AstraCMS Admin",
		UseSSL:     false,
		RequireTLS: true,

		AppName:       "AstraCMS Admin",
		AdminPanelURL: os.Getenv("ADMIN_PANEL_URL"),
		AdminEmail:    os.Getenv("ADMIN_EMAIL"),
	}

	return services.NewSMTPMailService(cfg)
}
