package initializers

import (
	"hiring-platform-backend/config"
	smtpclient "hiring-platform-backend/lib/smtp"
)

func InitSmtp() {
	smtpclient.Connect(config.Conf.Smtp.User, config.Conf.Smtp.Password,
		config.Conf.Smtp.Host, config.Conf.Smtp.Port, *config.Conf.Smtp.TLSEnabled)
}
