package initializers

import (
	"context"

	"hiring-platform-backend/config"
	"hiring-platform-backend/fiberlog"
	applicationhandler "hiring-platform-backend/lib/application"
	xlsexport "hiring-platform-backend/lib/export/xls"
	jobhandler "hiring-platform-backend/lib/job"
	smtpclient "hiring-platform-backend/lib/smtp"
)

var LoggerConfig *fiberlog.Config

func InitAllServices(ctx context.Context) {
	LoggerConfig = InitLogger()
	config.InitConfig()
	InitDBConnection()
	InitSmtp()
	xlsexport.NewHandler()
	jobhandler.NewHandler(smtpclient.Instance, config.Conf.Smtp.ApprovalsNotifyTo)
	applicationhandler.NewHandler()
}
