package emailsvc

import (
	"log"

	"github.com/vku/studentrecords/core"
)

// New returns the email service configured by conf.EmailBackend.
// Test mode always uses the mock console service.
func New(std *log.Logger, logger core.Logger, conf *core.Config) core.EmailService {
	switch {
	case conf.TestMode:
		return NewConsoleServiceMock(conf)
	case conf.EmailBackend == "sendgrid" && conf.SendgridApiKey != "":
		return NewSendgridService(logger, conf)
	default:
		return NewConsoleService(std, conf)
	}
}
