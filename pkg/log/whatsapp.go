package log

import (
	"github.com/sirupsen/logrus"
	waLog "go.mau.fi/whatsmeow/util/log"
)

type waLogger struct {
	module string
	entry  *logrus.Entry
}

// WhatsApp returns a whatsmeow logger writing through the shared logrus instance.
func WhatsApp(module string) waLog.Logger {
	return &waLogger{
		module: module,
		entry:  logger.WithField("module", module),
	}
}

func (l *waLogger) Debugf(msg string, args ...interface{}) { l.entry.Debugf(msg, args...) }
func (l *waLogger) Infof(msg string, args ...interface{})  { l.entry.Infof(msg, args...) }
func (l *waLogger) Warnf(msg string, args ...interface{})  { l.entry.Warnf(msg, args...) }
func (l *waLogger) Errorf(msg string, args ...interface{}) { l.entry.Errorf(msg, args...) }

func (l *waLogger) Sub(module string) waLog.Logger {
	return WhatsApp(l.module + "/" + module)
}
