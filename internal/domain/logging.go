package domain

import (
	"io"

	"github.com/sirupsen/logrus"
)

// ensureLogger returns log, or a discard logger when the caller wired none.
// Components never log unless the owning process asked for it.
func ensureLogger(log logrus.FieldLogger) logrus.FieldLogger {
	if log != nil {
		return log
	}

	l := logrus.New()
	l.SetOutput(io.Discard)

	return l
}
