// Package obs configures the process-wide structured logger, shared
// by cmd/numr and every internal package that needs to log.
package obs

import (
	"os"

	"github.com/sirupsen/logrus"
)

// Init configures logrus's standard logger: JSON output when json is
// true (for the RPC/serve path, where stdout is a wire protocol and
// logs must go to a structured stream instead), text output otherwise.
func Init(level string, json bool) {
	if json {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	logrus.SetOutput(os.Stderr)

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	logrus.SetLevel(lvl)
}

// SessionLogger returns a logger scoped to one evaluation session,
// tagging every entry with its correlation ID.
func SessionLogger(sessionID string) *logrus.Entry {
	return logrus.WithField("session_id", sessionID)
}
