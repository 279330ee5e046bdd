package logging

import (
	"github.com/pion/logging"
)

const scopePrefix = "depthcolor/"

var loggerFactory = logging.NewDefaultLoggerFactory()

// NewLogger returns a leveled logger for scope. Levels follow the PION_LOG_*
// environment variables, e.g. PION_LOG_DEBUG=depthcolor/driver/cmdsource.
func NewLogger(scope string) logging.LeveledLogger {
	return loggerFactory.NewLogger(scopePrefix + scope)
}
