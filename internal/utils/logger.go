package utils

import (
	"strings"

	"go.uber.org/zap"
)

// LogEvent writes one structured line per service action.
// Keep message summarized; never log payloads or credentials.
func LogEvent(requestID, module, action, message string) {
	zap.L().Info(message,
		zap.String("module", strings.ToLower(module)),
		zap.String("action", action),
		zap.String("request_id", strings.TrimSpace(requestID)),
	)
}
