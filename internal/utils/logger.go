package utils

import (
	"log"
	"strings"
)

// LogEvent prints one standardized line per domain event. Messages carry
// identifiers only, never contact details or payment fields.
func LogEvent(requestID, module, action, message string) {
	req := strings.TrimSpace(requestID)
	if req == "" {
		req = "-"
	}
	log.Printf("roadways/%s %s request_id=%s %s", strings.ToLower(module), action, req, message)
}
