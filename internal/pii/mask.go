// Package pii redacts personally identifiable information from free text
// before it crosses the process boundary to an external service.
package pii

import "regexp"

// The four redaction classes, applied in order. Passes run once each and are
// not recursive, so a placeholder emitted by an earlier pass is never
// re-matched by a later one.
var (
	phoneRe   = regexp.MustCompile(`(\+91|0)?[789]\d{9}`)
	accountRe = regexp.MustCompile(`\b\d{9,18}\b`)
	panRe     = regexp.MustCompile(`[A-Z]{5}[0-9]{4}[A-Z]`)
	emailRe   = regexp.MustCompile(`[\w.-]+@[\w.-]+\.\w+`)
)

// Mask replaces phone numbers, account-like digit runs, PAN tax IDs and email
// addresses with fixed placeholders. It is pure and total: any input maps to
// a string, empty input maps to "".
func Mask(text string) string {
	if text == "" {
		return ""
	}
	text = phoneRe.ReplaceAllString(text, "[PHONE_HIDDEN]")
	text = accountRe.ReplaceAllString(text, "[ACC_HIDDEN]")
	text = panRe.ReplaceAllString(text, "[PAN_HIDDEN]")
	text = emailRe.ReplaceAllString(text, "[EMAIL_HIDDEN]")
	return text
}
