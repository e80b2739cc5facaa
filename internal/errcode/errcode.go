// Package errcode translates the four-letter ISO-20022 style response codes
// the interbank switch embeds in its error messages into stable user-facing
// text.
package errcode

import "regexp"

// The switch does not guarantee a message template, only that a rejection
// carries its code somewhere in the text ("AM04 - ...", "rejected: AM04",
// ...). Matching the first four-character uppercase alphanumeric run is
// deliberately loose for that reason.
var codePattern = regexp.MustCompile(`[A-Z0-9]{4}`)

// Table maps response codes to human-readable messages. The default set
// covers the codes the switch is known to emit; callers may extend or
// replace it without touching workflow logic.
type Table map[string]string

// Default returns the standard code table.
func Default() Table {
	return Table{
		"AC00": "Transaction completed successfully.",
		"AM04": "Insufficient funds in your account.",
		"AC01": "The destination account number does not exist.",
		"AC03": "The destination account is invalid.",
		"AC04": "The destination account is closed.",
		"AC06": "The destination account is blocked.",
		"AG01": "Operation restricted: your institution is in receive-only mode.",
		"CH03": "The amount exceeds the allowed limit.",
		"DUPL": "This transfer was already processed (duplicate).",
		"MD01": "This transfer was already processed (duplicate).",
		"MS03": "There was a communication problem with the interbank network (technical error).",
		"RC01": "Internal format error (syntax).",
		"BE01": "Data inconsistency (security rejection).",
	}
}

// Translate maps a raw backend message to displayable text. If the message
// contains a known code the mapped text is returned annotated with the
// original code; otherwise the message comes back unchanged. Translate never
// returns an empty string.
func (t Table) Translate(raw string) string {
	if raw == "" {
		return "Unknown system error."
	}
	code := codePattern.FindString(raw)
	if code == "" {
		return raw
	}
	msg, ok := t[code]
	if !ok {
		return raw
	}
	return msg + " (" + code + ")"
}
