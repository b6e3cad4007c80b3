package domain

import "errors"

var (
	// ErrQuestionTooShort signals a question below the minimum length.
	ErrQuestionTooShort = errors.New("question too short")
	// ErrSafetyRejected signals content blocked by the safety gate.
	ErrSafetyRejected = errors.New("rejected by safety gate")
	// ErrCardNotFound signals a missing card.
	ErrCardNotFound = errors.New("card not found")
)

// Safety rejection reason codes. These are stable identifiers surfaced to
// callers and logged for audit.
const (
	ReasonBannedKeywords   = "banned_keywords"
	ReasonDisallowedDomain = "disallowed_domain"
	ReasonLowStructure     = "low_structure_score"
	ReasonURLNotAllowed    = "url_not_allowed"
	ReasonPossibleID       = "possible_id_number"
	ReasonPossiblePhone    = "possible_phone"
	ReasonPossibleEmail    = "possible_email"
)

// SafetyError wraps ErrSafetyRejected with the gate's reason code.
type SafetyError struct {
	Reason string
}

func (e *SafetyError) Error() string {
	return ErrSafetyRejected.Error() + ": " + e.Reason
}

func (e *SafetyError) Unwrap() error { return ErrSafetyRejected }

// NewSafetyRejection creates a safety rejection with the given reason code.
func NewSafetyRejection(reason string) error {
	return &SafetyError{Reason: reason}
}

// RejectionReason extracts the reason code from a safety rejection, or ""
// if err is not one.
func RejectionReason(err error) string {
	var se *SafetyError
	if errors.As(err, &se) {
		return se.Reason
	}
	return ""
}
