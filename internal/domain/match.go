package domain

// Confidence buckets a match score into a user-facing label.
type Confidence string

// Confidence labels, from strongest to weakest.
const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// Match is a scored card, recomputed on every query and never stored.
// Why is an ordered, human-readable trail of score contributions that must be
// reproducible from the score inputs alone.
type Match struct {
	Card       Card
	Score      float64
	Confidence Confidence
	Why        []string
}
