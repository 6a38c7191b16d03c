package domain

import "fmt"

// Outcome is the tri-state result of classifying a repository.
type Outcome string

// Available outcomes.
const (
	// OutcomeSuitable means the repository should be kept for the corpus.
	OutcomeSuitable Outcome = "suitable"

	// OutcomeUnsuitable means the repository should be discarded.
	OutcomeUnsuitable Outcome = "unsuitable"

	// OutcomeUnavailable means no backend could produce an answer.
	OutcomeUnavailable Outcome = "unavailable"
)

// IsValid returns true if the outcome is recognised.
func (o Outcome) IsValid() bool {
	switch o {
	case OutcomeSuitable, OutcomeUnsuitable, OutcomeUnavailable:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (o Outcome) String() string {
	return string(o)
}

// Fallback reasons shared by the heuristic paths.
const (
	ReasonMultipleKeywords = "fallback - multiple keywords matched"
	ReasonPreFiltered      = "fallback - pre-filtered repo"
	ReasonErrorDefault     = "API error - defaulting to yes"
)

// Verdict is a classification outcome with a human-readable reason.
type Verdict struct {
	Outcome Outcome

	// Reason is the explanation attached to the outcome.
	Reason string

	// Fallback is true when the verdict came from a heuristic or an
	// error default rather than a model answer.
	Fallback bool
}

// Suitable returns a model-produced positive verdict.
func Suitable(reason string) Verdict {
	return Verdict{Outcome: OutcomeSuitable, Reason: reason}
}

// Unsuitable returns a model-produced negative verdict.
func Unsuitable(reason string) Verdict {
	return Verdict{Outcome: OutcomeUnsuitable, Reason: reason}
}

// Unavailable returns a verdict for a backend that could not answer.
func Unavailable(reason string) Verdict {
	return Verdict{Outcome: OutcomeUnavailable, Reason: reason}
}

// FallbackVerdict is the keyword heuristic used when no model answer exists.
// It never returns an unsuitable verdict: inputs are already pre-filtered.
func FallbackVerdict(matchCount int) Verdict {
	if matchCount >= 2 {
		return Verdict{Outcome: OutcomeSuitable, Reason: ReasonMultipleKeywords, Fallback: true}
	}
	return Verdict{Outcome: OutcomeSuitable, Reason: ReasonPreFiltered, Fallback: true}
}

// ErrorDefaultVerdict is returned when the chosen backend failed outright.
func ErrorDefaultVerdict() Verdict {
	return Verdict{Outcome: OutcomeSuitable, Reason: ReasonErrorDefault, Fallback: true}
}

// IsSuitable reports whether the outcome is positive.
func (v Verdict) IsSuitable() bool {
	return v.Outcome == OutcomeSuitable
}

// String renders the verdict in the persisted ai_response format:
// "Yes - reason", "No - reason", "Yes (reason)" for fallbacks and
// "N/A (reason)" when unavailable.
func (v Verdict) String() string {
	switch v.Outcome {
	case OutcomeSuitable:
		if v.Fallback {
			return fmt.Sprintf("Yes (%s)", v.Reason)
		}
		return joinReason("Yes", v.Reason)
	case OutcomeUnsuitable:
		if v.Fallback {
			return fmt.Sprintf("No (%s)", v.Reason)
		}
		return joinReason("No", v.Reason)
	case OutcomeUnavailable:
		return fmt.Sprintf("N/A (%s)", v.Reason)
	default:
		return "N/A"
	}
}

func joinReason(answer, reason string) string {
	if reason == "" {
		return answer
	}
	return answer + " - " + reason
}
