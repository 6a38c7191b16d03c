package classifier

import (
	"strings"
	"unicode"

	"github.com/custodia-labs/reposift/internal/core/domain"
)

const (
	// maxReasonLength caps the reason kept from a model answer, in characters.
	maxReasonLength = 100

	// answerWindow is how far into the answer a leading yes/no may start.
	answerWindow = 10

	// negationWindow is how far into the answer a "not" vetoes "suitable".
	negationWindow = 30

	// reasonCutset is stripped from both ends of a reason.
	reasonCutset = " \t\r\n-—:,.*\"'"
)

// ParseVerdict maps a raw model answer to a verdict. The boolean is false
// when the answer is ambiguous and the caller must decide.
//
// A whole-word "yes" or "no" starting within the first ten characters decides
// the outcome and the remaining text becomes the reason. Otherwise the answer
// is searched for "not suitable", "unsuitable" or an un-negated "suitable".
// Words that merely begin with no, such as "Nope" or "Not", are not answers.
func ParseVerdict(text string) (domain.Verdict, bool) {
	answer := strings.TrimSpace(text)
	lead := strings.TrimLeftFunc(answer, func(r rune) bool { return !unicode.IsLetter(r) })

	if word, rest, ok := leadingAnswer(lead); ok {
		reason := truncate(strings.Trim(rest, reasonCutset), maxReasonLength)
		if word == "yes" {
			return domain.Suitable(reason), true
		}
		return domain.Unsuitable(reason), true
	}

	lower := strings.ToLower(answer)
	switch {
	case strings.Contains(lower, "not suitable"), strings.Contains(lower, "unsuitable"):
		return domain.Unsuitable(truncate(answer, maxReasonLength)), true
	case strings.Contains(lower, "suitable") && !strings.Contains(prefix(lower, negationWindow), "not"):
		return domain.Suitable(truncate(answer, maxReasonLength)), true
	}

	return domain.Verdict{}, false
}

// leadingAnswer finds the first word starting within answerWindow runes and
// reports whether it is yes or no, returning the text after it.
func leadingAnswer(s string) (word, rest string, ok bool) {
	runes := []rune(s)
	i := 0
	for i < len(runes) && i < answerWindow {
		if !unicode.IsLetter(runes[i]) {
			i++
			continue
		}
		start := i
		for i < len(runes) && unicode.IsLetter(runes[i]) {
			i++
		}
		switch strings.ToLower(string(runes[start:i])) {
		case "yes":
			return "yes", string(runes[i:]), true
		case "no":
			return "no", string(runes[i:]), true
		}
	}
	return "", "", false
}

func prefix(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

func truncate(s string, n int) string {
	return strings.TrimSpace(prefix(s, n))
}
