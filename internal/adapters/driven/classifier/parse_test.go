package classifier

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/reposift/internal/core/domain"
)

func TestParseVerdict(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		want   domain.Verdict
		wantOK bool
	}{
		{"yes with dash", "Yes - contains STM32 HAL drivers", domain.Suitable("contains STM32 HAL drivers"), true},
		{"no with dash", "No - documentation only", domain.Unsuitable("documentation only"), true},
		{"lowercase yes colon", "yes: firmware sources", domain.Suitable("firmware sources"), true},
		{"bare yes", "Yes", domain.Suitable(""), true},
		{"bare no with period", "No.", domain.Unsuitable(""), true},
		{"leading markdown", "**Yes** - bootloader code", domain.Suitable("bootloader code"), true},
		{"leading whitespace", "\n\n  No, just slides", domain.Unsuitable("just slides"), true},
		{"yes within window", "Answer: Yes - RTOS port", domain.Suitable("RTOS port"), true},
		{"em dash", "Yes — drivers", domain.Suitable("drivers"), true},
		{"not a whole word", "Nothing here is firmware", domain.Verdict{}, false},
		{"yesterday is not yes", "Yesterday I saw code", domain.Verdict{}, false},
		{"nope is not no", "Nope, just docs", domain.Verdict{}, false},
		{"not is not no", "Not embedded code", domain.Verdict{}, false},
		{"nope with unsuitable", "Nope - unsuitable, docs only", domain.Unsuitable("Nope - unsuitable, docs only"), true},
		{"no after nope", "Nope. No - slides", domain.Unsuitable("slides"), true},
		{"not suitable", "This repository is not suitable for training", domain.Unsuitable("This repository is not suitable for training"), true},
		{"unsuitable", "The repo seems unsuitable", domain.Unsuitable("The repo seems unsuitable"), true},
		{"suitable", "This repository is suitable for the corpus", domain.Suitable("This repository is suitable for the corpus"), true},
		{"negated early", "It is not clear whether this is suitable", domain.Verdict{}, false},
		{"ambiguous", "Maybe, hard to tell", domain.Verdict{}, false},
		{"empty", "", domain.Verdict{}, false},
		{"late yes", "After careful consideration, yes", domain.Verdict{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseVerdict(tt.text)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseVerdict_TruncatesReason(t *testing.T) {
	long := strings.Repeat("a", 250)

	v, ok := ParseVerdict("Yes - " + long)
	assert.True(t, ok)
	assert.Len(t, v.Reason, maxReasonLength)

	v, ok = ParseVerdict("This repo is unsuitable " + long)
	assert.True(t, ok)
	assert.Equal(t, domain.OutcomeUnsuitable, v.Outcome)
	assert.LessOrEqual(t, utf8.RuneCountInString(v.Reason), maxReasonLength)
}

func FuzzParseVerdict(f *testing.F) {
	seeds := []string{
		"Yes - embedded code",
		"No - docs",
		"not suitable",
		"suitable",
		"",
		"   ",
		"Ye",
		"ñó - ümlaut",
		"\xff\xfe yes",
	}
	for _, s := range seeds {
		f.Add(s)
	}

	f.Fuzz(func(t *testing.T, text string) {
		v, ok := ParseVerdict(text)
		if !ok {
			if v != (domain.Verdict{}) {
				t.Fatalf("ambiguous answer returned a verdict: %+v", v)
			}
			return
		}
		if v.Outcome != domain.OutcomeSuitable && v.Outcome != domain.OutcomeUnsuitable {
			t.Fatalf("unexpected outcome %q", v.Outcome)
		}
		if v.Fallback {
			t.Fatalf("parsed verdict marked as fallback")
		}
		if n := utf8.RuneCountInString(v.Reason); n > maxReasonLength {
			t.Fatalf("reason too long: %d", n)
		}
	})
}
