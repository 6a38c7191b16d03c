package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOutcome_IsValid(t *testing.T) {
	assert.True(t, OutcomeSuitable.IsValid())
	assert.True(t, OutcomeUnsuitable.IsValid())
	assert.True(t, OutcomeUnavailable.IsValid())
	assert.False(t, Outcome("").IsValid())
	assert.False(t, Outcome("maybe").IsValid())
}

func TestVerdict_String(t *testing.T) {
	tests := []struct {
		name     string
		verdict  Verdict
		expected string
	}{
		{"suitable with reason", Suitable("HAL drivers for STM32"), "Yes - HAL drivers for STM32"},
		{"suitable without reason", Suitable(""), "Yes"},
		{"unsuitable", Unsuitable("documentation only"), "No - documentation only"},
		{"unavailable", Unavailable("Ollama service not available"), "N/A (Ollama service not available)"},
		{"fallback multiple", FallbackVerdict(3), "Yes (fallback - multiple keywords matched)"},
		{"fallback single", FallbackVerdict(1), "Yes (fallback - pre-filtered repo)"},
		{"error default", ErrorDefaultVerdict(), "Yes (API error - defaulting to yes)"},
		{"zero value", Verdict{}, "N/A"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.verdict.String())
		})
	}
}

func TestFallbackVerdict_NeverUnsuitable(t *testing.T) {
	for matches := 0; matches <= 10; matches++ {
		v := FallbackVerdict(matches)
		assert.True(t, v.IsSuitable(), "match count %d", matches)
		assert.True(t, v.Fallback)
	}
}

func TestErrorDefaultVerdict(t *testing.T) {
	v := ErrorDefaultVerdict()

	assert.Equal(t, OutcomeSuitable, v.Outcome)
	assert.True(t, v.Fallback)
	assert.Equal(t, ReasonErrorDefault, v.Reason)
}
