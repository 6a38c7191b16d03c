package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestErrors_Existence tests that all error variables exist and are not nil
func TestErrors_Existence(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"ErrInvalidInput", ErrInvalidInput},
		{"ErrBackendUnavailable", ErrBackendUnavailable},
		{"ErrAmbiguousResponse", ErrAmbiguousResponse},
		{"ErrRateLimited", ErrRateLimited},
		{"ErrPersistence", ErrPersistence},
		{"ErrUnsupportedProvider", ErrUnsupportedProvider},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotNil(t, tt.err)
			assert.NotEmpty(t, tt.err.Error())
		})
	}
}

func TestErrors_WrappedWithIs(t *testing.T) {
	wrapped := fmt.Errorf("write checkpoint: %w", ErrPersistence)

	assert.True(t, errors.Is(wrapped, ErrPersistence))
	assert.False(t, errors.Is(wrapped, ErrRateLimited))
}
