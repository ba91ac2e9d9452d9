package apperr

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorMessage(t *testing.T) {
	assert.Equal(t, "failed to analyze data (status 401)", WithStatus(KindUpstream, "failed to analyze data", 401, nil).Error())
	assert.Equal(t, "no file uploaded", New(KindInput, "no file uploaded", nil).Error())
}

func TestKindOfWrapped(t *testing.T) {
	base := New(KindCanceled, "analysis canceled", context.Canceled)
	wrapped := fmt.Errorf("run: %w", base)

	assert.Equal(t, KindCanceled, KindOf(wrapped))
	assert.True(t, Is(wrapped, KindCanceled))
	assert.False(t, Is(wrapped, KindInput))
	assert.ErrorIs(t, wrapped, context.Canceled)

	assert.Equal(t, KindUnknown, KindOf(errors.New("plain")))
	assert.Equal(t, KindUnknown, KindOf(nil))
	assert.False(t, Is(nil, KindUnknown))
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "input_error", KindInput.String())
	assert.Equal(t, "rate_limited", KindRateLimited.String())
	assert.Equal(t, "exhausted_retries", KindExhaustedRetries.String())
	assert.Equal(t, "upstream_fault", KindUpstream.String())
	assert.Equal(t, "canceled", KindCanceled.String())
	assert.Equal(t, "unknown", Kind(99).String())
}
