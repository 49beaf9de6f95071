package errors

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	err := New("test error")
	require.NotNil(t, err)
	assert.Equal(t, "test error", err.Error())
}

func TestWrapPreservesSentinel(t *testing.T) {
	err := Wrap(ErrRegistryConflict, "publish button@1.2.0/react")

	assert.Contains(t, err.Error(), "publish button@1.2.0/react")
	assert.True(t, Is(err, ErrRegistryConflict))
	assert.True(t, IsConflictError(err))
	assert.False(t, IsNotFoundError(err))
}

func TestNewMissingTokenError(t *testing.T) {
	err := NewMissingTokenError("color.primary.500", "button")

	require.Error(t, err)
	assert.True(t, IsMissingTokenError(err))
	assert.Contains(t, err.Error(), "color.primary.500")
	assert.Contains(t, err.Error(), "button")

	details := GetAllDetails(err)
	require.Len(t, details, 1)
	assert.Equal(t, "token=color.primary.500 component=button", details[0])
}

func TestNewMissingDefaultVariantError(t *testing.T) {
	err := NewMissingDefaultVariantError("size", "badge")

	assert.True(t, Is(err, ErrMissingDefaultVariant))
	assert.Contains(t, err.Error(), `axis "size"`)
	assert.NotEmpty(t, GetAllHints(err))
}

func TestNewCapabilityGapError(t *testing.T) {
	err := NewCapabilityGapError("rnative", "focus-ring primitive")

	assert.True(t, IsCapabilityGapError(err))
	assert.Contains(t, err.Error(), "rnative")
	assert.Contains(t, err.Error(), "focus-ring primitive")
}

func TestGeneratorTimeout(t *testing.T) {
	err := NewGeneratorTimeoutError("vue", "30s")

	assert.True(t, Is(err, ErrGeneratorTimeout))
	assert.Contains(t, err.Error(), "vue")
}

func TestClassifiersRejectNil(t *testing.T) {
	assert.False(t, IsMissingTokenError(nil))
	assert.False(t, IsCapabilityGapError(nil))
	assert.False(t, IsValidationError(nil))
	assert.False(t, IsConflictError(nil))
	assert.False(t, IsNotFoundError(nil))
}
