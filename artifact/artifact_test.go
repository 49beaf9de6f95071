package artifact

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testKey() Key {
	return Key{
		Component:     "button",
		Platform:      "react",
		CSMVersion:    "1.2.0",
		TokenRevision: "2026.08.0",
	}
}

func TestKeyString(t *testing.T) {
	assert.Equal(t, "button@1.2.0/react@2026.08.0", testKey().String())
}

func TestKeyValidate(t *testing.T) {
	require.NoError(t, testKey().Validate())

	k := testKey()
	k.TokenRevision = ""
	assert.Error(t, k.Validate())
}

func TestNewComputesChecksum(t *testing.T) {
	a, err := New(testKey(), "react", "1.0.0", "Button.tsx", "export const Button = () => null;\n")
	require.NoError(t, err)

	assert.NotEmpty(t, a.Checksum)
	assert.True(t, a.Verify())

	a.Source += "// tampered\n"
	assert.False(t, a.Verify())
}

func TestChecksumIsContentOnly(t *testing.T) {
	src := "export const Button = () => null;\n"
	a, err := New(testKey(), "react", "1.0.0", "Button.tsx", src)
	require.NoError(t, err)

	other := testKey()
	other.Platform = "vue"
	b, err := New(other, "vue", "2.3.1", "PrismButton.vue", src)
	require.NoError(t, err)

	assert.Equal(t, a.Checksum, b.Checksum, "checksum depends on source text alone")
}

func TestNewRejectsEmptyFilename(t *testing.T) {
	_, err := New(testKey(), "react", "1.0.0", "", "src")
	assert.Error(t, err)
}
