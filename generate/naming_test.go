package generate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPascalCase(t *testing.T) {
	assert.Equal(t, "Button", PascalCase("button"))
	assert.Equal(t, "IconButton", PascalCase("icon-button"))
	assert.Equal(t, "DataGridRow", PascalCase("data_grid.row"))
	assert.Equal(t, "", PascalCase(""))
}

func TestCamelCase(t *testing.T) {
	assert.Equal(t, "ariaLabel", CamelCase("aria-label"))
	assert.Equal(t, "iconButton", CamelCase("icon-button"))
	assert.Equal(t, "", CamelCase(""))
}

func TestAriaPropName(t *testing.T) {
	assert.Equal(t, "ariaLabel", AriaPropName("aria-label"))
	assert.Equal(t, "ariaDescribedby", AriaPropName("aria-describedby"))
}

func TestNativelyFocusable(t *testing.T) {
	assert.True(t, NativelyFocusable("button"))
	assert.True(t, NativelyFocusable("input"))
	assert.False(t, NativelyFocusable("div"))
	assert.False(t, NativelyFocusable("span"))
}
