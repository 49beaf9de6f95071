package generate

import (
	"strings"
)

// PascalCase converts a component id like "icon-button" to "IconButton"
func PascalCase(id string) string {
	var sb strings.Builder
	upper := true
	for _, r := range id {
		switch r {
		case '-', '_', '.', ' ':
			upper = true
		default:
			if upper {
				sb.WriteString(strings.ToUpper(string(r)))
				upper = false
			} else {
				sb.WriteRune(r)
			}
		}
	}
	return sb.String()
}

// CamelCase converts an identifier like "aria-label" to "ariaLabel"
func CamelCase(id string) string {
	p := PascalCase(id)
	if p == "" {
		return p
	}
	return strings.ToLower(p[:1]) + p[1:]
}

// AriaPropName derives the public prop that carries a contract ARIA
// attribute declared without a fixed value ("aria-label" -> "ariaLabel").
// Every generator uses this same rule so the public surface stays in parity
// across platforms.
func AriaPropName(attr string) string {
	return CamelCase(attr)
}

// nativelyFocusable elements satisfy keyboard contracts without an explicit
// tabindex
var nativelyFocusable = map[string]bool{
	"button":   true,
	"a":        true,
	"input":    true,
	"select":   true,
	"textarea": true,
}

// NativelyFocusable reports whether the semantic element receives keyboard
// focus without an explicit tabindex
func NativelyFocusable(element string) bool {
	return nativelyFocusable[element]
}
