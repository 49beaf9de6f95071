package tokens

import (
	"bytes"
	"io"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/prismui/prism/errors"
)

// Token documents are strict TOML: unknown fields are rejected, not ignored,
// to prevent silent drift between authoring tools and this loader.
//
// Example document:
//
//	revision = "2026.08.0"
//	themes = ["light", "dark"]
//
//	[tokens."color.primary.500"]
//	type = "color"
//	values = { light = "#2563eb", dark = "#3b82f6" }
//
//	[tokens."color.primary.500".contrast]
//	against = "color.surface"
//	ratio = 4.8
type sourceDoc struct {
	Revision string                 `toml:"revision"`
	Themes   []string               `toml:"themes"`
	Tokens   map[string]sourceToken `toml:"tokens"`
}

type sourceToken struct {
	Type     string            `toml:"type"`
	Values   map[string]string `toml:"values"`
	Contrast *sourceContrast   `toml:"contrast"`
}

type sourceContrast struct {
	Against string  `toml:"against"`
	Ratio   float64 `toml:"ratio"`
}

// Parse reads a strict TOML token document into an immutable Set
func Parse(r io.Reader) (*Set, error) {
	dec := toml.NewDecoder(r)
	dec.DisallowUnknownFields()

	var doc sourceDoc
	if err := dec.Decode(&doc); err != nil {
		return nil, errors.Wrap(errors.WithSecondaryError(errors.ErrInvalidSource, err), "decode token document")
	}

	themes := make([]Theme, 0, len(doc.Themes))
	for _, th := range doc.Themes {
		themes = append(themes, Theme(th))
	}

	toks := make([]Token, 0, len(doc.Tokens))
	for name, src := range doc.Tokens {
		tok := Token{
			Name:   name,
			Type:   Type(src.Type),
			Values: make(map[Theme]string, len(src.Values)),
		}
		for th, v := range src.Values {
			tok.Values[Theme(th)] = v
		}
		if src.Contrast != nil {
			tok.Contrast = &ContrastHint{
				Against: src.Contrast.Against,
				Ratio:   src.Contrast.Ratio,
			}
		}
		toks = append(toks, tok)
	}

	return New(doc.Revision, themes, toks)
}

// ParseBytes reads a strict TOML token document from memory
func ParseBytes(data []byte) (*Set, error) {
	return Parse(bytes.NewReader(data))
}

// LoadFile reads a strict TOML token document from disk
func LoadFile(path string) (*Set, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open token document %s", path)
	}
	defer f.Close()

	set, err := Parse(f)
	if err != nil {
		return nil, errors.Wrapf(err, "parse token document %s", path)
	}
	return set, nil
}
