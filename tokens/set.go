package tokens

import (
	"crypto/sha256"
	"sort"
	"strconv"
	"strings"

	"github.com/mr-tron/base58"

	"github.com/prismui/prism/errors"
)

// Set is an immutable revision of the design-token store.
//
// All reads go through Lookup and Names; there is no mutation path after New,
// which is what lets the transformer cache bindings by (revision, target) and
// lets two independent generation runs produce byte-identical artifacts.
type Set struct {
	revision string
	themes   []Theme
	tokens   map[string]Token
	names    []string
	hash     string
}

// New builds an immutable token set from a revision identifier, the themes it
// declares, and its tokens. Every token must carry a value for every declared
// theme and no value for an undeclared one.
func New(revision string, themes []Theme, toks []Token) (*Set, error) {
	if revision == "" {
		return nil, errors.Wrap(errors.ErrInvalidSource, "token set missing revision")
	}
	if len(themes) == 0 {
		return nil, errors.Wrap(errors.ErrInvalidSource, "token set declares no themes")
	}

	declared := make(map[Theme]bool, len(themes))
	for _, th := range themes {
		declared[th] = true
	}

	byName := make(map[string]Token, len(toks))
	names := make([]string, 0, len(toks))
	for _, tok := range toks {
		if tok.Name == "" {
			return nil, errors.Wrap(errors.ErrInvalidSource, "token with empty name")
		}
		if _, dup := byName[tok.Name]; dup {
			return nil, errors.Wrapf(errors.ErrInvalidSource, "duplicate token %q", tok.Name)
		}
		if !IsValidType(string(tok.Type)) {
			return nil, errors.Wrapf(errors.ErrInvalidSource, "token %q: unknown type %q", tok.Name, tok.Type)
		}
		for _, th := range themes {
			if _, ok := tok.Values[th]; !ok {
				return nil, errors.Wrapf(errors.ErrInvalidSource, "token %q missing value for theme %q", tok.Name, th)
			}
		}
		for th := range tok.Values {
			if !declared[th] {
				return nil, errors.Wrapf(errors.ErrInvalidSource, "token %q has value for undeclared theme %q", tok.Name, th)
			}
		}
		if tok.Contrast != nil && tok.Type != TypeColor {
			return nil, errors.Wrapf(errors.ErrInvalidSource, "token %q: contrast metadata on non-color token", tok.Name)
		}
		byName[tok.Name] = tok
		names = append(names, tok.Name)
	}
	sort.Strings(names)

	s := &Set{
		revision: revision,
		themes:   append([]Theme(nil), themes...),
		tokens:   byName,
		names:    names,
	}
	s.hash = s.contentHash()
	return s, nil
}

// Revision returns the revision identifier this set was published under
func (s *Set) Revision() string {
	return s.revision
}

// Themes returns the themes this set declares, in declaration order
func (s *Set) Themes() []Theme {
	return append([]Theme(nil), s.themes...)
}

// Lookup returns the token with the given semantic name
func (s *Set) Lookup(name string) (Token, bool) {
	t, ok := s.tokens[name]
	return t, ok
}

// Names returns all token names in sorted order
func (s *Set) Names() []string {
	return append([]string(nil), s.names...)
}

// Len returns the number of tokens in the set
func (s *Set) Len() int {
	return len(s.tokens)
}

// Hash returns a base58-encoded SHA-256 of the set's canonical content.
// Two documents published under the same revision but with different content
// hash differently, which is how revision reuse is detected.
func (s *Set) Hash() string {
	return s.hash
}

// contentHash serializes the set canonically: sorted token names, sorted
// theme values per token, contrast metadata last.
func (s *Set) contentHash() string {
	var sb strings.Builder
	sb.WriteString(s.revision)
	sb.WriteByte('\n')
	for _, name := range s.names {
		tok := s.tokens[name]
		sb.WriteString(name)
		sb.WriteByte('|')
		sb.WriteString(string(tok.Type))

		themeNames := make([]string, 0, len(tok.Values))
		for th := range tok.Values {
			themeNames = append(themeNames, string(th))
		}
		sort.Strings(themeNames)
		for _, th := range themeNames {
			sb.WriteByte('|')
			sb.WriteString(th)
			sb.WriteByte('=')
			sb.WriteString(tok.Values[Theme(th)])
		}
		if tok.Contrast != nil {
			sb.WriteByte('|')
			sb.WriteString("contrast:")
			sb.WriteString(tok.Contrast.Against)
			sb.WriteByte('@')
			sb.WriteString(strconv.FormatFloat(tok.Contrast.Ratio, 'g', -1, 64))
		}
		sb.WriteByte('\n')
	}
	sum := sha256.Sum256([]byte(sb.String()))
	return base58.Encode(sum[:])
}
