package csm

import (
	"bytes"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/prismui/prism/errors"
)

// Parse reads one strict YAML component document. Unknown fields are
// rejected, not ignored, so authoring-tool drift surfaces immediately
// instead of silently shipping half a specification.
func Parse(r io.Reader) (*CSM, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var c CSM
	if err := dec.Decode(&c); err != nil {
		return nil, errors.Wrap(errors.WithSecondaryError(errors.ErrInvalidSource, err), "decode component document")
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// ParseBytes reads a strict YAML component document from memory
func ParseBytes(data []byte) (*CSM, error) {
	return Parse(bytes.NewReader(data))
}

// LoadFile reads a strict YAML component document from disk
func LoadFile(path string) (*CSM, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open component document %s", path)
	}
	defer f.Close()

	c, err := Parse(f)
	if err != nil {
		return nil, errors.Wrapf(err, "parse component document %s", path)
	}
	return c, nil
}
