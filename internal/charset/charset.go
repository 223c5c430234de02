// Package charset translates between the display's characters and the host's
// EBCDIC code pages.
package charset

import (
	"errors"
	"fmt"

	"golang.org/x/text/encoding/charmap"
)

// ErrUnknownCodePage is returned when a code-page name has no translation table.
var ErrUnknownCodePage = errors.New("unknown code page")

// DefaultCodePage is the code page used when a profile names none.
const DefaultCodePage = "37"

var pages = map[string]*charmap.Charmap{
	"37":   charmap.CodePage037,
	"1047": charmap.CodePage1047,
	"1140": charmap.CodePage1140,
}

// Codec translates a single EBCDIC code page. The zero value is not usable;
// obtain one with ByName.
type Codec struct {
	name  string
	cm    *charmap.Charmap
	space byte
}

// ByName returns the codec for a code-page name ("37", "1047", "1140").
func ByName(name string) (*Codec, error) {
	if name == "" {
		name = DefaultCodePage
	}
	cm, ok := pages[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCodePage, name)
	}
	space, _ := cm.EncodeRune(' ')
	return &Codec{name: name, cm: cm, space: space}, nil
}

// Name returns the code-page name.
func (c *Codec) Name() string { return c.name }

// Encode translates s to host bytes. Runes with no mapping in the code page
// become the EBCDIC space; encoding never fails.
func (c *Codec) Encode(s string) []byte {
	out := make([]byte, 0, len(s))
	for _, r := range s {
		b, ok := c.cm.EncodeRune(r)
		if !ok {
			b = c.space
		}
		out = append(out, b)
	}
	return out
}

// DecodeByte translates one host byte to its display character.
func (c *Codec) DecodeByte(b byte) rune {
	return c.cm.DecodeByte(b)
}

// Decode translates a run of host bytes to display characters.
func (c *Codec) Decode(data []byte) []rune {
	out := make([]rune, len(data))
	for i, b := range data {
		out[i] = c.cm.DecodeByte(b)
	}
	return out
}
