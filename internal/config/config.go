// Package config loads session profiles: screen geometry, code page and
// error-line placement, from a TOML file with environment overrides, plus a
// file watcher for live reload.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/pelletier/go-toml/v2"

	"github.com/dshills/greenscreen/internal/charset"
)

// Validation errors.
var (
	ErrBadGeometry  = errors.New("invalid screen geometry")
	ErrBadErrorLine = errors.New("error line outside the screen")
)

// ParseError wraps a TOML syntax problem with its source path.
type ParseError struct {
	Path    string
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing %s: %s", e.Path, e.Message)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Profile describes one session.
type Profile struct {
	// Rows and Cols set the screen geometry. 24x80 and 27x132 are the
	// standard 5250 sizes, but any positive geometry is accepted.
	Rows int `toml:"rows"`
	Cols int `toml:"cols"`

	// CodePage names the EBCDIC translation table ("37", "1047", "1140").
	CodePage string `toml:"code_page"`

	// ErrorLine is the 1-based row the host borrows for message text.
	// Zero means the last row.
	ErrorLine int `toml:"error_line"`
}

// Default returns the standard 24x80 CP037 profile.
func Default() Profile {
	return Profile{Rows: 24, Cols: 80, CodePage: charset.DefaultCodePage}
}

// Load reads a profile from a TOML file and applies environment overrides.
// A missing file is not an error: the defaults are used. The returned
// profile is validated.
func Load(path string) (Profile, error) {
	p := Default()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := toml.Unmarshal(data, &p); err != nil {
			return Profile{}, &ParseError{Path: path, Message: err.Error(), Err: err}
		}
	case os.IsNotExist(err):
		// Defaults apply.
	default:
		return Profile{}, fmt.Errorf("reading profile %s: %w", path, err)
	}

	p = p.withEnv()
	if err := p.Validate(); err != nil {
		return Profile{}, err
	}
	return p, nil
}

// Environment variable names recognized by withEnv.
const (
	envRows     = "GREENSCREEN_ROWS"
	envCols     = "GREENSCREEN_COLS"
	envCodePage = "GREENSCREEN_CODE_PAGE"
)

// withEnv overlays GREENSCREEN_* variables onto the profile. Unparsable
// values are ignored; validation happens afterwards.
func (p Profile) withEnv() Profile {
	if v := os.Getenv(envRows); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			p.Rows = n
		}
	}
	if v := os.Getenv(envCols); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			p.Cols = n
		}
	}
	if v := os.Getenv(envCodePage); v != "" {
		p.CodePage = v
	}
	return p
}

// Validate checks geometry, error-line placement and code page.
func (p Profile) Validate() error {
	if p.Rows < 1 || p.Cols < 1 {
		return fmt.Errorf("%w: %dx%d", ErrBadGeometry, p.Rows, p.Cols)
	}
	if p.ErrorLine < 0 || p.ErrorLine > p.Rows {
		return fmt.Errorf("%w: %d on %d rows", ErrBadErrorLine, p.ErrorLine, p.Rows)
	}
	if _, err := charset.ByName(p.CodePage); err != nil {
		return err
	}
	return nil
}

// ErrorLineRow returns the 0-based error-line row, defaulting to the last.
func (p Profile) ErrorLineRow() int {
	if p.ErrorLine == 0 {
		return p.Rows - 1
	}
	return p.ErrorLine - 1
}
