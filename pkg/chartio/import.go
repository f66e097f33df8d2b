package chartio

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	apperrors "github.com/RhNO3-lx/ChartGenerator-Group1-sub023/pkg/errors"
)

// Supported file formats.
const (
	FormatJSON = "json"
	FormatTOML = "toml"
)

// FormatFor returns the format implied by a file name; anything that is
// not .toml is read as JSON.
func FormatFor(path string) string {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return FormatTOML
	}
	return FormatJSON
}

// ReadJSON decodes a chart from r. Unknown top-level keys are rejected so
// that typos in field names surface as errors. ReadJSON does not close r.
func ReadJSON(r io.Reader) (Chart, error) {
	var c Chart
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&c); err != nil {
		return Chart{}, apperrors.Wrap(apperrors.ErrCodeInvalidFormat, err, "decode json chart")
	}
	if err := c.Validate(); err != nil {
		return Chart{}, err
	}
	return c, nil
}

// ReadTOML decodes a chart from r.
func ReadTOML(r io.Reader) (Chart, error) {
	var c Chart
	md, err := toml.NewDecoder(r).Decode(&c)
	if err != nil {
		return Chart{}, apperrors.Wrap(apperrors.ErrCodeInvalidFormat, err, "decode toml chart")
	}
	if und := md.Undecoded(); len(und) > 0 && !rowKeysOnly(und) {
		return Chart{}, apperrors.New(apperrors.ErrCodeInvalidFormat, "unknown chart key %q", und[0].String())
	}
	if err := c.Validate(); err != nil {
		return Chart{}, err
	}
	return c, nil
}

// rowKeysOnly reports whether every undecoded key lives under rows, whose
// records are free-form.
func rowKeysOnly(keys []toml.Key) bool {
	for _, k := range keys {
		if len(k) == 0 || k[0] != "rows" {
			return false
		}
	}
	return true
}

// Read decodes a chart in the given format.
func Read(r io.Reader, format string) (Chart, error) {
	switch format {
	case FormatJSON, "":
		return ReadJSON(r)
	case FormatTOML:
		return ReadTOML(r)
	}
	return Chart{}, apperrors.New(apperrors.ErrCodeInvalidFormat, "unsupported chart format %q (must be json or toml)", format)
}

// Import reads the chart file at path. "-" reads standard input as JSON.
func Import(path string) (Chart, error) {
	if path == "-" {
		return ReadJSON(os.Stdin)
	}
	if err := apperrors.ValidatePath(path); err != nil {
		return Chart{}, err
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Chart{}, apperrors.Wrap(apperrors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return Chart{}, apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "open %s", path)
	}
	defer f.Close()
	return Read(f, FormatFor(path))
}
