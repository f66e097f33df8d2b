package chartio

import (
	"encoding/json"
	"io"
	"os"

	"github.com/BurntSushi/toml"

	apperrors "github.com/RhNO3-lx/ChartGenerator-Group1-sub023/pkg/errors"
)

// WriteJSON encodes c as indented JSON. The output can be read back with
// [ReadJSON].
func WriteJSON(c Chart, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(c); err != nil {
		return apperrors.Wrap(apperrors.ErrCodeInternal, err, "encode chart")
	}
	return nil
}

// WriteTOML encodes c as TOML. A raw request is not written.
func WriteTOML(c Chart, w io.Writer) error {
	if err := toml.NewEncoder(w).Encode(c); err != nil {
		return apperrors.Wrap(apperrors.ErrCodeInternal, err, "encode chart")
	}
	return nil
}

// Export writes c to path in the format implied by its extension.
func Export(c Chart, path string) error {
	if err := apperrors.ValidatePath(path); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrCodeInvalidPath, err, "create %s", path)
	}
	defer f.Close()
	if FormatFor(path) == FormatTOML {
		return WriteTOML(c, f)
	}
	return WriteJSON(c, f)
}
