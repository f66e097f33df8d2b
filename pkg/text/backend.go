package text

import (
	"slices"

	apperrors "github.com/RhNO3-lx/ChartGenerator-Group1-sub023/pkg/errors"
	"github.com/RhNO3-lx/ChartGenerator-Group1-sub023/pkg/fonts"
)

// Backend names accepted by BackendByName.
const (
	BackendOpenType = "opentype"
	BackendHarfBuzz = "harfbuzz"
	BackendApprox   = "approx"
)

// BackendNames lists the supported backend names.
var BackendNames = []string{BackendOpenType, BackendHarfBuzz, BackendApprox}

// BackendByName returns a fresh backend for name. An empty name selects
// the OpenType backend.
func BackendByName(name string, r *fonts.Registry) (Backend, error) {
	switch name {
	case "", BackendOpenType:
		return NewOpenTypeBackend(r), nil
	case BackendHarfBuzz:
		return NewShapingBackend(r), nil
	case BackendApprox:
		return ApproxBackend{}, nil
	}
	return nil, apperrors.New(apperrors.ErrCodeInvalidConfig, "unknown text backend %q (must be one of %v)", name, BackendNames)
}

// ValidBackend reports whether name is a known backend.
func ValidBackend(name string) bool {
	return name == "" || slices.Contains(BackendNames, name)
}
