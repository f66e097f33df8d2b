package sink

import (
	"encoding/json"

	apperrors "github.com/RhNO3-lx/ChartGenerator-Group1-sub023/pkg/errors"
	"github.com/RhNO3-lx/ChartGenerator-Group1-sub023/pkg/layout"
	"github.com/RhNO3-lx/ChartGenerator-Group1-sub023/pkg/render"
)

// JSONOption configures RenderJSON.
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	id      string
	scene   *render.Scene
	compact bool
}

// WithJSONID records a render identifier in the output.
func WithJSONID(id string) JSONOption { return func(r *jsonRenderer) { r.id = id } }

// WithJSONScene includes the resolved drawing records next to the layout.
func WithJSONScene(s render.Scene) JSONOption { return func(r *jsonRenderer) { r.scene = &s } }

// WithJSONCompact disables indentation.
func WithJSONCompact() JSONOption { return func(r *jsonRenderer) { r.compact = true } }

type jsonOutput struct {
	ID     string        `json:"id,omitempty"`
	Layout layout.Result `json:"layout"`
	Scene  *render.Scene `json:"scene,omitempty"`
}

// RenderJSON serializes res.
func RenderJSON(res layout.Result, opts ...JSONOption) ([]byte, error) {
	var r jsonRenderer
	for _, opt := range opts {
		opt(&r)
	}
	out := jsonOutput{ID: r.id, Layout: res, Scene: r.scene}

	var (
		data []byte
		err  error
	)
	if r.compact {
		data, err = json.Marshal(out)
	} else {
		data, err = json.MarshalIndent(out, "", "  ")
	}
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInternal, err, "encode layout")
	}
	return append(data, '\n'), nil
}
