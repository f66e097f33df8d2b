package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/RhNO3-lx/ChartGenerator-Group1-sub023/pkg/buildinfo"
	"github.com/RhNO3-lx/ChartGenerator-Group1-sub023/pkg/chartio"
	apperrors "github.com/RhNO3-lx/ChartGenerator-Group1-sub023/pkg/errors"
	"github.com/RhNO3-lx/ChartGenerator-Group1-sub023/pkg/pipeline"
	"github.com/RhNO3-lx/ChartGenerator-Group1-sub023/pkg/text"
)

// contentTypes maps output formats to response content types.
var contentTypes = map[string]string{
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatPNG:  "image/png",
	pipeline.FormatPDF:  "application/pdf",
	pipeline.FormatJSON: "application/json",
}

// ChartRequest is the body of the chart endpoints.
type ChartRequest struct {
	Chart   chartio.Chart    `json:"chart"`
	Options pipeline.Options `json:"options,omitzero"`
}

// MeasureRequest is the body of /v1/measure.
type MeasureRequest struct {
	Text string        `json:"text"`
	Font text.FontSpec `json:"font"`
}

// MeasureResponse reports the metrics of one run.
type MeasureResponse struct {
	text.Metrics
	LineHeight float64 `json:"line_height"`
}

// Fit modes accepted by /v1/fit.
const (
	FitTruncate = "truncate"
	FitShrink   = "shrink"
	FitWrap     = "wrap"
)

// FitRequest is the body of /v1/fit.
type FitRequest struct {
	Text     string        `json:"text"`
	Font     text.FontSpec `json:"font"`
	MaxWidth float64       `json:"max_width"`
	Mode     string        `json:"mode,omitempty"`
	MinSize  float64       `json:"min_size,omitempty"`
	MaxLines int           `json:"max_lines,omitempty"`
}

type healthResponse struct {
	Status string `json:"status"`
	buildinfo.Info
}

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    apperrors.Code `json:"code"`
	Message string         `json:"message"`
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Info: buildinfo.Get()})
}

func (s *Server) layout(w http.ResponseWriter, r *http.Request) {
	var body ChartRequest
	if !s.decode(w, r, &body) {
		return
	}
	opts := body.Options
	if err := opts.ValidateAndSetDefaults(); err != nil {
		s.writeError(w, err)
		return
	}
	req, err := pipeline.BuildRequest(body.Chart, opts)
	if err != nil {
		s.writeError(w, err)
		return
	}
	res, err := s.runner.Layout(r.Context(), req)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) render(w http.ResponseWriter, r *http.Request) {
	var body ChartRequest
	if !s.decode(w, r, &body) {
		return
	}
	opts := body.Options
	format := r.URL.Query().Get("format")
	if format == "" && len(opts.Formats) > 0 {
		format = opts.Formats[0]
	}
	if format == "" {
		format = pipeline.FormatSVG
	}
	opts.Formats = []string{format}

	res, err := s.runner.Execute(r.Context(), body.Chart, opts)
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", contentTypes[format])
	w.Header().Set("X-Render-ID", res.ID)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.Artifacts[format])
}

func (s *Server) measure(w http.ResponseWriter, r *http.Request) {
	var body MeasureRequest
	if !s.decode(w, r, &body) {
		return
	}
	font, err := s.font(body.Font)
	if err != nil {
		s.writeError(w, err)
		return
	}
	p := s.runner.Provider
	writeJSON(w, http.StatusOK, MeasureResponse{
		Metrics:    p.Measure(body.Text, font),
		LineHeight: p.LineHeight(font),
	})
}

func (s *Server) fit(w http.ResponseWriter, r *http.Request) {
	var body FitRequest
	if !s.decode(w, r, &body) {
		return
	}
	if !(body.MaxWidth >= 0) {
		s.writeError(w, apperrors.New(apperrors.ErrCodeInvalidInput, "max_width must not be negative"))
		return
	}
	font, err := s.font(body.Font)
	if err != nil {
		s.writeError(w, err)
		return
	}
	fitter := s.runner.Coordinator.Fitter()

	var fit text.Fit
	switch body.Mode {
	case FitTruncate, "":
		fit = fitter.Truncate(body.Text, font, body.MaxWidth)
	case FitShrink:
		fit = fitter.ShrinkToFit(body.Text, font, body.MaxWidth, body.MinSize)
	case FitWrap:
		opts := s.runner.Config.WrapOptions(body.MaxLines)
		if body.MinSize > 0 {
			opts.MinSize = body.MinSize
		}
		fit = fitter.WrapAndShrink(body.Text, font, body.MaxWidth, opts)
	default:
		s.writeError(w, apperrors.New(apperrors.ErrCodeInvalidInput, "unknown fit mode %q (must be truncate, shrink or wrap)", body.Mode))
		return
	}
	writeJSON(w, http.StatusOK, fit)
}

// font fills unset fields from the configured label style.
// font fills an unset family or size from the configured label style.
func (s *Server) font(f text.FontSpec) (text.FontSpec, error) {
	def := s.runner.Config.Font(s.runner.Config.Style.LabelSize, "")
	if f.Family == "" {
		f.Family = def.Family
	}
	if f.Size == 0 {
		f.Size = def.Size
	}
	return f, apperrors.ValidateFontSize(f.Size)
}

// decode reads a JSON body into v, writing a 400 response on failure.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, s.maxBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		s.writeError(w, apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "decode request body"))
		return false
	}
	return true
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case apperrors.IsClientError(err):
		status = http.StatusBadRequest
	case apperrors.Is(err, apperrors.ErrCodeUnsupported):
		status = http.StatusNotImplemented
	default:
		s.logger.Error("request failed", "err", err)
	}
	code := apperrors.GetCode(err)
	if code == "" {
		code = apperrors.ErrCodeInternal
	}
	msg := apperrors.UserMessage(err)
	if cause := errors.Unwrap(err); cause != nil && status == http.StatusBadRequest {
		msg += ": " + cause.Error()
	}
	writeJSON(w, status, errorBody{Error: errorDetail{Code: code, Message: msg}})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
