// Package api exposes the layout engine over HTTP.
//
// Routes:
//
//	GET  /healthz      liveness and build version
//	POST /v1/layout    chart → layout result (JSON)
//	POST /v1/render    chart → artifact (SVG by default, ?format=png|pdf|json)
//	POST /v1/measure   text + font → metrics
//	POST /v1/fit       text + font + width → fitted text
//
// Chart endpoints take {"chart": {...}, "options": {...}} where chart is
// the chartio file format and options are pipeline options. Errors are
// returned as {"error": {"code": "...", "message": "..."}} with status 400
// for invalid input, 501 when PDF conversion is unavailable, and 500
// otherwise.
package api
