// Package chartio reads and writes chart description files.
//
// A chart file names a template (scatter, bar or bubble), a canvas size,
// a title and a list of data rows. Rows are free-form records; [Fields]
// maps the record keys onto the roles the template needs.
//
// # JSON Format
//
//	{
//	  "template": "scatter",
//	  "title": "Revenue vs. margin",
//	  "width": 640,
//	  "height": 400,
//	  "fields": {"label": "name", "x": "revenue", "y": "margin"},
//	  "rows": [
//	    {"name": "Alpha", "revenue": 12.5, "margin": 0.31},
//	    {"name": "Beta", "revenue": 8.1, "margin": 0.12}
//	  ]
//	}
//
// # TOML Format
//
//	template = "bubble"
//	title = "Market share"
//
//	[fields]
//	label = "vendor"
//	value = "share"
//
//	[[rows]]
//	vendor = "Alpha"
//	share = 41
//
// # Raw Requests
//
// Instead of rows a file may carry a fully specified layout request under
// "request"; it is passed to the layout coordinator unchanged. Raw requests
// are only read from JSON.
//
// Field defaults are label="label", value="value", x="x", y="y",
// color="color". Numeric fields accept JSON numbers, TOML integers and
// floats, and numeric strings.
package chartio
