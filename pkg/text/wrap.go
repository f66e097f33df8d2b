package text

import "strings"

// Wrap defaults.
const (
	DefaultLineHeight    = 1.2
	DefaultMaxIterations = 16

	// minShrink is the smallest size reduction per re-wrap iteration. It
	// keeps the loop strictly decreasing when the shrink factor rounds to 1.
	minShrink = 0.5
)

// WrapOptions configures WrapAndShrink.
type WrapOptions struct {
	LineHeight    float64 // line advance as a multiple of the font size
	MinSize       float64 // smallest font size; <= 0 uses the fitter default
	MaxLines      int     // 0 means unlimited
	MaxIterations int     // re-wrap iterations; <= 0 uses DefaultMaxIterations
}

func (o WrapOptions) withDefaults(minSize float64) WrapOptions {
	if o.LineHeight <= 0 {
		o.LineHeight = DefaultLineHeight
	}
	if o.MinSize <= 0 {
		o.MinSize = minSize
	}
	if o.MaxIterations <= 0 {
		o.MaxIterations = DefaultMaxIterations
	}
	return o
}

// Wrap greedily breaks s into lines no wider than maxWidth at the given
// font. Words are accumulated until adding the next one would overflow.
// A single word wider than maxWidth gets a line of its own, which may
// overflow. Explicit newlines start a new line.
func (f *Fitter) Wrap(s string, font FontSpec, maxWidth float64) []Line {
	var lines []Line
	for _, para := range strings.Split(s, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			continue
		}
		cur := words[0]
		curW := f.provider.Width(cur, font)
		for _, w := range words[1:] {
			cand := cur + " " + w
			cw := f.provider.Width(cand, font)
			if cw <= maxWidth+widthEps {
				cur, curW = cand, cw
				continue
			}
			lines = append(lines, Line{Text: cur, Width: curW})
			cur, curW = w, f.provider.Width(w, font)
		}
		lines = append(lines, Line{Text: cur, Width: curW})
	}
	return lines
}

// WrapAndShrink wraps s into maxWidth, shrinking the font when wrapping
// alone cannot satisfy the width. After each wrap the widest line sets a
// shared shrink factor maxWidth/widest which is applied to the font size
// before re-wrapping, since a smaller size moves the break points.
//
// The loop ends when every line fits, the minimum size is reached, or
// MaxIterations re-wraps have run. Lines still too wide at that point (a
// single long word) stay on their own line and are truncated with an
// ellipsis. When MaxLines is exceeded the last kept line is truncated.
func (f *Fitter) WrapAndShrink(s string, font FontSpec, maxWidth float64, opts WrapOptions) Fit {
	if strings.TrimSpace(s) == "" {
		return Fit{Font: font}
	}
	opts = opts.withDefaults(f.minSize)

	cur := font
	lines := f.Wrap(s, cur, maxWidth)
	for iter := 1; iter < opts.MaxIterations; iter++ {
		widest := widestLine(lines)
		if widest <= maxWidth+widthEps || cur.Size <= opts.MinSize {
			break
		}
		next := cur.Size * maxWidth / widest
		if next > cur.Size-minShrink {
			next = cur.Size - minShrink
		}
		cur = cur.WithSize(max(opts.MinSize, next))
		lines = f.Wrap(s, cur, maxWidth)
	}

	truncated := false
	if opts.MaxLines > 0 && len(lines) > opts.MaxLines {
		lines = lines[:opts.MaxLines]
		last := &lines[len(lines)-1]
		last.Text, last.Width = f.ellipsize(last.Text, cur, maxWidth, true)
		truncated = true
	}
	for i := range lines {
		if lines[i].Width > maxWidth+widthEps {
			lines[i].Text, lines[i].Width = f.ellipsize(lines[i].Text, cur, maxWidth, false)
			truncated = true
		}
	}
	lines = dropEmpty(lines)

	out := Fit{
		Font:      cur,
		Lines:     lines,
		Width:     widestLine(lines),
		Height:    float64(len(lines)) * cur.Size * opts.LineHeight,
		Truncated: truncated,
		Shrunk:    cur.Size < font.Size,
	}
	texts := make([]string, len(lines))
	for i, l := range lines {
		texts[i] = l.Text
	}
	out.Text = strings.Join(texts, "\n")
	return out
}

func widestLine(lines []Line) float64 {
	var w float64
	for _, l := range lines {
		w = max(w, l.Width)
	}
	return w
}

func dropEmpty(lines []Line) []Line {
	out := lines[:0]
	for _, l := range lines {
		if l.Text != "" {
			out = append(out, l)
		}
	}
	return out
}
