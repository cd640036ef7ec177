package plot

import (
	"image"
	"math"
	"strconv"

	"github.com/fogleman/gg"
	"gonum.org/v1/gonum/floats"
)

// numTicks is the number of ticks on each y-axis
const numTicks = 6

// axisRange is the interval of data values spanned by an axis
type axisRange struct {
	min, max float64
}

// newRange returns a range covering values with 5% padding on each side
func newRange(values ...float64) axisRange {
	lo, hi := floats.Min(values), floats.Max(values)
	if lo == hi {
		return axisRange{lo - 1, hi + 1}
	}
	pad := (hi - lo) * 0.05
	return axisRange{lo - pad, hi + pad}
}

// scale maps v in the range to [0, 1]
func (r axisRange) scale(v float64) float64 {
	return (v - r.min) / (r.max - r.min)
}

// plotArea is the rectangle in which series are drawn
type plotArea struct {
	left, top, right, bottom float64
	x                        axisRange
}

func (p plotArea) px(v float64) float64 {
	return p.left + p.x.scale(v)*(p.right-p.left)
}

func (p plotArea) py(r axisRange, v float64) float64 {
	return p.bottom - r.scale(v)*(p.bottom-p.top)
}

// draw draws the chart of all series against x
func draw(title string, x []float64, all []series) image.Image {
	dc := gg.NewContext(Width, Height)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	xRange := newRange(x...)
	if len(x) == 1 {
		xRange = axisRange{x[0] - 0.1, x[0] + 0.1}
	}
	area := plotArea{
		left:   marginLeft,
		top:    marginTop,
		right:  Width - marginRight,
		bottom: Height - marginBottom,
		x:      xRange,
	}

	ranges := make([]axisRange, len(all))
	for i, s := range all {
		ranges[i] = newRange(append([]float64{s.baseline}, s.values...)...)
	}

	drawGrid(dc, area, ranges[0], x)

	// Axes, from left to right: the first series on the left edge, the
	// second on the right edge, and the third offset outward
	axesX := []float64{area.left, area.right, area.right + axisOffset}
	anchors := []float64{1, 0, 0}
	for i, s := range all {
		drawYAxis(dc, area, ranges[i], s, axesX[i], anchors[i])
	}
	drawXAxis(dc, area, x)

	for i, s := range all {
		drawBaseline(dc, area, ranges[i], s)
		drawSeries(dc, area, ranges[i], x, s)
	}

	dc.SetRGB(0, 0, 0)
	dc.DrawStringAnchored(title, Width/2, marginTop/2, 0.5, 0.5)
	drawLegend(dc, all)

	return dc.Image()
}

// drawGrid draws grid lines at the x ticks and the first y-axis ticks
func drawGrid(dc *gg.Context, area plotArea, r axisRange, x []float64) {
	dc.SetRGB255(220, 220, 220)
	dc.SetLineWidth(1)
	for _, v := range x {
		dc.DrawLine(area.px(v), area.top, area.px(v), area.bottom)
	}
	for _, v := range ticks(r) {
		dc.DrawLine(area.left, area.py(r, v), area.right, area.py(r, v))
	}
	dc.Stroke()

	dc.SetRGB(0, 0, 0)
	dc.DrawRectangle(area.left, area.top, area.right-area.left,
		area.bottom-area.top)
	dc.Stroke()
}

// drawYAxis draws the axis line, ticks, tick labels, and the rotated
// label of a series. anchor is 1 for labels left of the axis and 0
// for labels right of it.
func drawYAxis(dc *gg.Context, area plotArea, r axisRange, s series,
	axisX, anchor float64) {
	dir := 1.0
	if anchor == 1 {
		dir = -1.0
	}

	dc.SetHexColor(s.colour)
	dc.SetLineWidth(1)
	dc.DrawLine(axisX, area.top, axisX, area.bottom)
	widest := 0.0
	for _, v := range ticks(r) {
		y := area.py(r, v)
		dc.DrawLine(axisX, y, axisX+dir*5, y)

		label := formatTick(v)
		w, _ := dc.MeasureString(label)
		widest = math.Max(widest, w)
		dc.DrawStringAnchored(label, axisX+dir*8, y, anchor, 0.5)
	}
	dc.Stroke()

	labelX := axisX + dir*(widest+22)
	labelY := (area.top + area.bottom) / 2
	dc.Push()
	dc.RotateAbout(gg.Radians(-90), labelX, labelY)
	dc.DrawStringAnchored(s.axisLabel, labelX, labelY, 0.5, 0.5)
	dc.Pop()
}

// drawXAxis labels the accuracy ticks
func drawXAxis(dc *gg.Context, area plotArea, x []float64) {
	dc.SetRGB(0, 0, 0)
	dc.SetLineWidth(1)
	for _, v := range x {
		dc.DrawLine(area.px(v), area.bottom, area.px(v), area.bottom+5)
		dc.DrawStringAnchored(formatTick(v), area.px(v), area.bottom+8, 0.5, 1)
	}
	dc.Stroke()
	dc.DrawStringAnchored("Accuracy", (area.left+area.right)/2,
		area.bottom+32, 0.5, 1)
}

// drawBaseline draws the baseline of s as a horizontal line
func drawBaseline(dc *gg.Context, area plotArea, r axisRange, s series) {
	y := area.py(r, s.baseline)
	dc.SetHexColor(s.colour)
	dc.SetLineWidth(2)
	setStyle(dc, s.baselineStyle)
	dc.DrawLine(area.left, y, area.right, y)
	dc.Stroke()
	setStyle(dc, solid)
}

// drawSeries draws the values of s as a solid line with markers
func drawSeries(dc *gg.Context, area plotArea, r axisRange, x []float64,
	s series) {
	dc.SetHexColor(s.colour)
	dc.SetLineWidth(2)
	for i := range x {
		px, py := area.px(x[i]), area.py(r, s.values[i])
		if i == 0 {
			dc.MoveTo(px, py)
		} else {
			dc.LineTo(px, py)
		}
	}
	dc.Stroke()

	for i := range x {
		drawMarker(dc, s.marker, area.px(x[i]), area.py(r, s.values[i]))
	}
}

// drawLegend draws a three column legend below the plot area. Each
// column holds a series and its baseline.
func drawLegend(dc *gg.Context, all []series) {
	const (
		columnWidth = 250.0
		rowHeight   = 22.0
		sampleWidth = 30.0
	)
	left := float64(Width)/2 - columnWidth*float64(len(all))/2
	top := float64(Height - marginBottom + 62)

	for i, s := range all {
		x := left + float64(i)*columnWidth
		entries := []struct {
			label  string
			style  lineStyle
			marker bool
		}{
			{s.label, solid, true},
			{s.baselineLabel, s.baselineStyle, false},
		}

		for j, e := range entries {
			y := top + float64(j)*rowHeight
			dc.SetHexColor(s.colour)
			dc.SetLineWidth(2)
			setStyle(dc, e.style)
			dc.DrawLine(x, y, x+sampleWidth, y)
			dc.Stroke()
			setStyle(dc, solid)
			if e.marker {
				drawMarker(dc, s.marker, x+sampleWidth/2, y)
			}

			dc.SetRGB(0, 0, 0)
			dc.DrawStringAnchored(e.label, x+sampleWidth+8, y, 0, 0.5)
		}
	}
}

func drawMarker(dc *gg.Context, m marker, x, y float64) {
	const size = 5.0
	switch m {
	case circle:
		dc.DrawCircle(x, y, size)
	case square:
		dc.DrawRectangle(x-size, y-size, 2*size, 2*size)
	case triangle:
		dc.DrawRegularPolygon(3, x, y, size+1, 0)
	}
	dc.Fill()
}

func setStyle(dc *gg.Context, l lineStyle) {
	switch l {
	case dashed:
		dc.SetDash(8, 4)
	case dotted:
		dc.SetDash(2, 3)
	case dashDot:
		dc.SetDash(8, 3, 2, 3)
	default:
		dc.SetDash()
	}
}

// ticks returns evenly spaced tick values over r
func ticks(r axisRange) []float64 {
	t := make([]float64, numTicks)
	floats.Span(t, r.min, r.max)
	return t
}

func formatTick(v float64) string {
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
}
