package ui

import (
	"fmt"
	"strconv"
	"strings"

	. "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

type chartPoint struct {
	Year  int
	Value float64
}

const (
	chartWidth  = 640
	chartHeight = 260
	chartPadX   = 48
	chartPadY   = 28
	// Years are labelled individually up to this many; beyond it only the
	// first and last are.
	maxYearTicks = 12
)

// lineChart draws points in the given order as an SVG polyline with a
// marker per point.
func lineChart(title string, points []chartPoint) Node {
	if len(points) == 0 {
		return Div(
			Class(cardClass("chart")),
			H3(Class("chart-title"), Text(title)),
			P(Class(mutedClass()), Text("No values to plot.")),
		)
	}

	minX, maxX := points[0].Year, points[0].Year
	minY, maxY := points[0].Value, points[0].Value
	for _, p := range points[1:] {
		minX, maxX = min(minX, p.Year), max(maxX, p.Year)
		minY, maxY = min(minY, p.Value), max(maxY, p.Value)
	}

	sx := func(year int) float64 {
		if maxX == minX {
			return chartWidth / 2
		}
		return chartPadX + float64(year-minX)/float64(maxX-minX)*(chartWidth-2*chartPadX)
	}
	sy := func(v float64) float64 {
		if maxY == minY {
			return chartHeight / 2
		}
		return chartHeight - chartPadY - (v-minY)/(maxY-minY)*(chartHeight-2*chartPadY)
	}

	coords := make([]string, 0, len(points))
	markers := make([]Node, 0, len(points))
	for _, p := range points {
		x, y := sx(p.Year), sy(p.Value)
		coords = append(coords, svgNum(x)+","+svgNum(y))
		markers = append(markers, El("circle",
			Attr("cx", svgNum(x)), Attr("cy", svgNum(y)), Attr("r", "4"),
			Class("chart-marker"),
			El("title", Text(fmt.Sprintf("%d: %s", p.Year, formatFloat(p.Value)))),
		))
	}

	return Div(
		Class(cardClass("chart")),
		H3(Class("chart-title"), Text(title)),
		El("svg",
			Attr("viewBox", fmt.Sprintf("0 0 %d %d", chartWidth, chartHeight)),
			Attr("role", "img"),
			Attr("aria-label", title),
			Class("chart-svg"),
			El("line", Class("chart-axis"),
				Attr("x1", svgNum(chartPadX)), Attr("y1", svgNum(chartHeight-chartPadY)),
				Attr("x2", svgNum(chartWidth-chartPadX)), Attr("y2", svgNum(chartHeight-chartPadY))),
			El("line", Class("chart-axis"),
				Attr("x1", svgNum(chartPadX)), Attr("y1", svgNum(chartPadY)),
				Attr("x2", svgNum(chartPadX)), Attr("y2", svgNum(chartHeight-chartPadY))),
			axisLabel(4, sy(maxY), formatFloat(maxY), "start"),
			If(maxY != minY, axisLabel(4, sy(minY), formatFloat(minY), "start")),
			Group(yearTicks(points, sx)),
			El("polyline",
				Class("chart-line"),
				Attr("fill", "none"),
				Attr("points", strings.Join(coords, " ")),
			),
			Group(markers),
		),
	)
}

func yearTicks(points []chartPoint, sx func(int) float64) []Node {
	seen := make(map[int]bool, len(points))
	years := make([]int, 0, len(points))
	for _, p := range points {
		if !seen[p.Year] {
			seen[p.Year] = true
			years = append(years, p.Year)
		}
	}
	if len(years) > maxYearTicks {
		first, last := years[0], years[0]
		for _, y := range years {
			first, last = min(first, y), max(last, y)
		}
		years = []int{first, last}
	}

	out := make([]Node, 0, len(years))
	for _, y := range years {
		out = append(out, axisLabel(sx(y), chartHeight-8, strconv.Itoa(y), "middle"))
	}
	return out
}

func axisLabel(x, y float64, text, anchor string) Node {
	return El("text",
		Class("chart-label"),
		Attr("x", svgNum(x)),
		Attr("y", svgNum(y)),
		Attr("text-anchor", anchor),
		Text(text),
	)
}

func svgNum(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}
