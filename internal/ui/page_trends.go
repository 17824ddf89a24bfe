package ui

import (
	"net/url"
	"strconv"

	"fi-dashboard/internal/domain"

	. "maragu.dev/gomponents"
	data "maragu.dev/gomponents-datastar"
	. "maragu.dev/gomponents/html"
)

type trendsData struct {
	Indicators   []domain.IndicatorInfo
	Selected     string
	Observations []domain.Observation
	Summary      []domain.YearSummary
}

func trendsPage(d trendsData) Node {
	if len(d.Indicators) == 0 {
		return appPage("Trends", "trends",
			emptyStateCard("The dataset has no observations with an indicator label.", "", ""))
	}

	options := make([]Node, 0, len(d.Indicators))
	for _, ind := range d.Indicators {
		options = append(options, optionSelected(ind.Label, d.Selected))
	}

	points := make([]chartPoint, 0, len(d.Observations))
	rows := make([]Node, 0, len(d.Observations))
	for _, o := range d.Observations {
		if o.ValueNumeric != nil {
			points = append(points, chartPoint{Year: o.Year, Value: *o.ValueNumeric})
		}
		year := strconv.Itoa(o.Year)
		rows = append(rows, Tr(
			data.Show(containsExpr(year+" "+o.IndicatorCode+" "+o.Confidence)),
			Td(Text(year)),
			Td(Text(o.ObservationDate)),
			Td(Text(o.IndicatorCode)),
			Td(Class("text-right"), Text(domain.FormatValue(o.ValueNumeric))),
			Td(Text(dashIfEmpty(o.Confidence))),
		))
	}

	download := "/api/v1/trends.csv?indicator=" + url.QueryEscape(d.Selected)

	return appPage("Trends", "trends",
		Form(
			Method("get"),
			Action("/ui/trends"),
			Class(cardClass("toolbar")),
			Div(
				Class("d-flex flex-wrap flex-items-center gap-2"),
				Label(For("indicator"), Text("Select Indicator")),
				Select(ID("indicator"), Name("indicator"), Class("form-select"), Group(options)),
				Button(Type("submit"), Class(secondaryButtonClass()), Text("Show")),
				A(Href(download), Class(primaryButtonClass()), Attr("download", "trend_data.csv"), Text("Download Data")),
			),
		),
		lineChart(d.Selected+" Over Time", points),
		quickFilterCard("Filter by year, code or confidence"),
		Div(
			Class(cardClass("table-wrap")),
			H2(Text("Observations")),
			Table(
				Class("data-table"),
				headerRow("Year", "Date", "Code", "Value", "Confidence"),
				TBody(Group(rows)),
			),
		),
		yearlySummaryTable(d.Summary),
	)
}

func yearlySummaryTable(summary []domain.YearSummary) Node {
	rows := make([]Node, 0, len(summary))
	for _, s := range summary {
		minV, maxV, mean := "n/a", "n/a", "n/a"
		if s.Valued > 0 {
			minV, maxV, mean = formatFloat(s.Min), formatFloat(s.Max), formatFloat(s.Mean)
		}
		rows = append(rows, Tr(
			Td(Text(strconv.Itoa(s.Year))),
			Td(Class("text-right"), Text(strconv.Itoa(s.Count))),
			Td(Class("text-right"), Text(minV)),
			Td(Class("text-right"), Text(maxV)),
			Td(Class("text-right"), Text(mean)),
		))
	}
	return Div(
		Class(cardClass("table-wrap")),
		H2(Text("Yearly summary")),
		Table(
			Class("data-table"),
			headerRow("Year", "Observations", "Min", "Max", "Mean"),
			TBody(Group(rows)),
		),
	)
}
