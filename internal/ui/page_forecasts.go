package ui

import (
	"net/url"
	"strconv"

	"fi-dashboard/internal/domain"

	. "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

const forecastInterpretation = "Forecasts are scenario-based due to limited historical survey data. " +
	"Usage grows faster than access under all scenarios, reflecting Ethiopia's " +
	"mobile-money driven digital finance expansion."

type forecastsData struct {
	Available []domain.Scenario
	Selected  domain.Scenario
	Rows      []domain.ForecastRecord
}

func forecastsPage(d forecastsData) Node {
	if len(d.Available) == 0 {
		return appPage("Forecasts & Scenarios", "forecasts",
			emptyStateCard("The forecast dataset has no rows.", "", ""))
	}

	selector := make([]Node, 0, len(d.Available))
	for _, s := range d.Available {
		className := "btn btn-sm"
		if s == d.Selected {
			className += " btn-primary"
		}
		selector = append(selector, A(
			Href("/ui/forecasts?scenario="+url.QueryEscape(string(s))),
			Class(className),
			Attr("aria-current", strconv.FormatBool(s == d.Selected)),
			Text(s.Title()),
		))
	}

	usage := make([]chartPoint, 0, len(d.Rows))
	access := make([]chartPoint, 0, len(d.Rows))
	rows := make([]Node, 0, len(d.Rows))
	for _, r := range d.Rows {
		usage = append(usage, chartPoint{Year: r.Year, Value: r.UsageForecast})
		access = append(access, chartPoint{Year: r.Year, Value: r.AccessForecast})
		rows = append(rows, Tr(
			Td(Text(strconv.Itoa(r.Year))),
			Td(Class("text-right"), Text(formatFloat(r.UsageForecast))),
			Td(Class("text-right"), Text(formatFloat(r.AccessForecast))),
		))
	}

	title := d.Selected.Title()
	return appPage("Forecasts & Scenarios", "forecasts",
		Div(
			Class(cardClass("toolbar")),
			Div(
				Class("d-flex flex-wrap flex-items-center gap-2"),
				Span(Class(mutedClass()), Text("Select Scenario")),
				Div(Class("BtnGroup"), Group(selector)),
			),
		),
		lineChart("Digital Payment Usage Forecast ("+title+")", usage),
		lineChart("Account Ownership Forecast ("+title+")", access),
		Div(
			Class(cardClass("insight")),
			H2(Text("Interpretation")),
			P(Text(forecastInterpretation)),
		),
		Div(
			Class(cardClass("table-wrap")),
			Div(
				Class("d-flex flex-justify-between flex-items-center"),
				H2(Text("Forecast values")),
				A(
					Href("/api/v1/forecasts.csv?scenario="+url.QueryEscape(string(d.Selected))),
					Class(primaryButtonClass()),
					Attr("download", "forecast_data.csv"),
					Text("Download Forecast Data"),
				),
			),
			Table(
				Class("data-table"),
				headerRow("Year", "Usage forecast", "Access forecast"),
				TBody(Group(rows)),
			),
		),
	)
}
