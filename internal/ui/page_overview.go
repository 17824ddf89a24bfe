package ui

import (
	"fmt"

	"fi-dashboard/internal/domain"

	gomponents "maragu.dev/gomponents"
	html "maragu.dev/gomponents/html"
)

const overviewInsight = "Mobile money adoption has grown faster than formal account ownership, " +
	"highlighting a divergence between Access and Usage."

func overviewPage(ov *domain.Overview) gomponents.Node {
	cards := make([]gomponents.Node, 0, len(ov.Metrics))
	for i := range ov.Metrics {
		m := ov.Metrics[i]
		caption := "No observations"
		if m.Year > 0 {
			caption = fmt.Sprintf("Latest observation: %d", m.Year)
		}
		cards = append(cards, html.Div(
			html.Class(cardClass("metric-card")),
			html.P(html.Class(mutedClass()), gomponents.Text(m.Label)),
			html.P(html.Class("metric-value"), gomponents.Text(m.Display)),
			html.P(html.Class(mutedClass()), gomponents.Text(caption+" · "+m.IndicatorCode)),
		))
	}

	c := ov.Counts
	return appPage("Overview", "home",
		html.Div(html.Class("grid"), gomponents.Group(cards)),
		html.Div(
			html.Class(cardClass("insight")),
			html.H2(gomponents.Text("Insight")),
			html.P(gomponents.Text(overviewInsight)),
		),
		html.Div(
			html.Class(cardClass()),
			html.H2(gomponents.Text("Records")),
			html.P(gomponents.Text(fmt.Sprintf(
				"%d observations, %d events, %d impact links, %d targets.",
				c.Observations, c.Events, c.ImpactLinks, c.Targets,
			))),
			gomponents.If(c.Dropped > 0, html.P(
				html.Class("color-fg-attention"),
				gomponents.Text(fmt.Sprintf("%d rows with an unrecognised record type were excluded.", c.Dropped)),
			)),
			html.A(html.Href("/ui/data"), gomponents.Text("View partition details ->")),
		),
	)
}
