package ui

import (
	"sort"
	"strconv"

	"fi-dashboard/internal/domain"

	. "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

func dataPage(c domain.PartitionCounts) Node {
	partitions := []struct {
		key   domain.PartitionKey
		count int
	}{
		{domain.PartitionObservations, c.Observations},
		{domain.PartitionEvents, c.Events},
		{domain.PartitionImpactLinks, c.ImpactLinks},
		{domain.PartitionTargets, c.Targets},
	}

	rows := make([]Node, 0, len(partitions)+1)
	for _, p := range partitions {
		rows = append(rows, Tr(
			Td(Code(Text(string(p.key)))),
			Td(Class("text-right"), Text(strconv.Itoa(p.count))),
		))
	}
	rows = append(rows, Tr(
		Class("text-bold"),
		Td(Text("Total")),
		Td(Class("text-right"), Text(strconv.Itoa(c.Total()))),
	))

	return appPage("Data", "data",
		Div(
			Class(cardClass("table-wrap")),
			H2(Text("Partitions")),
			Table(Class("data-table"), headerRow("Partition", "Rows"), TBody(Group(rows))),
		),
		droppedTypesCard(c),
	)
}

func droppedTypesCard(c domain.PartitionCounts) Node {
	if c.Dropped == 0 {
		return Div(
			Class(cardClass()),
			H2(Text("Excluded rows")),
			statusLabel("none", "success"),
			P(Class(mutedClass()), Text("Every row has a recognised record type.")),
		)
	}

	types := make([]string, 0, len(c.DroppedTypes))
	for t := range c.DroppedTypes {
		types = append(types, t)
	}
	sort.Strings(types)

	rows := make([]Node, 0, len(types))
	for _, t := range types {
		label := t
		if label == "" {
			label = "(empty)"
		}
		rows = append(rows, Tr(
			Td(Code(Text(label))),
			Td(Class("text-right"), Text(strconv.Itoa(c.DroppedTypes[t]))),
		))
	}

	return Div(
		Class(cardClass("table-wrap")),
		H2(Text("Excluded rows")),
		statusLabel(strconv.Itoa(c.Dropped)+" excluded", "attention"),
		P(Class(mutedClass()), Text("Rows whose record_type is not observation, event, impact_link or target appear in no partition.")),
		Table(Class("data-table"), headerRow("record_type", "Rows"), TBody(Group(rows))),
	)
}
