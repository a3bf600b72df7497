package renderer

import (
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/etnz/solarroi"
)

// VariablesMarkdown renders the model variables of project 'name' grouped by
// section. Only the variables matching 'query' (and changed, if changedOnly)
// are listed; empty sections are skipped.
func VariablesMarkdown(name string, vars solarroi.VariableMap, query string, changedOnly bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Model Variables · %s\n\n", name)

	defs := solarroi.SearchDefinitions(vars, query, changedOnly)
	changed := solarroi.ChangedCount(vars)
	total := 0
	for _, n := range changed {
		total += n
	}
	fmt.Fprintf(&b, "*%d variable(s) changed from the defaults*\n", total)

	for _, section := range solarroi.Sections() {
		ConditionalBlock(&b, func(w io.Writer) bool {
			fmt.Fprintf(w, "\n## %s", section)
			if n := changed[section]; n > 0 {
				fmt.Fprintf(w, " (%d changed)", n)
			}
			fmt.Fprintf(w, "\n\n%s\n\n", solarroi.SectionDescription(section))
			fmt.Fprintln(w, "| Variable | Id | Value | Default | Notes |")
			fmt.Fprintln(w, "|:---|:---|---:|---:|:---|")
			rows := 0
			for _, d := range defs {
				if d.Section != section {
					continue
				}
				rows++
				value := d.Value(vars)
				var notes []string
				if d.IsChanged(value) {
					notes = append(notes, "changed")
				}
				if warning := d.Warning(value); warning != "" {
					notes = append(notes, "⚠ "+warning)
				}
				fmt.Fprintf(w, "| %s | %s | %s | %s | %s |\n", d.Label, d.ID, FormatValue(d, value), FormatValue(d, d.Default), strings.Join(notes, ", "))
			}
			return rows > 0
		})
	}

	// variables outside of the catalog are kept in the project, list them too.
	var extra []string
	for key := range vars {
		if _, ok := solarroi.LookupDefinition(key); !ok && strings.Contains(strings.ToLower(key), strings.ToLower(query)) {
			extra = append(extra, key)
		}
	}
	if len(extra) > 0 && !changedOnly {
		slices.Sort(extra)
		fmt.Fprintf(&b, "\n## Other Variables\n\n| Id | Value |\n|:---|---:|\n")
		for _, key := range extra {
			fmt.Fprintf(&b, "| %s | %v |\n", key, vars[key])
		}
	}
	return b.String()
}

// FormatValue formats a variable value with its unit.
func FormatValue(d solarroi.Definition, value any) string {
	switch d.Kind {
	case solarroi.KindBoolean:
		if v, ok := value.(bool); ok {
			if v {
				return "yes"
			}
			return "no"
		}
	case solarroi.KindPercent, solarroi.KindCurrency, solarroi.KindNumber:
		n, ok := solarroi.Number(value)
		if !ok {
			break
		}
		s := strconv.FormatFloat(n, 'f', -1, 64)
		switch {
		case d.Kind == solarroi.KindPercent:
			return s + "%"
		case d.Kind == solarroi.KindCurrency && d.Unit == "":
			return "$" + s
		case d.Unit != "":
			return s + " " + d.Unit
		}
		return s
	}
	return fmt.Sprint(value)
}
