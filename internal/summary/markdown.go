package summary

import (
	"fmt"
	"strings"
)

// Markdown renders the summary as a compact report suitable for terminals or
// standalone docs.
func (t *Table) Markdown() string {
	var b strings.Builder
	b.WriteString("[SUMMARY]\n")
	b.WriteString(fmt.Sprintf("Style: %s\n", t.Style))
	b.WriteString(fmt.Sprintf("Rows: %d\n", t.SourceRows))
	b.WriteString(fmt.Sprintf("Columns: %d\n\n", len(t.Rows)))

	switch t.Style {
	case StyleNumeric:
		b.WriteString("[NUMERIC]\n")
		writeRow(&b, "column", "count", "missing", "% missing", "mean", "std", "min", "max", "skew", "kurtosis")
		writeRule(&b, 10)
		for _, r := range t.Rows {
			n := r.Numeric
			writeRow(&b, safeName(r.Name), itoa(n.Count), itoa(n.Missing), pct(n.PercentMissing),
				n.Mean.String(), n.Std.String(), n.Min.String(), n.Max.String(), n.Skew.String(), n.Kurtosis.String())
		}
	case StyleCategorical:
		b.WriteString("[CATEGORICAL]\n")
		writeRow(&b, "column", "kind", "count", "missing", "% missing", "unique", "top", "freq")
		writeRule(&b, 8)
		for _, r := range t.Rows {
			c := r.Categorical
			writeRow(&b, safeName(r.Name), string(c.Kind), itoa(c.Count), itoa(c.Missing), pct(c.PercentMissing),
				itoa(c.Unique), topValue(c.Top), itoa(c.TopFrequency))
		}
	default:
		b.WriteString("[COLUMNS]\n")
		writeRow(&b, "column", "kind", "count", "missing", "% missing", "mean", "std", "min", "max", "skew", "kurtosis", "unique", "top", "freq")
		writeRule(&b, 14)
		for _, r := range t.Rows {
			cells := []string{safeName(r.Name), string(r.Kind)}
			switch {
			case r.Numeric != nil:
				n := r.Numeric
				cells = append(cells, itoa(n.Count), itoa(n.Missing), pct(n.PercentMissing),
					n.Mean.String(), n.Std.String(), n.Min.String(), n.Max.String(), n.Skew.String(), n.Kurtosis.String(),
					"n/a", "n/a", "n/a")
			case r.Categorical != nil:
				c := r.Categorical
				cells = append(cells, itoa(c.Count), itoa(c.Missing), pct(c.PercentMissing),
					"n/a", "n/a", "n/a", "n/a", "n/a", "n/a",
					itoa(c.Unique), topValue(c.Top), itoa(c.TopFrequency))
			default:
				for i := 0; i < 12; i++ {
					cells = append(cells, "n/a")
				}
			}
			writeRow(&b, cells...)
		}
	}
	return b.String()
}

func writeRow(b *strings.Builder, cells ...string) {
	b.WriteString("| ")
	b.WriteString(strings.Join(cells, " | "))
	b.WriteString(" |\n")
}

func writeRule(b *strings.Builder, n int) {
	cells := make([]string, n)
	for i := range cells {
		cells[i] = "---"
	}
	writeRow(b, cells...)
}

func itoa(i int) string { return fmt.Sprintf("%d", i) }

func pct(p float64) string { return fmt.Sprintf("%.1f%%", p) }

func topValue(s *string) string {
	if s == nil {
		return "n/a"
	}
	v := *s
	if len(v) > 40 {
		v = v[:37] + "..."
	}
	return safeVal(v)
}

func safeName(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "(unnamed)"
	}
	return safeVal(s)
}

func safeVal(s string) string { return strings.ReplaceAll(strings.ReplaceAll(s, "\n", " "), "|", "/") }
