package report

import (
	"fmt"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"numcmp/domain/stats"
)

// Comparison bundles everything a renderer needs for one run: the two
// full-sample summaries and the per-estimator simulation results.
type Comparison struct {
	BaselineRef     string
	TargetRef       string
	BaselineSummary stats.SampleSummary
	TargetSummary   stats.SampleSummary
	Results         []stats.EstimatorResult
}

// RenderText renders the classic stdout layout: a summary block per sample
// followed by one comparison line per estimator. Both one-sided ratios are
// printed; which one matters is the reader's call, the engine only counts.
func RenderText(c Comparison) string {
	var b strings.Builder

	b.WriteString("=== Summary (baseline) ===\n")
	writeSummary(&b, c.BaselineSummary)
	b.WriteString("\n")

	b.WriteString("=== Summary (target) ===\n")
	writeSummary(&b, c.TargetSummary)
	b.WriteString("\n")

	b.WriteString("=== Comparison ===\n")
	for _, r := range c.Results {
		fmt.Fprintf(&b, "%s: %v to %v, p(target>sim)=%.4f p(target<sim)=%.4f\n",
			r.Name, r.BaselineStat, r.TargetStat, r.GtRatio(), r.LtRatio())
	}

	return b.String()
}

func writeSummary(b *strings.Builder, s stats.SampleSummary) {
	fmt.Fprintf(b, "Count:\t%d\n", s.Count)
	for _, nv := range s.Values {
		fmt.Fprintf(b, "%s:\t%v\n", nv.Name, nv.Value)
	}
}

// RenderMarkdown renders the comparison as a markdown document with one
// table per section.
func RenderMarkdown(c Comparison) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Comparison: %s vs %s\n\n", c.BaselineRef, c.TargetRef)

	b.WriteString("## Summary\n\n")
	b.WriteString("| estimator | baseline | target |\n")
	b.WriteString("|---|---|---|\n")
	for i, nv := range c.BaselineSummary.Values {
		target := 0.0
		if i < len(c.TargetSummary.Values) {
			target = c.TargetSummary.Values[i].Value
		}
		fmt.Fprintf(&b, "| %s | %v | %v |\n", nv.Name, nv.Value, target)
	}
	fmt.Fprintf(&b, "\nbaseline n=%d, target n=%d\n\n", c.BaselineSummary.Count, c.TargetSummary.Count)

	b.WriteString("## Bootstrap comparison\n\n")
	b.WriteString("| estimator | baseline | target | iterations | p(target>sim) | p(target<sim) | ties |\n")
	b.WriteString("|---|---|---|---|---|---|---|\n")
	for _, r := range c.Results {
		fmt.Fprintf(&b, "| %s | %v | %v | %d | %.4f | %.4f | %d |\n",
			r.Name, r.BaselineStat, r.TargetStat, r.SimCount, r.GtRatio(), r.LtRatio(), r.TieCount())
	}

	return b.String()
}

// RenderHTML converts the markdown rendering to a standalone HTML fragment.
func RenderHTML(c Comparison) []byte {
	md := []byte(RenderMarkdown(c))

	p := parser.NewWithExtensions(parser.CommonExtensions | parser.NoEmptyLineBeforeBlock)
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})

	return markdown.ToHTML(md, p, renderer)
}
