package stdout

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/crimson-sun/ideastream/internal/engine/compactor"
	"github.com/crimson-sun/ideastream/internal/model"
)

// renderText lays a report out for a terminal.
func renderText(r model.Report) string {
	var b strings.Builder

	if r.Error != "" {
		fmt.Fprintf(&b, "error: %s\n", r.Error)
		return b.String()
	}

	if res := r.Result; res != nil {
		if v := res.IdeaValidation; v != nil {
			b.WriteString("Idea validation\n")
			writeScore(&b, "market score", v.MarketScore)
			writeScore(&b, "competition score", v.CompetitionScore)
			writeList(&b, "risks", v.Risks)
			writeSummary(&b, v.Summary)
		}
		if v := res.LegalAnalysis; v != nil {
			b.WriteString("Legal analysis\n")
			writeList(&b, "legal risks", v.LegalRisks)
			writeList(&b, "recommended steps", v.RecommendedSteps)
			writeSummary(&b, v.Summary)
		}
		if v := res.SwotAnalysis; v != nil {
			b.WriteString("SWOT analysis\n")
			writeList(&b, "strengths", v.Strengths)
			writeList(&b, "weaknesses", v.Weaknesses)
			writeList(&b, "opportunities", v.Opportunities)
			writeList(&b, "threats", v.Threats)
			writeList(&b, "scenarios", v.Scenarios)
			writeSummary(&b, v.Summary)
		}
		if res.OverallSummary != "" {
			b.WriteString("Overall summary\n")
			for _, s := range compactor.Sentences(res.OverallSummary) {
				fmt.Fprintf(&b, "  %s\n", s)
			}
		}
		return b.String()
	}

	if len(r.Raw) > 0 {
		b.WriteString("No structured result. Raw stream:\n")
		for _, env := range r.Raw {
			fmt.Fprintf(&b, "  [%s] %s\n", env.Step, render(env.Content))
		}
		return b.String()
	}

	b.WriteString("No analysis data received.\n")
	return b.String()
}

func writeScore(b *strings.Builder, label string, v *float64) {
	if v == nil {
		fmt.Fprintf(b, "  %s: n/a\n", label)
		return
	}
	fmt.Fprintf(b, "  %s: %s\n", label, strconv.FormatFloat(*v, 'f', -1, 64))
}

func writeList(b *strings.Builder, label string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(b, "  %s:\n", label)
	for _, item := range items {
		fmt.Fprintf(b, "    - %s\n", item)
	}
}

func writeSummary(b *strings.Builder, s string) {
	if s != "" {
		fmt.Fprintf(b, "  summary: %s\n", s)
	}
}

// render shows envelope content on one line.
func render(content any) string {
	s, ok := content.(string)
	if !ok {
		s = compactor.New(compactor.Full).Compact(content)
	}
	return strings.ReplaceAll(s, "\n", " ")
}
