package normalizer

import (
	"strconv"
	"strings"

	"github.com/crimson-sun/ideastream/internal/model"
)

// FormatIdea serializes v in the key=[...] / key='...' convention the
// upstream uses for semi-structured output.
func FormatIdea(v *model.IdeaValidation) string {
	var parts []string
	if v.MarketScore != nil {
		parts = append(parts, "market_score="+formatScore(*v.MarketScore))
	}
	if v.CompetitionScore != nil {
		parts = append(parts, "competition_score="+formatScore(*v.CompetitionScore))
	}
	parts = append(parts,
		formatList("risks", v.Risks),
		fieldSummary+"="+quote(v.Summary))
	return strings.Join(parts, " ")
}

// FormatLegal serializes v like FormatIdea.
func FormatLegal(v *model.LegalAnalysis) string {
	return strings.Join([]string{
		formatList("legal_risks", v.LegalRisks),
		formatList("recommended_steps", v.RecommendedSteps),
		fieldSummary + "=" + quote(v.Summary),
	}, " ")
}

// FormatSwot serializes v like FormatIdea.
func FormatSwot(v *model.SwotAnalysis) string {
	return strings.Join([]string{
		formatList("strengths", v.Strengths),
		formatList("weaknesses", v.Weaknesses),
		formatList("opportunities", v.Opportunities),
		formatList("threats", v.Threats),
		formatList("scenarios", v.Scenarios),
		fieldSummary + "=" + quote(v.Summary),
	}, " ")
}

// FormatOverall serializes an overall summary.
func FormatOverall(s string) string {
	return fieldOverall + "=" + quote(s)
}

func formatScore(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func formatList(key string, items []string) string {
	quoted := make([]string, len(items))
	for i, item := range items {
		quoted[i] = quote(item)
	}
	return key + "=[" + strings.Join(quoted, ", ") + "]"
}

// quote picks single quotes unless the text contains one and no double
// quote, the way Python's repr does.
func quote(s string) string {
	q := byte('\'')
	if strings.ContainsRune(s, '\'') && !strings.ContainsRune(s, '"') {
		q = '"'
	}
	var b strings.Builder
	b.WriteByte(q)
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		case q:
			b.WriteByte('\\')
			b.WriteByte(c)
		default:
			b.WriteByte(c)
		}
	}
	b.WriteByte(q)
	return b.String()
}
