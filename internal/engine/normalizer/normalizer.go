package normalizer

import (
	"log/slog"
	"strings"

	"github.com/crimson-sun/ideastream/internal/engine/classifier"
	"github.com/crimson-sun/ideastream/internal/engine/compactor"
	"github.com/crimson-sun/ideastream/internal/model"
)

const (
	fieldSummary = "summary"
	fieldOverall = model.KeyOverallSummary
)

// domain describes one analysis domain: its key and the fields the
// extraction tiers look for.
type domain struct {
	key    string
	lists  []string
	scores []string
	cls    *classifier.Classifier
}

func newDomain(key string, scores, lists []string) *domain {
	fields := append(append(append([]string(nil), scores...), lists...), fieldSummary)
	return &domain{
		key:    key,
		lists:  lists,
		scores: scores,
		cls:    classifier.New(fields...),
	}
}

// Processing order is load-bearing: in concatenated text the summaries are
// handed out in order to the domains drawn from that text, idea validation
// first, then legal analysis, then the SWOT analysis. A domain that has its
// own step does not take a position.
var (
	ideaDomain = newDomain(model.KeyIdeaValidation,
		[]string{"market_score", "competition_score"},
		[]string{"risks"})
	legalDomain = newDomain(model.KeyLegalAnalysis,
		nil,
		[]string{"legal_risks", "recommended_steps"})
	swotDomain = newDomain(model.KeySwotAnalysis,
		nil,
		[]string{"strengths", "weaknesses", "opportunities", "threats", "scenarios"})

	domains = []*domain{ideaDomain, legalDomain, swotDomain}
)

// fields is the untyped outcome of one extraction tier.
type fields struct {
	lists   map[string][]string
	scores  map[string]*float64
	summary string
}

func (f fields) list(key string) []string {
	if v := f.lists[key]; v != nil {
		return v
	}
	return []string{}
}

// specific reports whether any domain-specific field (anything but the
// summary) is non-empty.
func (f fields) specific() bool {
	for _, v := range f.lists {
		if len(v) > 0 {
			return true
		}
	}
	for _, v := range f.scores {
		if v != nil {
			return true
		}
	}
	return false
}

func (f fields) found() bool {
	return f.specific() || f.summary != ""
}

// tier is one stage of the extraction cascade. ok is false when the tier
// does not apply or extracted nothing.
type tier struct {
	name string
	run  func(d *domain, c classifier.Result, summaryIndex int) (fields, bool)
}

var cascade = []tier{
	{"structured", structuredTier},
	{"semi-structured", textTier},
}

// Normalizer converts accumulated stream content or an aggregate object into
// a CanonicalResult. It holds no state and is safe for concurrent use.
type Normalizer struct{}

// New creates a Normalizer.
func New() *Normalizer {
	return &Normalizer{}
}

// Normalize builds a result from per-step content. Steps named after a
// domain feed that domain; content that is an object carrying domain keys is
// merged as an aggregate; everything else forms the concatenated text used
// for domains that have no step of their own. ok is false when no domain
// could be extracted and the raw envelopes should be shown instead.
func (n *Normalizer) Normalize(acc *model.Accumulated) (*model.CanonicalResult, bool) {
	view := make(map[string]any)
	var corpus, all []string

	for _, step := range acc.Steps() {
		contents, _ := acc.Get(step)
		for _, c := range contents {
			all = append(all, compactor.Flatten(c))
		}
		if isDomainKey(step) {
			view[step] = contents
			continue
		}
		for _, c := range contents {
			if agg, ok := asAggregate(c); ok {
				for k, v := range agg {
					if _, seen := view[k]; isDomainKey(k) && !seen {
						view[k] = v
					}
				}
				continue
			}
			if s := compactor.Flatten(c); s != "" {
				corpus = append(corpus, s)
			}
		}
	}
	return n.normalize(view, strings.Join(corpus, " "), strings.Join(all, " "))
}

// NormalizeAggregate builds a result from a single object keyed by domain.
func (n *Normalizer) NormalizeAggregate(agg map[string]any) (*model.CanonicalResult, bool) {
	view := make(map[string]any)
	for k, v := range agg {
		if isDomainKey(k) {
			view[k] = v
		}
	}
	return n.normalize(view, "", compactor.Flatten(agg))
}

func (n *Normalizer) normalize(view map[string]any, corpus, all string) (*model.CanonicalResult, bool) {
	extracted := make(map[string]fields, len(domains))
	next := 0
	for _, d := range domains {
		f, fromCorpus, ok := n.extractDomain(d, view, corpus, next)
		if !ok {
			continue
		}
		extracted[d.key] = f
		if fromCorpus {
			next++
		}
	}
	if len(extracted) == 0 {
		slog.Debug("no structured data extracted")
		return nil, false
	}

	res := &model.CanonicalResult{OverallSummary: overallSummary(view, all)}
	if f, ok := extracted[ideaDomain.key]; ok {
		res.IdeaValidation = &model.IdeaValidation{
			MarketScore:      f.scores["market_score"],
			CompetitionScore: f.scores["competition_score"],
			Risks:            f.list("risks"),
			Summary:          f.summary,
		}
	}
	if f, ok := extracted[legalDomain.key]; ok {
		res.LegalAnalysis = &model.LegalAnalysis{
			LegalRisks:       f.list("legal_risks"),
			RecommendedSteps: f.list("recommended_steps"),
			Summary:          f.summary,
		}
	}
	if f, ok := extracted[swotDomain.key]; ok {
		res.SwotAnalysis = &model.SwotAnalysis{
			Strengths:     f.list("strengths"),
			Weaknesses:    f.list("weaknesses"),
			Opportunities: f.list("opportunities"),
			Threats:       f.list("threats"),
			Scenarios:     f.list("scenarios"),
			Summary:       f.summary,
		}
	}
	return res, true
}

// extractDomain runs the cascade on the domain's own value, or on the
// concatenated text when the domain has none, where it reads the
// position-th summary. The second result reports whether the concatenated
// text was used. In concatenated text a lone summary is not enough to
// detect a domain.
func (n *Normalizer) extractDomain(d *domain, view map[string]any, corpus string, position int) (fields, bool, bool) {
	v, own := view[d.key]
	summaryIndex := 0
	if !own {
		if corpus == "" {
			return fields{}, false, false
		}
		v, summaryIndex = corpus, position
	}

	c := d.cls.Classify(v)
	for _, t := range cascade {
		f, ok := t.run(d, c, summaryIndex)
		if !ok {
			continue
		}
		if !own && !f.specific() {
			return fields{}, false, false
		}
		slog.Debug("domain extracted", "domain", d.key, "tier", t.name, "own_step", own)
		return f, !own, true
	}
	return fields{}, false, false
}

func structuredTier(d *domain, c classifier.Result, _ int) (fields, bool) {
	if c.Shape != classifier.Structured {
		return fields{}, false
	}
	f := fields{
		lists:  make(map[string][]string, len(d.lists)),
		scores: make(map[string]*float64, len(d.scores)),
	}
	for _, k := range d.lists {
		f.lists[k] = coerceList(c.Object[k])
	}
	for _, k := range d.scores {
		f.scores[k] = coerceScore(c.Object[k])
	}
	f.summary = coerceText(c.Object[fieldSummary])
	return f, true
}

func textTier(d *domain, c classifier.Result, summaryIndex int) (fields, bool) {
	if c.Shape != classifier.SemiStructured {
		return fields{}, false
	}
	f := fields{
		lists:  make(map[string][]string, len(d.lists)),
		scores: make(map[string]*float64, len(d.scores)),
	}
	for _, k := range d.lists {
		if items, ok := findList(c.Text, k); ok {
			f.lists[k] = items
		}
	}
	for _, k := range d.scores {
		f.scores[k] = findScore(c.Text, k)
	}
	f.summary, _ = findText(c.Text, fieldSummary, summaryIndex)
	return f, f.found()
}

// overallSummary prefers the overall_summary value itself, unwrapping an
// embedded overall_summary='...'; otherwise it searches all stream text.
func overallSummary(view map[string]any, all string) string {
	if v, ok := view[fieldOverall]; ok {
		text := coerceText(v)
		if s, ok := findText(text, fieldOverall, 0); ok {
			return s
		}
		return text
	}
	s, _ := findText(all, fieldOverall, 0)
	return s
}

func isDomainKey(k string) bool {
	switch k {
	case model.KeyIdeaValidation, model.KeyLegalAnalysis, model.KeySwotAnalysis, model.KeyOverallSummary:
		return true
	}
	return false
}

// asAggregate reports whether c is an object (or JSON object text) keyed by
// at least one domain.
func asAggregate(c any) (map[string]any, bool) {
	obj, ok := c.(map[string]any)
	if !ok {
		s, isStr := c.(string)
		if !isStr {
			return nil, false
		}
		if obj, ok = classifier.DecodeObject(s); !ok {
			return nil, false
		}
	}
	for k := range obj {
		if isDomainKey(k) {
			return obj, true
		}
	}
	return nil, false
}
