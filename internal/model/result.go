package model

// Domain keys as they appear in aggregates and as step names.
const (
	KeyIdeaValidation = "idea_validation"
	KeyLegalAnalysis  = "legal_analysis"
	KeySwotAnalysis   = "swot_analysis"
	KeyOverallSummary = "overall_summary"
)

// IdeaValidation scores market fit and competition (0-10 by convention).
type IdeaValidation struct {
	MarketScore      *float64 `json:"market_score" yaml:"market_score"`
	CompetitionScore *float64 `json:"competition_score" yaml:"competition_score"`
	Risks            []string `json:"risks" yaml:"risks"`
	Summary          string   `json:"summary" yaml:"summary"`
}

// LegalAnalysis lists legal risks and the steps recommended to address them.
type LegalAnalysis struct {
	LegalRisks       []string `json:"legal_risks" yaml:"legal_risks"`
	RecommendedSteps []string `json:"recommended_steps" yaml:"recommended_steps"`
	Summary          string   `json:"summary" yaml:"summary"`
}

// SwotAnalysis is a strengths/weaknesses/opportunities/threats breakdown.
type SwotAnalysis struct {
	Strengths     []string `json:"strengths" yaml:"strengths"`
	Weaknesses    []string `json:"weaknesses" yaml:"weaknesses"`
	Opportunities []string `json:"opportunities" yaml:"opportunities"`
	Threats       []string `json:"threats" yaml:"threats"`
	Scenarios     []string `json:"scenarios" yaml:"scenarios"`
	Summary       string   `json:"summary" yaml:"summary"`
}

// CanonicalResult is the normalized output of one analysis session.
// A nil domain record means the domain was not detected.
type CanonicalResult struct {
	IdeaValidation *IdeaValidation `json:"idea_validation" yaml:"idea_validation"`
	LegalAnalysis  *LegalAnalysis  `json:"legal_analysis" yaml:"legal_analysis"`
	SwotAnalysis   *SwotAnalysis   `json:"swot_analysis" yaml:"swot_analysis"`
	OverallSummary string          `json:"overall_summary" yaml:"overall_summary"`
}

// HasDomain reports whether at least one domain record is present.
func (r *CanonicalResult) HasDomain() bool {
	return r != nil && (r.IdeaValidation != nil || r.LegalAnalysis != nil || r.SwotAnalysis != nil)
}
