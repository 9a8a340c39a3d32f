package ideastream

import "github.com/crimson-sun/ideastream/internal/model"

// Envelope is one decoded stream record.
type Envelope struct {
	Step    string `json:"step"`
	Content any    `json:"content"`
}

// IdeaValidation scores market fit and competition.
type IdeaValidation struct {
	MarketScore      *float64 `json:"market_score"`
	CompetitionScore *float64 `json:"competition_score"`
	Risks            []string `json:"risks"`
	Summary          string   `json:"summary"`
}

// LegalAnalysis lists legal risks and recommended steps.
type LegalAnalysis struct {
	LegalRisks       []string `json:"legal_risks"`
	RecommendedSteps []string `json:"recommended_steps"`
	Summary          string   `json:"summary"`
}

// SwotAnalysis is a strengths/weaknesses/opportunities/threats breakdown.
type SwotAnalysis struct {
	Strengths     []string `json:"strengths"`
	Weaknesses    []string `json:"weaknesses"`
	Opportunities []string `json:"opportunities"`
	Threats       []string `json:"threats"`
	Scenarios     []string `json:"scenarios"`
	Summary       string   `json:"summary"`
}

// Result is a normalized analysis. A nil domain was not detected; a
// detected domain always has non-nil lists.
type Result struct {
	IdeaValidation *IdeaValidation `json:"idea_validation"`
	LegalAnalysis  *LegalAnalysis  `json:"legal_analysis"`
	SwotAnalysis   *SwotAnalysis   `json:"swot_analysis"`
	OverallSummary string          `json:"overall_summary"`
}

// Report is the outcome of one decoded stream. Exactly one of Result and
// Raw is set unless the stream carried no visible envelopes at all.
type Report struct {
	SessionID string     `json:"session_id"`
	Result    *Result    `json:"result,omitempty"`
	Raw       []Envelope `json:"raw,omitempty"`
	Log       []Envelope `json:"log,omitempty"`
}

func resultFromModel(r *model.CanonicalResult) *Result {
	if r == nil {
		return nil
	}
	out := &Result{OverallSummary: r.OverallSummary}
	if v := r.IdeaValidation; v != nil {
		out.IdeaValidation = &IdeaValidation{
			MarketScore:      v.MarketScore,
			CompetitionScore: v.CompetitionScore,
			Risks:            v.Risks,
			Summary:          v.Summary,
		}
	}
	if v := r.LegalAnalysis; v != nil {
		out.LegalAnalysis = &LegalAnalysis{
			LegalRisks:       v.LegalRisks,
			RecommendedSteps: v.RecommendedSteps,
			Summary:          v.Summary,
		}
	}
	if v := r.SwotAnalysis; v != nil {
		out.SwotAnalysis = &SwotAnalysis{
			Strengths:     v.Strengths,
			Weaknesses:    v.Weaknesses,
			Opportunities: v.Opportunities,
			Threats:       v.Threats,
			Scenarios:     v.Scenarios,
			Summary:       v.Summary,
		}
	}
	return out
}

func envelopesFromModel(envs []model.Envelope) []Envelope {
	if envs == nil {
		return nil
	}
	out := make([]Envelope, len(envs))
	for i, e := range envs {
		out[i] = Envelope(e)
	}
	return out
}

func reportFromModel(r model.Report) Report {
	return Report{
		SessionID: r.SessionID,
		Result:    resultFromModel(r.Result),
		Raw:       envelopesFromModel(r.Raw),
		Log:       envelopesFromModel(r.Log),
	}
}
