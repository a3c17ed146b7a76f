package domain

import (
	"fmt"
	"strings"
)

// Verdict is the coarse judgment attached to every analysis.
type Verdict string

const (
	VerdictFit            Verdict = "fit"
	VerdictCaution        Verdict = "caution"
	VerdictNotRecommended Verdict = "not-recommended"
)

// Severity orders verdicts from best (0) to worst (2).
func (v Verdict) Severity() int {
	switch v {
	case VerdictCaution:
		return 1
	case VerdictNotRecommended:
		return 2
	default:
		return 0
	}
}

// Label returns the Korean display label.
func (v Verdict) Label() string {
	switch v {
	case VerdictCaution:
		return "주의 필요"
	case VerdictNotRecommended:
		return "비추천"
	default:
		return "적합"
	}
}

// Worse returns the more severe of v and other. Verdicts only ever move
// through Worse, so a result never de-escalates.
func (v Verdict) Worse(other Verdict) Verdict {
	if other.Severity() > v.Severity() {
		return other
	}
	return v
}

// AnalysisKind identifies one of the seven analysis tabs.
type AnalysisKind string

const (
	KindLocation    AnalysisKind = "location"
	KindOperations  AnalysisKind = "coo"
	KindPackage     AnalysisKind = "package"
	KindPositioning AnalysisKind = "positioning"
	KindRisk        AnalysisKind = "risk"
	KindSimulator   AnalysisKind = "simulator"
	KindBenchmark   AnalysisKind = "benchmark"
)

// AnalysisKinds lists the closed set of tabs in display order.
var AnalysisKinds = []AnalysisKind{
	KindLocation,
	KindOperations,
	KindPackage,
	KindPositioning,
	KindRisk,
	KindSimulator,
	KindBenchmark,
}

// ParseAnalysisKind validates a caller supplied tab identifier.
func ParseAnalysisKind(s string) (AnalysisKind, error) {
	k := AnalysisKind(strings.TrimSpace(s))
	for _, known := range AnalysisKinds {
		if k == known {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownAnalysisKind, s)
}

// HasNarrative reports whether the tab is paired with generated narrative.
func (k AnalysisKind) HasNarrative() bool {
	return k != KindSimulator && k != KindBenchmark
}

// AnalysisSummary is the verdict, one-line judgment and next actions.
type AnalysisSummary struct {
	Verdict  Verdict  `json:"verdict"`
	OneLiner string   `json:"oneLiner"`
	Actions  []string `json:"actions"`
}

// Financials are ratios and break-even figures derived from a profile.
type Financials struct {
	MonthlyRevenue    float64 `json:"monthlyRevenue"`
	TotalFixedCost    float64 `json:"totalFixedCost"`
	TotalCost         float64 `json:"totalCost"`
	OperatingProfit   float64 `json:"operatingProfit"`
	OperatingMargin   int     `json:"operatingMargin"`
	RentRatio         int     `json:"rentRatio"`
	LaborRatio        int     `json:"laborRatio"`
	BreakEvenPatients int     `json:"breakEvenPatients"`
}

// AnalysisResult is one of the seven analysis result shapes. The set is
// sealed: only the result types in this package implement it.
type AnalysisResult interface {
	Kind() AnalysisKind
	Result() AnalysisSummary
	sealed()
}

type LocationAnalysis struct {
	Summary   AnalysisSummary `json:"summary"`
	Strengths []string        `json:"strengths"`
	Issues    []string        `json:"issues"`
}

type OperationsAnalysis struct {
	Summary    AnalysisSummary `json:"summary"`
	Insights   []string        `json:"insights"`
	Issues     []string        `json:"issues"`
	Financials Financials      `json:"financials"`
}

type PackageItem struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	TargetPrice string `json:"targetPrice"`
	Sessions    string `json:"sessions"`
	Rationale   string `json:"rationale"`
}

type PackageAnalysis struct {
	Summary          AnalysisSummary `json:"summary"`
	Packages         []PackageItem   `json:"packages"`
	NonInsuranceNote string          `json:"nonInsuranceNote"`
}

type PositioningAnalysis struct {
	Summary   AnalysisSummary `json:"summary"`
	Strengths []string        `json:"strengths"`
	Issues    []string        `json:"issues"`
}

// RiskItem is a single assessed risk category.
type RiskItem struct {
	Category string  `json:"category"`
	Level    Verdict `json:"level"`
	Detail   string  `json:"detail"`
}

type RiskAnalysis struct {
	Summary AnalysisSummary `json:"summary"`
	Risks   []RiskItem      `json:"risks"`
}

// MonthlyProjection is one simulated month.
type MonthlyProjection struct {
	Month            int     `json:"month"`
	Patients         int     `json:"patients"`
	Revenue          float64 `json:"revenue"`
	Cost             float64 `json:"cost"`
	Profit           float64 `json:"profit"`
	CumulativeProfit float64 `json:"cumulativeProfit"`
}

// SimulatorScenario is a growth assumption and its projections.
// BreakEvenMonth and ROIMonth are nil when not reached within the horizon.
type SimulatorScenario struct {
	Label          string              `json:"label"`
	GrowthRate     float64             `json:"growthRate"`
	Projections    []MonthlyProjection `json:"projections"`
	BreakEvenMonth *int                `json:"breakEvenMonth"`
	ROIMonth       *int                `json:"roiMonth"`
}

type SimulatorAnalysis struct {
	Summary           AnalysisSummary     `json:"summary"`
	InitialInvestment float64             `json:"initialInvestment"`
	Scenarios         []SimulatorScenario `json:"scenarios"`
}

// BenchmarkItem compares one metric with its industry average.
type BenchmarkItem struct {
	Label          string  `json:"label"`
	MyValue        float64 `json:"myValue"`
	IndustryAvg    float64 `json:"industryAvg"`
	Unit           string  `json:"unit"`
	HigherIsBetter bool    `json:"higherIsBetter"`
}

// Favorable reports whether the profile sits on the good side of the
// average. Ties count as favorable.
func (b BenchmarkItem) Favorable() bool {
	if b.HigherIsBetter {
		return b.MyValue >= b.IndustryAvg
	}
	return b.MyValue <= b.IndustryAvg
}

type BenchmarkAnalysis struct {
	Summary      AnalysisSummary `json:"summary"`
	Items        []BenchmarkItem `json:"items"`
	OverallScore int             `json:"overallScore"`
}

func (LocationAnalysis) Kind() AnalysisKind    { return KindLocation }
func (OperationsAnalysis) Kind() AnalysisKind  { return KindOperations }
func (PackageAnalysis) Kind() AnalysisKind     { return KindPackage }
func (PositioningAnalysis) Kind() AnalysisKind { return KindPositioning }
func (RiskAnalysis) Kind() AnalysisKind        { return KindRisk }
func (SimulatorAnalysis) Kind() AnalysisKind   { return KindSimulator }
func (BenchmarkAnalysis) Kind() AnalysisKind   { return KindBenchmark }

func (a LocationAnalysis) Result() AnalysisSummary    { return a.Summary }
func (a OperationsAnalysis) Result() AnalysisSummary  { return a.Summary }
func (a PackageAnalysis) Result() AnalysisSummary     { return a.Summary }
func (a PositioningAnalysis) Result() AnalysisSummary { return a.Summary }
func (a RiskAnalysis) Result() AnalysisSummary        { return a.Summary }
func (a SimulatorAnalysis) Result() AnalysisSummary   { return a.Summary }
func (a BenchmarkAnalysis) Result() AnalysisSummary   { return a.Summary }

func (LocationAnalysis) sealed()    {}
func (OperationsAnalysis) sealed()  {}
func (PackageAnalysis) sealed()     {}
func (PositioningAnalysis) sealed() {}
func (RiskAnalysis) sealed()        {}
func (SimulatorAnalysis) sealed()   {}
func (BenchmarkAnalysis) sealed()   {}

// Narrative is the best-effort generated text for a tab. Text is nil
// whenever no narrative could be produced; Diagnostic says why when the
// generator was attempted and failed.
type Narrative struct {
	Text       *string `json:"text"`
	Diagnostic *string `json:"diagnostic,omitempty"`
}

// AnalysisEnvelope is what the API returns for an analysis request.
type AnalysisEnvelope struct {
	Tab           AnalysisKind   `json:"tab"`
	Deterministic AnalysisResult `json:"deterministic"`
	Financials    Financials     `json:"financials"`
	Narrative     Narrative      `json:"narrative"`
}
