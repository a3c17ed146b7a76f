package analysis

import (
	"fmt"

	"github.com/seu-repo/clinic-advisor/internal/domain"
)

// Engine dispatches a tab to its analyzer. The zero value is not usable;
// build one with NewEngine.
type Engine struct {
	averages IndustryAverages
}

// NewEngine returns an engine benchmarking against avg.
func NewEngine(avg IndustryAverages) Engine {
	return Engine{averages: avg}
}

// DefaultEngine benchmarks against DefaultIndustryAverages.
func DefaultEngine() Engine {
	return NewEngine(DefaultIndustryAverages())
}

// Averages returns the benchmark reference values in use.
func (e Engine) Averages() IndustryAverages {
	return e.averages
}

// Run executes the analyzer for kind. It only fails for a kind outside
// the closed set.
func (e Engine) Run(kind domain.AnalysisKind, p domain.ClinicProfile) (domain.AnalysisResult, error) {
	switch kind {
	case domain.KindLocation:
		return AnalyzeLocation(p), nil
	case domain.KindOperations:
		return AnalyzeOperations(p), nil
	case domain.KindPackage:
		return AnalyzePackages(p), nil
	case domain.KindPositioning:
		return AnalyzePositioning(p), nil
	case domain.KindRisk:
		return AnalyzeRisk(p), nil
	case domain.KindSimulator:
		return Simulate(p), nil
	case domain.KindBenchmark:
		return AnalyzeBenchmarkAgainst(p, e.averages), nil
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownAnalysisKind, kind)
	}
}
