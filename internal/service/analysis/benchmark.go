package analysis

import (
	"fmt"

	"github.com/seu-repo/clinic-advisor/internal/domain"
)

const (
	benchmarkCautionScore        = 60
	benchmarkNotRecommendedScore = 30
)

// IndustryAverages are the reference values a profile is compared against.
type IndustryAverages struct {
	OperatingMargin      float64 `json:"operatingMargin"`
	RentRatio            float64 `json:"rentRatio"`
	LaborRatio           float64 `json:"laborRatio"`
	AvgRevenuePerPatient float64 `json:"avgRevenuePerPatient"`
	MonthlyPatients      float64 `json:"monthlyPatients"`
	MonthlyRevenue       float64 `json:"monthlyRevenue"`
	NonInsuranceRatio    float64 `json:"nonInsuranceRatio"`
}

// DefaultIndustryAverages returns the published Korean medicine clinic
// averages: margin and revenue from the 2020 economic census, visit
// revenue and volume from HIRA 2023 H1, non-insurance share from the 2014
// utilisation survey. Rent and labor ratios are industry practice.
func DefaultIndustryAverages() IndustryAverages {
	return IndustryAverages{
		OperatingMargin:      28.6,
		RentRatio:            10,
		LaborRatio:           25,
		AvgRevenuePerPatient: 68594,
		MonthlyPatients:      500,
		MonthlyRevenue:       29_430_000,
		NonInsuranceRatio:    37.5,
	}
}

// AnalyzeBenchmark compares a profile against DefaultIndustryAverages.
func AnalyzeBenchmark(p domain.ClinicProfile) domain.BenchmarkAnalysis {
	return AnalyzeBenchmarkAgainst(p, DefaultIndustryAverages())
}

// AnalyzeBenchmarkAgainst scores the profile on seven metrics against avg.
func AnalyzeBenchmarkAgainst(p domain.ClinicProfile, avg IndustryAverages) domain.BenchmarkAnalysis {
	fin := DeriveFinancials(p)

	items := []domain.BenchmarkItem{
		{Label: "영업이익률", MyValue: float64(fin.OperatingMargin), IndustryAvg: avg.OperatingMargin, Unit: "%", HigherIsBetter: true},
		{Label: "임대료 비율", MyValue: float64(fin.RentRatio), IndustryAvg: avg.RentRatio, Unit: "%", HigherIsBetter: false},
		{Label: "인건비 비율", MyValue: float64(fin.LaborRatio), IndustryAvg: avg.LaborRatio, Unit: "%", HigherIsBetter: false},
		{Label: "평균 객단가", MyValue: p.AvgRevenuePerPatient, IndustryAvg: avg.AvgRevenuePerPatient, Unit: "원", HigherIsBetter: true},
		{Label: "월 환자 수", MyValue: float64(p.MonthlyPatients), IndustryAvg: avg.MonthlyPatients, Unit: "명", HigherIsBetter: true},
		{Label: "월 매출", MyValue: fin.MonthlyRevenue, IndustryAvg: avg.MonthlyRevenue, Unit: "원", HigherIsBetter: true},
		{Label: "비급여 비중", MyValue: p.NonInsuranceRatio, IndustryAvg: avg.NonInsuranceRatio, Unit: "%", HigherIsBetter: true},
	}

	favorable := 0
	for _, it := range items {
		if it.Favorable() {
			favorable++
		}
	}
	score := int(round(float64(favorable) / float64(len(items)) * 100))

	verdict := domain.VerdictFit
	if score < benchmarkCautionScore {
		verdict = verdict.Worse(domain.VerdictCaution)
	}
	if score < benchmarkNotRecommendedScore {
		verdict = verdict.Worse(domain.VerdictNotRecommended)
	}

	actions := []string{"업계 평균 이하 지표를 우선순위로 개선 계획 수립", "인근 성공 한의원의 운영 모델 벤치마킹"}
	if score >= benchmarkCautionScore {
		actions = []string{"현재 강점을 유지하면서 약점 지표를 집중 개선", "분기별 벤치마크 재비교로 추세 관리"}
	}

	return domain.BenchmarkAnalysis{
		Summary: domain.AnalysisSummary{
			Verdict:  verdict,
			OneLiner: fmt.Sprintf("%d개 지표 중 %d개가 업계 평균 이상입니다 (종합 %d점).", len(items), favorable, score),
			Actions:  actions,
		},
		Items:        items,
		OverallScore: score,
	}
}
