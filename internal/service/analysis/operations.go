package analysis

import (
	"fmt"

	"github.com/seu-repo/clinic-advisor/internal/domain"
)

const (
	marginNotRecommended = 10
	marginCaution        = 25
	rentRatioLimit       = 15
	laborRatioLimit      = 35
	revisitLowMidpoint   = 40
)

// revisitMidpoints maps each revisit bucket to a representative rate.
var revisitMidpoints = map[domain.RevisitRange]int{
	domain.RevisitUnder30: 15,
	domain.Revisit30To50:  40,
	domain.Revisit50To70:  60,
	domain.RevisitOver70:  80,
}

// RevisitMidpoint returns the representative revisit rate for r, or 40
// for an unknown bucket.
func RevisitMidpoint(r domain.RevisitRange) int {
	if mid, ok := revisitMidpoints[r]; ok {
		return mid
	}
	return revisitLowMidpoint
}

// AnalyzeOperations reviews margin, cost ratios, break-even volume and
// revisit rate.
func AnalyzeOperations(p domain.ClinicProfile) domain.OperationsAnalysis {
	fin := DeriveFinancials(p)
	var insights, issues []string
	verdict := domain.VerdictFit

	switch {
	case fin.OperatingMargin < marginNotRecommended:
		issues = append(issues, fmt.Sprintf(
			"영업이익률이 %d%% (추정치)로 매우 낮습니다. 비용 구조 개선이 시급합니다.", fin.OperatingMargin))
		verdict = verdict.Worse(domain.VerdictNotRecommended)
	case fin.OperatingMargin < marginCaution:
		issues = append(issues, fmt.Sprintf(
			"영업이익률이 %d%% (추정치)입니다. 한의원 평균(25–35%%)보다 낮으므로 개선 여지를 검토하십시오.", fin.OperatingMargin))
		verdict = verdict.Worse(domain.VerdictCaution)
	default:
		insights = append(insights, fmt.Sprintf("영업이익률 %d%% (추정치)로 안정적입니다.", fin.OperatingMargin))
	}

	if fin.RentRatio > rentRatioLimit {
		issues = append(issues, fmt.Sprintf(
			"임대료가 매출의 %d%% (추정치)를 차지합니다. 15%% 이하가 권장됩니다.", fin.RentRatio))
	} else {
		insights = append(insights, fmt.Sprintf("임대료 비중 %d%% (추정치)로 적정 수준입니다.", fin.RentRatio))
	}

	if fin.LaborRatio > laborRatioLimit {
		issues = append(issues, fmt.Sprintf(
			"인건비 비율이 매출의 %d%% (추정치)로 높습니다. 직원 생산성 또는 인력 구조를 점검하십시오.", fin.LaborRatio))
	} else {
		insights = append(insights, fmt.Sprintf("인건비 비율 %d%% (추정치)로 적정 범위입니다.", fin.LaborRatio))
	}

	insights = append(insights, fmt.Sprintf(
		"손익분기 환자 수: 월 %s명 (추정치). 현재 월 내원 환자 %s명 (입력값).",
		FormatNumber(float64(fin.BreakEvenPatients)), FormatNumber(float64(p.MonthlyPatients))))

	if fin.BreakEvenPatients > p.MonthlyPatients {
		issues = append(issues, "현재 환자 수가 손익분기점에 미달합니다. 환자 유입 확대 또는 비용 절감이 필요합니다.")
		verdict = verdict.Worse(domain.VerdictCaution)
	}

	if !p.IncludesOwnerSalary {
		issues = append(issues, "원장 인건비가 비용에 포함되지 않았습니다. 실질 수익은 위 추정치보다 낮을 수 있습니다.")
	}

	if RevisitMidpoint(p.RevisitRange) < revisitLowMidpoint {
		issues = append(issues, fmt.Sprintf(
			"재진율이 %s (입력값)로 낮습니다. 신규 환자 유치 비용이 지속적으로 발생합니다.", p.RevisitRange))
	}

	summary := domain.AnalysisSummary{Verdict: verdict}
	switch verdict {
	case domain.VerdictFit:
		summary.OneLiner = fmt.Sprintf("월 매출 %s원 (추정치), 영업이익률 %d%%로 재무 구조가 안정적입니다.",
			FormatNumber(fin.MonthlyRevenue), fin.OperatingMargin)
		summary.Actions = []string{"비급여 진료 비중 확대를 통한 객단가 향상 검토", "재진율 유지·개선 프로그램 운영"}
	case domain.VerdictCaution:
		summary.OneLiner = "재무 지표에 개선이 필요한 항목이 있습니다. 비용 구조를 점검하십시오."
	default:
		summary.OneLiner = "수익성이 매우 낮습니다. 비용 절감 또는 매출 증대 방안을 즉시 마련하십시오."
	}
	if verdict != domain.VerdictFit {
		summary.Actions = []string{"고정비(임대료·인건비) 구조 재점검", "객단가 향상 또는 환자 수 확대 전략 수립"}
	}

	return domain.OperationsAnalysis{
		Summary:    summary,
		Insights:   nonNil(insights),
		Issues:     nonNil(issues),
		Financials: fin,
	}
}
