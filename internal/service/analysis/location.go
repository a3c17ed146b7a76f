package analysis

import (
	"fmt"

	"github.com/seu-repo/clinic-advisor/internal/domain"
)

const (
	locationRentCaution        = 20
	locationRentNotRecommended = 35
)

// AnalyzeLocation judges the building, patient group and rent burden.
func AnalyzeLocation(p domain.ClinicProfile) domain.LocationAnalysis {
	var strengths, issues []string
	verdict := domain.VerdictFit

	switch p.BuildingType {
	case domain.BuildingMedical:
		strengths = append(strengths, "메디컬빌딩은 의료 수요가 집중되는 환경으로, 초기 환자 유입에 유리합니다.")
	case domain.BuildingRetail:
		strengths = append(strengths, "일반 상가는 유동 인구 접근성이 높을 수 있으나, 의료 이미지 구축에 별도 노력이 필요합니다.")
	}

	if p.OpeningStatus == domain.OpeningPlanned {
		issues = append(issues, "개원 전 단계입니다. 상권 분석과 경쟁 의원 조사를 반드시 수행하십시오.")
		verdict = verdict.Worse(domain.VerdictCaution)
	}

	if p.PatientGroup == domain.PatientElderly && p.BuildingType == domain.BuildingRetail {
		strengths = append(strengths, "노년층 대상 진료는 1층 상가의 접근성이 유리합니다.")
	}
	if p.PatientGroup == domain.PatientOfficeWorkers {
		issues = append(issues, "직장인 대상이면 역세권·오피스 밀집 지역 여부를 확인하십시오.")
	}

	fin := DeriveFinancials(p)
	if fin.RentRatio > locationRentCaution {
		issues = append(issues, fmt.Sprintf(
			"임대료 비중이 매출의 %d%% (추정치)로 높습니다. 일반적으로 15%% 이하가 안정적입니다.", fin.RentRatio))
		verdict = verdict.Worse(domain.VerdictCaution)
	}
	if fin.RentRatio > locationRentNotRecommended {
		verdict = verdict.Worse(domain.VerdictNotRecommended)
	}

	if len(issues) == 0 {
		strengths = append(strengths, "현재 입력된 조건상 입지 관련 주요 리스크가 발견되지 않았습니다.")
	}

	summary := domain.AnalysisSummary{Verdict: verdict}
	switch verdict {
	case domain.VerdictFit:
		summary.OneLiner = fmt.Sprintf("%s %s 지역, %s 기준으로 입지 조건이 양호합니다.", p.RegionCity, p.RegionDong, p.BuildingType)
		summary.Actions = []string{"인근 경쟁 한의원 현황 파악", "건물 내 타 의료기관과의 시너지 분석"}
	case domain.VerdictCaution:
		summary.OneLiner = "입지 조건에 보완이 필요한 항목이 있습니다. 아래 세부 내용을 확인하십시오."
	default:
		summary.OneLiner = "현재 임대료 수준 대비 매출 추정치가 매우 불리합니다. 입지 재검토를 권장합니다."
	}
	if verdict != domain.VerdictFit {
		summary.Actions = []string{"임대료 협상 또는 대안 부지 검토", "목표 환자군의 실제 유동 인구 데이터 확인"}
	}

	return domain.LocationAnalysis{
		Summary:   summary,
		Strengths: nonNil(strengths),
		Issues:    nonNil(issues),
	}
}

// nonNil keeps empty lists serialized as [] rather than null.
func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
