package analysis

import (
	"fmt"

	"github.com/seu-repo/clinic-advisor/internal/domain"
)

const (
	concentrationNotRecommended = 60
	concentrationCaution        = 40
	workloadLimit               = 2
	workingDaysPerMonth         = 25
	nonInsuranceDependency      = 70
)

const (
	riskConcentration = "매출 집중도"
	riskComplaints    = "환자 컴플레인"
	riskWait          = "대기 시간"
	riskWorkload      = "인력 부하"
	riskNonInsurance  = "비급여 의존도"
)

// PatientsPerStaffHour is monthly visits spread over staff working hours,
// or 0 when there are no staff or hours.
func PatientsPerStaffHour(p domain.ClinicProfile) float64 {
	if p.StaffCount <= 0 || p.DailyHours <= 0 {
		return 0
	}
	return float64(p.MonthlyPatients) / (float64(p.StaffCount) * p.DailyHours * workingDaysPerMonth)
}

// AnalyzeRisk assesses concentration, complaints and waiting on every call.
// Staff workload and non-insurance dependency are reported only when they
// cross their thresholds. The overall verdict is the worst item level.
func AnalyzeRisk(p domain.ClinicProfile) domain.RiskAnalysis {
	risks := []domain.RiskItem{
		concentrationRisk(p.RevenueConcentration),
		complaintRisk(p.ComplaintFrequency),
		waitRisk(p.FrequentWait),
	}

	if load := PatientsPerStaffHour(p); load > workloadLimit {
		risks = append(risks, domain.RiskItem{
			Category: riskWorkload,
			Level:    domain.VerdictCaution,
			Detail:   fmt.Sprintf("직원 1인당 시간당 환자 수가 약 %.1f명 (추정치)으로 높습니다. 서비스 품질 저하 및 이직 위험이 있습니다.", load),
		})
	}

	if p.NonInsuranceRatio > nonInsuranceDependency {
		risks = append(risks, domain.RiskItem{
			Category: riskNonInsurance,
			Level:    domain.VerdictCaution,
			Detail:   fmt.Sprintf("비급여 비중이 %s%% (입력값)로 높습니다. 경기 침체 시 환자 이탈 위험이 큽니다.", plain(p.NonInsuranceRatio)),
		})
	}

	overall := domain.VerdictFit
	for _, r := range risks {
		overall = overall.Worse(r.Level)
	}

	summary := domain.AnalysisSummary{Verdict: overall}
	switch overall {
	case domain.VerdictNotRecommended:
		summary.OneLiner = "즉각적인 대응이 필요한 고위험 항목이 있습니다."
		summary.Actions = []string{"고위험 항목을 최우선으로 대응", "90일 이내 개선 계획 수립 및 실행"}
	case domain.VerdictCaution:
		summary.OneLiner = "일부 리스크 항목에서 개선이 필요합니다."
		summary.Actions = []string{"주의 항목을 분기 내 점검·개선", "정기적인 리스크 모니터링 체계 구축"}
	default:
		summary.OneLiner = "주요 운영 리스크가 관리 가능한 수준입니다."
		summary.Actions = []string{"현 수준 유지 및 분기별 리스크 재점검", "신규 리스크 항목(제도 변경 등) 모니터링"}
	}

	return domain.RiskAnalysis{Summary: summary, Risks: risks}
}

func concentrationRisk(share float64) domain.RiskItem {
	item := domain.RiskItem{Category: riskConcentration}
	switch {
	case share > concentrationNotRecommended:
		item.Level = domain.VerdictNotRecommended
		item.Detail = fmt.Sprintf("특정 진료·보험 유형에 매출의 %s%% (입력값)가 집중되어 있습니다. 해당 항목의 제도 변경 시 매출이 급감할 수 있습니다.", plain(share))
	case share > concentrationCaution:
		item.Level = domain.VerdictCaution
		item.Detail = fmt.Sprintf("매출 집중도 %s%% (입력값)입니다. 분산을 위한 신규 진료 항목 개발을 검토하십시오.", plain(share))
	default:
		item.Level = domain.VerdictFit
		item.Detail = fmt.Sprintf("매출 집중도 %s%% (입력값)로 적절히 분산되어 있습니다.", plain(share))
	}
	return item
}

func complaintRisk(freq domain.ComplaintFrequency) domain.RiskItem {
	item := domain.RiskItem{Category: riskComplaints}
	switch freq {
	case domain.ComplaintsFrequent:
		item.Level = domain.VerdictNotRecommended
		item.Detail = "월 3건 이상의 컴플레인은 운영 체계 또는 서비스 품질에 구조적 문제가 있을 수 있습니다. 즉각적인 원인 분석이 필요합니다."
	case domain.ComplaintsFew:
		item.Level = domain.VerdictCaution
		item.Detail = "월 1–2건의 컴플레인이 발생하고 있습니다. 유형별 분류 및 재발 방지 대책을 수립하십시오."
	default:
		item.Level = domain.VerdictFit
		item.Detail = "컴플레인 빈도가 낮아 서비스 품질이 안정적입니다."
	}
	return item
}

func waitRisk(frequentWait bool) domain.RiskItem {
	if frequentWait {
		return domain.RiskItem{
			Category: riskWait,
			Level:    domain.VerdictCaution,
			Detail:   "대기 시간이 잦다고 응답하셨습니다. 예약 시스템 도입 또는 진료 흐름 개선을 검토하십시오.",
		}
	}
	return domain.RiskItem{
		Category: riskWait,
		Level:    domain.VerdictFit,
		Detail:   "대기 시간 관련 문제가 보고되지 않았습니다.",
	}
}
