package analysis

import (
	"fmt"

	"github.com/seu-repo/clinic-advisor/internal/domain"
)

const (
	broadSpecialtyCount = 4
	studentPriceCeiling = 80000
)

// AnalyzePositioning checks specialty breadth and how well the specialties
// match the patient group.
func AnalyzePositioning(p domain.ClinicProfile) domain.PositioningAnalysis {
	var strengths, issues []string
	verdict := domain.VerdictFit
	n := len(p.Specialties)

	switch {
	case n == 1:
		strengths = append(strengths, fmt.Sprintf(
			"'%s' 단일 전문 분야에 집중하고 있습니다. 브랜딩과 환자 인식에 유리합니다.", p.Specialties[0]))
	case n > 1 && n < broadSpecialtyCount:
		strengths = append(strengths, fmt.Sprintf(
			"%d개 분야를 운영 중입니다. 적정 수준이나, 대외 홍보 시 주력 분야 1개를 명확히 하십시오.", n))
	case n >= broadSpecialtyCount:
		issues = append(issues, fmt.Sprintf(
			"%d개 분야를 동시에 운영하고 있습니다. 전문성 인식이 희석될 수 있으므로, 핵심 분야 2개 이내로 포지셔닝을 좁히는 것을 권장합니다.", n))
		verdict = verdict.Worse(domain.VerdictCaution)
	}

	if p.PatientGroup == domain.PatientElderly && p.HasSpecialty(domain.SpecialtyDiet) {
		issues = append(issues, "주요 환자군이 노년층이나 다이어트·미용 분야를 운영 중입니다. 타겟과 서비스의 정합성을 확인하십시오.")
	}
	if p.PatientGroup == domain.PatientStudents && p.HasSpecialty(domain.SpecialtyHerbal) {
		issues = append(issues, "학생 대상 내과·탕약은 가격 저항이 높을 수 있습니다. 보험 급여 위주 진료 또는 간편 처방 구성을 고려하십시오.")
	}
	if p.PatientGroup == domain.PatientOfficeWorkers && p.HasSpecialty(domain.SpecialtyPain) {
		strengths = append(strengths, "직장인 대상 근골격·통증 진료는 수요가 꾸준합니다. 퇴근 후 진료 시간 운영이 핵심입니다.")
	}

	if p.PatientGroup == domain.PatientStudents && p.AvgRevenuePerPatient > studentPriceCeiling {
		issues = append(issues, fmt.Sprintf(
			"학생 대상 객단가 %s원 (입력값)은 높은 편입니다. 가격 부담으로 이탈할 수 있습니다.", FormatNumber(p.AvgRevenuePerPatient)))
		verdict = verdict.Worse(domain.VerdictCaution)
	}

	if len(issues) == 0 && len(strengths) > 0 {
		strengths = append(strengths, "현재 진료 포지셔닝에 큰 문제가 발견되지 않았습니다.")
	}

	oneLiner := "진료 분야와 환자군 사이에 조정이 필요한 부분이 있습니다."
	if verdict == domain.VerdictFit {
		lead := ""
		if n > 0 {
			lead = string(p.Specialties[0])
		}
		oneLiner = fmt.Sprintf("%s 중심의 포지셔닝이 환자군과 정합합니다.", lead)
	}

	return domain.PositioningAnalysis{
		Summary: domain.AnalysisSummary{
			Verdict:  verdict,
			OneLiner: oneLiner,
			Actions: []string{
				"대외 홍보 시 주력 분야 1개를 전면에 배치",
				"환자군 특성에 맞는 진료 시간대·가격 구조 최적화",
			},
		},
		Strengths: nonNil(strengths),
		Issues:    nonNil(issues),
	}
}
