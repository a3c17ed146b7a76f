package analysis

import (
	"fmt"

	"github.com/seu-repo/clinic-advisor/internal/domain"
)

const nonInsuranceHighShare = 50

// packageTemplate prices a package as avg revenue × sessions × discount.
// A template with a fixed price text skips the computation.
type packageTemplate struct {
	name        string
	description string
	sessions    int
	discount    float64
	priceSuffix string
	fixedPrice  string
	cadence     string
	rationale   string
}

func (t packageTemplate) build(avgRevenue float64) domain.PackageItem {
	price := t.fixedPrice
	if price == "" {
		amount := round(avgRevenue * float64(t.sessions) * t.discount)
		price = fmt.Sprintf("%s원 (%s, 추정치)", FormatNumber(amount), t.priceSuffix)
	}
	return domain.PackageItem{
		Name:        t.name,
		Description: t.description,
		TargetPrice: price,
		Sessions:    t.cadence,
		Rationale:   t.rationale,
	}
}

var packageTemplates = map[domain.Specialty]packageTemplate{
	domain.SpecialtyPain: {
		name:        "통증 집중 관리 패키지",
		description: "침, 부항, 추나 요법을 결합한 근골격 통증 관리 프로그램",
		sessions:    5,
		discount:    0.9,
		priceSuffix: "5회",
		cadence:     "주 2회, 총 5회",
		rationale:   "단회 방문 대비 5회 패키지로 재진율을 높이고 치료 연속성을 확보합니다.",
	},
	domain.SpecialtyTraffic: {
		name:        "교통사고 후유증 케어",
		description: "사고 후 통증·자율신경 불균형에 대한 체계적 회복 프로그램",
		fixedPrice:  "보험 급여 범위 내 (입력값 기준 별도 산정)",
		cadence:     "주 3회 이상, 의료진 판단에 따라 조정",
		rationale:   "교통사고 환자는 보험 처리로 인해 객단가보다 방문 빈도와 치료 기간이 핵심입니다.",
	},
	domain.SpecialtyAutonomic: {
		name:        "스트레스·불면 관리 프로그램",
		description: "침, 약침, 한약 처방을 결합한 자율신경 균형 회복 과정",
		sessions:    8,
		discount:    0.85,
		priceSuffix: "8회",
		cadence:     "주 1–2회, 총 8회 (4주 과정)",
		rationale:   "정신신체 영역은 장기 관리가 필요하므로 8회 과정으로 환자 이탈을 줄입니다.",
	},
	domain.SpecialtyHerbal: {
		name:        "체질 개선 탕약 프로그램",
		description: "체질 진단 후 맞춤 탕약 처방 및 경과 관찰",
		sessions:    3,
		discount:    1,
		priceSuffix: "탕약 3제",
		cadence:     "초진 + 2주 간격 경과 관찰 3회",
		rationale:   "탕약 처방은 객단가가 높아 소수 환자로도 매출 기여도가 큽니다. 경과 관찰로 재진을 유도합니다.",
	},
	domain.SpecialtyDiet: {
		name:        "한방 체형 관리 코스",
		description: "매선, 약침, 한약을 활용한 체형 관리 프로그램",
		sessions:    10,
		discount:    0.8,
		priceSuffix: "10회",
		cadence:     "주 2회, 총 10회 (5주 과정)",
		rationale:   "미용 시술은 비급여 비중이 높아 수익성이 좋으나, 패키지 할인으로 이탈 방지가 중요합니다.",
	},
}

var fallbackPackage = packageTemplate{
	name:        "종합 건강 관리 패키지",
	description: "침, 뜸, 부항 등 기본 한방 치료를 결합한 건강 관리 프로그램",
	sessions:    5,
	discount:    0.9,
	priceSuffix: "5회",
	cadence:     "주 1–2회, 총 5회",
	rationale:   "기본 진료 패키지로 재진율 향상과 환자 고정화를 목표로 합니다.",
}

// AnalyzePackages proposes one package per offered specialty, in
// canonical specialty order, with a generic package when none match.
func AnalyzePackages(p domain.ClinicProfile) domain.PackageAnalysis {
	packages := make([]domain.PackageItem, 0, len(domain.Specialties))
	for _, s := range domain.Specialties {
		if !p.HasSpecialty(s) {
			continue
		}
		packages = append(packages, packageTemplates[s].build(p.AvgRevenuePerPatient))
	}
	if len(packages) == 0 {
		packages = append(packages, fallbackPackage.build(p.AvgRevenuePerPatient))
	}

	note := "비급여 비중이 낮으므로, 비급여 항목을 패키지에 포함하여 점진적으로 비중을 높이는 전략이 유효합니다."
	if p.NonInsuranceRatio > nonInsuranceHighShare {
		note = "비급여 비중이 높아 패키지 가격 설정의 자유도가 큽니다. 단, 가격 민감도를 고려한 단계별 설계를 권장합니다."
	}

	verdict := domain.VerdictFit
	if len(packages) < 2 {
		verdict = domain.VerdictCaution
	}

	return domain.PackageAnalysis{
		Summary: domain.AnalysisSummary{
			Verdict:  verdict,
			OneLiner: fmt.Sprintf("주 진료 분야 기준으로 %d개의 패키지 구성안을 도출했습니다.", len(packages)),
			Actions: []string{
				"각 패키지의 원가 및 시간 소요를 검증한 후 시범 운영",
				"환자 반응에 따라 가격 및 회차를 조정",
			},
		},
		Packages:         packages,
		NonInsuranceNote: note,
	}
}
