package clinic

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"math/big"
	"sort"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/seu-repo/clinic-advisor/internal/domain"
)

//go:embed profile.schema.json
var profileSchemaJSON []byte

var profileSchema = func() *gojsonschema.Schema {
	s, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(profileSchemaJSON))
	if err != nil {
		panic(fmt.Sprintf("clinic: invalid embedded profile schema: %v", err))
	}
	return s
}()

// fieldLabels names profile fields the way the setup form does.
var fieldLabels = map[string]string{
	"openingStatus":        "개원 상태",
	"regionCity":           "지역(시/군/구)",
	"regionDong":           "동",
	"buildingType":         "건물 유형",
	"specialties":          "진료 분야",
	"patientGroup":         "환자군",
	"avgRevenuePerPatient": "평균 객단가",
	"revisitRange":         "재진율 구간",
	"monthlyPatients":      "월 환자 수",
	"nonInsuranceRatio":    "비급여 비중",
	"monthlyRent":          "월 임대료",
	"laborCost":            "인건비",
	"otherFixedCost":       "기타 고정비",
	"variableCostEstimate": "변동비",
	"includesOwnerSalary":  "원장 인건비 포함 여부",
	"depositAmount":        "보증금",
	"keyMoney":             "권리금",
	"interiorCost":         "인테리어 비용",
	"equipmentCost":        "의료장비 비용",
	"initialStockCost":     "초기 재고 비용",
	"otherInitialCost":     "기타 초기 비용",
	"staffCount":           "직원 수",
	"dailyHours":           "진료 시간",
	"frequentWait":         "대기 시간 여부",
	"complaintFrequency":   "컴플레인 빈도",
	"revenueConcentration": "매출 집중도",
	"createdAt":            "생성 시각",
	"updatedAt":            "수정 시각",
}

// DecodeProfile validates raw against the profile schema and decodes it.
// Region text is trimmed. Every schema violation is reported at once.
func DecodeProfile(raw []byte) (*domain.ClinicProfile, error) {
	result, err := profileSchema.Validate(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return nil, &domain.ValidationError{Fields: []domain.FieldError{
			{Field: "(root)", Message: "유효한 JSON이 아닙니다"},
		}}
	}
	if !result.Valid() {
		return nil, validationError(result.Errors())
	}

	var p domain.ClinicProfile
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, &domain.ValidationError{Fields: []domain.FieldError{
			{Field: "(root)", Message: err.Error()},
		}}
	}
	p.RegionCity = strings.TrimSpace(p.RegionCity)
	p.RegionDong = strings.TrimSpace(p.RegionDong)
	return &p, nil
}

func validationError(errs []gojsonschema.ResultError) *domain.ValidationError {
	fields := make([]domain.FieldError, 0, len(errs))
	for _, e := range errs {
		field := e.Field()
		if e.Type() == "required" {
			if prop, ok := e.Details()["property"].(string); ok {
				field = prop
			}
		}
		fields = append(fields, domain.FieldError{Field: field, Message: message(field, e)})
	}
	sort.SliceStable(fields, func(i, j int) bool { return fields[i].Field < fields[j].Field })
	return &domain.ValidationError{Fields: fields}
}

func message(field string, e gojsonschema.ResultError) string {
	label := field
	if l, ok := fieldLabels[strings.SplitN(field, ".", 2)[0]]; ok {
		label = l
	}
	d := e.Details()

	switch e.Type() {
	case "required":
		return label + "은(는) 필수 입력입니다"
	case "pattern":
		return label + "은(는) 필수 입력입니다"
	case "enum":
		return "유효하지 않은 " + label + "입니다"
	case "array_min_items":
		return "최소 1개의 진료 분야를 선택해야 합니다"
	case "unique":
		return label + "에 중복된 값이 있습니다"
	case "number_gte":
		return fmt.Sprintf("%s은(는) %s 이상이어야 합니다", label, bound(d["min"]))
	case "number_lte":
		return fmt.Sprintf("%s은(는) %s 이하여야 합니다", label, bound(d["max"]))
	case "invalid_type":
		return fmt.Sprintf("%s의 형식이 올바르지 않습니다 (%v)", label, d["expected"])
	default:
		return label + ": " + e.Description()
	}
}

// bound prints a schema limit, whichever numeric type the validator used.
func bound(v interface{}) string {
	switch n := v.(type) {
	case *big.Rat:
		f, _ := n.Float64()
		return fmt.Sprint(f)
	case *big.Float:
		f, _ := n.Float64()
		return fmt.Sprint(f)
	default:
		return fmt.Sprint(v)
	}
}
