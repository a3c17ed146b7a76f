package domain

import "time"

// OpeningStatus is how long the clinic has been operating.
type OpeningStatus string

const (
	OpeningPlanned      OpeningStatus = "개원 예정"
	OpeningUnderOneYear OpeningStatus = "1년 미만"
	OpeningOneToThree   OpeningStatus = "1–3년"
	OpeningOverThree    OpeningStatus = "3년 이상"
)

// BuildingType is the kind of building the clinic occupies.
type BuildingType string

const (
	BuildingRetail   BuildingType = "상가"
	BuildingMixedUse BuildingType = "주상복합"
	BuildingMedical  BuildingType = "메디컬빌딩"
	BuildingOther    BuildingType = "기타"
)

// Specialty is a treatment area offered by the clinic.
type Specialty string

const (
	SpecialtyPain      Specialty = "근골격·통증"
	SpecialtyTraffic   Specialty = "교통사고"
	SpecialtyAutonomic Specialty = "자율신경·정신신체"
	SpecialtyHerbal    Specialty = "내과·탕약"
	SpecialtyDiet      Specialty = "다이어트·미용"
)

// Specialties lists every specialty in canonical order.
var Specialties = []Specialty{
	SpecialtyPain,
	SpecialtyTraffic,
	SpecialtyAutonomic,
	SpecialtyHerbal,
	SpecialtyDiet,
}

// PatientGroup is the dominant patient segment.
type PatientGroup string

const (
	PatientOfficeWorkers PatientGroup = "직장인"
	PatientStudents      PatientGroup = "학생"
	PatientElderly       PatientGroup = "노년층"
	PatientWomen         PatientGroup = "여성 위주"
	PatientMixed         PatientGroup = "혼합"
)

// RevisitRange is a bucketed revisit rate.
type RevisitRange string

const (
	RevisitUnder30 RevisitRange = "<30%"
	Revisit30To50  RevisitRange = "30–50%"
	Revisit50To70  RevisitRange = "50–70%"
	RevisitOver70  RevisitRange = "70% 이상"
)

// ComplaintFrequency is a bucketed monthly complaint count.
type ComplaintFrequency string

const (
	ComplaintsRare     ComplaintFrequency = "거의 없음"
	ComplaintsFew      ComplaintFrequency = "월 1–2건"
	ComplaintsFrequent ComplaintFrequency = "월 3건 이상"
)

// ClinicProfile is the business profile every analysis runs against.
// It is treated as a value: analyzers never modify it.
type ClinicProfile struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	OpeningStatus OpeningStatus `json:"openingStatus"`
	RegionCity    string        `json:"regionCity"`
	RegionDong    string        `json:"regionDong"`
	BuildingType  BuildingType  `json:"buildingType"`

	Specialties  []Specialty  `json:"specialties"`
	PatientGroup PatientGroup `json:"patientGroup"`

	AvgRevenuePerPatient float64      `json:"avgRevenuePerPatient"`
	RevisitRange         RevisitRange `json:"revisitRange"`
	MonthlyPatients      int          `json:"monthlyPatients"`
	NonInsuranceRatio    float64      `json:"nonInsuranceRatio"`

	MonthlyRent          float64 `json:"monthlyRent"`
	LaborCost            float64 `json:"laborCost"`
	OtherFixedCost       float64 `json:"otherFixedCost"`
	VariableCostEstimate float64 `json:"variableCostEstimate"`
	IncludesOwnerSalary  bool    `json:"includesOwnerSalary"`

	DepositAmount    float64 `json:"depositAmount"`
	KeyMoney         float64 `json:"keyMoney"`
	InteriorCost     float64 `json:"interiorCost"`
	EquipmentCost    float64 `json:"equipmentCost"`
	InitialStockCost float64 `json:"initialStockCost"`
	OtherInitialCost float64 `json:"otherInitialCost"`

	StaffCount           int                `json:"staffCount"`
	DailyHours           float64            `json:"dailyHours"`
	FrequentWait         bool               `json:"frequentWait"`
	ComplaintFrequency   ComplaintFrequency `json:"complaintFrequency"`
	RevenueConcentration float64            `json:"revenueConcentration"`
}

// HasSpecialty reports whether s is part of the profile's specialty set.
func (p ClinicProfile) HasSpecialty(s Specialty) bool {
	for _, v := range p.Specialties {
		if v == s {
			return true
		}
	}
	return false
}

// InitialInvestment sums the one-time opening costs.
func (p ClinicProfile) InitialInvestment() float64 {
	return p.DepositAmount + p.KeyMoney + p.InteriorCost +
		p.EquipmentCost + p.InitialStockCost + p.OtherInitialCost
}

// FixedCost is rent, labor and other fixed cost per month.
func (p ClinicProfile) FixedCost() float64 {
	return p.MonthlyRent + p.LaborCost + p.OtherFixedCost
}

// VariableCostPerPatient spreads the variable cost estimate over the
// monthly visits, or returns 0 when there are none.
func (p ClinicProfile) VariableCostPerPatient() float64 {
	if p.MonthlyPatients <= 0 {
		return 0
	}
	return p.VariableCostEstimate / float64(p.MonthlyPatients)
}
