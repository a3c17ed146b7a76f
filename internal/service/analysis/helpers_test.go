package analysis

import (
	"time"

	"github.com/seu-repo/clinic-advisor/internal/domain"
)

// sampleProfile is a healthy established clinic: 15M monthly revenue,
// 27% margin and a 20% rent ratio.
func sampleProfile() domain.ClinicProfile {
	return domain.ClinicProfile{
		ID:                   "clinic-1",
		CreatedAt:            time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC),
		UpdatedAt:            time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC),
		OpeningStatus:        domain.OpeningOverThree,
		RegionCity:           "서울 마포구",
		RegionDong:           "합정동",
		BuildingType:         domain.BuildingMedical,
		Specialties:          []domain.Specialty{domain.SpecialtyPain, domain.SpecialtyHerbal},
		PatientGroup:         domain.PatientMixed,
		AvgRevenuePerPatient: 50000,
		RevisitRange:         domain.Revisit50To70,
		MonthlyPatients:      300,
		NonInsuranceRatio:    40,
		MonthlyRent:          3_000_000,
		LaborCost:            5_000_000,
		OtherFixedCost:       1_000_000,
		VariableCostEstimate: 2_000_000,
		IncludesOwnerSalary:  true,
		DepositAmount:        30_000_000,
		InteriorCost:         40_000_000,
		EquipmentCost:        20_000_000,
		StaffCount:           5,
		DailyHours:           9,
		ComplaintFrequency:   domain.ComplaintsRare,
		RevenueConcentration: 30,
	}
}

func withProfile(mut func(p *domain.ClinicProfile)) domain.ClinicProfile {
	p := sampleProfile()
	mut(&p)
	return p
}
