package narrative

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/seu-repo/clinic-advisor/internal/domain"
	"github.com/seu-repo/clinic-advisor/internal/service/analysis"
)

// ProfileContext renders the profile and its derived financials as the
// labelled text block every prompt carries.
func ProfileContext(p domain.ClinicProfile) string {
	f := analysis.DeriveFinancials(p)

	specialties := make([]string, 0, len(p.Specialties))
	for _, s := range p.Specialties {
		specialties = append(specialties, string(s))
	}

	lines := []string{
		fmt.Sprintf("지역: %s %s, %s, %s", p.RegionCity, p.RegionDong, p.BuildingType, p.OpeningStatus),
		fmt.Sprintf("진료: %s / 환자군: %s", strings.Join(specialties, ","), p.PatientGroup),
		fmt.Sprintf("객단가 %s원, 월 %d명, 재진율 %s", analysis.FormatNumber(p.AvgRevenuePerPatient), p.MonthlyPatients, p.RevisitRange),
		fmt.Sprintf("비급여 %s%%, 월매출 %s원", num(p.NonInsuranceRatio), analysis.FormatNumber(f.MonthlyRevenue)),
		fmt.Sprintf("임대료 %s원(%d%%), 인건비 %s원(%d%%)",
			analysis.FormatNumber(p.MonthlyRent), f.RentRatio, analysis.FormatNumber(p.LaborCost), f.LaborRatio),
		fmt.Sprintf("이익률 %d%%, 손익분기 %d명/월", f.OperatingMargin, f.BreakEvenPatients),
		fmt.Sprintf("직원 %d명, %s시간/일, 매출집중 %s%%", p.StaffCount, num(p.DailyHours), num(p.RevenueConcentration)),
	}
	return strings.Join(lines, "\n")
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
