// Package analysis holds the deterministic clinic analyses. Every function
// here is pure: it reads a profile and returns a freshly built result.
package analysis

import (
	"math"

	"github.com/seu-repo/clinic-advisor/internal/domain"
)

// DeriveFinancials converts a profile into revenue, cost, ratio and
// break-even figures. Ratios are 0 when there is no revenue. The
// break-even count is 0 when there are no visits to measure variable
// cost against or when the contribution margin is not positive.
func DeriveFinancials(p domain.ClinicProfile) domain.Financials {
	monthlyRevenue := p.AvgRevenuePerPatient * float64(p.MonthlyPatients)
	totalFixedCost := p.FixedCost()
	totalCost := totalFixedCost + p.VariableCostEstimate
	operatingProfit := monthlyRevenue - totalCost

	f := domain.Financials{
		MonthlyRevenue:  monthlyRevenue,
		TotalFixedCost:  totalFixedCost,
		TotalCost:       totalCost,
		OperatingProfit: operatingProfit,
	}

	if monthlyRevenue > 0 {
		f.OperatingMargin = percentOf(operatingProfit, monthlyRevenue)
		f.RentRatio = percentOf(p.MonthlyRent, monthlyRevenue)
		f.LaborRatio = percentOf(p.LaborCost, monthlyRevenue)
	}

	contribution := p.AvgRevenuePerPatient - p.VariableCostPerPatient()
	if p.MonthlyPatients > 0 && contribution > 0 {
		f.BreakEvenPatients = toInt(math.Ceil(totalFixedCost / contribution))
	}

	return f
}

func percentOf(part, whole float64) int {
	if whole <= 0 {
		return 0
	}
	return toInt(round(part / whole * 100))
}
