package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seu-repo/clinic-advisor/internal/domain"
)

func TestSimulate_BaseScenarioFirstMonth(t *testing.T) {
	got := Simulate(sampleProfile())

	require.Equal(t, 90_000_000.0, got.InitialInvestment)
	require.Len(t, got.Scenarios, 3)

	base := got.Scenarios[1]
	assert.Equal(t, "기본", base.Label)
	assert.Equal(t, 3.0, base.GrowthRate)
	require.Len(t, base.Projections, SimulationMonths)

	first := base.Projections[0]
	assert.Equal(t, 1, first.Month)
	assert.Equal(t, 309, first.Patients)
	assert.Equal(t, 15_450_000.0, first.Revenue)
	assert.Equal(t, 11_060_000.0, first.Cost)
	assert.Equal(t, 4_390_000.0, first.Profit)
	assert.Equal(t, -85_610_000.0, first.CumulativeProfit)
}

func TestSimulate_Milestones(t *testing.T) {
	got := Simulate(sampleProfile())

	wantROI := []int{18, 13, 11}
	for i, sc := range got.Scenarios {
		require.NotNil(t, sc.BreakEvenMonth, sc.Label)
		require.NotNil(t, sc.ROIMonth, sc.Label)
		assert.Equal(t, 1, *sc.BreakEvenMonth, sc.Label)
		assert.Equal(t, wantROI[i], *sc.ROIMonth, sc.Label)
	}
	assert.Equal(t, domain.VerdictFit, got.Summary.Verdict)
	assert.Equal(t, "기본 시나리오(월 3% 성장) 기준, 13개월 차에 투자금 회수가 예상됩니다.", got.Summary.OneLiner)
	assert.Len(t, got.Summary.Actions, 3)
}

func TestSimulate_Invariants(t *testing.T) {
	profiles := []domain.ClinicProfile{
		sampleProfile(),
		withProfile(func(p *domain.ClinicProfile) { p.MonthlyPatients = 120; p.VariableCostEstimate = 0 }),
		withProfile(func(p *domain.ClinicProfile) { p.MonthlyPatients = 0 }),
		withProfile(func(p *domain.ClinicProfile) { p.KeyMoney = 500_000_000 }),
	}

	for _, p := range profiles {
		got := Simulate(p)
		for _, sc := range got.Scenarios {
			prev := -got.InitialInvestment
			positiveSeen := false
			for i, m := range sc.Projections {
				assert.Equal(t, i+1, m.Month)
				assert.InDelta(t, prev+m.Profit, m.CumulativeProfit, 1e-6, "%s month %d", sc.Label, m.Month)
				assert.Equal(t, m.Revenue-m.Cost, m.Profit)

				if positiveSeen {
					assert.GreaterOrEqual(t, m.CumulativeProfit, prev, "%s month %d", sc.Label, m.Month)
				}
				if m.Profit >= 0 {
					positiveSeen = true
				}
				prev = m.CumulativeProfit
			}

			assertFirst(t, sc.BreakEvenMonth, sc.Projections, func(m domain.MonthlyProjection) bool { return m.Profit >= 0 })
			assertFirst(t, sc.ROIMonth, sc.Projections, func(m domain.MonthlyProjection) bool { return m.CumulativeProfit >= 0 })
		}
	}
}

func assertFirst(t *testing.T, month *int, projections []domain.MonthlyProjection, hit func(domain.MonthlyProjection) bool) {
	t.Helper()
	for _, m := range projections {
		if hit(m) {
			require.NotNil(t, month)
			assert.Equal(t, m.Month, *month)
			return
		}
	}
	assert.Nil(t, month)
}

func TestSimulate_Verdicts(t *testing.T) {
	tests := []struct {
		name string
		mut  func(p *domain.ClinicProfile)
		want domain.Verdict
	}{
		{
			name: "late recovery needs caution",
			mut:  func(p *domain.ClinicProfile) { p.KeyMoney = 310_000_000 },
			want: domain.VerdictCaution,
		},
		{
			name: "unrecovered but small deficit needs caution",
			mut:  func(p *domain.ClinicProfile) { p.KeyMoney = 510_000_000 },
			want: domain.VerdictCaution,
		},
		{
			name: "never breaking even is not recommended",
			mut: func(p *domain.ClinicProfile) {
				p.MonthlyPatients = 100
				p.VariableCostEstimate = 0
				p.LaborCost = 16_000_000
			},
			want: domain.VerdictNotRecommended,
		},
		{
			name: "deep deficit at the horizon is not recommended",
			mut: func(p *domain.ClinicProfile) {
				p.MonthlyPatients = 120
				p.VariableCostEstimate = 0
				p.KeyMoney = 110_000_000
			},
			want: domain.VerdictNotRecommended,
		},
		{
			name: "shallow deficit at the horizon needs caution",
			mut: func(p *domain.ClinicProfile) {
				p.MonthlyPatients = 120
				p.VariableCostEstimate = 0
				p.KeyMoney = 10_000_000
			},
			want: domain.VerdictCaution,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Simulate(withProfile(tt.mut))

			assert.Equal(t, tt.want, got.Summary.Verdict)
		})
	}
}

func TestSimulate_NoROIMessage(t *testing.T) {
	p := withProfile(func(p *domain.ClinicProfile) { p.KeyMoney = 510_000_000 })

	got := Simulate(p)

	assert.Nil(t, got.Scenarios[1].ROIMonth)
	assert.Equal(t, "36개월 내 투자금 회수가 어려울 수 있습니다. 비용 구조 재검토가 필요합니다.", got.Summary.OneLiner)
}

func TestScenariosReturnsFreshSlice(t *testing.T) {
	first := Scenarios()
	first[1].Rate = 99

	assert.Equal(t, 3.0, Scenarios()[1].Rate)
	assert.Equal(t, 3.0, Simulate(sampleProfile()).Scenarios[1].GrowthRate)
}
