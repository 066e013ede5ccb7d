// internal/greenloan/charts.go
package greenloan

import "fmt"

// ChartSet is the declarative description of the five derived charts.
// The charting engine is a black box; it consumes these values as-is.
type ChartSet struct {
	Affordability *ProportionChart `json:"affordability"`
	BudgetImpact  *BarChart        `json:"budget_impact"`
	Repayment     *RepaymentChart  `json:"repayment"`
	Projects      *ProjectChart    `json:"projects"`
	Impact        *BarChart        `json:"impact"`
}

// ProportionChart depicts parts of a whole (a ring chart).
type ProportionChart struct {
	Labels []string  `json:"labels"`
	Values []float64 `json:"values"`
}

type BarChart struct {
	Labels []string  `json:"labels"`
	Values []float64 `json:"values"`
}

// RepaymentChart carries two parallel series over whole-year steps.
type RepaymentChart struct {
	Years              []string  `json:"years"`
	RemainingPrincipal []float64 `json:"remaining_principal"`
	YearlyInterest     []float64 `json:"yearly_interest"`
}

// ProjectChart compares a fixed project catalogue against the loan
// ceiling; equality counts as affordable.
type ProjectChart struct {
	Names      []string  `json:"names"`
	Costs      []float64 `json:"costs"`
	Affordable []bool    `json:"affordable"`
}

// ImpactEstimate holds the heuristic environmental figures behind the
// impact chart. The conversions are illustrative, not authoritative.
type ImpactEstimate struct {
	SolarCapacityKW float64 `json:"solar_capacity_kw"`
	CO2Tons         float64 `json:"co2_tons"`
	TreesEquivalent float64 `json:"trees_equivalent"`
	PlasticBottles  float64 `json:"plastic_bottles"`
}

// BuildCharts derives the full chart set. Charts need both a salary
// and a loan ceiling; with either missing there is nothing to draw.
func BuildCharts(cfg *ChartsConfig, analysis *AnalysisResult, extracted *ExtractedFinancialData) *ChartSet {
	if extracted == nil || extracted.MonthlySalary == nil ||
		analysis == nil || analysis.MaxLoanAmount == nil {
		return nil
	}

	salary := *extracted.MonthlySalary
	maxLoan := *analysis.MaxLoanAmount

	rate := cfg.DefaultRate
	if analysis.InterestRate != nil {
		rate = *analysis.InterestRate
	}
	termYears := cfg.DefaultTermYears
	if analysis.LoanTermYears != nil {
		termYears = *analysis.LoanTermYears
	}
	var monthlyPayment float64
	if analysis.MonthlyPayment != nil {
		monthlyPayment = *analysis.MonthlyPayment
	}

	return &ChartSet{
		Affordability: &ProportionChart{
			Labels: []string{"Available for Loan", "Already Used", "Reserve Buffer"},
			Values: []float64{maxLoan, salary * 2, salary * 1},
		},
		BudgetImpact: &BarChart{
			Labels: []string{"Monthly Salary", "After Loan Payment", "Recommended Minimum"},
			Values: []float64{salary, salary - monthlyPayment, salary * 0.6},
		},
		Repayment: buildRepayment(maxLoan, rate, termYears, monthlyPayment),
		Projects:  buildProjects(cfg, maxLoan),
		Impact:    buildImpactChart(EstimateImpact(cfg, maxLoan)),
	}
}

// buildRepayment simulates monthly amortization and samples the state
// at each year boundary.
func buildRepayment(principal, annualRate, termYears, monthlyPayment float64) *RepaymentChart {
	chart := &RepaymentChart{}
	monthlyRate := annualRate / 100 / 12
	remaining := principal

	for year := 0; year <= int(termYears); year++ {
		chart.Years = append(chart.Years, fmt.Sprintf("Year %d", year))
		chart.RemainingPrincipal = append(chart.RemainingPrincipal, remaining)

		yearlyInterest := 0.0
		for month := 0; month < 12 && remaining > 0; month++ {
			interest := remaining * monthlyRate
			yearlyInterest += interest
			remaining -= monthlyPayment - interest
		}
		chart.YearlyInterest = append(chart.YearlyInterest, yearlyInterest)
	}
	return chart
}

func buildProjects(cfg *ChartsConfig, maxLoan float64) *ProjectChart {
	chart := &ProjectChart{
		Names: cfg.ProjectNames,
		Costs: cfg.ProjectCosts,
	}
	for _, cost := range cfg.ProjectCosts {
		chart.Affordable = append(chart.Affordable, maxLoan >= cost)
	}
	return chart
}

// EstimateImpact converts the loan ceiling into heuristic
// environmental figures: installable capacity capped at the configured
// maximum, then CO2, trees and displaced bottles derived from it.
func EstimateImpact(cfg *ChartsConfig, maxLoan float64) *ImpactEstimate {
	capacity := maxLoan / cfg.CostPerKW
	if capacity > cfg.MaxCapacityKW {
		capacity = cfg.MaxCapacityKW
	}
	co2 := capacity * cfg.CO2TonsPerKWYear
	return &ImpactEstimate{
		SolarCapacityKW: capacity,
		CO2Tons:         co2,
		TreesEquivalent: co2 * cfg.TreesPerTonCO2,
		PlasticBottles:  co2 * cfg.BottlesPerTonCO2,
	}
}

// buildImpactChart scales the raw estimate the way the results page
// draws it: CO2 amplified tenfold so the bar stays visible next to the
// tree count, bottles shown in thousands.
func buildImpactChart(impact *ImpactEstimate) *BarChart {
	return &BarChart{
		Labels: []string{"CO2 Reduction (tons)", "Trees Equivalent", "Plastic Bottles Saved (000s)"},
		Values: []float64{impact.CO2Tons * 10, impact.TreesEquivalent, impact.PlasticBottles / 1000},
	}
}
