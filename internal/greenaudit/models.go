// internal/greenaudit/models.go
package greenaudit

import (
	"math"
	"time"
)

// Audit is one stored sustainability audit with the figures pulled out
// of the electricity bill text, where present.
type Audit struct {
	ID             int64     `json:"id"`
	AuditText      string    `json:"audit_text"`
	AnalysisResult string    `json:"analysis_result,omitempty"`
	BillNumber     string    `json:"bill_number,omitempty"`
	AccountNumber  string    `json:"account_number,omitempty"`
	KWhConsumption *float64  `json:"kwh_consumption,omitempty"`
	TotalAmount    *float64  `json:"total_amount,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// AverageDailyKWh derives daily consumption over the given billing
// period length, rounded to two decimals.
func (a *Audit) AverageDailyKWh(periodDays float64) float64 {
	if a.KWhConsumption == nil || periodDays <= 0 {
		return 0
	}
	return round2(*a.KWhConsumption / periodDays)
}

// CostPerKWh derives the effective tariff, rounded to two decimals.
func (a *Audit) CostPerKWh() float64 {
	if a.KWhConsumption == nil || a.TotalAmount == nil || *a.KWhConsumption <= 0 {
		return 0
	}
	return round2(*a.TotalAmount / *a.KWhConsumption)
}

// Summary aggregates the recent audits shown alongside the history.
type Summary struct {
	TotalKWh  float64 `json:"total_kwh"`
	TotalCost float64 `json:"total_cost"`
}

// AuditView is one history entry with its derived figures attached.
type AuditView struct {
	Audit
	AverageDaily float64 `json:"average_daily_kwh"`
	CostPerUnit  float64 `json:"cost_per_kwh"`
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
