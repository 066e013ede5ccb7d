// internal/greenloan/models.go
package greenloan

// Bank is one recommended lender in an analysis result. The rate and
// terms arrive as display strings, not numbers.
type Bank struct {
	Name    string `json:"name"`
	Rate    string `json:"rate"`
	Terms   string `json:"terms"`
	Special string `json:"special"`
}

// AnalysisResult is the eligibility verdict. Every field except the
// availability flag is optional; absence suppresses the matching view
// section.
type AnalysisResult struct {
	LoanAvailable     bool     `json:"loan_available"`
	LoanType          string   `json:"loan_type,omitempty"`
	InterestRate      *float64 `json:"interest_rate,omitempty"`
	MaxLoanAmount     *float64 `json:"max_loan_amount,omitempty"`
	LoanTermYears     *float64 `json:"loan_term_years,omitempty"`
	MonthlyPayment    *float64 `json:"monthly_payment,omitempty"`
	EligibilityReason string   `json:"eligibility_reason,omitempty"`
	RecommendedBanks  []Bank   `json:"recommended_banks,omitempty"`
	Documentation     []string `json:"documentation,omitempty"`
	ApprovalTips      []string `json:"approval_tips,omitempty"`
	EcoImpact         string   `json:"eco_impact,omitempty"`
	DetailedAnalysis  string   `json:"detailed_analysis,omitempty"`
}

// ExtractedFinancialData is what the OCR side pulled out of the
// payslip. Only the salary drives the charts.
type ExtractedFinancialData struct {
	EmployeeName  string   `json:"employee_name,omitempty"`
	EmployeeID    string   `json:"employee_id,omitempty"`
	MonthlySalary *float64 `json:"monthly_salary,omitempty"`
	CompanyName   string   `json:"company_name,omitempty"`
	Designation   string   `json:"designation,omitempty"`
}

type extractResponse struct {
	Success       bool   `json:"success"`
	ExtractedText string `json:"extracted_text"`
	Error         string `json:"error"`
}

type analyzeResponse struct {
	Success       bool                    `json:"success"`
	Analysis      *AnalysisResult         `json:"analysis"`
	ExtractedData *ExtractedFinancialData `json:"extracted_data"`
	Error         string                  `json:"error"`
}
