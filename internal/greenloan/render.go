// internal/greenloan/render.go
package greenloan

import (
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// View is the declarative description of the results page. Sections
// with no backing data carry Visible=false and empty content; the UI
// layer performs no logic of its own.
type View struct {
	StatusBanner     StatusBanner `json:"status_banner"`
	MetricCards      []MetricCard `json:"metric_cards"`
	Banks            BankSection  `json:"banks"`
	Documentation    ListSection  `json:"documentation"`
	ApprovalTips     ListSection  `json:"approval_tips"`
	EcoImpact        TextSection  `json:"eco_impact"`
	DetailedAnalysis TextSection  `json:"detailed_analysis"`

	// ChartsScheduled is set when both chart inputs are present; the
	// charts themselves are built after a short settling delay.
	ChartsScheduled bool `json:"charts_scheduled"`
	ScrollToResults bool `json:"scroll_to_results"`
}

type StatusBanner struct {
	Approved bool   `json:"approved"`
	Text     string `json:"text"`
}

type MetricCard struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

type BankSection struct {
	Visible bool   `json:"visible"`
	Banks   []Bank `json:"banks,omitempty"`
}

type ListSection struct {
	Visible bool     `json:"visible"`
	Items   []string `json:"items,omitempty"`
}

type TextSection struct {
	Visible bool   `json:"visible"`
	Text    string `json:"text,omitempty"`
}

// Renderer projects analysis results into views.
type Renderer struct {
	currencyLabel string
	printer       *message.Printer
}

func NewRenderer(config *Config) *Renderer {
	return &Renderer{
		currencyLabel: config.CurrencyLabel,
		printer:       message.NewPrinter(language.English),
	}
}

// Render is a deterministic projection: same inputs, same view.
func (r *Renderer) Render(analysis *AnalysisResult, extracted *ExtractedFinancialData) *View {
	view := &View{
		StatusBanner:    banner(analysis.LoanAvailable),
		ScrollToResults: true,
	}

	if extracted != nil && extracted.MonthlySalary != nil {
		view.MetricCards = append(view.MetricCards, MetricCard{
			Label: "Monthly Salary",
			Value: r.Currency(*extracted.MonthlySalary),
		})
	}
	if analysis.MaxLoanAmount != nil {
		view.MetricCards = append(view.MetricCards, MetricCard{
			Label: "Max Loan Amount",
			Value: r.Currency(*analysis.MaxLoanAmount),
		})
	}
	if analysis.InterestRate != nil {
		view.MetricCards = append(view.MetricCards, MetricCard{
			Label: "Interest Rate",
			Value: formatNumber(*analysis.InterestRate) + "% p.a.",
		})
	}
	if analysis.MonthlyPayment != nil {
		view.MetricCards = append(view.MetricCards, MetricCard{
			Label: "Monthly Payment",
			Value: r.Currency(*analysis.MonthlyPayment),
		})
	}
	if analysis.LoanTermYears != nil {
		view.MetricCards = append(view.MetricCards, MetricCard{
			Label: "Loan Term",
			Value: formatNumber(*analysis.LoanTermYears) + " years",
		})
	}

	if len(analysis.RecommendedBanks) > 0 {
		view.Banks = BankSection{Visible: true, Banks: analysis.RecommendedBanks}
	}
	if len(analysis.Documentation) > 0 {
		view.Documentation = ListSection{Visible: true, Items: analysis.Documentation}
	}
	if len(analysis.ApprovalTips) > 0 {
		view.ApprovalTips = ListSection{Visible: true, Items: analysis.ApprovalTips}
	}
	if analysis.EcoImpact != "" {
		view.EcoImpact = TextSection{Visible: true, Text: analysis.EcoImpact}
	}
	if analysis.DetailedAnalysis != "" {
		view.DetailedAnalysis = TextSection{Visible: true, Text: analysis.DetailedAnalysis}
	}

	view.ChartsScheduled = extracted != nil && extracted.MonthlySalary != nil &&
		analysis.MaxLoanAmount != nil

	return view
}

// Currency formats an amount with thousands separators and the fixed
// currency label, e.g. "MUR 500,000".
func (r *Renderer) Currency(amount float64) string {
	return r.printer.Sprintf("%s %v", r.currencyLabel, number.Decimal(amount))
}

func banner(approved bool) StatusBanner {
	if approved {
		return StatusBanner{Approved: true, Text: "Loan Approved!"}
	}
	return StatusBanner{Approved: false, Text: "Under Review"}
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
