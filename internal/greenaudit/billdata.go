// internal/greenaudit/billdata.go
package greenaudit

import (
	"regexp"
	"strconv"
	"strings"
)

// BillData holds figures recognized in Mauritius electricity bill text.
// Every field is optional; unrecognized values are simply absent.
type BillData struct {
	BillNumber      string   `json:"bill_number,omitempty"`
	AccountNumber   string   `json:"account_number,omitempty"`
	KWhConsumption  *float64 `json:"kwh_consumption,omitempty"`
	TotalAmount     *float64 `json:"total_amount,omitempty"`
	PreviousReading *float64 `json:"previous_reading,omitempty"`
	CurrentReading  *float64 `json:"current_reading,omitempty"`
}

var (
	consumptionRe = regexp.MustCompile(`(?i)(?:consumption|units|kwh)[:\s]*([0-9,]+\.?[0-9]*)`)
	amountRe      = regexp.MustCompile(`(?i)(?:total|amount due|payable)[:\s]*(?:rs|mur)?\s*([0-9,]+\.?[0-9]*)`)
	accountRe     = regexp.MustCompile(`(?i)(?:account|acc)[:\s#]*([0-9A-Z-]+)`)
	billRe        = regexp.MustCompile(`(?i)(?:bill|invoice)[:\s#]*([0-9A-Z-]+)`)
	previousRe    = regexp.MustCompile(`(?i)(?:previous|prev)[:\s]*([0-9,]+)`)
	currentRe     = regexp.MustCompile(`(?i)(?:current|present)[:\s]*([0-9,]+)`)
)

// ParseBillData scans free text for the usual bill fields.
func ParseBillData(text string) *BillData {
	data := &BillData{}
	data.KWhConsumption = matchAmount(consumptionRe, text)
	data.TotalAmount = matchAmount(amountRe, text)
	data.PreviousReading = matchAmount(previousRe, text)
	data.CurrentReading = matchAmount(currentRe, text)

	if m := accountRe.FindStringSubmatch(text); m != nil {
		data.AccountNumber = m[1]
	}
	if m := billRe.FindStringSubmatch(text); m != nil {
		data.BillNumber = m[1]
	}
	return data
}

func matchAmount(re *regexp.Regexp, text string) *float64 {
	m := re.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", ""), 64)
	if err != nil {
		return nil
	}
	return &v
}
