// internal/greenloan/schema.go
package greenloan

import (
	"strings"

	stderrors "github.com/Nishal72/InnoMinds-Code4Good/internal/common/errors"

	"github.com/xeipuuv/gojsonschema"
)

// analysisSchema guards the analysis payload before it reaches the
// render step. Everything except the availability flag is optional, so
// the schema mostly pins down types.
const analysisSchema = `{
	"type": "object",
	"required": ["success"],
	"properties": {
		"success": {"type": "boolean"},
		"error": {"type": "string"},
		"analysis": {
			"type": "object",
			"required": ["loan_available"],
			"properties": {
				"loan_available": {"type": "boolean"},
				"loan_type": {"type": "string"},
				"interest_rate": {"type": "number", "minimum": 0},
				"max_loan_amount": {"type": "number", "minimum": 0},
				"loan_term_years": {"type": "number", "minimum": 0},
				"monthly_payment": {"type": "number", "minimum": 0},
				"eligibility_reason": {"type": "string"},
				"recommended_banks": {
					"type": "array",
					"items": {
						"type": "object",
						"required": ["name"],
						"properties": {
							"name": {"type": "string"},
							"rate": {"type": "string"},
							"terms": {"type": "string"},
							"special": {"type": "string"}
						}
					}
				},
				"documentation": {"type": "array", "items": {"type": "string"}},
				"approval_tips": {"type": "array", "items": {"type": "string"}},
				"eco_impact": {"type": "string"},
				"detailed_analysis": {"type": "string"}
			}
		},
		"extracted_data": {
			"type": "object",
			"properties": {
				"employee_name": {"type": "string"},
				"employee_id": {"type": "string"},
				"monthly_salary": {"type": "number", "minimum": 0},
				"company_name": {"type": "string"},
				"designation": {"type": "string"}
			}
		}
	}
}`

var analysisSchemaLoader = gojsonschema.NewStringLoader(analysisSchema)

func validateAnalysisPayload(raw []byte) error {
	result, err := gojsonschema.Validate(analysisSchemaLoader, gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return stderrors.NewAnalysisInvalidError(err.Error())
	}
	if result.Valid() {
		return nil
	}

	var problems []string
	for _, desc := range result.Errors() {
		problems = append(problems, desc.String())
	}
	return stderrors.NewAnalysisInvalidError(strings.Join(problems, "; "))
}
