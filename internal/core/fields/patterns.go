package fields

import "regexp"

// Patterns maps a field name to the ordered expressions tried for it. Each
// expression must have at least one capturing group; group 1 is the value.
type Patterns map[string][]*regexp.Regexp

var (
	moneyCapture = `\$?([\d,]+(?:\.\d{2})?)`
	dateCapture  = `([A-Za-z]+\s+\d{1,2},?\s+\d{4})`
)

func mustAll(exprs ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(exprs))
	for i, e := range exprs {
		out[i] = regexp.MustCompile(e)
	}
	return out
}

// DefaultPatterns returns the built-in expressions for every field named in
// the default registry.
func DefaultPatterns() Patterns {
	return Patterns{
		"principal_amount": mustAll(
			`(?i)principal(?:\s+amount)?(?:\s+of)?\s+`+moneyCapture,
			`(?i)(?:loan|note)(?:\s+amount)?(?:\s+of)?\s+`+moneyCapture,
		),
		"interest_rate": mustAll(
			`(?i)interest(?:\s+rate)?(?:\s+of)?[:\s]+(\d+(?:\.\d+)?)\s*%`,
			`(?i)(\d+(?:\.\d+)?)(?:\s*%)(?:\s+per\s+annum)?`,
		),
		"maturity_date": mustAll(
			`(?i)maturity\s+date\s+(?:of\s+)?`+dateCapture,
			`(?i)due\s+(?:on|by)?\s+`+dateCapture,
		),
		"borrower_name": mustAll(
			`(?i)borrower(?:'s|\(s\))?(?:\s+name)?[:\s]+([A-Za-z\s]+)(?:,|\.|and)`,
			`(?i)undersigned(?:,)?\s+([A-Za-z\s]+)(?:,|\.|and)`,
		),
		"property_address": mustAll(
			`(?i)property\s+(?:located\s+at|address)[:\s]+([0-9A-Za-z\s\.,]+)(?:\n|,|\.|;)`,
			`(?i)real\s+property\s+(?:located\s+at)?[:\s]+([0-9A-Za-z\s\.,]+)(?:\n|,|\.|;)`,
		),
		"legal_description": mustAll(
			`(?i)legal\s+description[:\s]+([A-Za-z0-9\s\.,;()\-"']+?)(?:\n\n|\n[A-Z])`,
		),
		"trustee_name": mustAll(
			`(?i)trustee[:\s]+([A-Za-z\s]+)(?:,|\.|and)`,
		),
		"credit_score": mustAll(
			`(?i)credit\s+score[:\s]+(\d{3})`,
			`(?i)fico[:\s]+(\d{3})`,
			`(?i)score[:\s]+(\d{3})`,
		),
		"report_date": mustAll(
			`(?i)report\s+date[:\s]+`+dateCapture,
			`(?i)date\s+(?:of\s+)?report[:\s]+`+dateCapture,
		),
		"loan_amount": mustAll(
			`(?i)loan\s+amount[:\s]+`+moneyCapture,
		),
		"monthly_payment": mustAll(
			`(?i)monthly\s+payment[:\s]+`+moneyCapture,
			`(?i)payment[:\s]+`+moneyCapture+`\s+(?:per\s+month|monthly)`,
		),
		"closing_costs": mustAll(
			`(?i)closing\s+costs?[:\s]+`+moneyCapture,
			`(?i)total\s+closing\s+costs?[:\s]+`+moneyCapture,
		),
		"property_value": mustAll(
			`(?i)(?:appraised|market)\s+value[:\s]+`+moneyCapture,
			`(?i)property\s+value[:\s]+`+moneyCapture,
		),
		"appraisal_date": mustAll(
			`(?i)appraisal\s+date[:\s]+`+dateCapture,
			`(?i)date\s+(?:of\s+)?appraisal[:\s]+`+dateCapture,
		),
		"appraiser_name": mustAll(
			`(?i)appraiser[:\s]+([A-Za-z\s]+)(?:,|\.|and)`,
			`(?i)appraiser(?:'s)?\s+name[:\s]+([A-Za-z\s]+)(?:,|\.|and)`,
		),
		"income_amount": mustAll(
			`(?i)(?:annual|monthly)\s+income[:\s]+`+moneyCapture,
			`(?i)income[:\s]+`+moneyCapture+`\s+(?:per\s+(?:year|month)|annually|monthly)`,
		),
		"employer_name": mustAll(
			`(?i)employer[:\s]+([A-Za-z\s\.,]+)(?:,|\.|and)`,
			`(?i)employer(?:'s)?\s+name[:\s]+([A-Za-z\s\.,]+)(?:,|\.|and)`,
		),
		"verification_date": mustAll(
			`(?i)verification\s+date[:\s]+`+dateCapture,
			`(?i)date\s+(?:of\s+)?verification[:\s]+`+dateCapture,
		),
		"policy_number": mustAll(
			`(?i)policy\s+(?:number|#)[:\s]+([A-Za-z0-9\-]+)`,
		),
		"coverage_amount": mustAll(
			`(?i)coverage(?:\s+amount)?[:\s]+`+moneyCapture,
		),
		"premium_amount": mustAll(
			`(?i)premium(?:\s+amount)?[:\s]+`+moneyCapture,
		),
		"effective_date": mustAll(
			`(?i)effective\s+date[:\s]+`+dateCapture,
		),
		"purchase_price": mustAll(
			`(?i)purchase\s+price[:\s]+`+moneyCapture,
			`(?i)(?:agreed|contract)\s+price[:\s]+`+moneyCapture,
		),
		"buyer_name": mustAll(
			`(?i)buyer(?:'s|\(s\))?(?:\s+name)?[:\s]+([A-Za-z\s]+)(?:,|\.|and)`,
			`(?i)purchaser(?:'s|\(s\))?(?:\s+name)?[:\s]+([A-Za-z\s]+)(?:,|\.|and)`,
		),
		"seller_name": mustAll(
			`(?i)seller(?:'s|\(s\))?(?:\s+name)?[:\s]+([A-Za-z\s]+)(?:,|\.|and)`,
		),
		"closing_date": mustAll(
			`(?i)closing\s+date[:\s]+`+dateCapture,
			`(?i)settlement\s+date[:\s]+`+dateCapture,
		),
	}
}
