package registry

import (
	"github.com/joseph-ayodele/docsplit/constants"
)

// DefaultDefinitions is the built-in loan-package taxonomy. Promissory notes
// keep a short phrase list so a single "promissory note" mention clears the
// classifier threshold on its own.
func DefaultDefinitions() []Definition {
	return []Definition{
		{
			TypeID:   constants.PromissoryNote,
			Category: constants.CategoryLoan,
			Title:    "Promissory Note",
			Patterns: []string{
				"promissory note",
				"promise to pay",
				"loan note",
				"for value received",
			},
			ExtractionFields: []string{"principal_amount", "interest_rate", "maturity_date", "borrower_name"},
		},
		{
			TypeID:   constants.DeedOfTrust,
			Category: constants.CategoryLegal,
			Title:    "Deed of Trust",
			Patterns: []string{
				"deed of trust",
				"security instrument",
				"mortgage deed",
				"grants and conveys",
				"power of sale",
				"substitution of trustee",
			},
			ExtractionFields: []string{"property_address", "legal_description", "borrower_name", "trustee_name"},
		},
		{
			TypeID:   constants.CreditReport,
			Category: constants.CategoryFinancial,
			Title:    "Credit Report",
			Patterns: []string{
				"credit report",
				"credit score",
				"fico",
				"transunion",
				"experian",
				"equifax",
				"inquiries",
				"payment history",
			},
			ExtractionFields: []string{"credit_score", "borrower_name", "report_date"},
		},
		{
			TypeID:   constants.ClosingDisclosure,
			Category: constants.CategoryFinancial,
			Title:    "Closing Disclosure",
			Patterns: []string{
				"closing disclosure",
				"settlement statement",
				"closing statement",
				"loan terms",
				"projected payments",
				"closing cost details",
			},
			ExtractionFields: []string{"loan_amount", "interest_rate", "monthly_payment", "closing_costs"},
		},
		{
			TypeID:   constants.PropertyAppraisal,
			Category: constants.CategoryProperty,
			Title:    "Property Appraisal",
			Patterns: []string{
				"appraisal report",
				"property valuation",
				"market value",
				"comparable sales",
				"subject property",
				"appraised value",
			},
			ExtractionFields: []string{"property_value", "property_address", "appraisal_date", "appraiser_name"},
		},
		{
			TypeID:   constants.IncomeVerification,
			Category: constants.CategoryFinancial,
			Title:    "Income Verification",
			Patterns: []string{
				"income verification",
				"employment verification",
				"pay stub",
				"w-2",
				"tax return",
				"profit and loss",
				"bank statement",
			},
			ExtractionFields: []string{"borrower_name", "income_amount", "employer_name", "verification_date"},
		},
		{
			TypeID:   constants.InsurancePolicy,
			Category: constants.CategoryLegal,
			Title:    "Insurance Policy",
			Patterns: []string{
				"insurance policy",
				"hazard insurance",
				"property insurance",
				"coverage amount",
				"policy number",
				"premium amount",
			},
			ExtractionFields: []string{"policy_number", "coverage_amount", "premium_amount", "effective_date"},
		},
		{
			TypeID:   constants.PurchaseAgreement,
			Category: constants.CategoryLegal,
			Title:    "Purchase Agreement",
			Patterns: []string{
				"purchase agreement",
				"purchase contract",
				"real estate contract",
				"offer to purchase",
				"buyer and seller",
				"purchase price",
			},
			ExtractionFields: []string{"purchase_price", "property_address", "buyer_name", "seller_name", "closing_date"},
		},
		{
			TypeID:   constants.LoanAgreement,
			Category: constants.CategoryLoan,
			Title:    "Loan Agreement",
			Patterns: []string{
				"loan agreement",
				"credit agreement",
				"financing agreement",
			},
			ExtractionFields: []string{"loan_amount", "interest_rate", "borrower_name", "maturity_date"},
		},
		{
			TypeID:   constants.TitleReport,
			Category: constants.CategoryLegal,
			Title:    "Title Report",
			Patterns: []string{
				"title report",
				"title commitment",
				"title insurance",
			},
			ExtractionFields: []string{"property_address", "legal_description", "effective_date"},
		},
		{
			TypeID:   constants.EscrowAgreement,
			Category: constants.CategoryFinancial,
			Title:    "Escrow Agreement",
			Patterns: []string{
				"escrow agreement",
				"escrow instructions",
				"escrow letter",
			},
			ExtractionFields: []string{"closing_date", "buyer_name", "seller_name"},
		},
	}
}

// Default returns a registry built from DefaultDefinitions.
func Default() *Registry {
	return MustNew(DefaultDefinitions())
}
