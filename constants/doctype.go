package constants

import "strings"

// DocType identifies a document type in the taxonomy. Only the values declared
// below are valid; anything read from outside goes through ParseDocType.
type DocType string

const (
	PromissoryNote     DocType = "promissory_note"
	DeedOfTrust        DocType = "deed_of_trust"
	CreditReport       DocType = "credit_report"
	ClosingDisclosure  DocType = "closing_disclosure"
	PropertyAppraisal  DocType = "property_appraisal"
	IncomeVerification DocType = "income_verification"
	InsurancePolicy    DocType = "insurance_policy"
	PurchaseAgreement  DocType = "purchase_agreement"
	LoanAgreement      DocType = "loan_agreement"
	TitleReport        DocType = "title_report"
	EscrowAgreement    DocType = "escrow_agreement"

	// GenericDocument is the classifier fallback when no type is confident enough.
	GenericDocument DocType = "generic_document"
	// GeneralDocument is the boundary fallback when no page triggered a type.
	GeneralDocument DocType = "general_document"
)

var allDocTypes = []DocType{
	PromissoryNote,
	DeedOfTrust,
	CreditReport,
	ClosingDisclosure,
	PropertyAppraisal,
	IncomeVerification,
	InsurancePolicy,
	PurchaseAgreement,
	LoanAgreement,
	TitleReport,
	EscrowAgreement,
	GenericDocument,
	GeneralDocument,
}

// fallbackTitles covers the two types that never appear in a registry.
var fallbackTitles = map[DocType]string{
	GenericDocument: "Unclassified Document",
	GeneralDocument: "General Document",
}

func DocTypesAsStringSlice() []string {
	result := make([]string, len(allDocTypes))
	for i, dt := range allDocTypes {
		result[i] = string(dt)
	}
	return result
}

// ParseDocType returns the DocType for s, or ("", false) if s is not a known type.
func ParseDocType(s string) (DocType, bool) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	for _, dt := range allDocTypes {
		if normalized == string(dt) {
			return dt, true
		}
	}
	return "", false
}

// IsFallback reports whether dt is one of the catch-all types.
func (dt DocType) IsFallback() bool {
	_, ok := fallbackTitles[dt]
	return ok
}

// FallbackTitle returns the display title for a catch-all type.
func (dt DocType) FallbackTitle() string {
	return fallbackTitles[dt]
}
