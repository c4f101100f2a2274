package constants

// DocumentStatus is the review status stamped on split documents.
type DocumentStatus string

// Stable values (store these exact strings in DB).
const (
	DocumentStatusPending  DocumentStatus = "pending"  // awaiting review
	DocumentStatusReviewed DocumentStatus = "reviewed" // accepted by a reviewer
)

// PackageStatus is the canonical status for rows in packages.
type PackageStatus string

const (
	PackageStatusSplitOK  PackageStatus = "SPLIT_OK" // boundaries found and every split written
	PackageStatusDegraded PackageStatus = "DEGRADED" // text unavailable, whole-package fallback used
	PackageStatusFailed   PackageStatus = "FAILED"   // terminal failure
)
