package model

import "time"

// KYCStatus is the identity-verification state gating rental checkout.
type KYCStatus string

const (
	KYCNotSubmitted     KYCStatus = "not_submitted"
	KYCPending          KYCStatus = "pending"
	KYCApproved         KYCStatus = "approved"
	KYCRejected         KYCStatus = "rejected"
	KYCReuploadRequired KYCStatus = "reupload_required"
)

// KYCRecord tracks a customer's identity-verification workflow. Submission
// is customer-driven; review is administrator-driven.
type KYCRecord struct {
	Status          KYCStatus  `json:"status"`
	DocumentRefs    []string   `json:"documentRefs,omitempty"`
	SubmittedAt     *time.Time `json:"submittedAt,omitempty"`
	VerifiedAt      *time.Time `json:"verifiedAt,omitempty"`
	RejectionReason string     `json:"rejectionReason,omitempty"`
}

// CanResubmit reports whether the customer may submit documents again.
func (k *KYCRecord) CanResubmit() bool {
	return k.Status == KYCNotSubmitted || k.Status == KYCRejected || k.Status == KYCReuploadRequired
}
