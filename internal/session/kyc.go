package session

import (
	"context"
	"time"

	"rent-kart/internal/model"
	"rent-kart/internal/notify"
)

// SubmitKYCDocuments submits identity documents for review: status moves
// to pending, the submission is timestamped, and any earlier rejection
// reason is cleared. Submission is only valid from not_submitted,
// rejected, or reupload_required.
func (s *Session) SubmitKYCDocuments(ctx context.Context, documentRefs []string) error {
	record := s.Record()
	if !record.KYC.CanResubmit() {
		return model.ErrInvalidTransition
	}

	now := time.Now()
	err := s.mutate(ctx, model.FieldKYC, func(record *model.CustomerRecord) {
		record.KYC.Status = model.KYCPending
		record.KYC.DocumentRefs = append([]string(nil), documentRefs...)
		record.KYC.SubmittedAt = &now
		record.KYC.RejectionReason = ""
	})
	if err != nil {
		return err
	}

	s.logger.Info().Int("documents", len(documentRefs)).Msg("KYC documents submitted")

	s.notifier.Notify(ctx, notify.Event{
		Type:       notify.EventKYCSubmitted,
		CustomerID: s.customerID,
	})

	return nil
}
