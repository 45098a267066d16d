package jobs

import (
	"context"
	"time"

	"medishare-backend/internal/logger"
)

// digestWindow is how far back the weekly digest looks for new listings.
const digestWindow = 7 * 24 * time.Hour

// SendNewsletterDigest emails active subscribers a summary of equipment
// listed in the past week. Weeks with no new listings send nothing.
func (jr *JobRunner) SendNewsletterDigest() {
	jr.runWithRecovery("SendNewsletterDigest", func() {
		ctx := context.Background()

		equipment, err := jr.store.ListCreatedSince(ctx, time.Now().Add(-digestWindow))
		if err != nil {
			logger.Error("failed to list recent equipment", "error", err)
			return
		}
		if len(equipment) == 0 {
			logger.Info("no new equipment this week, skipping digest")
			return
		}

		subscribers, err := jr.store.ListActive(ctx)
		if err != nil {
			logger.Error("failed to list newsletter subscribers", "error", err)
			return
		}

		count := 0
		for _, sub := range subscribers {
			if err := jr.emailSvc.SendEquipmentDigest(ctx, sub.Email, equipment); err != nil {
				logger.Error("failed to send digest", "email", sub.Email, "error", err)
				continue
			}
			count++
		}
		logger.Info("newsletter digest sent", "subscribers", count, "listings", len(equipment))
	})
}
