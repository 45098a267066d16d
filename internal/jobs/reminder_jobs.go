package jobs

import (
	"context"
	"time"

	"medishare-backend/internal/logger"
)

// pendingReminderAge is how long an order may sit pending before its owner
// gets nudged.
const pendingReminderAge = 24 * time.Hour

// SendPendingOrderReminders emails owners about rental requests that have
// been waiting for a decision for more than a day.
func (jr *JobRunner) SendPendingOrderReminders() {
	jr.runWithRecovery("SendPendingOrderReminders", func() {
		ctx := context.Background()
		cutoff := time.Now().Add(-pendingReminderAge)

		orders, err := jr.store.ListPendingOlderThan(ctx, cutoff)
		if err != nil {
			logger.Error("failed to list stale pending orders", "error", err)
			return
		}

		count := 0
		for i := range orders {
			order := &orders[i]
			owner, err := jr.store.UserRepository.GetByID(ctx, order.OwnerID)
			if err != nil {
				logger.Error("failed to load order owner", "order_id", order.ID, "owner_id", order.OwnerID, "error", err)
				continue
			}
			if err := jr.emailSvc.SendPendingOrderReminder(ctx, owner.Email, owner.FullName, order); err != nil {
				logger.Error("failed to send pending order reminder", "order_id", order.ID, "email", owner.Email, "error", err)
				continue
			}
			count++
		}
		logger.Info("pending order reminders sent", "count", count, "stale", len(orders))
	})
}
