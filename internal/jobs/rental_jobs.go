package jobs

import (
	"context"
	"time"

	"ecorent-backend/internal/logger"
	"ecorent-backend/internal/pricing"
)

// OverdueRentalSweep reports ACTIVE rentals whose agreed end date has
// passed without a return being registered. The sweep only surfaces them
// for operator follow-up; lifecycle transitions stay with the booking
// calendar (return or cancel through the API).
func (jr *JobRunner) OverdueRentalSweep() {
	jr.runWithRecovery("OverdueRentalSweep", func() {
		ctx := context.Background()

		overdue, err := jr.store.ListOverdue(ctx, time.Now())
		if err != nil {
			logger.Error("Failed to list overdue rentals", "error", err)
			return
		}

		for _, rt := range overdue {
			logger.Warn("Rental overdue",
				"rental_id", rt.ID,
				"client_dni", rt.ClientDNI,
				"equipment", rt.EquipmentName,
				"end_date", pricing.FormatDate(rt.EndDate),
				"payment_status", rt.PaymentStatus,
			)
		}

		logger.Info("Overdue rental sweep finished", "overdue_count", len(overdue))
	})
}
