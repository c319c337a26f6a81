package worker

import (
	"context"
	"database/sql"
	"log"
	"time"
)

// FollowUpWorker wakes up periodically and flags call attempts whose
// next_follow_up has come due, so they stop being re-announced on every
// tick. The call list itself ranks due follow-ups independently; this
// loop only drives the one-time notification.
type FollowUpWorker struct {
	db           *sql.DB
	tickInterval time.Duration
}

func NewFollowUpWorker(db *sql.DB) *FollowUpWorker {
	return &FollowUpWorker{
		db:           db,
		tickInterval: 1 * time.Minute,
	}
}

func (w *FollowUpWorker) Start(ctx context.Context) {
	log.Println("🕒 Follow-up worker started")

	ticker := time.NewTicker(w.tickInterval)
	defer ticker.Stop()

	w.flagDueFollowUps(ctx)

	for {
		select {
		case <-ctx.Done():
			log.Println("⚠️ Follow-up worker stopped")
			return
		case <-ticker.C:
			w.flagDueFollowUps(ctx)
		}
	}
}

func (w *FollowUpWorker) flagDueFollowUps(ctx context.Context) {
	query := `
		UPDATE call_attempts
		SET follow_up_notified = TRUE
		WHERE
			next_follow_up IS NOT NULL
			AND next_follow_up <= NOW()
			AND follow_up_notified = FALSE
			AND status IN ('NO_ANSWER', 'RESCHEDULED')
		RETURNING id, pipeline_entry_id, next_follow_up
	`

	rows, err := w.db.QueryContext(ctx, query)
	if err != nil {
		log.Printf("❌ Failed to scan due follow-ups: %v", err)
		return
	}
	defer rows.Close()

	dueCount := 0
	for rows.Next() {
		var attemptID, entryID string
		var due time.Time

		if err := rows.Scan(&attemptID, &entryID, &due); err != nil {
			log.Printf("⚠️ Failed to scan follow-up row: %v", err)
			continue
		}

		overdue := time.Since(due)
		log.Printf("📞 Follow-up due: entry=%s attempt=%s overdue=%s",
			entryID, attemptID, overdue.Round(time.Minute))
		dueCount++
	}

	if dueCount > 0 {
		log.Printf("🔔 %d follow-up(s) now due for today's call list", dueCount)
	}
}
