package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/fieldwork/internal/activity"
	"github.com/MrJamesThe3rd/fieldwork/internal/database"
)

// Append writes a to the job's log and fills in its ID and CreatedAt.
func Append(ctx context.Context, q database.Querier, a *activity.Activity) error {
	query := `
		INSERT INTO job_activities (job_id, action, details)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	if err := q.QueryRowContext(ctx, query, a.JobID, a.Action, a.Details).Scan(&a.ID, &a.CreatedAt); err != nil {
		return fmt.Errorf("appending activity: %w", err)
	}

	return nil
}

// ListForJob returns the job's activities in the order they were recorded.
func ListForJob(ctx context.Context, q database.Querier, jobID uuid.UUID) ([]activity.Activity, error) {
	query := `
		SELECT id, job_id, action, details, created_at
		FROM job_activities
		WHERE job_id = $1
		ORDER BY created_at ASC, id ASC
	`

	rows, err := q.QueryContext(ctx, query, jobID)
	if err != nil {
		return nil, fmt.Errorf("listing activities: %w", err)
	}
	defer rows.Close()

	activities := []activity.Activity{}

	for rows.Next() {
		var a activity.Activity
		if err := rows.Scan(&a.ID, &a.JobID, &a.Action, &a.Details, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning activity: %w", err)
		}

		activities = append(activities, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating activities: %w", err)
	}

	return activities, nil
}
