package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/fieldwork/internal/technician"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) CreateTechnician(ctx context.Context, t *technician.Technician) error {
	query := `
		INSERT INTO technicians (name, created_at)
		VALUES ($1, NOW())
		RETURNING id, created_at
	`

	if err := s.db.QueryRowContext(ctx, query, t.Name).Scan(&t.ID, &t.CreatedAt); err != nil {
		return fmt.Errorf("creating technician: %w", err)
	}

	return nil
}

func (s *Store) GetTechnician(ctx context.Context, id uuid.UUID) (*technician.Technician, error) {
	query := `
		SELECT t.id, t.name, t.created_at, COUNT(a.id)
		FROM technicians t
		LEFT JOIN appointments a ON a.technician_id = t.id
		WHERE t.id = $1
		GROUP BY t.id
	`

	var t technician.Technician

	err := s.db.QueryRowContext(ctx, query, id).Scan(&t.ID, &t.Name, &t.CreatedAt, &t.AppointmentCount)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, technician.ErrNotFound
		}

		return nil, fmt.Errorf("getting technician: %w", err)
	}

	return &t, nil
}

func (s *Store) ListTechnicians(ctx context.Context) ([]*technician.Technician, error) {
	query := `
		SELECT t.id, t.name, t.created_at, COUNT(a.id)
		FROM technicians t
		LEFT JOIN appointments a ON a.technician_id = t.id
		GROUP BY t.id
		ORDER BY t.created_at DESC
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing technicians: %w", err)
	}
	defer rows.Close()

	techs := []*technician.Technician{}

	for rows.Next() {
		var t technician.Technician
		if err := rows.Scan(&t.ID, &t.Name, &t.CreatedAt, &t.AppointmentCount); err != nil {
			return nil, fmt.Errorf("scanning technician: %w", err)
		}

		techs = append(techs, &t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating technicians: %w", err)
	}

	return techs, nil
}

func (s *Store) ListSlots(ctx context.Context, technicianID uuid.UUID) ([]technician.Slot, error) {
	query := `
		SELECT a.id, a.job_id, j.title, j.status, a.start_time, a.end_time
		FROM appointments a
		JOIN jobs j ON j.id = a.job_id
		WHERE a.technician_id = $1
		ORDER BY a.start_time ASC
	`

	rows, err := s.db.QueryContext(ctx, query, technicianID)
	if err != nil {
		return nil, fmt.Errorf("listing technician schedule: %w", err)
	}
	defer rows.Close()

	slots := []technician.Slot{}

	for rows.Next() {
		var sl technician.Slot
		if err := rows.Scan(&sl.AppointmentID, &sl.JobID, &sl.JobTitle, &sl.JobStatus, &sl.Start, &sl.End); err != nil {
			return nil, fmt.Errorf("scanning slot: %w", err)
		}

		slots = append(slots, sl)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating slots: %w", err)
	}

	return slots, nil
}
