package technician

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=technician
type Repository interface {
	CreateTechnician(ctx context.Context, t *Technician) error
	GetTechnician(ctx context.Context, id uuid.UUID) (*Technician, error)
	ListTechnicians(ctx context.Context) ([]*Technician, error)
	ListSlots(ctx context.Context, technicianID uuid.UUID) ([]Slot, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, name string) (*Technician, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}

	t := &Technician{Name: name}
	if err := s.repo.CreateTechnician(ctx, t); err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "technician created", "technician_id", t.ID)

	return t, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Technician, error) {
	return s.repo.GetTechnician(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*Technician, error) {
	return s.repo.ListTechnicians(ctx)
}

// Schedule returns the technician with their appointments ordered by start
// time.
func (s *Service) Schedule(ctx context.Context, id uuid.UUID) (*Technician, []Slot, error) {
	t, err := s.repo.GetTechnician(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	slots, err := s.repo.ListSlots(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	return t, slots, nil
}
