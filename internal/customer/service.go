package customer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/fieldwork/internal/apperr"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=customer
type Repository interface {
	CreateCustomer(ctx context.Context, c *Customer) error
	GetCustomer(ctx context.Context, id uuid.UUID) (*Customer, error)
	ListCustomers(ctx context.Context) ([]*Customer, error)
	CustomerExists(ctx context.Context, id uuid.UUID) (bool, error)
	EmailExists(ctx context.Context, email string) (bool, error)

	BeginImport(ctx context.Context) (ImportTx, error)
}

type ImportTx interface {
	ExistingEmails(ctx context.Context, emails []string) (map[string]bool, error)
	CreateCustomers(ctx context.Context, cs []*Customer) error
	Commit() error
	Rollback() error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	Name    string `validate:"required"`
	Phone   string `validate:"required"`
	Email   string `validate:"required,email"`
	Address string `validate:"required"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Normalize trims surrounding whitespace from every field.
func (p CreateParams) Normalize() CreateParams {
	return CreateParams{
		Name:    strings.TrimSpace(p.Name),
		Phone:   strings.TrimSpace(p.Phone),
		Email:   strings.TrimSpace(p.Email),
		Address: strings.TrimSpace(p.Address),
	}
}

func (p CreateParams) Validate() error {
	err := validate.Struct(p)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return fmt.Errorf("validating customer: %w", err)
	}

	fe := verrs[0]
	if fe.Tag() == "email" {
		return apperr.Validation("Invalid email")
	}

	return apperr.Validation("%s is required", fe.Field())
}

func (s *Service) Register(ctx context.Context, params CreateParams) (*Customer, error) {
	params = params.Normalize()
	if err := params.Validate(); err != nil {
		return nil, err
	}

	taken, err := s.repo.EmailExists(ctx, params.Email)
	if err != nil {
		return nil, err
	}

	if taken {
		return nil, ErrEmailTaken
	}

	c := &Customer{
		Name:    params.Name,
		Phone:   params.Phone,
		Email:   params.Email,
		Address: params.Address,
	}
	if err := s.repo.CreateCustomer(ctx, c); err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "customer registered", "customer_id", c.ID)

	return c, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Customer, error) {
	return s.repo.GetCustomer(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*Customer, error) {
	return s.repo.ListCustomers(ctx)
}

func (s *Service) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	return s.repo.CustomerExists(ctx, id)
}

type ImportResult struct {
	Created []*Customer
	Skipped []Skipped
}

type Skipped struct {
	Params CreateParams
	Reason string
}

// ImportBatch registers every valid row in one transaction. Rows that are
// invalid, repeat an earlier email in the batch, or match an existing
// customer are skipped.
func (s *Service) ImportBatch(ctx context.Context, params []CreateParams) (*ImportResult, error) {
	result := &ImportResult{}
	if len(params) == 0 {
		return result, nil
	}

	var candidates []CreateParams

	seen := make(map[string]bool, len(params))

	for _, p := range params {
		p = p.Normalize()
		if err := p.Validate(); err != nil {
			result.Skipped = append(result.Skipped, Skipped{Params: p, Reason: err.Error()})
			continue
		}

		if seen[p.Email] {
			result.Skipped = append(result.Skipped, Skipped{Params: p, Reason: "duplicate email in file"})
			continue
		}

		seen[p.Email] = true
		candidates = append(candidates, p)
	}

	if len(candidates) == 0 {
		return result, nil
	}

	itx, err := s.repo.BeginImport(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin import: %w", err)
	}
	defer itx.Rollback()

	emails := make([]string, len(candidates))
	for i, p := range candidates {
		emails[i] = p.Email
	}

	existing, err := itx.ExistingEmails(ctx, emails)
	if err != nil {
		return nil, fmt.Errorf("find existing emails: %w", err)
	}

	var toCreate []*Customer

	for _, p := range candidates {
		if existing[p.Email] {
			result.Skipped = append(result.Skipped, Skipped{Params: p, Reason: ErrEmailTaken.Message})
			continue
		}

		toCreate = append(toCreate, &Customer{
			Name:    p.Name,
			Phone:   p.Phone,
			Email:   p.Email,
			Address: p.Address,
		})
	}

	if len(toCreate) > 0 {
		if err := itx.CreateCustomers(ctx, toCreate); err != nil {
			return nil, fmt.Errorf("create customers: %w", err)
		}
	}

	if err := itx.Commit(); err != nil {
		return nil, fmt.Errorf("commit import: %w", err)
	}

	result.Created = toCreate

	slog.InfoContext(ctx, "customers imported", "created", len(result.Created), "skipped", len(result.Skipped))

	return result, nil
}
