package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/fieldwork/internal/customer"
	"github.com/MrJamesThe3rd/fieldwork/internal/database"
)

const emailConstraint = "customers_email_key"

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) CreateCustomer(ctx context.Context, c *customer.Customer) error {
	return insertCustomer(ctx, s.db, c)
}

func insertCustomer(ctx context.Context, q database.Querier, c *customer.Customer) error {
	query := `
		INSERT INTO customers (name, phone, email, address, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING id, created_at
	`

	err := q.QueryRowContext(ctx, query, c.Name, c.Phone, c.Email, c.Address).Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		if database.IsUniqueViolation(err, emailConstraint) {
			return customer.ErrEmailTaken
		}

		return fmt.Errorf("creating customer: %w", err)
	}

	return nil
}

func (s *Store) GetCustomer(ctx context.Context, id uuid.UUID) (*customer.Customer, error) {
	query := `
		SELECT id, name, phone, email, address, created_at
		FROM customers
		WHERE id = $1
	`

	var c customer.Customer

	err := s.db.QueryRowContext(ctx, query, id).
		Scan(&c.ID, &c.Name, &c.Phone, &c.Email, &c.Address, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, customer.ErrNotFound
		}

		return nil, fmt.Errorf("getting customer: %w", err)
	}

	jobsQuery := `
		SELECT id, title, status, created_at
		FROM jobs
		WHERE customer_id = $1
		ORDER BY created_at DESC
	`

	rows, err := s.db.QueryContext(ctx, jobsQuery, id)
	if err != nil {
		return nil, fmt.Errorf("listing customer jobs: %w", err)
	}
	defer rows.Close()

	c.Jobs = []customer.JobSummary{}

	for rows.Next() {
		var j customer.JobSummary
		if err := rows.Scan(&j.ID, &j.Title, &j.Status, &j.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning customer job: %w", err)
		}

		c.Jobs = append(c.Jobs, j)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating customer jobs: %w", err)
	}

	c.JobCount = len(c.Jobs)

	return &c, nil
}

func (s *Store) ListCustomers(ctx context.Context) ([]*customer.Customer, error) {
	query := `
		SELECT c.id, c.name, c.phone, c.email, c.address, c.created_at, COUNT(j.id)
		FROM customers c
		LEFT JOIN jobs j ON j.customer_id = c.id
		GROUP BY c.id
		ORDER BY c.created_at DESC
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing customers: %w", err)
	}
	defer rows.Close()

	customers := []*customer.Customer{}

	for rows.Next() {
		var c customer.Customer
		if err := rows.Scan(&c.ID, &c.Name, &c.Phone, &c.Email, &c.Address, &c.CreatedAt, &c.JobCount); err != nil {
			return nil, fmt.Errorf("scanning customer: %w", err)
		}

		customers = append(customers, &c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating customers: %w", err)
	}

	return customers, nil
}

func (s *Store) CustomerExists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	if err := s.db.QueryRowContext(ctx,
		"SELECT EXISTS (SELECT 1 FROM customers WHERE id = $1)", id,
	).Scan(&exists); err != nil {
		return false, fmt.Errorf("checking customer: %w", err)
	}

	return exists, nil
}

func (s *Store) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	if err := s.db.QueryRowContext(ctx,
		"SELECT EXISTS (SELECT 1 FROM customers WHERE email = $1)", email,
	).Scan(&exists); err != nil {
		return false, fmt.Errorf("checking email: %w", err)
	}

	return exists, nil
}

// importLockKey serializes concurrent imports so that the existing-email
// check and the inserts see a stable customers table.
var importLockKey = database.AdvisoryKey("customer-import", uuid.Nil)

type importTx struct {
	tx *sql.Tx
}

func (s *Store) BeginImport(ctx context.Context) (customer.ImportTx, error) {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning import tx: %w", err)
	}

	if _, err := dbTx.ExecContext(ctx, "SELECT pg_advisory_xact_lock($1)", importLockKey); err != nil {
		dbTx.Rollback()
		return nil, fmt.Errorf("acquiring import lock: %w", err)
	}

	return &importTx{tx: dbTx}, nil
}

func (itx *importTx) Commit() error   { return itx.tx.Commit() }
func (itx *importTx) Rollback() error { return itx.tx.Rollback() }

func (itx *importTx) ExistingEmails(ctx context.Context, emails []string) (map[string]bool, error) {
	found := make(map[string]bool)
	if len(emails) == 0 {
		return found, nil
	}

	placeholders := make([]string, len(emails))
	args := make([]any, len(emails))

	for i, e := range emails {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = e
	}

	query := `SELECT email FROM customers WHERE email IN (` + strings.Join(placeholders, ", ") + `)`

	rows, err := itx.tx.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("finding existing emails: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var email string
		if err := rows.Scan(&email); err != nil {
			return nil, fmt.Errorf("scanning email: %w", err)
		}

		found[email] = true
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating emails: %w", err)
	}

	return found, nil
}

func (itx *importTx) CreateCustomers(ctx context.Context, cs []*customer.Customer) error {
	for _, c := range cs {
		if err := insertCustomer(ctx, itx.tx, c); err != nil {
			return err
		}
	}

	return nil
}
