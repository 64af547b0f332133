// Command seed loads demo customers, a technician and jobs. Everything except
// the reset goes through the services, so activities are recorded as they
// would be for real requests.
package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/fieldwork/internal/config"
	"github.com/MrJamesThe3rd/fieldwork/internal/customer"
	customerStore "github.com/MrJamesThe3rd/fieldwork/internal/customer/store"
	"github.com/MrJamesThe3rd/fieldwork/internal/database"
	"github.com/MrJamesThe3rd/fieldwork/internal/database/migrations"
	"github.com/MrJamesThe3rd/fieldwork/internal/job"
	jobStore "github.com/MrJamesThe3rd/fieldwork/internal/job/store"
	"github.com/MrJamesThe3rd/fieldwork/internal/technician"
	technicianStore "github.com/MrJamesThe3rd/fieldwork/internal/technician/store"
)

const resetSQL = `TRUNCATE job_activities, payments, line_items, invoices, appointments, jobs, customers, technicians`

var customers = []customer.CreateParams{
	{Name: "John Smith", Phone: "555-0101", Email: "john.smith@example.com", Address: "123 Main St, Springfield, IL 62701"},
	{Name: "Sarah Johnson", Phone: "555-0102", Email: "sarah.j@example.com", Address: "456 Oak Ave, Springfield, IL 62702"},
	{Name: "Mike Williams", Phone: "555-0103", Email: "mike.w@example.com", Address: "789 Pine Rd, Springfield, IL 62703"},
}

var jobs = []struct {
	customer    int
	title       string
	description string
	schedule    bool
}{
	{customer: 0, title: "HVAC Repair", description: "Air conditioning unit not cooling properly"},
	{customer: 1, title: "Plumbing Installation", description: "Install new kitchen faucet"},
	{customer: 2, title: "Electrical Inspection", description: "Annual electrical system inspection", schedule: true},
}

func main() {
	reset := flag.Bool("reset", true, "delete existing data before seeding")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString(), cfg.PoolOptions())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := run(context.Background(), db, *reset); err != nil {
		slog.Error("seeding failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, db *sql.DB, reset bool) error {
	if err := migrations.Apply(ctx, db); err != nil {
		return fmt.Errorf("applying migrations: %w", err)
	}

	if reset {
		if _, err := db.ExecContext(ctx, resetSQL); err != nil {
			return fmt.Errorf("resetting data: %w", err)
		}
	}

	var (
		customerService   = customer.NewService(customerStore.New(db))
		technicianService = technician.NewService(technicianStore.New(db))
		jobService        = job.NewService(jobStore.New(db), customerService, technicianService)
	)

	created := make([]*customer.Customer, len(customers))

	for i, p := range customers {
		c, err := customerService.Register(ctx, p)
		if err != nil {
			return fmt.Errorf("registering %s: %w", p.Name, err)
		}

		created[i] = c
	}

	taylor, err := technicianService.Create(ctx, "Taylor")
	if err != nil {
		return fmt.Errorf("creating technician: %w", err)
	}

	tomorrow := time.Now().AddDate(0, 0, 1)
	start := time.Date(tomorrow.Year(), tomorrow.Month(), tomorrow.Day(), 10, 0, 0, 0, time.Local)

	var scheduled int

	for _, s := range jobs {
		j, err := jobService.Create(ctx, job.CreateParams{
			CustomerID:  created[s.customer].ID,
			Title:       s.title,
			Description: s.description,
		})
		if err != nil {
			return fmt.Errorf("creating job %q: %w", s.title, err)
		}

		if !s.schedule {
			continue
		}

		if _, err := jobService.CreateAppointment(ctx, j.ID, job.AppointmentParams{
			TechnicianID: taylor.ID,
			Start:        start,
			End:          start.Add(2 * time.Hour),
		}); err != nil {
			return fmt.Errorf("scheduling job %q: %w", s.title, err)
		}

		scheduled++
	}

	slog.Info("seed data created",
		"customers", len(created),
		"technician", taylor.Name,
		"jobs", len(jobs),
		"scheduled", scheduled,
	)

	return nil
}
