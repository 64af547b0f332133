// Package export renders invoice statements for customers and bookkeeping.
package export

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/fieldwork/internal/billing"
)

const (
	dateLayout  = "2006-01-02"
	summaryName = "summary.txt"
)

// Filter selects which invoices go into an archive.
type Filter struct {
	OpenOnly bool
}

// Item links an exported invoice to its file in the archive.
type Item struct {
	Invoice  *billing.Invoice
	FileName string
}

type Service struct {
	invoices *billing.Service
}

func NewService(invoices *billing.Service) *Service {
	return &Service{invoices: invoices}
}

// Statement writes the statement for one invoice to w.
func (s *Service) Statement(ctx context.Context, w io.Writer, invoiceID uuid.UUID) error {
	inv, err := s.invoices.Get(ctx, invoiceID)
	if err != nil {
		return err
	}

	return WriteStatement(w, inv)
}

// Archive writes a zip holding one statement per matching invoice plus a
// summary listing them all. It returns the exported items.
func (s *Service) Archive(ctx context.Context, w io.Writer, filter Filter) ([]Item, error) {
	invoices, err := s.invoices.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing invoices: %w", err)
	}

	zw := zip.NewWriter(w)

	items := make([]Item, 0, len(invoices))

	for _, inv := range invoices {
		if filter.OpenOnly && inv.Settled() {
			continue
		}

		item := Item{Invoice: inv, FileName: FileName(inv)}

		f, err := zw.CreateHeader(&zip.FileHeader{
			Name:     item.FileName,
			Method:   zip.Deflate,
			Modified: inv.CreatedAt,
		})
		if err != nil {
			return nil, fmt.Errorf("adding %s: %w", item.FileName, err)
		}

		if err := WriteStatement(f, inv); err != nil {
			return nil, fmt.Errorf("writing %s: %w", item.FileName, err)
		}

		items = append(items, item)
	}

	f, err := zw.Create(summaryName)
	if err != nil {
		return nil, fmt.Errorf("adding summary: %w", err)
	}

	if _, err := io.WriteString(f, Summary(items)); err != nil {
		return nil, fmt.Errorf("writing summary: %w", err)
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("closing archive: %w", err)
	}

	return items, nil
}

// WriteStatement renders inv as plain text.
func WriteStatement(w io.Writer, inv *billing.Invoice) error {
	var sb strings.Builder

	fmt.Fprintf(&sb, "INVOICE %s\n", shortID(inv.ID))
	fmt.Fprintf(&sb, "Date:     %s\n", inv.CreatedAt.Format(dateLayout))
	fmt.Fprintf(&sb, "Job:      %s\n", inv.JobTitle)
	fmt.Fprintf(&sb, "Customer: %s\n\n", inv.CustomerName)

	tw := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "Description\tQty\tUnit price\tAmount\t")

	for _, li := range inv.LineItems {
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t\n", li.Description, li.Quantity, li.UnitPrice, li.Total)
	}

	fmt.Fprintln(tw, "\t\t\t\t")
	fmt.Fprintf(tw, "\t\tSubtotal\t%s\t\n", inv.Subtotal)
	fmt.Fprintf(tw, "\t\tTax (%s%%)\t%s\t\n", inv.TaxRate.Shift(2).String(), inv.Tax)
	fmt.Fprintf(tw, "\t\tTotal\t%s\t\n", inv.Total)
	fmt.Fprintf(tw, "\t\tPaid\t%s\t\n", inv.Paid())
	fmt.Fprintf(tw, "\t\tBalance due\t%s\t\n", inv.Balance)

	if err := tw.Flush(); err != nil {
		return fmt.Errorf("formatting line items: %w", err)
	}

	if len(inv.Payments) > 0 {
		sb.WriteString("\nPayments\n")

		for _, p := range inv.Payments {
			fmt.Fprintf(&sb, "  %s  %-5s  %s\n", p.CreatedAt.Format(dateLayout), p.Method, p.Amount)
		}
	}

	if inv.Settled() {
		sb.WriteString("\nPAID IN FULL\n")
	}

	_, err := io.WriteString(w, sb.String())

	return err
}

// Summary lists exported invoices one per line.
func Summary(items []Item) string {
	var sb strings.Builder

	for _, item := range items {
		inv := item.Invoice
		fmt.Fprintf(&sb, "* %s | %s | %s | %s | balance %s | %s\n",
			inv.CreatedAt.Format(dateLayout), inv.JobTitle, inv.CustomerName, inv.Total, inv.Balance, item.FileName)
	}

	return sb.String()
}

// FileName is the archive entry name for inv: YYYYMMDD_Job_Title_<id>.txt.
func FileName(inv *billing.Invoice) string {
	safeTitle := strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-' || r == '_' {
			return r
		}

		return '_'
	}, inv.JobTitle)

	return fmt.Sprintf("%s_%s_%s.txt", inv.CreatedAt.Format("20060102"), safeTitle, shortID(inv.ID))
}

func shortID(id uuid.UUID) string {
	return id.String()[:8]
}
