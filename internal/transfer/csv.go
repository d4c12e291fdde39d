// Package transfer implements the CSV interchange format, the only way
// records move in and out of the tool.
package transfer

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/go-openapi/strfmt"

	"subsqueeze/internal/entity"
	"subsqueeze/internal/recurrence"
	"subsqueeze/internal/usecase"
)

// Column order is fixed; importers match the header by lowercased name.
var header = []string{
	"Name", "Amount", "Currency", "Cadence", "Custom Days",
	"Next Renewal", "Category", "Status", "Reminder Enabled",
	"Reminder Days", "Notes", "Cancel URL", "Created At", "Updated At",
}

const (
	dateLayout      = "2006-01-02"
	timestampLayout = time.RFC3339
)

// Export writes the collection to w in the interchange format.
func Export(w io.Writer, subs []*entity.Subscription) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, s := range subs {
		row := []string{
			s.Name,
			strconv.FormatFloat(s.Amount, 'f', -1, 64),
			s.Currency,
			string(s.Cadence),
			strconv.Itoa(s.CustomDays),
			s.NextRenewal.Format(dateLayout),
			string(s.Category),
			string(s.Status),
			strconv.FormatBool(s.ReminderEnabled),
			strconv.Itoa(s.ReminderDays),
			s.Notes,
			s.CancelURL,
			s.CreatedAt.Format(timestampLayout),
			s.UpdatedAt.Format(timestampLayout),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// Result summarizes one import run. Errors holds one diagnostic per
// skipped or unreadable row; a bad row never aborts the run.
type Result struct {
	Imported int
	Skipped  int
	Errors   []string
}

// Importer writes imported rows straight to the record store, bypassing
// data-entry validation: the defaulting rules below deliberately admit
// values (like a zero amount) the entry form would reject.
type Importer struct {
	Sr usecase.SubscriptionRepository
	Er usecase.EventRepository
}

func NewImporter(sr usecase.SubscriptionRepository, er usecase.EventRepository) *Importer {
	return &Importer{Sr: sr, Er: er}
}

// Import reads the interchange format from r. Rows missing a name are
// skipped with a diagnostic, names already present (case-insensitively)
// are skipped, unrecognized enum values fall back to their defaults, and
// unparseable numbers become 0. Each imported record gets a created
// event.
func (imp *Importer) Import(ctx context.Context, r io.Reader, now time.Time) (*Result, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	head, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	cols := map[string]int{}
	for i, name := range head {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	if _, ok := cols["name"]; !ok {
		return nil, fmt.Errorf("csv header has no name column")
	}

	existing, err := imp.Sr.ListSubs(ctx)
	if err != nil {
		return nil, err
	}
	taken := map[string]bool{}
	for _, s := range existing {
		taken[strings.ToLower(s.Name)] = true
	}

	res := &Result{}
	for line := 2; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			res.Skipped++
			res.Errors = append(res.Errors, fmt.Sprintf("row %d: %v", line, err))
			continue
		}

		field := func(name string) string {
			i, ok := cols[name]
			if !ok || i >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[i])
		}

		name := field("name")
		if name == "" {
			res.Skipped++
			res.Errors = append(res.Errors, fmt.Sprintf("row %d: missing name", line))
			continue
		}
		if taken[strings.ToLower(name)] {
			res.Skipped++
			res.Errors = append(res.Errors, fmt.Sprintf("row %d: duplicate name %q", line, name))
			continue
		}

		sub := &entity.Subscription{
			Name:            name,
			Amount:          parseFloat(field("amount")),
			Currency:        strings.ToUpper(field("currency")),
			Cadence:         entity.ParseCadence(field("cadence")),
			CustomDays:      parseInt(field("custom days")),
			NextRenewal:     parseDate(field("next renewal"), now),
			Category:        entity.ParseCategory(field("category")),
			Status:          entity.ParseStatus(field("status")),
			ReminderEnabled: parseBool(field("reminder enabled")),
			ReminderDays:    parseInt(field("reminder days")),
			Notes:           field("notes"),
			CancelURL:       field("cancel url"),
			CreatedAt:       parseTimestamp(field("created at"), now),
			UpdatedAt:       parseTimestamp(field("updated at"), now),
		}

		saved, err := imp.Sr.SaveSub(ctx, sub)
		if err != nil {
			res.Skipped++
			res.Errors = append(res.Errors, fmt.Sprintf("row %d: save %q: %v", line, name, err))
			continue
		}
		if err := imp.appendCreated(ctx, saved); err != nil {
			res.Errors = append(res.Errors, fmt.Sprintf("row %d: event for %q: %v", line, name, err))
		}

		taken[strings.ToLower(name)] = true
		res.Imported++
	}
	return res, nil
}

func (imp *Importer) appendCreated(ctx context.Context, sub *entity.Subscription) error {
	e, err := entity.NewEvent(sub.ID, entity.EventCreated, entity.CreatedPayload{Subscription: *sub})
	if err != nil {
		return err
	}
	_, err = imp.Er.AppendEvent(ctx, e)
	return err
}

func parseFloat(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

func parseInt(s string) int {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return v
}

func parseBool(s string) bool {
	switch strings.ToLower(s) {
	case "true", "yes", "1":
		return true
	}
	return false
}

// parseDate accepts ISO-8601 calendar days; anything else becomes today.
func parseDate(s string, now time.Time) time.Time {
	var d strfmt.Date
	if err := d.UnmarshalText([]byte(s)); err != nil {
		return recurrence.Day(now)
	}
	return recurrence.Day(time.Time(d))
}

// parseTimestamp accepts RFC 3339, falling back to a bare calendar day,
// then to now.
func parseTimestamp(s string, now time.Time) time.Time {
	if t, err := time.Parse(timestampLayout, s); err == nil {
		return t.UTC()
	}
	var d strfmt.Date
	if err := d.UnmarshalText([]byte(s)); err == nil {
		return time.Time(d).UTC()
	}
	return now.UTC()
}
