// Package timesheet expands resources, accounts and a date range into one
// authorisation sheet per day and shift.
package timesheet

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"gosheet/dataset"
	"gosheet/internal/timeutil"
)

// Columns is the data column order of every generated sheet.
var Columns = []string{
	"resource_pool", "ip", "name", "db_name", "db_type", "port",
	"from_account", "current_master_account", "apply_master_account",
	"start_time", "end_time",
}

// Slot is a shift within one calendar day. End hours never pass 24.
type Slot struct {
	Label     string
	StartHour int
	EndHour   int
}

var Slots = []Slot{
	{Label: "晨", StartHour: 0, EndHour: 8},
	{Label: "昼", StartHour: 8, EndHour: 16},
	{Label: "夜", StartHour: 16, EndHour: 24},
}

// Request holds the generation axes. Names, DBNames, DBTypes and Ports are
// optional and cycle over the resources.
type Request struct {
	Start          time.Time
	End            time.Time
	Resources      []string
	SubAccounts    []string
	MasterAccounts []string

	Names   []string
	DBNames []string
	DBTypes []string
	Ports   []string

	// MonthPrefix names sheets "2月1日晨" instead of "1日晨".
	MonthPrefix bool
}

type Plan struct {
	Days         int
	Sheets       int
	RowsPerSheet int
	TotalRows    int
}

func (r Request) Validate() error {
	var errs []error
	if timeutil.StartOfDay(r.End).Before(timeutil.StartOfDay(r.Start)) {
		errs = append(errs, fmt.Errorf("start date %s is after end date %s", r.Start.Format(timeutil.DateLayout), r.End.Format(timeutil.DateLayout)))
	}
	if len(r.Resources) == 0 {
		errs = append(errs, errors.New("at least one resource is required"))
	}
	if len(r.SubAccounts) == 0 {
		errs = append(errs, errors.New("at least one sub-account is required"))
	}
	if len(r.MasterAccounts) == 0 {
		errs = append(errs, errors.New("at least one master account is required"))
	}
	if !r.MonthPrefix {
		seen := make(map[int]bool)
		for _, day := range timeutil.Days(r.Start, r.End) {
			if seen[day.Day()] {
				errs = append(errs, errors.New("date range repeats a day of month; sheet names need the month prefix"))
				break
			}
			seen[day.Day()] = true
		}
	}
	return errors.Join(errs...)
}

func (r Request) Plan() Plan {
	days := len(timeutil.Days(r.Start, r.End))
	perSheet := len(r.Resources) * len(r.SubAccounts) * len(r.MasterAccounts)
	return Plan{
		Days:         days,
		Sheets:       days * len(Slots),
		RowsPerSheet: perSheet,
		TotalRows:    perSheet * days * len(Slots),
	}
}

// Sheet is one generated (day, slot) page.
type Sheet struct {
	Name string
	Day  time.Time
	Slot Slot
	Data *dataset.Dataset
}

type Generator struct {
	logger zerolog.Logger
}

func NewGenerator(logger zerolog.Logger) *Generator {
	return &Generator{logger: logger}
}

// Generate returns the sheets ordered by day, then slot.
func (g *Generator) Generate(req Request) ([]Sheet, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("invalid generation request: %w", err)
	}

	plan := req.Plan()
	g.logger.Info().
		Str("from", req.Start.Format(timeutil.DateLayout)).
		Str("to", req.End.Format(timeutil.DateLayout)).
		Int("days", plan.Days).
		Int("resources", len(req.Resources)).
		Int("sub_accounts", len(req.SubAccounts)).
		Int("master_accounts", len(req.MasterAccounts)).
		Int("rows_per_sheet", plan.RowsPerSheet).
		Int("total_rows", plan.TotalRows).
		Msg("generating timesheet")

	resources := make([]resource, len(req.Resources))
	for i, raw := range req.Resources {
		resources[i] = parseResource(raw)
	}

	sheets := make([]Sheet, 0, plan.Sheets)
	for _, day := range timeutil.Days(req.Start, req.End) {
		date := day.Format(timeutil.DateLayout)
		for _, slot := range Slots {
			start := fmt.Sprintf("%s %02d:00:00", date, slot.StartHour)
			end := fmt.Sprintf("%s %02d:00:00", date, slot.EndHour)

			rows := make([][]any, 0, plan.RowsPerSheet)
			for k, res := range resources {
				for _, sub := range req.SubAccounts {
					for _, master := range req.MasterAccounts {
						rows = append(rows, []any{
							res.pool, res.ip,
							cycle(req.Names, k), cycle(req.DBNames, k), cycle(req.DBTypes, k), cycle(req.Ports, k),
							sub, master, master,
							start, end,
						})
					}
				}
			}
			sheets = append(sheets, Sheet{
				Name: SheetName(day, slot, req.MonthPrefix),
				Day:  day,
				Slot: slot,
				Data: dataset.New(Columns, rows),
			})
		}
	}

	g.logger.Debug().Int("sheets", len(sheets)).Msg("timesheet generated")
	return sheets, nil
}

func SheetName(day time.Time, slot Slot, monthPrefix bool) string {
	if monthPrefix {
		return fmt.Sprintf("%d月%d日%s", int(day.Month()), day.Day(), slot.Label)
	}
	return fmt.Sprintf("%d日%s", day.Day(), slot.Label)
}

type resource struct {
	pool string
	ip   string
}

// parseResource takes the last whitespace-separated token as the IP and the
// rest as the pool name. A single token is a pool without an IP.
func parseResource(raw string) resource {
	parts := strings.Fields(raw)
	switch len(parts) {
	case 0:
		return resource{}
	case 1:
		return resource{pool: parts[0]}
	default:
		return resource{pool: strings.Join(parts[:len(parts)-1], " "), ip: parts[len(parts)-1]}
	}
}

func cycle(values []string, index int) string {
	if len(values) == 0 {
		return ""
	}
	return values[index%len(values)]
}
