// Package importer loads attendance and team production spreadsheets.
package importer

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
	"github.com/yukikurage/resource-dashboard/internal/logger"
	"github.com/yukikurage/resource-dashboard/internal/period"
	"github.com/yukikurage/resource-dashboard/internal/services"
)

// Column headers, matched case-insensitively.
const (
	ColResourceName    = "Resource Name"
	ColWorkingDays     = "Total No. Of working Days"
	ColPresentDays     = "Present Days"
	ColProjectResource = "resource_name"
	ColProjectName     = "project_name"
	ColYear            = "year"
	ColMonth           = "month"
	ColBillableDays    = "billable_days"
	ColNonBillableDays = "non_billable_days"
)

var ErrMissingColumn = errors.New("missing required column")

// RowError records a row that could not be imported. Row is 1-based and
// counts the header.
type RowError struct {
	Row int
	Err error
}

func (e RowError) Error() string {
	return fmt.Sprintf("row %d: %v", e.Row, e.Err)
}

// Result summarises an import run.
type Result struct {
	Created int
	Updated int
	Skipped int
	Errors  []RowError
}

// Importer writes spreadsheet rows through the services.
type Importer struct {
	resources *services.ResourceService
	projects  *services.ProjectService
	log       *logrus.Logger
}

func New(resources *services.ResourceService, projects *services.ProjectService) *Importer {
	return &Importer{
		resources: resources,
		projects:  projects,
		log:       logger.Get(),
	}
}

// ReadFile returns the rows of the first sheet of an xlsx file.
func ReadFile(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()
	return firstSheetRows(f)
}

// Read returns the rows of the first sheet of an xlsx stream.
func Read(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()
	return firstSheetRows(f)
}

func firstSheetRows(f *excelize.File) ([][]string, error) {
	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, errors.New("workbook has no sheets")
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	return rows, nil
}

// ImportResources updates or creates one active resource per row in p.
// The name comes from the "Resource Name" column, or the first column when
// the sheet has no such header.
func (im *Importer) ImportResources(rows [][]string, p period.Period) (*Result, error) {
	if !p.Valid() {
		return nil, services.ErrInvalidPeriod
	}
	if len(rows) == 0 {
		return &Result{}, nil
	}

	cols := headerIndex(rows[0])
	nameCol, ok := cols[normalize(ColResourceName)]
	if !ok {
		nameCol = 0
	}

	res := &Result{}
	for i, row := range rows[1:] {
		rowNum := i + 2
		if blank(row) {
			res.Skipped++
			continue
		}

		name := cell(row, nameCol)
		presentDay, err := optionalDecimal(row, cols, ColPresentDays)
		if err != nil {
			res.Errors = append(res.Errors, RowError{Row: rowNum, Err: err})
			continue
		}
		workingDays, err := optionalDecimal(row, cols, ColWorkingDays)
		if err != nil {
			res.Errors = append(res.Errors, RowError{Row: rowNum, Err: err})
			continue
		}

		input := services.CreateResourceInput{Name: name, Period: p, WorkingDays: workingDays}
		if presentDay != nil {
			input.PresentDay = *presentDay
		}

		resource, created, err := im.resources.Upsert(input)
		if err != nil {
			res.Errors = append(res.Errors, RowError{Row: rowNum, Err: err})
			continue
		}

		action := "Updated"
		if created {
			action = "Created"
			res.Created++
		} else {
			res.Updated++
		}
		im.log.WithFields(logrus.Fields{
			"row":      rowNum,
			"resource": resource.Name,
			"period":   p.String(),
		}).Info(action + " resource")
	}

	return res, nil
}

// ImportProjects adds each row's resource to the members of the row's
// project, creating either when it does not exist for the row's period.
func (im *Importer) ImportProjects(rows [][]string) (*Result, error) {
	if len(rows) == 0 {
		return &Result{}, nil
	}

	cols := headerIndex(rows[0])
	for _, required := range []string{ColProjectResource, ColProjectName, ColYear, ColMonth} {
		if _, ok := cols[normalize(required)]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, required)
		}
	}

	res := &Result{}
	for i, row := range rows[1:] {
		rowNum := i + 2
		if blank(row) {
			res.Skipped++
			continue
		}

		if err := im.importProjectRow(row, cols, res); err != nil {
			res.Errors = append(res.Errors, RowError{Row: rowNum, Err: err})
			continue
		}
		im.log.WithFields(logrus.Fields{
			"row":     rowNum,
			"project": cell(row, cols[normalize(ColProjectName)]),
		}).Info("Imported project row")
	}

	return res, nil
}

func (im *Importer) importProjectRow(row []string, cols map[string]int, res *Result) error {
	year, err := strconv.Atoi(cell(row, cols[normalize(ColYear)]))
	if err != nil {
		return fmt.Errorf("invalid year: %w", err)
	}
	month, err := strconv.Atoi(cell(row, cols[normalize(ColMonth)]))
	if err != nil {
		return fmt.Errorf("invalid month: %w", err)
	}
	p := period.Period{Year: year, Month: month}
	if !p.Valid() {
		return services.ErrInvalidPeriod
	}

	billable, err := optionalDecimal(row, cols, ColBillableDays)
	if err != nil {
		return err
	}
	nonBillable, err := optionalDecimal(row, cols, ColNonBillableDays)
	if err != nil {
		return err
	}

	resource, _, err := im.resources.FindOrCreate(cell(row, cols[normalize(ColProjectResource)]), p)
	if err != nil {
		return err
	}

	_, created, err := im.projects.EnsureMember(
		cell(row, cols[normalize(ColProjectName)]),
		p,
		resource.ID,
		orZero(billable),
		orZero(nonBillable),
	)
	if err != nil {
		return err
	}

	if created {
		res.Created++
	} else {
		res.Updated++
	}
	return nil
}

func normalize(header string) string {
	return strings.ToLower(strings.TrimSpace(header))
}

func headerIndex(header []string) map[string]int {
	cols := make(map[string]int, len(header))
	for i, h := range header {
		key := normalize(h)
		if key == "" {
			continue
		}
		if _, dup := cols[key]; !dup {
			cols[key] = i
		}
	}
	return cols
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// optionalDecimal reads a numeric column; a missing column or empty cell is nil.
func optionalDecimal(row []string, cols map[string]int, header string) (*decimal.Decimal, error) {
	idx, ok := cols[normalize(header)]
	if !ok {
		return nil, nil
	}
	raw := cell(row, idx)
	if raw == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid %s %q: %w", header, raw, err)
	}
	return &d, nil
}

func orZero(d *decimal.Decimal) decimal.Decimal {
	if d == nil {
		return decimal.Zero
	}
	return *d
}
