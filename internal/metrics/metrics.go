// Package metrics derives attendance and productivity figures for one period.
package metrics

import (
	"sort"

	"github.com/shopspring/decimal"
	"github.com/yukikurage/resource-dashboard/internal/models"
)

var hundred = decimal.NewFromInt(100)

// Totals accumulates the day and hour columns of a set of projects.
type Totals struct {
	PresentDay       decimal.Decimal
	BillableDays     decimal.Decimal
	NonBillableDays  decimal.Decimal
	BillableHours    decimal.Decimal
	NonBillableHours decimal.Decimal
}

// Add returns t with p's columns added.
func (t Totals) Add(p models.Project) Totals {
	return Totals{
		PresentDay:       t.PresentDay.Add(p.PresentDay),
		BillableDays:     t.BillableDays.Add(p.BillableDays),
		NonBillableDays:  t.NonBillableDays.Add(p.NonBillableDays),
		BillableHours:    t.BillableHours.Add(p.BillableHours),
		NonBillableHours: t.NonBillableHours.Add(p.NonBillableHours),
	}
}

// Plus returns the field-wise sum of t and o.
func (t Totals) Plus(o Totals) Totals {
	return Totals{
		PresentDay:       t.PresentDay.Add(o.PresentDay),
		BillableDays:     t.BillableDays.Add(o.BillableDays),
		NonBillableDays:  t.NonBillableDays.Add(o.NonBillableDays),
		BillableHours:    t.BillableHours.Add(o.BillableHours),
		NonBillableHours: t.NonBillableHours.Add(o.NonBillableHours),
	}
}

// TypeGroup holds the projects of one display label.
type TypeGroup struct {
	Label    string
	Projects []models.Project
	Totals   Totals
}

// Result is the full metrics bundle for a period.
type Result struct {
	TotalWorkingDays   decimal.Decimal
	TotalPresentDays   decimal.Decimal
	TotalPresentHours  decimal.Decimal
	PresencePercentage decimal.Decimal

	Groups        []TypeGroup
	ProjectTotals Totals

	TeamProductivityHours      decimal.Decimal
	ExpectedHours              decimal.Decimal
	TeamProductivityPercentage decimal.Decimal
	NotProductivePercentage    decimal.Decimal
}

// Compute aggregates resources and projects that were already filtered to a
// single period and to active records. It never fails: missing values count
// as zero and empty denominators yield zero percentages.
func Compute(resources []models.Resource, projects []models.Project) Result {
	var res Result

	for _, r := range resources {
		if r.WorkingDays != nil && !r.WorkingDays.IsZero() {
			res.TotalWorkingDays = res.TotalWorkingDays.Add(*r.WorkingDays)
		}
		res.TotalPresentDays = res.TotalPresentDays.Add(r.PresentDay)
		res.TotalPresentHours = res.TotalPresentHours.Add(r.PresentHours)
	}
	res.PresencePercentage = Percentage(res.TotalPresentDays, res.TotalWorkingDays)

	res.Groups = groupByType(projects)
	for _, p := range projects {
		res.ProjectTotals = res.ProjectTotals.Add(p)
	}

	res.TeamProductivityHours = res.ProjectTotals.BillableHours
	res.ExpectedHours = res.TotalPresentHours
	res.TeamProductivityPercentage = Clamp(Percentage(res.TeamProductivityHours, res.ExpectedHours))
	res.NotProductivePercentage = hundred.Sub(res.TeamProductivityPercentage)

	return res
}

// Percentage returns 100 × part / whole, or zero when whole is not positive.
func Percentage(part, whole decimal.Decimal) decimal.Decimal {
	if !whole.IsPositive() {
		return decimal.Zero
	}
	return part.Mul(hundred).Div(whole)
}

// Clamp bounds a percentage to [0, 100].
func Clamp(pct decimal.Decimal) decimal.Decimal {
	return decimal.Max(decimal.Zero, decimal.Min(hundred, pct))
}

func groupByType(projects []models.Project) []TypeGroup {
	index := make(map[string]int)
	var groups []TypeGroup
	for _, p := range projects {
		label := p.Type.Label()
		i, ok := index[label]
		if !ok {
			i = len(groups)
			index[label] = i
			groups = append(groups, TypeGroup{Label: label})
		}
		groups[i].Projects = append(groups[i].Projects, p)
		groups[i].Totals = groups[i].Totals.Add(p)
	}

	order := make(map[string]int, len(models.ProjectTypes))
	for i, t := range models.ProjectTypes {
		order[t.Label()] = i
	}
	rank := func(label string) int {
		if r, ok := order[label]; ok {
			return r
		}
		return len(order)
	}
	sort.SliceStable(groups, func(i, j int) bool {
		return rank(groups[i].Label) < rank(groups[j].Label)
	})
	return groups
}
