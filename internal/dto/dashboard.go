package dto

import (
	"github.com/shopspring/decimal"
	"github.com/yukikurage/resource-dashboard/internal/metrics"
	"github.com/yukikurage/resource-dashboard/internal/period"
	"github.com/yukikurage/resource-dashboard/internal/services"
)

// PeriodDTO represents a year/month pair
type PeriodDTO struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

// MonthDTO is one entry of the month selector
type MonthDTO struct {
	Number int    `json:"number"`
	Name   string `json:"name"`
}

// DashboardResponse is the landing view
type DashboardResponse struct {
	Period    PeriodDTO     `json:"period"`
	Current   PeriodDTO     `json:"current"`
	Years     []int         `json:"years"`
	Months    []MonthDTO    `json:"months"`
	Projects  []ProjectDTO  `json:"projects"`
	Resources []ResourceDTO `json:"resources"`
}

// TotalsDTO holds summed day and hour figures
type TotalsDTO struct {
	PresentDay       decimal.Decimal `json:"present_day"`
	BillableDays     decimal.Decimal `json:"billable_days"`
	NonBillableDays  decimal.Decimal `json:"non_billable_days"`
	BillableHours    decimal.Decimal `json:"billable_hours"`
	NonBillableHours decimal.Decimal `json:"non_billable_hours"`
}

// ProjectGroupDTO is the set of projects sharing a type label
type ProjectGroupDTO struct {
	Label    string       `json:"label"`
	Projects []ProjectDTO `json:"projects"`
	Totals   TotalsDTO    `json:"totals"`
}

// AttendanceResponse is the metrics view
type AttendanceResponse struct {
	Period    PeriodDTO     `json:"period"`
	Resources []ResourceDTO `json:"resources"`

	TotalWorkingDays   decimal.Decimal `json:"total_working_days"`
	TotalPresentDays   decimal.Decimal `json:"total_present_days"`
	TotalPresentHours  decimal.Decimal `json:"total_present_hours"`
	PresencePercentage decimal.Decimal `json:"presence_percentage"`

	ProjectGroups []ProjectGroupDTO `json:"project_groups"`
	ProjectTotals TotalsDTO         `json:"project_totals"`

	TeamProductivityHours      decimal.Decimal `json:"team_productivity_hours"`
	ExpectedHours              decimal.Decimal `json:"expected_hours"`
	TeamProductivityPercentage decimal.Decimal `json:"team_productivity_percentage"`
	NotProductivePercentage    decimal.Decimal `json:"not_productive_percentage"`
}

// ToPeriodDTO converts a period
func ToPeriodDTO(p period.Period) PeriodDTO {
	return PeriodDTO{Year: p.Year, Month: p.Month}
}

// ToDashboardResponse converts the home view
func ToDashboardResponse(home *services.Home) DashboardResponse {
	months := make([]MonthDTO, len(home.Months))
	for i, m := range home.Months {
		months[i] = MonthDTO{Number: m.Number, Name: m.Name}
	}
	return DashboardResponse{
		Period:    ToPeriodDTO(home.Period),
		Current:   ToPeriodDTO(home.Current),
		Years:     home.Years,
		Months:    months,
		Projects:  ToProjectDTOs(home.Projects),
		Resources: ToResourceDTOs(home.Resources),
	}
}

// ToTotalsDTO converts metric totals
func ToTotalsDTO(t metrics.Totals) TotalsDTO {
	return TotalsDTO{
		PresentDay:       Round(t.PresentDay),
		BillableDays:     Round(t.BillableDays),
		NonBillableDays:  Round(t.NonBillableDays),
		BillableHours:    Round(t.BillableHours),
		NonBillableHours: Round(t.NonBillableHours),
	}
}

// ToAttendanceResponse converts the metrics view
func ToAttendanceResponse(a *services.Attendance) AttendanceResponse {
	m := a.Metrics
	groups := make([]ProjectGroupDTO, len(m.Groups))
	for i, g := range m.Groups {
		groups[i] = ProjectGroupDTO{
			Label:    g.Label,
			Projects: ToProjectDTOs(g.Projects),
			Totals:   ToTotalsDTO(g.Totals),
		}
	}

	return AttendanceResponse{
		Period:                     ToPeriodDTO(a.Period),
		Resources:                  ToResourceDTOs(a.Resources),
		TotalWorkingDays:           Round(m.TotalWorkingDays),
		TotalPresentDays:           Round(m.TotalPresentDays),
		TotalPresentHours:          Round(m.TotalPresentHours),
		PresencePercentage:         Round(m.PresencePercentage),
		ProjectGroups:              groups,
		ProjectTotals:              ToTotalsDTO(m.ProjectTotals),
		TeamProductivityHours:      Round(m.TeamProductivityHours),
		ExpectedHours:              Round(m.ExpectedHours),
		TeamProductivityPercentage: Round(m.TeamProductivityPercentage),
		NotProductivePercentage:    Round(m.NotProductivePercentage),
	}
}
