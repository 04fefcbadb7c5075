package hr

import (
	"context"

	"github.com/erptools/odoo-insight/pkg/models/domain"
	"github.com/erptools/odoo-insight/pkg/store/odoo"
)

const (
	employeeModel = "hr.employee"
	leaveModel    = "hr.leave.report.calendar"
)

// Service implements the HR lookup operations.
type Service struct {
	gw odoo.Gateway
}

func NewService(gw odoo.Gateway) *Service {
	return &Service{gw: gw}
}

// SearchEmployees resolves employees by (partial) name through the backend's
// name_search method.
func (s *Service) SearchEmployees(ctx context.Context, name string, limit int) ([]domain.EmployeeResult, error) {
	if limit <= 0 {
		limit = domain.DefaultPageSize
	}

	raw, err := s.gw.Call(ctx, employeeModel, "name_search", []any{}, map[string]any{
		"name":  name,
		"limit": limit,
	})
	if err != nil {
		return nil, err
	}

	pairs, _ := raw.([]any)
	results := make([]domain.EmployeeResult, 0, len(pairs))
	for _, p := range pairs {
		pair, ok := p.([]any)
		if !ok || len(pair) != 2 {
			continue
		}
		id, _ := pair[0].(float64)
		label, _ := pair[1].(string)
		results = append(results, domain.EmployeeResult{ID: int64(id), Name: label})
	}
	return results, nil
}

// SearchHolidays returns leaves overlapping the requested window. The overlap
// check compares two different fields of the same record (start and stop), so
// the two bounds are emitted as an explicit prefix-AND pair.
func (s *Service) SearchHolidays(ctx context.Context, params domain.HolidaySearchInput) ([]domain.Holiday, error) {
	start, err := odoo.ParseDate("start_date", params.StartDate)
	if err != nil {
		return nil, err
	}
	if _, err := odoo.ParseDate("end_date", params.EndDate); err != nil {
		return nil, err
	}

	// Leaves are stored in UTC; widening the lower bound by a day keeps
	// entries that start late in the previous local day.
	adjustedStart := start.AddDate(0, 0, -1).Format(odoo.DateLayout)

	d := odoo.AndPair(
		odoo.Cond("start_datetime", odoo.OpLte, params.EndDate+" 22:59:59"),
		odoo.Cond("stop_datetime", odoo.OpGte, adjustedStart+" 23:00:00"),
	)
	if params.EmployeeID != 0 {
		d = d.With(odoo.Cond("employee_id", odoo.OpEq, params.EmployeeID))
	}

	leaves, err := s.gw.Fetch(ctx, leaveModel, d, odoo.FetchOptions{})
	if err != nil {
		return nil, err
	}

	holidays := make([]domain.Holiday, 0, len(leaves.Records))
	for _, leave := range leaves.Records {
		h := domain.Holiday{
			DisplayName:   leave.Str("display_name"),
			Name:          leave.Str("name"),
			StartDatetime: leave.Str("start_datetime"),
			StopDatetime:  leave.Str("stop_datetime"),
			State:         leave.Str("state"),
		}
		if rel, ok := leave.Relation("employee_id"); ok {
			h.EmployeeID = rel.ID
			h.EmployeeName = rel.Name
		}
		holidays = append(holidays, h)
	}
	return holidays, nil
}
