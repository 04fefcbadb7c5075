package domain

// EmployeeResult is a single employee search hit.
type EmployeeResult struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// HolidaySearchInput selects leaves overlapping a date window.
type HolidaySearchInput struct {
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
	EmployeeID int64  `json:"employee_id,omitempty"`
}

// Holiday is one leave entry overlapping the requested window.
type Holiday struct {
	DisplayName   string `json:"display_name"`
	Name          string `json:"name"`
	StartDatetime string `json:"start_datetime"`
	StopDatetime  string `json:"stop_datetime"`
	EmployeeID    int64  `json:"employee_id"`
	EmployeeName  string `json:"employee_name"`
	State         string `json:"state"`
}
