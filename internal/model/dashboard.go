package model

// DashboardSummary is the read-side snapshot behind the landing page.
// TotalStaff counts registered users, standing in for a staff headcount.
type DashboardSummary struct {
	TotalPatients     int64 `json:"total_patients" db:"total_patients"`
	TotalStaff        int64 `json:"total_staff" db:"total_staff"`
	AppointmentsToday int64 `json:"appointments_today" db:"appointments_today"`
}

// MonthlyVisits is one month's medical record count. Months without visits
// are omitted from results rather than zero-filled.
type MonthlyVisits struct {
	Month  int   `json:"month" db:"month"`
	Visits int64 `json:"visits" db:"visits"`
}
