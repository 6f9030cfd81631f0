package model

// DashboardSummary is the landing-page rollup across all entities.
type DashboardSummary struct {
	TotalPatients     int            `json:"total_patients"`
	TotalAppointments int            `json:"total_appointments"`
	AppointmentsToday int            `json:"appointments_today"`
	TotalBeds         int            `json:"total_beds"`
	AvailableBeds     int            `json:"available_beds"`
	OccupiedBeds      int            `json:"occupied_beds"`
	MaintenanceBeds   int            `json:"maintenance_beds"`
	OccupancyRate     int            `json:"occupancy_rate"`
	LowStockItems     int            `json:"low_stock_items"`
	RecentAdmissions  []*Admission   `json:"recent_admissions"`
	UpcomingAppts     []*Appointment `json:"upcoming_appointments"`
}

// DailyCount is one point of a per-day appointment series.
type DailyCount struct {
	Date  string `json:"date" db:"date"`
	Count int    `json:"count" db:"count"`
}

// AppointmentStats groups appointment counts for charts.
type AppointmentStats struct {
	ByDay    []DailyCount   `json:"by_day"`
	ByType   map[string]int `json:"by_type"`
	ByStatus map[string]int `json:"by_status"`
}

// BedStats is the per-ward occupancy breakdown.
type BedStats struct {
	Wards []WardOccupancy `json:"wards"`
}
