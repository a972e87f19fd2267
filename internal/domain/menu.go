package domain

// Menu service item of the tenant catalog
type Menu struct {
	ID              int64
	TenantID        int64
	Name            string
	DurationMinutes int
	Price           float64
}
