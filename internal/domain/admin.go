package domain

// DashboardStats summarizes the store for the admin dashboard.
type DashboardStats struct {
	Users    int `json:"users"`
	Products int `json:"products"`
	Orders   int `json:"orders"`
	Reviews  int `json:"reviews"`
}

type AdminUseCase interface {
	Stats() (*DashboardStats, error)
	ListUsers() ([]UserProfile, error)
}
