package models

// DashboardStats is the backend's aggregate view used by the admin dashboard.
type DashboardStats struct {
	TotalGenerations int     `json:"totalGenerations"`
	TotalUsers       int     `json:"totalUsers"`
	AvgRating        float64 `json:"avgRating"`
	SuccessRate      float64 `json:"successRate"`
}

// ChartData holds per-platform and per-tone generation counts.
type ChartData struct {
	PlatformStats map[string]int `json:"platformStats"`
	ToneStats     map[string]int `json:"toneStats"`
}
