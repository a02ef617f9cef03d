package api

import (
	"context"

	"github.com/Okojas/MediCare-doctor-appointment/internal/gateway"
)

// AdminService serves the admin dashboard.
type AdminService struct {
	gw *gateway.Gateway
}

// AdminStats are the platform-wide dashboard counters.
type AdminStats struct {
	TotalPatients     int     `json:"total_patients"`
	TotalDoctors      int     `json:"total_doctors"`
	TotalAppointments int     `json:"total_appointments"`
	Revenue           float64 `json:"revenue"`
}

// Stats returns the dashboard counters. Admin role required server-side.
func (s *AdminService) Stats(ctx context.Context) (AdminStats, error) {
	var stats AdminStats
	if err := s.gw.Get(ctx, "/api/admin/stats", nil, &stats); err != nil {
		return AdminStats{}, err
	}
	return stats, nil
}
