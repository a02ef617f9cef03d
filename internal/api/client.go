package api

import "github.com/Okojas/MediCare-doctor-appointment/internal/gateway"

// Client groups the typed request modules for the MediCare API. Every
// module talks through the same gateway, which owns credential injection
// and unauthorized-response handling; the modules themselves never touch
// the session.
type Client struct {
	Auth          *AuthService
	Doctors       *DoctorService
	Appointments  *AppointmentService
	Records       *RecordService
	Payments      *PaymentService
	Consultations *ConsultationService
	Admin         *AdminService
}

// New creates a Client on top of the given gateway.
func New(gw *gateway.Gateway) *Client {
	return &Client{
		Auth:          &AuthService{gw: gw},
		Doctors:       &DoctorService{gw: gw},
		Appointments:  &AppointmentService{gw: gw},
		Records:       &RecordService{gw: gw},
		Payments:      &PaymentService{gw: gw},
		Consultations: &ConsultationService{gw: gw},
		Admin:         &AdminService{gw: gw},
	}
}
