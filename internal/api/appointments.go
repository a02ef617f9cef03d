package api

import (
	"context"
	"net/url"

	"github.com/Okojas/MediCare-doctor-appointment/internal/gateway"
	"github.com/Okojas/MediCare-doctor-appointment/internal/model"
)

// AppointmentService books and manages consultations. The server is the
// authority on slot conflicts and on status transitions; the client only
// avoids offering actions the state machine forbids.
type AppointmentService struct {
	gw *gateway.Gateway
}

// CreateAppointmentRequest books a slot the caller has already confirmed
// as available. Date and time use the backend's own string forms.
type CreateAppointmentRequest struct {
	DoctorID string                `json:"doctor_id"`
	Date     string                `json:"date"`
	Time     string                `json:"time"`
	Type     model.AppointmentType `json:"type"`
	Symptoms string                `json:"symptoms,omitempty"`
}

// Create books an appointment. The fee is set server-side from the
// doctor's profile.
func (s *AppointmentService) Create(ctx context.Context, req CreateAppointmentRequest) (model.Appointment, error) {
	switch {
	case req.DoctorID == "":
		return model.Appointment{}, &model.ValidationError{Detail: "doctor_id is required"}
	case req.Date == "" || req.Time == "":
		return model.Appointment{}, &model.ValidationError{Detail: "date and time are required"}
	case req.Type != model.TypeVideo && req.Type != model.TypeInPerson:
		return model.Appointment{}, &model.ValidationError{Detail: "type must be video or in-person"}
	}

	var appt model.Appointment
	if err := s.gw.Post(ctx, "/api/appointments", req, &appt); err != nil {
		return model.Appointment{}, err
	}
	return appt, nil
}

// AppointmentFilters narrows a listing; the backend already scopes results
// to the caller's role.
type AppointmentFilters struct {
	Status model.AppointmentStatus
}

// List returns the caller's appointments.
func (s *AppointmentService) List(ctx context.Context, f AppointmentFilters) ([]model.Appointment, error) {
	query := url.Values{}
	if f.Status != "" {
		query.Set("status", string(f.Status))
	}
	var appts []model.Appointment
	if err := s.gw.Get(ctx, "/api/appointments", query, &appts); err != nil {
		return nil, err
	}
	return appts, nil
}

type statusUpdateRequest struct {
	Status model.AppointmentStatus `json:"status"`
}

type statusUpdateResponse struct {
	Message     string            `json:"message"`
	Appointment model.Appointment `json:"appointment"`
}

// SetStatus moves an appointment to a new status. Used both for explicit
// changes and for cancellation. An illegal transition comes back from the
// server as a validation error.
func (s *AppointmentService) SetStatus(ctx context.Context, id string, status model.AppointmentStatus) (model.Appointment, error) {
	if !model.ValidStatus(status) {
		return model.Appointment{}, &model.ValidationError{Detail: "unknown status " + string(status)}
	}
	var resp statusUpdateResponse
	err := s.gw.Patch(ctx, "/api/appointments/"+id+"/status", statusUpdateRequest{Status: status}, &resp)
	if err != nil {
		return model.Appointment{}, err
	}
	return resp.Appointment, nil
}

// Cancel is a status update to cancelled. Rescheduling is cancel plus a
// fresh booking.
func (s *AppointmentService) Cancel(ctx context.Context, id string) (model.Appointment, error) {
	return s.SetStatus(ctx, id, model.StatusCancelled)
}
