package api

import (
	"context"
	"errors"
	"testing"

	"github.com/Okojas/MediCare-doctor-appointment/internal/model"
)

func TestCreateAppointmentEchoesBooking(t *testing.T) {
	f := newFixture(t)
	f.loginPatient(t)

	appt := f.book(t)
	if appt.Status != model.StatusPending && appt.Status != model.StatusConfirmed {
		t.Errorf("fresh booking status = %s", appt.Status)
	}
	if appt.DoctorID != f.stub.SeedDoctorID() {
		t.Errorf("doctor id not echoed: %q", appt.DoctorID)
	}
	if appt.Date != "2025-01-25" || appt.Time != "10:00 AM" {
		t.Errorf("slot not echoed: %s %s", appt.Date, appt.Time)
	}
	if appt.Fee <= 0 {
		t.Error("fee must be set server-side from the doctor profile")
	}
	if appt.PaymentStatus != model.PaymentPending {
		t.Errorf("payment status = %s, want pending", appt.PaymentStatus)
	}
}

func TestCreateAppointmentUnknownDoctor(t *testing.T) {
	f := newFixture(t)
	f.loginPatient(t)

	_, err := f.client.Appointments.Create(context.Background(), CreateAppointmentRequest{
		DoctorID: "no-such-doctor",
		Date:     "2025-01-25",
		Time:     "10:00 AM",
		Type:     model.TypeVideo,
	})
	if !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}

func TestCreateAppointmentBadTypeRejectedLocally(t *testing.T) {
	f := newFixture(t)
	f.loginPatient(t)

	_, err := f.client.Appointments.Create(context.Background(), CreateAppointmentRequest{
		DoctorID: f.stub.SeedDoctorID(),
		Date:     "2025-01-25",
		Time:     "10:00 AM",
		Type:     "telepathy",
	})
	var vErr *model.ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("got %v, want ValidationError", err)
	}
}

func TestListAppointmentsStatusFilter(t *testing.T) {
	f := newFixture(t)
	f.loginPatient(t)

	f.book(t)
	second := f.book(t)
	if _, err := f.client.Appointments.Cancel(context.Background(), second.ID); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	cancelled, err := f.client.Appointments.List(context.Background(), AppointmentFilters{Status: model.StatusCancelled})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(cancelled) != 1 || cancelled[0].ID != second.ID {
		t.Errorf("cancelled filter returned %v", cancelled)
	}

	all, err := f.client.Appointments.List(context.Background(), AppointmentFilters{})
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("expected 2 appointments, got %d", len(all))
	}
}

func TestCancelFromConfirmed(t *testing.T) {
	f := newFixture(t)
	f.loginPatient(t)

	appt := f.book(t)
	cancelled, err := f.client.Appointments.Cancel(context.Background(), appt.ID)
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if cancelled.Status != model.StatusCancelled {
		t.Errorf("status = %s, want cancelled", cancelled.Status)
	}
}

// Cancelling a completed appointment is rejected by the server and
// surfaced as a validation error, never a silent success.
func TestCancelCompletedRejected(t *testing.T) {
	f := newFixture(t)
	f.loginPatient(t)

	appt := f.book(t)
	if _, err := f.client.Appointments.SetStatus(context.Background(), appt.ID, model.StatusCompleted); err != nil {
		t.Fatalf("complete: %v", err)
	}

	_, err := f.client.Appointments.SetStatus(context.Background(), appt.ID, model.StatusCancelled)
	var vErr *model.ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("got %v, want ValidationError", err)
	}
}

func TestSetStatusUnknownValueRejectedLocally(t *testing.T) {
	f := newFixture(t)
	f.loginPatient(t)

	_, err := f.client.Appointments.SetStatus(context.Background(), "any-id", "rescheduled")
	var vErr *model.ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("got %v, want ValidationError", err)
	}
}

func TestSetStatusUnknownAppointment(t *testing.T) {
	f := newFixture(t)
	f.loginPatient(t)

	_, err := f.client.Appointments.SetStatus(context.Background(), "missing", model.StatusCancelled)
	if !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}
