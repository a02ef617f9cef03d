package api

import (
	"context"
	"errors"
	"testing"

	"github.com/Okojas/MediCare-doctor-appointment/internal/model"
)

func TestGetCallToken(t *testing.T) {
	f := newFixture(t)
	f.loginPatient(t)
	appt := f.book(t)

	cred, err := f.client.Consultations.GetToken(context.Background(), appt.ID)
	if err != nil {
		t.Fatalf("get token: %v", err)
	}
	if cred.Token == "" || cred.Channel == "" {
		t.Errorf("incomplete credential: %+v", cred)
	}
}

func TestGetCallTokenUnknownAppointment(t *testing.T) {
	f := newFixture(t)
	f.loginPatient(t)

	_, err := f.client.Consultations.GetToken(context.Background(), "missing")
	if !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}

func TestGetCallTokenStrangerForbidden(t *testing.T) {
	f := newFixture(t)
	f.loginPatient(t)
	appt := f.book(t)

	// The admin is neither patient nor doctor on this appointment.
	f.loginAdmin(t)
	_, err := f.client.Consultations.GetToken(context.Background(), appt.ID)
	if !errors.Is(err, model.ErrForbidden) {
		t.Fatalf("got %v, want ErrForbidden", err)
	}
}
