package api

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/Okojas/MediCare-doctor-appointment/internal/gateway"
	"github.com/Okojas/MediCare-doctor-appointment/internal/medicaretest"
	"github.com/Okojas/MediCare-doctor-appointment/internal/model"
	"github.com/Okojas/MediCare-doctor-appointment/internal/session"
)

// fixture wires a client against the in-memory stub backend, the way the
// real application wires it against production.
type fixture struct {
	client  *Client
	sess    *session.Store
	storage *session.MemoryStorage
	stub    *medicaretest.Server
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	stub := medicaretest.New("test-secret")
	srv := httptest.NewServer(stub.Handler())
	t.Cleanup(srv.Close)

	storage := session.NewMemoryStorage()
	sess := session.New(storage)
	gw := gateway.New(srv.URL, sess)
	return &fixture{
		client:  New(gw),
		sess:    sess,
		storage: storage,
		stub:    stub,
	}
}

func (f *fixture) login(t *testing.T, email, password string, role model.Role) model.User {
	t.Helper()
	resp, err := f.client.Auth.Login(context.Background(), email, password, role)
	if err != nil {
		t.Fatalf("login %s: %v", email, err)
	}
	if err := f.sess.Establish(resp.AccessToken, resp.User); err != nil {
		t.Fatalf("establish: %v", err)
	}
	return resp.User
}

func (f *fixture) loginPatient(t *testing.T) model.User {
	return f.login(t, medicaretest.SeedPatientEmail, medicaretest.SeedPatientPass, model.RolePatient)
}

func (f *fixture) loginAdmin(t *testing.T) model.User {
	return f.login(t, medicaretest.SeedAdminEmail, medicaretest.SeedAdminPass, model.RoleAdmin)
}

func (f *fixture) book(t *testing.T) model.Appointment {
	t.Helper()
	appt, err := f.client.Appointments.Create(context.Background(), CreateAppointmentRequest{
		DoctorID: f.stub.SeedDoctorID(),
		Date:     "2025-01-25",
		Time:     "10:00 AM",
		Type:     model.TypeVideo,
		Symptoms: "Chest pain",
	})
	if err != nil {
		t.Fatalf("book: %v", err)
	}
	return appt
}
