package api

import (
	"context"
	"errors"
	"testing"

	"github.com/Okojas/MediCare-doctor-appointment/internal/medicaretest"
	"github.com/Okojas/MediCare-doctor-appointment/internal/model"
)

// Login followed by an authenticated listing: the caller never touches
// credential headers itself.
func TestLoginThenListDoctors(t *testing.T) {
	f := newFixture(t)

	user := f.loginPatient(t)
	if user.Role != model.RolePatient {
		t.Errorf("user.Role = %s, want patient", user.Role)
	}

	doctors, total, err := f.client.Doctors.List(context.Background(), DoctorFilters{})
	if err != nil {
		t.Fatalf("doctors list: %v", err)
	}
	if len(doctors) == 0 || total != len(doctors) {
		t.Errorf("expected seeded doctors, got %d (total %d)", len(doctors), total)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	f := newFixture(t)

	_, err := f.client.Auth.Login(context.Background(), medicaretest.SeedPatientEmail, "wrong", model.RolePatient)
	var authErr *model.AuthError
	if !errors.As(err, &authErr) {
		t.Fatalf("got %v, want AuthError", err)
	}
	if f.sess.Current().Authenticated {
		t.Error("failed login must not authenticate the session")
	}
}

func TestLoginRoleMismatch(t *testing.T) {
	f := newFixture(t)

	// Right password, wrong role: the backend looks users up by email and
	// role together, so this is a credential mismatch too.
	_, err := f.client.Auth.Login(context.Background(), medicaretest.SeedPatientEmail, medicaretest.SeedPatientPass, model.RoleDoctor)
	var authErr *model.AuthError
	if !errors.As(err, &authErr) {
		t.Fatalf("got %v, want AuthError", err)
	}
}

func TestRegisterAndMe(t *testing.T) {
	f := newFixture(t)

	resp, err := f.client.Auth.Register(context.Background(), RegisterRequest{
		Email:    "new@example.com",
		Password: "secret123",
		Name:     "New Patient",
		Role:     model.RolePatient,
		Age:      30,
		Gender:   "Female",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := f.sess.Establish(resp.AccessToken, resp.User); err != nil {
		t.Fatalf("establish: %v", err)
	}

	me, err := f.client.Auth.Me(context.Background())
	if err != nil {
		t.Fatalf("me: %v", err)
	}
	if me.Email != "new@example.com" {
		t.Errorf("me.Email = %q", me.Email)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	f := newFixture(t)

	_, err := f.client.Auth.Register(context.Background(), RegisterRequest{
		Email:    medicaretest.SeedPatientEmail,
		Password: "secret123",
		Name:     "Imposter",
		Role:     model.RolePatient,
	})
	var vErr *model.ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("got %v, want ValidationError", err)
	}
}

func TestRegisterMissingFieldsRejectedLocally(t *testing.T) {
	f := newFixture(t)

	_, err := f.client.Auth.Register(context.Background(), RegisterRequest{Email: "x@example.com"})
	var vErr *model.ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("got %v, want ValidationError", err)
	}
}

// A rejected credential on any authenticated endpoint leaves the session
// unauthenticated and the persisted storage empty as soon as the call
// returns.
func TestUnauthorizedTearsDownSession(t *testing.T) {
	f := newFixture(t)

	err := f.sess.Establish("tampered-token", model.User{ID: "u-x", Role: model.RolePatient})
	if err != nil {
		t.Fatalf("establish: %v", err)
	}

	_, err = f.client.Auth.Me(context.Background())
	if !errors.Is(err, model.ErrSessionExpired) {
		t.Fatalf("got %v, want ErrSessionExpired", err)
	}
	if f.sess.Current().Authenticated {
		t.Error("session must be unauthenticated immediately after the rejection")
	}
	if f.storage.Len() != 0 {
		t.Errorf("persisted storage must be empty, %d entries left", f.storage.Len())
	}
}
