package api

import (
	"context"
	"errors"
	"testing"

	"github.com/Okojas/MediCare-doctor-appointment/internal/model"
)

func TestListDoctorsNoFilters(t *testing.T) {
	f := newFixture(t)

	doctors, total, err := f.client.Doctors.List(context.Background(), DoctorFilters{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 3 || len(doctors) != 3 {
		t.Errorf("expected all 3 seeded doctors, got %d (total %d)", len(doctors), total)
	}
}

func TestListDoctorsBySpecialty(t *testing.T) {
	f := newFixture(t)

	doctors, _, err := f.client.Doctors.List(context.Background(), DoctorFilters{Specialty: "Cardiology"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(doctors) != 1 {
		t.Fatalf("expected 1 cardiologist, got %d", len(doctors))
	}
	if doctors[0].Specialty == nil || doctors[0].Specialty.Name != "Cardiology" {
		t.Errorf("unexpected specialty: %+v", doctors[0].Specialty)
	}
}

func TestListDoctorsSearch(t *testing.T) {
	f := newFixture(t)

	doctors, _, err := f.client.Doctors.List(context.Background(), DoctorFilters{Search: "sarah"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(doctors) != 1 {
		t.Fatalf("expected 1 match for sarah, got %d", len(doctors))
	}
}

func TestListDoctorsPagination(t *testing.T) {
	f := newFixture(t)

	doctors, total, err := f.client.Doctors.List(context.Background(), DoctorFilters{Limit: 2, Offset: 2})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 3 {
		t.Errorf("total = %d, want 3 regardless of paging", total)
	}
	if len(doctors) != 1 {
		t.Errorf("expected 1 doctor on the last page, got %d", len(doctors))
	}
}

func TestGetDoctor(t *testing.T) {
	f := newFixture(t)

	doc, err := f.client.Doctors.Get(context.Background(), f.stub.SeedDoctorID())
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if doc.User == nil || doc.User.Name == "" {
		t.Error("expected joined user data")
	}
	if doc.Fee <= 0 {
		t.Error("expected a consultation fee")
	}
}

func TestGetDoctorNotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.client.Doctors.Get(context.Background(), "missing")
	if !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}
