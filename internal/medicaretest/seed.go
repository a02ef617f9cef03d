package medicaretest

import (
	"time"

	"github.com/google/uuid"

	"github.com/Okojas/MediCare-doctor-appointment/internal/model"
)

// Seeded credentials available to tests and the dev server.
const (
	SeedPatientEmail = "john@example.com"
	SeedPatientPass  = "password123"
	SeedDoctorEmail  = "sarah@example.com"
	SeedDoctorPass   = "password123"
	SeedAdminEmail   = "admin@example.com"
	SeedAdminPass    = "admin123"
)

// seed loads the same kind of fixture data the real backend ships with:
// a handful of specialties, three doctors, one patient and one admin.
func (s *Server) seed() {
	s.specialties = []model.Specialty{
		{ID: 1, Name: "Cardiology", Description: "Heart & cardiovascular system"},
		{ID: 2, Name: "Dermatology", Description: "Skin, hair & nails"},
		{ID: 3, Name: "Neurology", Description: "Brain & nervous system"},
		{ID: 4, Name: "Pediatrics", Description: "Children healthcare"},
	}

	s.addUser(SeedPatientEmail, SeedPatientPass, "John Doe", "+91 98765 43210", model.RolePatient)
	s.addUser(SeedAdminEmail, SeedAdminPass, "Admin User", "+91 98765 43212", model.RoleAdmin)

	s.addDoctor(SeedDoctorEmail, SeedDoctorPass, "Dr. Sarah Johnson", 1, doctorProfile{
		Qualification:    "MBBS, MD - Cardiology",
		Experience:       15,
		Fee:              1500,
		Hospital:         "City Heart Hospital",
		Location:         "Mumbai, Maharashtra",
		Rating:           4.8,
		Languages:        []string{"English", "Hindi", "Marathi"},
		AvailabilityDays: []string{"Mon", "Wed", "Fri"},
	})
	s.addDoctor("rajesh@example.com", SeedDoctorPass, "Dr. Rajesh Kumar", 2, doctorProfile{
		Qualification:    "MBBS, MD - Dermatology",
		Experience:       12,
		Fee:              1200,
		Hospital:         "Skin Care Clinic",
		Location:         "Delhi",
		Rating:           4.6,
		Languages:        []string{"English", "Hindi"},
		AvailabilityDays: []string{"Tue", "Thu", "Sat"},
	})
	s.addDoctor("priya@example.com", SeedDoctorPass, "Dr. Priya Sharma", 4, doctorProfile{
		Qualification:    "MBBS, MD - Pediatrics",
		Experience:       10,
		Fee:              1000,
		Hospital:         "Children Hospital",
		Location:         "Bangalore",
		Rating:           4.7,
		Languages:        []string{"English", "Hindi", "Kannada"},
		AvailabilityDays: []string{"Mon", "Tue", "Wed", "Thu", "Fri"},
	})
}

type doctorProfile struct {
	Qualification    string
	Experience       int
	Fee              float64
	Hospital         string
	Location         string
	Rating           float64
	Languages        []string
	AvailabilityDays []string
}

func (s *Server) addUser(email, password, name, phone string, role model.Role) *account {
	hash, err := hashPassword(password)
	if err != nil {
		panic("medicaretest: seed hash: " + err.Error())
	}
	acct := &account{
		User: model.User{
			ID:        uuid.NewString(),
			Email:     email,
			Name:      name,
			Phone:     phone,
			Role:      role,
			CreatedAt: time.Now().UTC(),
		},
		passwordHash: hash,
	}
	s.users = append(s.users, acct)
	return acct
}

func (s *Server) addDoctor(email, password, name string, specialtyID int, p doctorProfile) {
	acct := s.addUser(email, password, name, "", model.RoleDoctor)

	var spec *model.Specialty
	for i := range s.specialties {
		if s.specialties[i].ID == specialtyID {
			spec = &s.specialties[i]
			break
		}
	}
	user := acct.User
	s.doctors = append(s.doctors, &model.Doctor{
		ID:               uuid.NewString(),
		UserID:           acct.ID,
		SpecialtyID:      specialtyID,
		Qualification:    p.Qualification,
		Experience:       p.Experience,
		Fee:              p.Fee,
		Hospital:         p.Hospital,
		Location:         p.Location,
		Rating:           p.Rating,
		Languages:        p.Languages,
		AvailabilityDays: p.AvailabilityDays,
		User:             &user,
		Specialty:        spec,
	})
}

// SeedDoctorID returns the user ID of the first seeded doctor. Test helper.
func (s *Server) SeedDoctorID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doctors[0].UserID
}
