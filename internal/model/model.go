package model

import "time"

// Role identifies which dashboard a user belongs to.
type Role string

const (
	RolePatient Role = "patient"
	RoleDoctor  Role = "doctor"
	RoleAdmin   Role = "admin"
)

// User represents an authenticated MediCare account.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone,omitempty"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// Specialty is a medical specialty a doctor practices.
type Specialty struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Doctor is a directory entry as returned by the doctors endpoints.
// Read-only from the client's perspective.
type Doctor struct {
	ID               string     `json:"id"`
	UserID           string     `json:"user_id"`
	SpecialtyID      int        `json:"specialty_id"`
	Qualification    string     `json:"qualification,omitempty"`
	Experience       int        `json:"experience"`
	Fee              float64    `json:"fee"`
	Hospital         string     `json:"hospital,omitempty"`
	Location         string     `json:"location,omitempty"`
	Rating           float64    `json:"rating"`
	Languages        []string   `json:"languages,omitempty"`
	AvailabilityDays []string   `json:"availability_days,omitempty"`
	User             *User      `json:"user,omitempty"`
	Specialty        *Specialty `json:"specialty,omitempty"`
}

// AppointmentType distinguishes video consultations from clinic visits.
type AppointmentType string

const (
	TypeVideo    AppointmentType = "video"
	TypeInPerson AppointmentType = "in-person"
)

// PaymentStatus tracks whether the consultation fee has been settled.
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentRefunded PaymentStatus = "refunded"
)

// Appointment is the client view of a booked consultation. Date and time
// are kept as the backend's string forms ("2025-01-25", "10:00 AM"); the
// client never reinterprets them.
type Appointment struct {
	ID            string            `json:"id"`
	PatientID     string            `json:"patient_id"`
	DoctorID      string            `json:"doctor_id"`
	Date          string            `json:"date"`
	Time          string            `json:"time"`
	Status        AppointmentStatus `json:"status"`
	Type          AppointmentType   `json:"type"`
	Symptoms      string            `json:"symptoms,omitempty"`
	Fee           float64           `json:"fee"`
	PaymentStatus PaymentStatus     `json:"payment_status"`
	CreatedAt     time.Time         `json:"created_at"`
}

// RecordType categorizes an uploaded medical record.
type RecordType string

const (
	RecordPrescription RecordType = "prescription"
	RecordLabReport    RecordType = "lab_report"
	RecordXRay         RecordType = "xray"
	RecordScan         RecordType = "scan"
	RecordOther        RecordType = "other"
)

// MedicalRecord is an uploaded document attached to a patient.
type MedicalRecord struct {
	ID        string     `json:"id"`
	PatientID string     `json:"patient_id"`
	DoctorID  string     `json:"doctor_id,omitempty"`
	Type      RecordType `json:"type"`
	Title     string     `json:"title"`
	FileURL   string     `json:"file_url"`
	Notes     string     `json:"notes,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}
