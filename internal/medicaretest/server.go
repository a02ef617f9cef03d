// Package medicaretest is an in-memory stand-in for the MediCare backend.
// It mirrors the production wire contract closely enough to run the client
// end to end: uuid entity IDs, Argon2id-hashed seeded accounts, HS256
// bearer tokens and FastAPI-style {"detail": ...} error bodies. It backs
// the package tests and the medicare-dev local server; it is never a
// fallback inside the client itself.
package medicaretest

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/Okojas/MediCare-doctor-appointment/internal/model"
)

type account struct {
	model.User
	passwordHash string
	age          int
	gender       string
}

// Server holds the in-memory state behind the stub API.
type Server struct {
	mu           sync.Mutex
	secret       string
	tokenTTL     time.Duration
	users        []*account
	doctors      []*model.Doctor
	specialties  []model.Specialty
	appointments map[string]*model.Appointment
	records      []model.MedicalRecord
	router       *chi.Mux
}

// New creates a seeded stub server signing tokens with the given secret.
func New(secret string) *Server {
	s := &Server{
		secret:       secret,
		tokenTTL:     24 * time.Hour,
		appointments: make(map[string]*model.Appointment),
	}
	s.seed()
	s.routes()
	return s
}

// Handler returns the HTTP handler for the stub API.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) routes() {
	r := chi.NewRouter()

	r.Post("/api/auth/register", s.handleRegister)
	r.Post("/api/auth/login", s.handleLogin)
	r.Get("/api/doctors", s.handleListDoctors)
	r.Get("/api/doctors/{doctorID}", s.handleGetDoctor)

	r.Group(func(r chi.Router) {
		r.Use(s.requireAuth)
		r.Get("/api/auth/me", s.handleMe)
		r.Post("/api/appointments", s.handleCreateAppointment)
		r.Get("/api/appointments", s.handleListAppointments)
		r.Patch("/api/appointments/{appointmentID}/status", s.handleUpdateStatus)
		r.Get("/api/medical-records", s.handleListRecords)
		r.Post("/api/medical-records", s.handleUploadRecord)
		r.Post("/api/payments/create-order", s.handleCreateOrder)
		r.Post("/api/payments/verify", s.handleVerifyPayment)
		r.Get("/api/consultations/{appointmentID}/token", s.handleCallToken)
		r.Get("/api/admin/stats", s.handleAdminStats)
	})

	s.router = r
}

// Auth ----------------------------------------------------------------------

type ctxKey string

const accountKey ctxKey = "account"

func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, found := strings.CutPrefix(header, "Bearer ")
		if !found || token == "" {
			detail(w, http.StatusUnauthorized, "Not authenticated")
			return
		}
		claims, err := parseToken(token, s.secret)
		if err != nil {
			detail(w, http.StatusUnauthorized, "Could not validate credentials")
			return
		}
		acct := s.accountByID(claims.Subject)
		if acct == nil {
			detail(w, http.StatusUnauthorized, "Could not validate credentials")
			return
		}
		ctx := context.WithValue(r.Context(), accountKey, acct)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func caller(r *http.Request) *account {
	acct, _ := r.Context().Value(accountKey).(*account)
	return acct
}

type registerPayload struct {
	Email    string     `json:"email"`
	Password string     `json:"password"`
	Name     string     `json:"name"`
	Phone    string     `json:"phone"`
	Role     model.Role `json:"role"`
	Age      int        `json:"age"`
	Gender   string     `json:"gender"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var p registerPayload
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		detail(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if p.Email == "" || p.Password == "" || p.Name == "" || p.Role == "" {
		detail(w, http.StatusBadRequest, "missing required fields")
		return
	}

	s.mu.Lock()
	for _, u := range s.users {
		if u.Email == p.Email {
			s.mu.Unlock()
			detail(w, http.StatusBadRequest, "Email already registered")
			return
		}
	}
	hash, err := hashPassword(p.Password)
	if err != nil {
		s.mu.Unlock()
		detail(w, http.StatusInternalServerError, "hashing failed")
		return
	}
	acct := &account{
		User: model.User{
			ID:        uuid.NewString(),
			Email:     p.Email,
			Name:      p.Name,
			Phone:     p.Phone,
			Role:      p.Role,
			CreatedAt: time.Now().UTC(),
		},
		passwordHash: hash,
		age:          p.Age,
		gender:       p.Gender,
	}
	s.users = append(s.users, acct)
	s.mu.Unlock()

	s.respondToken(w, acct)
}

type loginPayload struct {
	Email    string     `json:"email"`
	Password string     `json:"password"`
	Role     model.Role `json:"role"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var p loginPayload
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		detail(w, http.StatusBadRequest, "invalid request body")
		return
	}

	s.mu.Lock()
	var acct *account
	for _, u := range s.users {
		if u.Email == p.Email && u.Role == p.Role {
			acct = u
			break
		}
	}
	s.mu.Unlock()

	if acct == nil {
		detail(w, http.StatusUnauthorized, "Incorrect email or password")
		return
	}
	ok, err := verifyPassword(p.Password, acct.passwordHash)
	if err != nil || !ok {
		detail(w, http.StatusUnauthorized, "Incorrect email or password")
		return
	}
	s.respondToken(w, acct)
}

func (s *Server) respondToken(w http.ResponseWriter, acct *account) {
	token, err := mintToken(acct.ID, acct.Role, s.secret, s.tokenTTL)
	if err != nil {
		detail(w, http.StatusInternalServerError, "token signing failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"access_token": token,
		"token_type":   "bearer",
		"user":         acct.User,
	})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, caller(r).User)
}

// Doctors -------------------------------------------------------------------

func (s *Server) handleListDoctors(w http.ResponseWriter, r *http.Request) {
	specialty := r.URL.Query().Get("specialty")
	search := strings.ToLower(r.URL.Query().Get("search"))
	limit := intQuery(r, "limit", 20)
	offset := intQuery(r, "offset", 0)

	s.mu.Lock()
	defer s.mu.Unlock()

	matched := make([]model.Doctor, 0, len(s.doctors))
	for _, d := range s.doctors {
		if specialty != "" && (d.Specialty == nil || d.Specialty.Name != specialty) {
			continue
		}
		if search != "" {
			name := ""
			if d.User != nil {
				name = strings.ToLower(d.User.Name)
			}
			spec := ""
			if d.Specialty != nil {
				spec = strings.ToLower(d.Specialty.Name)
			}
			if !strings.Contains(name, search) && !strings.Contains(spec, search) {
				continue
			}
		}
		matched = append(matched, *d)
	}

	total := len(matched)
	if offset > len(matched) {
		offset = len(matched)
	}
	matched = matched[offset:]
	if limit > 0 && limit < len(matched) {
		matched = matched[:limit]
	}
	writeJSON(w, http.StatusOK, map[string]any{"doctors": matched, "total": total})
}

func (s *Server) handleGetDoctor(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "doctorID")

	s.mu.Lock()
	defer s.mu.Unlock()
	if d := s.doctorByUserID(id); d != nil {
		writeJSON(w, http.StatusOK, d)
		return
	}
	detail(w, http.StatusNotFound, "Doctor not found")
}

// Appointments --------------------------------------------------------------

type createAppointmentPayload struct {
	DoctorID string                `json:"doctor_id"`
	Date     string                `json:"date"`
	Time     string                `json:"time"`
	Type     model.AppointmentType `json:"type"`
	Symptoms string                `json:"symptoms"`
}

func (s *Server) handleCreateAppointment(w http.ResponseWriter, r *http.Request) {
	acct := caller(r)
	if acct.Role != model.RolePatient {
		detail(w, http.StatusForbidden, "Not authorized")
		return
	}
	var p createAppointmentPayload
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		detail(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if p.DoctorID == "" || p.Date == "" || p.Time == "" {
		detail(w, http.StatusBadRequest, "missing required fields")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	doc := s.doctorByUserID(p.DoctorID)
	if doc == nil {
		detail(w, http.StatusNotFound, "Doctor not found")
		return
	}
	appt := &model.Appointment{
		ID:            uuid.NewString(),
		PatientID:     acct.ID,
		DoctorID:      p.DoctorID,
		Date:          p.Date,
		Time:          p.Time,
		Status:        model.StatusConfirmed,
		Type:          p.Type,
		Symptoms:      p.Symptoms,
		Fee:           doc.Fee,
		PaymentStatus: model.PaymentPending,
		CreatedAt:     time.Now().UTC(),
	}
	s.appointments[appt.ID] = appt
	writeJSON(w, http.StatusOK, appt)
}

func (s *Server) handleListAppointments(w http.ResponseWriter, r *http.Request) {
	acct := caller(r)
	status := r.URL.Query().Get("status")

	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Appointment, 0, len(s.appointments))
	for _, a := range s.appointments {
		switch acct.Role {
		case model.RolePatient:
			if a.PatientID != acct.ID {
				continue
			}
		case model.RoleDoctor:
			if a.DoctorID != acct.ID {
				continue
			}
		}
		if status != "" && string(a.Status) != status {
			continue
		}
		out = append(out, *a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	writeJSON(w, http.StatusOK, out)
}

type statusPayload struct {
	Status        model.AppointmentStatus `json:"status"`
	PaymentStatus model.PaymentStatus     `json:"payment_status"`
}

func (s *Server) handleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	acct := caller(r)
	id := chi.URLParam(r, "appointmentID")

	var p statusPayload
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		detail(w, http.StatusBadRequest, "invalid request body")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	appt, ok := s.appointments[id]
	if !ok {
		detail(w, http.StatusNotFound, "Appointment not found")
		return
	}
	if acct.Role == model.RolePatient && appt.PatientID != acct.ID {
		detail(w, http.StatusForbidden, "Not authorized")
		return
	}
	if acct.Role == model.RoleDoctor && appt.DoctorID != acct.ID {
		detail(w, http.StatusForbidden, "Not authorized")
		return
	}

	if p.Status != "" {
		if !model.CanTransition(appt.Status, p.Status) {
			detail(w, http.StatusBadRequest,
				"cannot change status from "+string(appt.Status)+" to "+string(p.Status))
			return
		}
		appt.Status = p.Status
	}
	if p.PaymentStatus != "" {
		appt.PaymentStatus = p.PaymentStatus
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message":     "Appointment updated successfully",
		"appointment": appt,
	})
}

// Medical records -----------------------------------------------------------

func (s *Server) handleListRecords(w http.ResponseWriter, r *http.Request) {
	acct := caller(r)

	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.MedicalRecord, 0, len(s.records))
	for _, rec := range s.records {
		switch acct.Role {
		case model.RolePatient:
			if rec.PatientID != acct.ID {
				continue
			}
		case model.RoleDoctor:
			if rec.DoctorID != acct.ID {
				continue
			}
		}
		out = append(out, rec)
	}
	writeJSON(w, http.StatusOK, map[string]any{"records": out})
}

func (s *Server) handleUploadRecord(w http.ResponseWriter, r *http.Request) {
	acct := caller(r)
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		detail(w, http.StatusBadRequest, "invalid multipart form")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		detail(w, http.StatusBadRequest, "file is required")
		return
	}
	defer file.Close()
	// Content is discarded; the stub only tracks metadata.
	if _, err := io.Copy(io.Discard, file); err != nil {
		detail(w, http.StatusBadRequest, "unreadable file")
		return
	}

	title := r.FormValue("title")
	if title == "" {
		title = header.Filename
	}
	recType := model.RecordType(r.FormValue("type"))
	if recType == "" {
		recType = model.RecordOther
	}

	rec := model.MedicalRecord{
		ID:        uuid.NewString(),
		PatientID: acct.ID,
		Type:      recType,
		Title:     title,
		FileURL:   "uploads/" + uuid.NewString() + "_" + header.Filename,
		Notes:     r.FormValue("notes"),
		CreatedAt: time.Now().UTC(),
	}

	s.mu.Lock()
	s.records = append(s.records, rec)
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "File uploaded successfully",
		"record":  rec,
	})
}

// Payments ------------------------------------------------------------------

func (s *Server) handleCreateOrder(w http.ResponseWriter, r *http.Request) {
	if caller(r).Role != model.RolePatient {
		detail(w, http.StatusForbidden, "Not authorized")
		return
	}
	var p struct {
		AppointmentID string  `json:"appointment_id"`
		Amount        float64 `json:"amount"`
	}
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		detail(w, http.StatusBadRequest, "invalid request body")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"order_id": "order_" + uuid.NewString(),
		"amount":   p.Amount,
		"currency": "INR",
		"key":      "test_key",
		"message":  "Payment order created successfully",
	})
}

func (s *Server) handleVerifyPayment(w http.ResponseWriter, r *http.Request) {
	var p struct {
		AppointmentID string `json:"appointment_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		detail(w, http.StatusBadRequest, "invalid request body")
		return
	}

	s.mu.Lock()
	if appt, ok := s.appointments[p.AppointmentID]; ok {
		appt.PaymentStatus = model.PaymentPaid
	}
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Payment verified successfully",
	})
}

// Consultations -------------------------------------------------------------

func (s *Server) handleCallToken(w http.ResponseWriter, r *http.Request) {
	acct := caller(r)
	id := chi.URLParam(r, "appointmentID")

	s.mu.Lock()
	appt, ok := s.appointments[id]
	s.mu.Unlock()
	if !ok {
		detail(w, http.StatusNotFound, "Appointment not found")
		return
	}
	if acct.ID != appt.PatientID && acct.ID != appt.DoctorID {
		detail(w, http.StatusForbidden, "Not authorized")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"token":   "call_" + uuid.NewString(),
		"channel": "appointment-" + id,
	})
}

// Admin ---------------------------------------------------------------------

func (s *Server) handleAdminStats(w http.ResponseWriter, r *http.Request) {
	if caller(r).Role != model.RoleAdmin {
		detail(w, http.StatusForbidden, "Not authorized")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	patients, doctors := 0, 0
	for _, u := range s.users {
		switch u.Role {
		case model.RolePatient:
			patients++
		case model.RoleDoctor:
			doctors++
		}
	}
	revenue := 0.0
	for _, a := range s.appointments {
		if a.PaymentStatus == model.PaymentPaid {
			revenue += a.Fee
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"total_patients":     patients,
		"total_doctors":      doctors,
		"total_appointments": len(s.appointments),
		"revenue":            revenue,
	})
}

// Helpers -------------------------------------------------------------------

func (s *Server) accountByID(id string) *account {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.ID == id {
			return u
		}
	}
	return nil
}

func (s *Server) doctorByUserID(userID string) *model.Doctor {
	for _, d := range s.doctors {
		if d.UserID == userID {
			return d
		}
	}
	return nil
}

func intQuery(r *http.Request, key string, fallback int) int {
	if v := r.URL.Query().Get(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			return n
		}
	}
	return fallback
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func detail(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"detail": msg})
}
