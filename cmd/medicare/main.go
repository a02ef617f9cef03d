// medicare is a terminal front end for the MediCare appointment API. It
// plays the role of the application shell: it restores the session once at
// startup, subscribes once to the gateway's session-expired signal, and
// re-fetches lists after every mutation instead of trusting stale
// in-flight responses.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/Okojas/MediCare-doctor-appointment/internal/api"
	"github.com/Okojas/MediCare-doctor-appointment/internal/config"
	"github.com/Okojas/MediCare-doctor-appointment/internal/consult"
	"github.com/Okojas/MediCare-doctor-appointment/internal/gateway"
	"github.com/Okojas/MediCare-doctor-appointment/internal/model"
	"github.com/Okojas/MediCare-doctor-appointment/internal/session"
)

const usage = `medicare <command> [flags]

Commands:
  register        create an account and log in
  login           authenticate and store the session
  logout          clear the stored session
  whoami          show the logged-in user
  doctors         search the doctor directory
  doctor          show one doctor
  book            book an appointment
  appointments    list your appointments
  actions         show the status changes offered for an appointment
  set-status      change an appointment's status
  cancel          cancel an appointment
  records         list medical records
  upload-record   upload a medical record
  pay             pay for an appointment
  stats           show platform stats (admin)
  call            join a video consultation
`

type app struct {
	client *api.Client
	sess   *session.Store
}

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file found, using environment variables")
	}
	cfg := config.Load()

	level := slog.LevelInfo
	if cfg.Env == "development" {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	gateway.RegisterMetrics()

	sess := session.New(session.NewFileStorage(cfg.StateDir))
	if err := sess.Restore(); err != nil {
		slog.Warn("session restore failed", "error", err)
	}

	gw := gateway.New(cfg.BaseURL, sess, gateway.WithRateLimit(cfg.RequestsPerSec, cfg.Burst))
	gw.OnSessionExpired(func() {
		fmt.Fprintln(os.Stderr, "Your session has expired. Please log in again.")
	})

	a := &app{client: api.New(gw), sess: sess}

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.RequestTimeout)
	defer cancel()

	if err := a.run(ctx, os.Args[1], os.Args[2:]); err != nil {
		fmt.Fprintln(os.Stderr, renderError(err))
		os.Exit(1)
	}
}

func (a *app) run(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "register":
		return a.register(ctx, args)
	case "login":
		return a.login(ctx, args)
	case "logout":
		return a.sess.Clear()
	case "whoami":
		return a.whoami(ctx)
	case "doctors":
		return a.doctors(ctx, args)
	case "doctor":
		return a.doctor(ctx, args)
	case "book":
		return a.book(ctx, args)
	case "appointments":
		return a.appointments(ctx, args)
	case "actions":
		return a.actions(ctx, args)
	case "set-status":
		return a.setStatus(ctx, args)
	case "cancel":
		return a.cancel(ctx, args)
	case "records":
		return a.records(ctx)
	case "upload-record":
		return a.uploadRecord(ctx, args)
	case "pay":
		return a.pay(ctx, args)
	case "stats":
		return a.stats(ctx)
	case "call":
		return a.call(ctx, args)
	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func (a *app) register(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("register", flag.ExitOnError)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	name := fs.String("name", "", "full name")
	phone := fs.String("phone", "", "phone number")
	role := fs.String("role", "patient", "account role (patient|doctor|admin)")
	age := fs.Int("age", 0, "age (patients)")
	gender := fs.String("gender", "", "gender (patients)")
	fs.Parse(args)

	resp, err := a.client.Auth.Register(ctx, api.RegisterRequest{
		Email:    *email,
		Password: *password,
		Name:     *name,
		Phone:    *phone,
		Role:     model.Role(*role),
		Age:      *age,
		Gender:   *gender,
	})
	if err != nil {
		return err
	}
	if err := a.sess.Establish(resp.AccessToken, resp.User); err != nil {
		return err
	}
	fmt.Printf("Registered and logged in as %s (%s)\n", resp.User.Name, resp.User.Role)
	return nil
}

func (a *app) login(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	role := fs.String("role", "patient", "account role (patient|doctor|admin)")
	fs.Parse(args)

	resp, err := a.client.Auth.Login(ctx, *email, *password, model.Role(*role))
	if err != nil {
		return err
	}
	if err := a.sess.Establish(resp.AccessToken, resp.User); err != nil {
		return err
	}
	fmt.Printf("Logged in as %s (%s)\n", resp.User.Name, resp.User.Role)
	return nil
}

func (a *app) whoami(ctx context.Context) error {
	snap := a.sess.Current()
	if !snap.Authenticated {
		fmt.Println("Not logged in.")
		return nil
	}
	user, err := a.client.Auth.Me(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("%s <%s> role=%s\n", user.Name, user.Email, user.Role)
	return nil
}

func (a *app) doctors(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("doctors", flag.ExitOnError)
	specialty := fs.String("specialty", "", "filter by specialty name")
	search := fs.String("search", "", "search doctor or specialty names")
	limit := fs.Int("limit", 20, "page size")
	offset := fs.Int("offset", 0, "page offset")
	fs.Parse(args)

	doctors, total, err := a.client.Doctors.List(ctx, api.DoctorFilters{
		Specialty: *specialty,
		Search:    *search,
		Limit:     *limit,
		Offset:    *offset,
	})
	if err != nil {
		return err
	}
	if len(doctors) == 0 {
		fmt.Println("No doctors found.")
		return nil
	}
	for _, d := range doctors {
		printDoctor(d)
	}
	fmt.Printf("%d of %d doctors\n", len(doctors), total)
	return nil
}

func (a *app) doctor(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("doctor", flag.ExitOnError)
	id := fs.String("id", "", "doctor id")
	fs.Parse(args)

	d, err := a.client.Doctors.Get(ctx, *id)
	if err != nil {
		return err
	}
	printDoctor(d)
	return nil
}

func (a *app) book(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("book", flag.ExitOnError)
	doctorID := fs.String("doctor", "", "doctor id")
	date := fs.String("date", "", "date, e.g. 2025-01-25")
	timeSlot := fs.String("time", "", "time slot, e.g. 10:00 AM")
	kind := fs.String("type", "video", "consultation type (video|in-person)")
	symptoms := fs.String("symptoms", "", "symptoms description")
	fs.Parse(args)

	appt, err := a.client.Appointments.Create(ctx, api.CreateAppointmentRequest{
		DoctorID: *doctorID,
		Date:     *date,
		Time:     *timeSlot,
		Type:     model.AppointmentType(*kind),
		Symptoms: *symptoms,
	})
	if err != nil {
		return err
	}
	fmt.Printf("Booked %s %s %s (%s), fee %.2f\n", appt.ID, appt.Date, appt.Time, appt.Status, appt.Fee)
	return a.appointments(ctx, nil)
}

func (a *app) appointments(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("appointments", flag.ExitOnError)
	status := fs.String("status", "", "filter by status")
	fs.Parse(args)

	appts, err := a.client.Appointments.List(ctx, api.AppointmentFilters{
		Status: model.AppointmentStatus(*status),
	})
	if err != nil {
		return err
	}
	if len(appts) == 0 {
		fmt.Println("No appointments.")
		return nil
	}
	for _, appt := range appts {
		fmt.Printf("%s  %s %s  %-10s %-9s pay=%s\n",
			appt.ID, appt.Date, appt.Time, appt.Status, appt.Type, appt.PaymentStatus)
	}
	return nil
}

// actions shows which status changes the state machine offers; anything
// else is not presented, mirroring the action buttons of the web UI.
func (a *app) actions(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("actions", flag.ExitOnError)
	id := fs.String("id", "", "appointment id")
	fs.Parse(args)

	appts, err := a.client.Appointments.List(ctx, api.AppointmentFilters{})
	if err != nil {
		return err
	}
	for _, appt := range appts {
		if appt.ID != *id {
			continue
		}
		next := model.NextStatuses(appt.Status)
		if len(next) == 0 {
			fmt.Printf("Appointment is %s; no further changes possible.\n", appt.Status)
			return nil
		}
		fmt.Printf("From %s you can move to: %v\n", appt.Status, next)
		return nil
	}
	return model.ErrNotFound
}

func (a *app) setStatus(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("set-status", flag.ExitOnError)
	id := fs.String("id", "", "appointment id")
	status := fs.String("status", "", "new status")
	fs.Parse(args)

	appt, err := a.client.Appointments.SetStatus(ctx, *id, model.AppointmentStatus(*status))
	if err != nil {
		return err
	}
	fmt.Printf("Appointment %s is now %s\n", appt.ID, appt.Status)
	return a.appointments(ctx, nil)
}

func (a *app) cancel(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("cancel", flag.ExitOnError)
	id := fs.String("id", "", "appointment id")
	fs.Parse(args)

	appt, err := a.client.Appointments.Cancel(ctx, *id)
	if err != nil {
		return err
	}
	fmt.Printf("Appointment %s cancelled\n", appt.ID)
	return a.appointments(ctx, nil)
}

func (a *app) records(ctx context.Context) error {
	records, err := a.client.Records.List(ctx)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Println("No medical records.")
		return nil
	}
	for _, rec := range records {
		fmt.Printf("%s  %-12s %s\n", rec.ID, rec.Type, rec.Title)
	}
	return nil
}

func (a *app) uploadRecord(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("upload-record", flag.ExitOnError)
	path := fs.String("file", "", "file to upload")
	title := fs.String("title", "", "record title")
	recType := fs.String("type", "other", "record type")
	notes := fs.String("notes", "", "notes")
	fs.Parse(args)

	f, err := os.Open(*path)
	if err != nil {
		return err
	}
	defer f.Close()

	rec, err := a.client.Records.Upload(ctx, api.UploadRecordRequest{
		FileName: filepath.Base(f.Name()),
		File:     f,
		Title:    *title,
		Type:     model.RecordType(*recType),
		Notes:    *notes,
	})
	if err != nil {
		return err
	}
	fmt.Printf("Uploaded %s as %s\n", rec.Title, rec.ID)
	return nil
}

func (a *app) pay(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("pay", flag.ExitOnError)
	id := fs.String("id", "", "appointment id")
	amount := fs.Float64("amount", 0, "amount to pay")
	fs.Parse(args)

	order, err := a.client.Payments.CreateOrder(ctx, *id, *amount)
	if err != nil {
		return err
	}
	fmt.Printf("Order %s for %.2f %s\n", order.OrderID, order.Amount, order.Currency)

	result, err := a.client.Payments.Verify(ctx, api.VerifyRequest{
		AppointmentID: *id,
		OrderID:       order.OrderID,
	})
	if err != nil {
		return err
	}
	fmt.Println(result.Message)
	return a.appointments(ctx, nil)
}

func (a *app) stats(ctx context.Context) error {
	stats, err := a.client.Admin.Stats(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("patients=%d doctors=%d appointments=%d revenue=%.2f\n",
		stats.TotalPatients, stats.TotalDoctors, stats.TotalAppointments, stats.Revenue)
	return nil
}

func (a *app) call(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("call", flag.ExitOnError)
	id := fs.String("id", "", "appointment id")
	fs.Parse(args)

	return consult.Run(ctx, a.client.Consultations, terminalMedia{}, *id,
		func(ctx context.Context, call *consult.Call) error {
			fmt.Printf("Joined channel %s\n", call.Credential.Channel)
			fmt.Println("Press Enter to leave the call.")
			_, _ = fmt.Scanln()
			return nil
		})
}

// terminalMedia stands in for platform camera/microphone capture, which a
// terminal has no access to. The lifecycle is the part that matters.
type terminalMedia struct{}

func (terminalMedia) Acquire(ctx context.Context) (consult.MediaDevice, error) {
	fmt.Println("Camera and microphone attached.")
	return terminalDevice{}, nil
}

type terminalDevice struct{}

func (terminalDevice) Close() error {
	fmt.Println("Camera and microphone released.")
	return nil
}

func renderError(err error) string {
	var vErr *model.ValidationError
	var aErr *model.AuthError
	var tErr *model.TransientError
	switch {
	case errors.As(err, &vErr):
		return "Invalid input: " + vErr.Detail
	case errors.As(err, &aErr):
		return "Invalid credentials."
	case errors.Is(err, model.ErrSessionExpired):
		return "Please log in with `medicare login`."
	case errors.Is(err, model.ErrNotFound):
		return "Nothing found."
	case errors.Is(err, model.ErrForbidden):
		return "You are not allowed to do that."
	case errors.As(err, &tErr):
		return "Network error: " + tErr.Err.Error() + ". Check your connection and try again."
	default:
		return "Error: " + err.Error()
	}
}

func printDoctor(d model.Doctor) {
	name, spec := "", ""
	if d.User != nil {
		name = d.User.Name
	}
	if d.Specialty != nil {
		spec = d.Specialty.Name
	}
	fmt.Printf("%s  %-22s %-14s fee=%.0f rating=%.1f %s\n",
		d.UserID, name, spec, d.Fee, d.Rating, d.Hospital)
}
