package api

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/Okojas/MediCare-doctor-appointment/internal/model"
)

func TestUploadAndListRecords(t *testing.T) {
	f := newFixture(t)
	user := f.loginPatient(t)

	rec, err := f.client.Records.Upload(context.Background(), UploadRecordRequest{
		FileName: "blood-report.pdf",
		File:     strings.NewReader("%PDF-1.4 fake report"),
		Title:    "Blood Report",
		Type:     model.RecordLabReport,
		Notes:    "Routine checkup",
	})
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if rec.Title != "Blood Report" || rec.Type != model.RecordLabReport {
		t.Errorf("unexpected record: %+v", rec)
	}
	if rec.PatientID != user.ID {
		t.Errorf("record owner = %q, want caller", rec.PatientID)
	}

	records, err := f.client.Records.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(records) != 1 || records[0].ID != rec.ID {
		t.Errorf("list = %v", records)
	}
}

func TestUploadTitleDefaultsToFileName(t *testing.T) {
	f := newFixture(t)
	f.loginPatient(t)

	rec, err := f.client.Records.Upload(context.Background(), UploadRecordRequest{
		FileName: "xray.png",
		File:     strings.NewReader("png-bytes"),
		Type:     model.RecordXRay,
	})
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if rec.Title != "xray.png" {
		t.Errorf("title = %q, want file name", rec.Title)
	}
}

func TestUploadWithoutFileRejectedLocally(t *testing.T) {
	f := newFixture(t)
	f.loginPatient(t)

	_, err := f.client.Records.Upload(context.Background(), UploadRecordRequest{Title: "empty"})
	var vErr *model.ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("got %v, want ValidationError", err)
	}
}
