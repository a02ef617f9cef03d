package api

import (
	"context"
	"io"

	"github.com/Okojas/MediCare-doctor-appointment/internal/gateway"
	"github.com/Okojas/MediCare-doctor-appointment/internal/model"
)

// RecordService lists and uploads medical records.
type RecordService struct {
	gw *gateway.Gateway
}

type recordListResponse struct {
	Records []model.MedicalRecord `json:"records"`
}

// List returns the caller's medical records.
func (s *RecordService) List(ctx context.Context) ([]model.MedicalRecord, error) {
	var resp recordListResponse
	if err := s.gw.Get(ctx, "/api/medical-records", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Records, nil
}

// UploadRecordRequest attaches a document to the caller's file. Title
// defaults to the file name server-side when empty.
type UploadRecordRequest struct {
	FileName string
	File     io.Reader
	Title    string
	Type     model.RecordType
	Notes    string
}

type recordUploadResponse struct {
	Message string              `json:"message"`
	Record  model.MedicalRecord `json:"record"`
}

// Upload sends the document as multipart form data.
func (s *RecordService) Upload(ctx context.Context, req UploadRecordRequest) (model.MedicalRecord, error) {
	if req.FileName == "" || req.File == nil {
		return model.MedicalRecord{}, &model.ValidationError{Detail: "file is required"}
	}
	fields := map[string]string{}
	if req.Title != "" {
		fields["title"] = req.Title
	}
	if req.Type != "" {
		fields["type"] = string(req.Type)
	}
	if req.Notes != "" {
		fields["notes"] = req.Notes
	}

	var resp recordUploadResponse
	if err := s.gw.Upload(ctx, "/api/medical-records", fields, req.FileName, req.File, &resp); err != nil {
		return model.MedicalRecord{}, err
	}
	return resp.Record, nil
}
