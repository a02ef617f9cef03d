package api

import (
	"context"
	"net/url"
	"strconv"

	"github.com/Okojas/MediCare-doctor-appointment/internal/gateway"
	"github.com/Okojas/MediCare-doctor-appointment/internal/model"
)

// DoctorService reads the doctor directory. Directory entries are
// read-only from the client's perspective.
type DoctorService struct {
	gw *gateway.Gateway
}

// DoctorFilters narrows a directory listing. Zero values mean no
// constraint, not an empty result.
type DoctorFilters struct {
	Specialty string
	Search    string
	Limit     int
	Offset    int
}

type doctorListResponse struct {
	Doctors []model.Doctor `json:"doctors"`
	Total   int            `json:"total"`
}

// List returns directory entries matching the filters plus the total
// number of matches before pagination.
func (s *DoctorService) List(ctx context.Context, f DoctorFilters) ([]model.Doctor, int, error) {
	query := url.Values{}
	if f.Specialty != "" {
		query.Set("specialty", f.Specialty)
	}
	if f.Search != "" {
		query.Set("search", f.Search)
	}
	if f.Limit > 0 {
		query.Set("limit", strconv.Itoa(f.Limit))
	}
	if f.Offset > 0 {
		query.Set("offset", strconv.Itoa(f.Offset))
	}

	var resp doctorListResponse
	if err := s.gw.Get(ctx, "/api/doctors", query, &resp); err != nil {
		return nil, 0, err
	}
	return resp.Doctors, resp.Total, nil
}

// Get returns one doctor by user ID.
func (s *DoctorService) Get(ctx context.Context, id string) (model.Doctor, error) {
	var doc model.Doctor
	if err := s.gw.Get(ctx, "/api/doctors/"+id, nil, &doc); err != nil {
		return model.Doctor{}, err
	}
	return doc, nil
}
