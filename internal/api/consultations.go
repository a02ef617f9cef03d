package api

import (
	"context"

	"github.com/Okojas/MediCare-doctor-appointment/internal/gateway"
	"github.com/Okojas/MediCare-doctor-appointment/internal/model"
)

// ConsultationService issues call credentials for video appointments.
type ConsultationService struct {
	gw *gateway.Gateway
}

// CallCredential joins a caller to an appointment's video channel.
type CallCredential struct {
	Token   string `json:"token"`
	Channel string `json:"channel"`
}

// GetToken fetches the call credential for an appointment. Must be called
// before any local media device is acquired.
func (s *ConsultationService) GetToken(ctx context.Context, appointmentID string) (CallCredential, error) {
	if appointmentID == "" {
		return CallCredential{}, &model.ValidationError{Detail: "appointment id is required"}
	}
	var cred CallCredential
	if err := s.gw.Get(ctx, "/api/consultations/"+appointmentID+"/token", nil, &cred); err != nil {
		return CallCredential{}, err
	}
	return cred, nil
}
