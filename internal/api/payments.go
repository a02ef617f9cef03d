package api

import (
	"context"

	"github.com/Okojas/MediCare-doctor-appointment/internal/gateway"
	"github.com/Okojas/MediCare-doctor-appointment/internal/model"
)

// PaymentService creates and verifies payment orders for booked
// appointments. The payment provider itself lives behind the backend.
type PaymentService struct {
	gw *gateway.Gateway
}

type createOrderRequest struct {
	AppointmentID string  `json:"appointment_id"`
	Amount        float64 `json:"amount"`
}

// PaymentOrder is a provider order the caller completes out of band.
type PaymentOrder struct {
	OrderID  string  `json:"order_id"`
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
	Key      string  `json:"key"`
	Message  string  `json:"message"`
}

// CreateOrder opens a payment order for an appointment fee.
func (s *PaymentService) CreateOrder(ctx context.Context, appointmentID string, amount float64) (PaymentOrder, error) {
	if appointmentID == "" {
		return PaymentOrder{}, &model.ValidationError{Detail: "appointment_id is required"}
	}
	var order PaymentOrder
	err := s.gw.Post(ctx, "/api/payments/create-order", createOrderRequest{AppointmentID: appointmentID, Amount: amount}, &order)
	if err != nil {
		return PaymentOrder{}, err
	}
	return order, nil
}

// VerifyRequest confirms a completed provider payment against an order.
type VerifyRequest struct {
	AppointmentID string `json:"appointment_id"`
	OrderID       string `json:"order_id,omitempty"`
	PaymentID     string `json:"payment_id,omitempty"`
	Signature     string `json:"signature,omitempty"`
}

// VerifyResult reports whether the backend accepted the payment.
type VerifyResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Verify marks the appointment paid once the backend accepts the provider
// confirmation.
func (s *PaymentService) Verify(ctx context.Context, req VerifyRequest) (VerifyResult, error) {
	if req.AppointmentID == "" {
		return VerifyResult{}, &model.ValidationError{Detail: "appointment_id is required"}
	}
	var result VerifyResult
	if err := s.gw.Post(ctx, "/api/payments/verify", req, &result); err != nil {
		return VerifyResult{}, err
	}
	return result, nil
}
