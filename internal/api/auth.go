package api

import (
	"context"

	"github.com/Okojas/MediCare-doctor-appointment/internal/gateway"
	"github.com/Okojas/MediCare-doctor-appointment/internal/model"
)

// AuthService handles registration, login and identity lookup. On success
// the caller is responsible for establishing the session with the returned
// token and user.
type AuthService struct {
	gw *gateway.Gateway
}

// RegisterRequest is the registration payload. Age and Gender only apply
// to patient accounts.
type RegisterRequest struct {
	Email    string     `json:"email"`
	Password string     `json:"password"`
	Name     string     `json:"name"`
	Phone    string     `json:"phone,omitempty"`
	Role     model.Role `json:"role"`
	Age      int        `json:"age,omitempty"`
	Gender   string     `json:"gender,omitempty"`
}

// AuthResponse carries the issued credential and the authenticated user.
type AuthResponse struct {
	AccessToken string     `json:"access_token"`
	TokenType   string     `json:"token_type"`
	User        model.User `json:"user"`
}

// Register creates an account and returns a fresh credential.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (AuthResponse, error) {
	switch {
	case req.Email == "":
		return AuthResponse{}, &model.ValidationError{Detail: "email is required"}
	case req.Password == "":
		return AuthResponse{}, &model.ValidationError{Detail: "password is required"}
	case req.Name == "":
		return AuthResponse{}, &model.ValidationError{Detail: "name is required"}
	case req.Role == "":
		return AuthResponse{}, &model.ValidationError{Detail: "role is required"}
	}

	var resp AuthResponse
	if err := s.gw.Post(ctx, "/api/auth/register", req, &resp); err != nil {
		return AuthResponse{}, err
	}
	return resp, nil
}

type loginRequest struct {
	Email    string     `json:"email"`
	Password string     `json:"password"`
	Role     model.Role `json:"role"`
}

// Login authenticates an account. Role is part of the request, not
// inferred; the same email may exist under several roles.
func (s *AuthService) Login(ctx context.Context, email, password string, role model.Role) (AuthResponse, error) {
	var resp AuthResponse
	err := s.gw.Post(ctx, "/api/auth/login", loginRequest{Email: email, Password: password, Role: role}, &resp)
	if err != nil {
		return AuthResponse{}, err
	}
	return resp, nil
}

// Me returns the user the current credential belongs to.
func (s *AuthService) Me(ctx context.Context) (model.User, error) {
	var user model.User
	if err := s.gw.Get(ctx, "/api/auth/me", nil, &user); err != nil {
		return model.User{}, err
	}
	return user, nil
}
