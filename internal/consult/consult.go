// Package consult models the video consultation lifecycle. It owns the one
// resource contract that matters here: the call credential is fetched from
// the backend before any local media device is acquired, and an acquired
// device is released on every exit path.
package consult

import (
	"context"
	"errors"
	"sync"

	"github.com/Okojas/MediCare-doctor-appointment/internal/api"
)

var ErrCallEnded = errors.New("consult: call already ended")

// MediaDevice is a live camera/microphone capture handle.
type MediaDevice interface {
	Close() error
}

// MediaProvider acquires local capture devices. The real provider is
// platform capture; tests inject fakes.
type MediaProvider interface {
	Acquire(ctx context.Context) (MediaDevice, error)
}

// TokenSource fetches call credentials. *api.ConsultationService
// satisfies it.
type TokenSource interface {
	GetToken(ctx context.Context, appointmentID string) (api.CallCredential, error)
}

// Call is an active consultation. The media device is exclusively owned by
// the Call and released by End.
type Call struct {
	AppointmentID string
	Credential    api.CallCredential

	mu     sync.Mutex
	device MediaDevice
	ended  bool
}

// Start joins a consultation: credential first, media second. If the
// credential fetch fails no device was ever acquired, so there is nothing
// to release.
func Start(ctx context.Context, tokens TokenSource, media MediaProvider, appointmentID string) (*Call, error) {
	cred, err := tokens.GetToken(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	device, err := media.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	return &Call{
		AppointmentID: appointmentID,
		Credential:    cred,
		device:        device,
	}, nil
}

// End releases the media device. Idempotent; later calls return
// ErrCallEnded without touching the device again.
func (c *Call) End() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.ended {
		return ErrCallEnded
	}
	c.ended = true
	return c.device.Close()
}

// Run starts a call, invokes fn, and guarantees the device is released
// whether fn returns, fails, or panics.
func Run(ctx context.Context, tokens TokenSource, media MediaProvider, appointmentID string, fn func(ctx context.Context, call *Call) error) error {
	call, err := Start(ctx, tokens, media, appointmentID)
	if err != nil {
		return err
	}
	defer call.End()
	return fn(ctx, call)
}
