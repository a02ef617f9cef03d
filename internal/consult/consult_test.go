package consult

import (
	"context"
	"errors"
	"testing"

	"github.com/Okojas/MediCare-doctor-appointment/internal/api"
)

type fakeDevice struct {
	closes int
}

func (d *fakeDevice) Close() error {
	d.closes++
	return nil
}

type fakeProvider struct {
	device   *fakeDevice
	err      error
	acquired bool
}

func (p *fakeProvider) Acquire(ctx context.Context) (MediaDevice, error) {
	p.acquired = true
	if p.err != nil {
		return nil, p.err
	}
	return p.device, nil
}

type fakeTokens struct {
	cred   api.CallCredential
	err    error
	called bool
}

func (s *fakeTokens) GetToken(ctx context.Context, appointmentID string) (api.CallCredential, error) {
	s.called = true
	return s.cred, s.err
}

func TestTokenFetchedBeforeMediaAcquired(t *testing.T) {
	tokens := &fakeTokens{err: errors.New("appointment not found")}
	media := &fakeProvider{device: &fakeDevice{}}

	_, err := Start(context.Background(), tokens, media, "a-1")
	if err == nil {
		t.Fatal("expected error from token fetch")
	}
	if media.acquired {
		t.Error("media must not be acquired when the credential fetch fails")
	}
}

func TestEndReleasesDevice(t *testing.T) {
	tokens := &fakeTokens{cred: api.CallCredential{Token: "t", Channel: "ch"}}
	device := &fakeDevice{}
	media := &fakeProvider{device: device}

	call, err := Start(context.Background(), tokens, media, "a-1")
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := call.End(); err != nil {
		t.Fatalf("end: %v", err)
	}
	if device.closes != 1 {
		t.Errorf("device closed %d times, want 1", device.closes)
	}
	if err := call.End(); !errors.Is(err, ErrCallEnded) {
		t.Errorf("second end = %v, want ErrCallEnded", err)
	}
	if device.closes != 1 {
		t.Error("repeated End must not close the device again")
	}
}

func TestRunReleasesOnError(t *testing.T) {
	tokens := &fakeTokens{}
	device := &fakeDevice{}
	media := &fakeProvider{device: device}

	wantErr := errors.New("call dropped")
	err := Run(context.Background(), tokens, media, "a-1", func(ctx context.Context, call *Call) error {
		return wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("run = %v, want the call error", err)
	}
	if device.closes != 1 {
		t.Errorf("device closed %d times, want 1 on the error path", device.closes)
	}
}

func TestRunReleasesOnPanic(t *testing.T) {
	tokens := &fakeTokens{}
	device := &fakeDevice{}
	media := &fakeProvider{device: device}

	func() {
		defer func() { recover() }()
		_ = Run(context.Background(), tokens, media, "a-1", func(ctx context.Context, call *Call) error {
			panic("renderer crashed")
		})
	}()

	if device.closes != 1 {
		t.Errorf("device closed %d times, want 1 on the panic path", device.closes)
	}
}

func TestAcquireFailureNeedsNoRelease(t *testing.T) {
	tokens := &fakeTokens{}
	media := &fakeProvider{err: errors.New("camera busy")}

	_, err := Start(context.Background(), tokens, media, "a-1")
	if err == nil {
		t.Fatal("expected acquire error")
	}
	if !tokens.called {
		t.Error("token fetch must precede the acquire attempt")
	}
}
