package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/Okojas/MediCare-doctor-appointment/internal/ids"
	"github.com/Okojas/MediCare-doctor-appointment/internal/model"
	"github.com/Okojas/MediCare-doctor-appointment/internal/session"
)

// Gateway is the single chokepoint for all backend calls. It injects the
// bearer credential from the session, maps error responses onto the client
// error taxonomy, and handles unauthorized responses centrally: one session
// teardown and one expiry notification per established session, no matter
// how many requests are in flight when the credential dies.
type Gateway struct {
	baseURL    string
	httpClient *http.Client
	session    *session.Store
	limiter    *rate.Limiter
	logger     *slog.Logger
	onExpired  func()
}

// Option configures a Gateway.
type Option func(*Gateway)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(g *Gateway) { g.httpClient = c }
}

// WithRateLimit caps outgoing requests with a token bucket.
func WithRateLimit(rps float64, burst int) Option {
	return func(g *Gateway) { g.limiter = rate.NewLimiter(rate.Limit(rps), burst) }
}

// WithLogger sets the request logger.
func WithLogger(l *slog.Logger) Option {
	return func(g *Gateway) { g.logger = l }
}

// New creates a Gateway for the given base URL. The base address is fixed
// for the life of the process.
func New(baseURL string, sess *session.Store, opts ...Option) *Gateway {
	g := &Gateway{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 15 * time.Second},
		session:    sess,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// OnSessionExpired registers the single application-level subscriber
// notified when the session is torn down after an unauthorized response.
// The gateway never performs navigation itself.
func (g *Gateway) OnSessionExpired(fn func()) {
	g.onExpired = fn
}

// Get issues a GET request and decodes the JSON response into out.
func (g *Gateway) Get(ctx context.Context, path string, query url.Values, out any) error {
	return g.do(ctx, http.MethodGet, path, query, "", nil, out)
}

// Post issues a POST request with a JSON body.
func (g *Gateway) Post(ctx context.Context, path string, body, out any) error {
	r, err := encodeJSON(body)
	if err != nil {
		return err
	}
	return g.do(ctx, http.MethodPost, path, nil, "application/json", r, out)
}

// Patch issues a PATCH request with a JSON body.
func (g *Gateway) Patch(ctx context.Context, path string, body, out any) error {
	r, err := encodeJSON(body)
	if err != nil {
		return err
	}
	return g.do(ctx, http.MethodPatch, path, nil, "application/json", r, out)
}

// Upload issues a multipart POST with one file part plus plain form fields.
func (g *Gateway) Upload(ctx context.Context, path string, fields map[string]string, fileName string, file io.Reader, out any) error {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			return err
		}
	}
	part, err := mw.CreateFormFile("file", fileName)
	if err != nil {
		return err
	}
	if _, err := io.Copy(part, file); err != nil {
		return err
	}
	if err := mw.Close(); err != nil {
		return err
	}
	return g.do(ctx, http.MethodPost, path, nil, mw.FormDataContentType(), &buf, out)
}

func (g *Gateway) do(ctx context.Context, method, path string, query url.Values, contentType string, body io.Reader, out any) error {
	if g.limiter != nil {
		if err := g.limiter.Wait(ctx); err != nil {
			return &model.TransientError{Op: method + " " + path, Err: err}
		}
	}

	u := g.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", ids.New())

	// The snapshot pins the session generation the request is sent under,
	// so a 401 can be attributed to the right session later.
	snap := g.session.Current()
	if snap.Authenticated {
		req.Header.Set("Authorization", "Bearer "+snap.Token)
	}

	start := time.Now()
	resp, err := g.httpClient.Do(req)
	if err != nil {
		observe(method, path, 0, time.Since(start))
		return &model.TransientError{Op: method + " " + path, Err: err}
	}
	defer resp.Body.Close()

	observe(method, path, resp.StatusCode, time.Since(start))
	g.logger.Debug("request",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"duration", time.Since(start),
	)

	if resp.StatusCode >= 400 {
		return g.mapError(snap, method, path, resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("medicare: decode %s %s: %w", method, path, err)
	}
	return nil
}

// mapError translates an error response onto the client taxonomy. A 401 on
// a credentialed request means the session died: exactly one goroutine wins
// the Invalidate race, fires the expiry notification, and every in-flight
// caller still gets ErrSessionExpired so its own call fails visibly.
func (g *Gateway) mapError(snap session.Snapshot, method, path string, resp *http.Response) error {
	detail := readDetail(resp.Body)

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		if !snap.Authenticated {
			return &model.AuthError{Detail: detail}
		}
		if g.session.Invalidate(snap.Generation) {
			g.logger.Info("session expired, cleared credentials", "path", path)
			if g.onExpired != nil {
				g.onExpired()
			}
		}
		return model.ErrSessionExpired
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return &model.ValidationError{Detail: detail}
	case http.StatusForbidden:
		return fmt.Errorf("%w: %s", model.ErrForbidden, detail)
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", model.ErrNotFound, detail)
	default:
		return fmt.Errorf("medicare: %s %s: unexpected status %d: %s", method, path, resp.StatusCode, detail)
	}
}

// readDetail extracts a human-readable message from an error body. The
// backend answers FastAPI-style {"detail": "..."}; {"error": "..."} is
// accepted for compatibility.
func readDetail(r io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(r, 4096))
	if err != nil || len(data) == 0 {
		return ""
	}
	var body struct {
		Detail string `json:"detail"`
		Error  string `json:"error"`
	}
	if err := json.Unmarshal(data, &body); err == nil {
		if body.Detail != "" {
			return body.Detail
		}
		if body.Error != "" {
			return body.Error
		}
	}
	return strings.TrimSpace(string(data))
}

func encodeJSON(body any) (io.Reader, error) {
	if body == nil {
		return nil, nil
	}
	data, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}
	return bytes.NewReader(data), nil
}
