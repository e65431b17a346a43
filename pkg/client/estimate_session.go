package client

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/shopspring/decimal"
)

// SessionState is the estimate flow's state machine.
type SessionState string

const (
	SessionIdle      SessionState = "idle"
	SessionUploading SessionState = "uploading"
	SessionEstimated SessionState = "estimated"
	SessionFailed    SessionState = "failed"
)

var (
	// ErrSuperseded reports that a newer file selection replaced this
	// request while it was in flight; its response was discarded.
	ErrSuperseded = errors.New("estimate request superseded")

	// ErrNoEstimate reports an AddToCart with nothing to add.
	ErrNoEstimate = errors.New("no estimate to add")
)

// SignInRequiredError asks the caller to authenticate and come back. The
// session keeps its estimate so the flow can resume after sign-in.
type SignInRequiredError struct {
	ReturnPath string
}

func (e *SignInRequiredError) Error() string {
	return "sign in required"
}

// EstimateSession drives one upload-estimate-add-to-cart flow.
//
// Each file selection bumps a sequence number; a response that comes back
// for an older selection is discarded rather than applied, so the session
// always reflects the latest choice no matter how slow each request is.
type EstimateSession struct {
	api  *Client
	auth *AuthStore

	mu          sync.Mutex
	seq         uint64
	state       SessionState
	estimate    Estimate
	failure     string
	addedToCart bool
	previewPath string
}

func NewEstimateSession(api *Client, auth *AuthStore) *EstimateSession {
	return &EstimateSession{
		api:   api,
		auth:  auth,
		state: SessionIdle,
	}
}

// State returns the current session state.
func (s *EstimateSession) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Estimate returns the latest estimate, if the session holds one.
func (s *EstimateSession) Estimate() (Estimate, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.estimate, s.state == SessionEstimated || s.addedToCart
}

// Failure returns the last failure message, if the session is failed.
func (s *EstimateSession) Failure() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.failure, s.state == SessionFailed
}

// AddedToCart reports whether the current estimate has been added.
func (s *EstimateSession) AddedToCart() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addedToCart
}

// PreviewPath returns the temp file holding the selected model, or "".
func (s *EstimateSession) PreviewPath() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.previewPath
}

// SelectFile uploads a newly selected model and applies the resulting
// estimate. Selecting again while a request is in flight supersedes it:
// the older call returns ErrSuperseded and leaves no trace on the session.
func (s *EstimateSession) SelectFile(ctx context.Context, fileName string, contents []byte, material, quality string) (Estimate, error) {
	s.mu.Lock()
	s.seq++
	seq := s.seq
	s.state = SessionUploading
	s.estimate = Estimate{}
	s.failure = ""
	s.addedToCart = false
	s.replacePreviewLocked(contents)
	s.mu.Unlock()

	estimate, err := s.api.RequestEstimate(ctx, s.auth.AccessToken(), fileName, bytes.NewReader(contents), material, quality)

	s.mu.Lock()
	defer s.mu.Unlock()
	if seq != s.seq {
		return Estimate{}, ErrSuperseded
	}
	if err != nil {
		s.state = SessionFailed
		s.failure = failureMessage(err)
		return Estimate{}, err
	}
	s.state = SessionEstimated
	s.estimate = estimate
	return estimate, nil
}

// AddToCart adds the current estimate as a cart line priced at
// round(estimatedPrice*100) cents, with the physical metrics as metadata.
//
// Anonymous callers get a SignInRequiredError with a return path; the
// estimate stays on the session so the flow resumes after sign-in. A
// network failure also leaves the session Estimated so the caller can
// retry.
func (s *EstimateSession) AddToCart(ctx context.Context) (Cart, error) {
	if err := s.auth.Bootstrap(ctx); err != nil {
		return Cart{}, err
	}

	s.mu.Lock()
	if s.state != SessionEstimated {
		s.mu.Unlock()
		return Cart{}, ErrNoEstimate
	}
	estimate := s.estimate
	s.mu.Unlock()

	if s.auth.State() != StateAuthenticated {
		return Cart{}, &SignInRequiredError{ReturnPath: "/estimate"}
	}

	dims := estimate.Dimensions()
	cart, err := s.api.AddCartItem(ctx, s.auth.AccessToken(), AddCartItemInput{
		SKU:            estimate.ID,
		DisplayName:    fmt.Sprintf("Custom print: %s", estimate.FileName),
		Quantity:       1,
		UnitPriceCents: priceCents(estimate.EstimatedPrice),
		Metadata: map[string]any{
			"estimateId":     estimate.ID,
			"material":       estimate.Material,
			"estimatedGrams": estimate.EstimatedGrams,
			"estimatedHours": estimate.EstimatedHours,
			"dimensionsMm":   fmt.Sprintf("%g x %g x %g", dims[0], dims[1], dims[2]),
		},
	})
	if err != nil {
		return Cart{}, err
	}

	s.mu.Lock()
	s.addedToCart = true
	s.mu.Unlock()
	return cart, nil
}

// Close removes the preview file. The session is not reusable afterwards.
func (s *EstimateSession) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.previewPath == "" {
		return nil
	}
	err := os.Remove(s.previewPath)
	s.previewPath = ""
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// replacePreviewLocked writes the selected model to a fresh temp file and
// drops the previous one. Callers hold s.mu.
func (s *EstimateSession) replacePreviewLocked(contents []byte) {
	if s.previewPath != "" {
		_ = os.Remove(s.previewPath)
		s.previewPath = ""
	}
	tmp, err := os.CreateTemp("", "printhub-preview-*")
	if err != nil {
		return
	}
	if _, err := tmp.Write(contents); err != nil {
		tmp.Close()
		_ = os.Remove(tmp.Name())
		return
	}
	tmp.Close()
	s.previewPath = tmp.Name()
}

func priceCents(price float64) int64 {
	return decimal.NewFromFloat(price).Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}

func failureMessage(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return "Could not estimate this model. Please try again."
}
