package estimator

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"math"
	"mime/multipart"
	"net/http"
	"os"
	"strings"
	"time"

	"printhub/internal/domain/entities"
	"printhub/internal/usecase/interfaces"

	"github.com/google/uuid"
)

var ErrMissingEstimatorBaseURL = errors.New("missing ESTIMATOR_BASE_URL")

const (
	defaultTimeout       = 30 * time.Second
	genericUpstreamError = "pricing service unavailable"
)

// HTTPGateway forwards estimate requests to the external estimation
// service as multipart/form-data and returns the service's JSON body
// unchanged.
//
// In mock mode (ESTIMATOR_MOCK) no network calls happen; a byte-size
// heuristic produces a low-confidence estimate for local development. The
// heuristic looks only at file size, never geometry.
type HTTPGateway struct {
	baseURL  string
	client   *http.Client
	mockMode bool
}

var _ interfaces.IEstimatorGateway = (*HTTPGateway)(nil)

func NewHTTPGateway(baseURL string, timeout time.Duration) (*HTTPGateway, error) {
	if isEstimatorMockEnabled() {
		log.Printf("[pricing][gateway] mock mode enabled")
		return &HTTPGateway{mockMode: true}, nil
	}
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		log.Printf("[pricing][gateway] missing ESTIMATOR_BASE_URL")
		return nil, ErrMissingEstimatorBaseURL
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &HTTPGateway{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}, nil
}

func (g *HTTPGateway) Estimate(ctx context.Context, upload interfaces.EstimateUpload) (entities.Estimate, error) {
	if g.mockMode {
		return g.mockEstimate(upload), nil
	}

	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	fw, err := mw.CreateFormFile("file", upload.FileName)
	if err != nil {
		return entities.Estimate{}, &interfaces.UpstreamError{Message: genericUpstreamError}
	}
	if _, err := fw.Write(upload.Contents); err != nil {
		return entities.Estimate{}, &interfaces.UpstreamError{Message: genericUpstreamError}
	}
	if upload.Material != "" {
		_ = mw.WriteField("material", upload.Material)
	}
	if upload.Quality != "" {
		_ = mw.WriteField("quality", upload.Quality)
	}
	if err := mw.Close(); err != nil {
		return entities.Estimate{}, &interfaces.UpstreamError{Message: genericUpstreamError}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/estimate", body)
	if err != nil {
		return entities.Estimate{}, &interfaces.UpstreamError{Message: genericUpstreamError}
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	log.Printf("[pricing][gateway] forward start file=%s bytes=%d", upload.FileName, len(upload.Contents))
	resp, err := g.client.Do(req)
	if err != nil {
		log.Printf("[pricing][gateway] forward failed file=%s err=%v", upload.FileName, err)
		return entities.Estimate{}, &interfaces.UpstreamError{Message: genericUpstreamError}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return entities.Estimate{}, &interfaces.UpstreamError{Message: genericUpstreamError}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := upstreamErrorMessage(raw)
		log.Printf("[pricing][gateway] upstream status=%d file=%s msg=%q", resp.StatusCode, upload.FileName, msg)
		return entities.Estimate{}, &interfaces.UpstreamError{Message: msg}
	}

	var estimate entities.Estimate
	if err := json.Unmarshal(raw, &estimate); err != nil {
		log.Printf("[pricing][gateway] malformed body file=%s err=%v", upload.FileName, err)
		return entities.Estimate{}, &interfaces.UpstreamError{Message: genericUpstreamError}
	}
	log.Printf("[pricing][gateway] forward success file=%s estimate_id=%s price=%.2f", upload.FileName, estimate.ID, estimate.EstimatedPrice)
	return estimate, nil
}

// mockEstimate derives everything from byte size, mirroring the thin quick
// estimate the storefront used before the estimation service existed.
func (g *HTTPGateway) mockEstimate(upload interfaces.EstimateUpload) entities.Estimate {
	bytes := float64(len(upload.Contents))
	grams := math.Max(5, math.Min(300, bytes/10000))
	hours := math.Max(0.5, grams/20)

	material := upload.Material
	if material == "" {
		material = "PLA"
	}
	matPerGram := 1.2
	if material != "PLA" {
		matPerGram = 1.6
	}
	machineRate := 150.0
	if upload.Quality == "fine" {
		machineRate = 200.0
	}
	price := grams*matPerGram + hours*machineRate + 50

	infill := 20
	if grams > 120 {
		infill = 15
	}
	if grams < 30 {
		infill = 25
	}

	log.Printf("[pricing][gateway] mock estimate file=%s bytes=%d grams=%.1f", upload.FileName, len(upload.Contents), grams)
	return entities.Estimate{
		ID:             uuid.NewString(),
		Material:       material,
		EstimatedGrams: round1(grams),
		EstimatedHours: round2(hours),
		EstimatedPrice: round2(price),
		BoundingBoxMM: entities.BoundingBox{
			Min: [3]float64{0, 0, 0},
			Max: [3]float64{round1(grams * 0.9), round1(grams * 0.5), round1(grams * 0.4)},
		},
		TriangleCount:     int(bytes / 50),
		RecommendedInfill: infill,
		Warnings:          []string{"Mock estimate derived from file size only."},
		FileName:          upload.FileName,
		FileSizeBytes:     int64(len(upload.Contents)),
		Confidence:        "low",
	}
}

// upstreamErrorMessage prefers the service's own error field.
func upstreamErrorMessage(raw []byte) string {
	var body struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(raw, &body); err == nil && strings.TrimSpace(body.Error) != "" {
		return body.Error
	}
	return genericUpstreamError
}

func isEstimatorMockEnabled() bool {
	v := strings.ToLower(strings.TrimSpace(os.Getenv("ESTIMATOR_MOCK")))
	switch v {
	case "1", "true", "yes", "on", "mock":
		return true
	}
	return false
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }
func round2(v float64) float64 { return math.Round(v*100) / 100 }
