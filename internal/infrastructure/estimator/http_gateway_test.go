package estimator

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"printhub/internal/domain/entities"
	"printhub/internal/usecase/interfaces"
)

func TestNewHTTPGateway(t *testing.T) {
	t.Run("missing base URL is an error", func(t *testing.T) {
		if _, err := NewHTTPGateway("  ", 0); !errors.Is(err, ErrMissingEstimatorBaseURL) {
			t.Fatalf("expected ErrMissingEstimatorBaseURL, got %v", err)
		}
	})

	t.Run("mock mode needs no base URL", func(t *testing.T) {
		t.Setenv("ESTIMATOR_MOCK", "true")
		g, err := NewHTTPGateway("", 0)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !g.mockMode {
			t.Fatal("expected mock mode")
		}
	})
}

func TestHTTPGateway_Estimate(t *testing.T) {
	t.Run("relays the upstream body on success", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err := r.ParseMultipartForm(32 << 20); err != nil {
				t.Fatalf("parse multipart: %v", err)
			}
			file, header, err := r.FormFile("file")
			if err != nil {
				t.Fatalf("file part missing: %v", err)
			}
			defer file.Close()
			if header.Filename != "bracket.stl" {
				t.Fatalf("unexpected file name %q", header.Filename)
			}
			if r.FormValue("material") != "PETG" {
				t.Fatalf("material field not forwarded")
			}
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(entities.Estimate{
				ID:             "est-1",
				Material:       "PETG",
				EstimatedGrams: 120.5,
				EstimatedHours: 3.2,
				EstimatedPrice: 45,
				BoundingBoxMM:  entities.BoundingBox{Max: [3]float64{80, 60, 40}},
				Confidence:     "high",
			})
		}))
		defer srv.Close()

		g, err := NewHTTPGateway(srv.URL, time.Second)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		estimate, err := g.Estimate(context.Background(), interfaces.EstimateUpload{
			FileName: "bracket.stl",
			Contents: []byte("solid bracket"),
			Material: "PETG",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if estimate.ID != "est-1" || estimate.BoundingBoxMM.Max != [3]float64{80, 60, 40} {
			t.Fatalf("unexpected estimate: %+v", estimate)
		}
	})

	t.Run("non-2xx carries the upstream error message", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{"error":"slicer crashed"}`))
		}))
		defer srv.Close()

		g, err := NewHTTPGateway(srv.URL, time.Second)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		_, err = g.Estimate(context.Background(), interfaces.EstimateUpload{FileName: "a.stl", Contents: []byte("x")})
		var upstream *interfaces.UpstreamError
		if !errors.As(err, &upstream) {
			t.Fatalf("expected UpstreamError, got %v", err)
		}
		if upstream.Message != "slicer crashed" {
			t.Fatalf("upstream message dropped: %q", upstream.Message)
		}
	})

	t.Run("unparseable upstream body falls back to a generic message", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
			w.Write([]byte("<html>nope</html>"))
		}))
		defer srv.Close()

		g, err := NewHTTPGateway(srv.URL, time.Second)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		_, err = g.Estimate(context.Background(), interfaces.EstimateUpload{FileName: "a.stl", Contents: []byte("x")})
		var upstream *interfaces.UpstreamError
		if !errors.As(err, &upstream) {
			t.Fatalf("expected UpstreamError, got %v", err)
		}
		if upstream.Message != genericUpstreamError {
			t.Fatalf("expected generic message, got %q", upstream.Message)
		}
	})

	t.Run("unreachable service is an upstream error", func(t *testing.T) {
		g, err := NewHTTPGateway("http://127.0.0.1:1", time.Second)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		_, err = g.Estimate(context.Background(), interfaces.EstimateUpload{FileName: "a.stl", Contents: []byte("x")})
		var upstream *interfaces.UpstreamError
		if !errors.As(err, &upstream) {
			t.Fatalf("expected UpstreamError, got %v", err)
		}
	})
}

func TestHTTPGateway_MockEstimate(t *testing.T) {
	newMockGateway := func(t *testing.T) *HTTPGateway {
		t.Helper()
		t.Setenv("ESTIMATOR_MOCK", "1")
		g, err := NewHTTPGateway("", 0)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		return g
	}

	t.Run("grams track file size", func(t *testing.T) {
		g := newMockGateway(t)
		estimate, err := g.Estimate(context.Background(), interfaces.EstimateUpload{
			FileName: "big.stl",
			Contents: make([]byte, 2*1024*1024),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if estimate.EstimatedGrams != 209.7 {
			t.Fatalf("expected 209.7 grams for a 2MB file, got %v", estimate.EstimatedGrams)
		}
		if estimate.EstimatedHours != 10.49 {
			t.Fatalf("unexpected hours: %v", estimate.EstimatedHours)
		}
		if estimate.Confidence != "low" {
			t.Fatalf("mock estimates must be low confidence, got %q", estimate.Confidence)
		}
		if len(estimate.Warnings) == 0 {
			t.Fatal("mock estimates must carry a warning")
		}
		if estimate.FileSizeBytes != 2*1024*1024 {
			t.Fatalf("unexpected file size: %d", estimate.FileSizeBytes)
		}
		if estimate.Material != "PLA" {
			t.Fatalf("material should default to PLA, got %q", estimate.Material)
		}
	})

	t.Run("grams clamp at both ends", func(t *testing.T) {
		g := newMockGateway(t)

		small, err := g.Estimate(context.Background(), interfaces.EstimateUpload{FileName: "tiny.stl", Contents: make([]byte, 10)})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if small.EstimatedGrams != 5 {
			t.Fatalf("expected floor of 5 grams, got %v", small.EstimatedGrams)
		}
		if small.EstimatedHours != 0.5 {
			t.Fatalf("expected floor of 0.5 hours, got %v", small.EstimatedHours)
		}

		huge, err := g.Estimate(context.Background(), interfaces.EstimateUpload{FileName: "huge.stl", Contents: make([]byte, 5*1024*1024)})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if huge.EstimatedGrams != 300 {
			t.Fatalf("expected ceiling of 300 grams, got %v", huge.EstimatedGrams)
		}
	})

	t.Run("material and quality move the price", func(t *testing.T) {
		g := newMockGateway(t)
		contents := make([]byte, 10)

		pla, _ := g.Estimate(context.Background(), interfaces.EstimateUpload{FileName: "a.stl", Contents: contents, Material: "PLA"})
		petg, _ := g.Estimate(context.Background(), interfaces.EstimateUpload{FileName: "a.stl", Contents: contents, Material: "PETG"})
		fine, _ := g.Estimate(context.Background(), interfaces.EstimateUpload{FileName: "a.stl", Contents: contents, Material: "PLA", Quality: "fine"})

		if pla.EstimatedPrice != 131 {
			t.Fatalf("unexpected PLA price: %v", pla.EstimatedPrice)
		}
		if petg.EstimatedPrice <= pla.EstimatedPrice {
			t.Fatalf("PETG should cost more than PLA: %v vs %v", petg.EstimatedPrice, pla.EstimatedPrice)
		}
		if fine.EstimatedPrice <= pla.EstimatedPrice {
			t.Fatalf("fine quality should cost more: %v vs %v", fine.EstimatedPrice, pla.EstimatedPrice)
		}
	})
}
