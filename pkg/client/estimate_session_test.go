package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// anonymousStore returns an AuthStore that has already settled as
// anonymous, so session tests exercise the estimate flow alone.
func anonymousStore(t *testing.T, api *Client) *AuthStore {
	t.Helper()
	store := NewAuthStore(api, NewMemoryStorage())
	require.NoError(t, store.Bootstrap(context.Background()))
	return store
}

func TestEstimateSession_SelectFile(t *testing.T) {
	t.Run("a two megabyte model estimates end to end", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/estimates" {
				t.Errorf("unexpected request to %s", r.URL.Path)
				return
			}
			file, _, err := r.FormFile("file")
			if err != nil {
				t.Errorf("file part missing: %v", err)
				return
			}
			defer file.Close()
			n, _ := io.Copy(io.Discard, file)
			if n != 2*1024*1024 {
				t.Errorf("expected the full upload, got %d bytes", n)
			}
			json.NewEncoder(w).Encode(Estimate{
				ID:             "est-1",
				Material:       "PLA",
				EstimatedGrams: 209.7,
				EstimatedHours: 10.49,
				EstimatedPrice: 45.5,
				BoundingBoxMm:  BoundingBox{Max: [3]float64{80, 60, 40}},
				FileName:       "bracket.stl",
				Confidence:     "low",
			})
		}))
		defer srv.Close()

		api := NewClient(srv.URL, srv.Client())
		session := NewEstimateSession(api, anonymousStore(t, api))
		defer session.Close()

		estimate, err := session.SelectFile(context.Background(), "bracket.stl", make([]byte, 2*1024*1024), "PLA", "")
		require.NoError(t, err)
		assert.Equal(t, SessionEstimated, session.State())
		assert.Equal(t, [3]float64{80, 60, 40}, estimate.Dimensions())
	})

	t.Run("a newer selection supersedes an in-flight one", func(t *testing.T) {
		firstArrived := make(chan struct{})
		releaseFirst := make(chan struct{})
		var calls atomic.Int32

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := "est-fast"
			if calls.Add(1) == 1 {
				id = "est-slow"
				close(firstArrived)
				<-releaseFirst
			}
			json.NewEncoder(w).Encode(Estimate{ID: id, EstimatedPrice: 10})
		}))
		defer srv.Close()

		api := NewClient(srv.URL, srv.Client())
		session := NewEstimateSession(api, anonymousStore(t, api))
		defer session.Close()

		firstDone := make(chan error, 1)
		go func() {
			_, err := session.SelectFile(context.Background(), "slow.stl", []byte("slow"), "", "")
			firstDone <- err
		}()

		<-firstArrived
		estimate, err := session.SelectFile(context.Background(), "fast.stl", []byte("fast"), "", "")
		require.NoError(t, err)
		assert.Equal(t, "est-fast", estimate.ID)

		close(releaseFirst)
		assert.ErrorIs(t, <-firstDone, ErrSuperseded)

		got, ok := session.Estimate()
		require.True(t, ok)
		assert.Equal(t, "est-fast", got.ID, "the stale response must not replace the newer estimate")
		assert.Equal(t, SessionEstimated, session.State())
	})

	t.Run("an estimator failure surfaces its message", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
			json.NewEncoder(w).Encode(map[string]string{"error": "slicer crashed"})
		}))
		defer srv.Close()

		api := NewClient(srv.URL, srv.Client())
		session := NewEstimateSession(api, anonymousStore(t, api))
		defer session.Close()

		_, err := session.SelectFile(context.Background(), "bad.stl", []byte("bad"), "", "")
		require.Error(t, err)
		assert.Equal(t, SessionFailed, session.State())
		msg, ok := session.Failure()
		require.True(t, ok)
		assert.Equal(t, "slicer crashed", msg)
	})

	t.Run("selecting a new file replaces the preview", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(Estimate{ID: "est-1"})
		}))
		defer srv.Close()

		api := NewClient(srv.URL, srv.Client())
		session := NewEstimateSession(api, anonymousStore(t, api))

		_, err := session.SelectFile(context.Background(), "a.stl", []byte("first"), "", "")
		require.NoError(t, err)
		first := session.PreviewPath()
		require.NotEmpty(t, first)

		_, err = session.SelectFile(context.Background(), "b.stl", []byte("second"), "", "")
		require.NoError(t, err)
		second := session.PreviewPath()
		require.NotEmpty(t, second)
		assert.NotEqual(t, first, second)

		_, statErr := os.Stat(first)
		assert.True(t, errors.Is(statErr, os.ErrNotExist), "the old preview must be removed")

		contents, err := os.ReadFile(second)
		require.NoError(t, err)
		assert.Equal(t, "second", string(contents))

		require.NoError(t, session.Close())
		_, statErr = os.Stat(second)
		assert.True(t, errors.Is(statErr, os.ErrNotExist))
		assert.Empty(t, session.PreviewPath())
	})
}

func TestEstimateSession_AddToCart(t *testing.T) {
	t.Run("anonymous callers are asked to sign in and keep the estimate", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/estimates" {
				json.NewEncoder(w).Encode(Estimate{ID: "est-1", EstimatedPrice: 45.5, FileName: "bracket.stl"})
				return
			}
			t.Errorf("unexpected request to %s", r.URL.Path)
		}))
		defer srv.Close()

		api := NewClient(srv.URL, srv.Client())
		session := NewEstimateSession(api, anonymousStore(t, api))
		defer session.Close()

		_, err := session.SelectFile(context.Background(), "bracket.stl", []byte("solid"), "", "")
		require.NoError(t, err)

		_, err = session.AddToCart(context.Background())
		var signIn *SignInRequiredError
		require.ErrorAs(t, err, &signIn)
		assert.Equal(t, "/estimate", signIn.ReturnPath)

		got, ok := session.Estimate()
		require.True(t, ok, "the estimate must survive the sign-in round trip")
		assert.Equal(t, "est-1", got.ID)
		assert.Equal(t, SessionEstimated, session.State())
	})

	t.Run("without an estimate there is nothing to add", func(t *testing.T) {
		api := NewClient("http://127.0.0.1:1", &http.Client{})
		store := NewAuthStore(api, NewMemoryStorage())
		require.NoError(t, store.Bootstrap(context.Background()))
		session := NewEstimateSession(api, store)

		_, err := session.AddToCart(context.Background())
		assert.ErrorIs(t, err, ErrNoEstimate)
	})

	t.Run("signed in callers add a line priced in cents", func(t *testing.T) {
		var added AddCartItemInput
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.URL.Path {
			case "/auth/login":
				writeAuthPayload(w, "user-1", "access-1", "refresh-1")
			case "/estimates":
				json.NewEncoder(w).Encode(Estimate{
					ID:             "est-1",
					Material:       "PLA",
					EstimatedGrams: 120.5,
					EstimatedHours: 3.2,
					EstimatedPrice: 45.55,
					BoundingBoxMm:  BoundingBox{Max: [3]float64{80, 60, 40}},
					FileName:       "bracket.stl",
				})
			case "/cart/items":
				if r.Header.Get("Authorization") != "Bearer access-1" {
					writeAPIError(w, http.StatusUnauthorized, "Missing or invalid access token")
					return
				}
				json.NewDecoder(r.Body).Decode(&added)
				w.WriteHeader(http.StatusCreated)
				json.NewEncoder(w).Encode(Cart{
					Items:         []CartItem{{ID: "item-1", SKU: added.SKU, Quantity: 1, UnitPriceCents: added.UnitPriceCents}},
					SubtotalCents: added.UnitPriceCents,
				})
			default:
				t.Errorf("unexpected request to %s", r.URL.Path)
			}
		}))
		defer srv.Close()

		api := NewClient(srv.URL, srv.Client())
		store := NewAuthStore(api, NewMemoryStorage())
		_, err := store.Login(context.Background(), "ann@example.com", "correct horse")
		require.NoError(t, err)

		session := NewEstimateSession(api, store)
		defer session.Close()

		_, err = session.SelectFile(context.Background(), "bracket.stl", []byte("solid"), "PLA", "")
		require.NoError(t, err)

		cart, err := session.AddToCart(context.Background())
		require.NoError(t, err)
		require.Len(t, cart.Items, 1)

		assert.Equal(t, "est-1", added.SKU)
		assert.Equal(t, "Custom print: bracket.stl", added.DisplayName)
		assert.Equal(t, int64(4555), added.UnitPriceCents)
		assert.Equal(t, "est-1", added.Metadata["estimateId"])
		assert.Equal(t, "80 x 60 x 40", added.Metadata["dimensionsMm"])
		assert.True(t, session.AddedToCart())
	})
}
