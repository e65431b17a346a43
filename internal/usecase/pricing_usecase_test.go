package usecase

import (
	"context"
	"errors"
	"io"
	"testing"

	"printhub/internal/domain/entities"
	"printhub/internal/usecase/interfaces"
	mock_interfaces "printhub/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

func validEstimate() entities.Estimate {
	return entities.Estimate{
		ID:                "est-1",
		Material:          "PLA",
		EstimatedGrams:    120.5,
		EstimatedHours:    3.2,
		EstimatedPrice:    45.00,
		BoundingBoxMM:     entities.BoundingBox{Max: [3]float64{80, 60, 40}},
		TriangleCount:     15234,
		RecommendedInfill: 20,
		Warnings:          []string{},
		FileName:          "bracket.stl",
		FileSizeBytes:     2 * 1024 * 1024,
		Confidence:        "high",
	}
}

func TestPricingUseCase_RequestEstimate(t *testing.T) {
	t.Run("missing file never reaches the gateway", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		gateway := mock_interfaces.NewMockIEstimatorGateway(ctrl)
		uc := NewPricingUseCase(gateway, nil, nil)

		_, err := uc.RequestEstimate(context.Background(), EstimateInput{FileName: "", Contents: nil})
		if !errors.Is(err, ErrFileRequired) {
			t.Fatalf("expected ErrFileRequired, got %v", err)
		}

		_, err = uc.RequestEstimate(context.Background(), EstimateInput{FileName: "model.stl"})
		if !errors.Is(err, ErrFileRequired) {
			t.Fatalf("expected ErrFileRequired for empty contents, got %v", err)
		}
	})

	t.Run("unsupported extension", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		gateway := mock_interfaces.NewMockIEstimatorGateway(ctrl)
		uc := NewPricingUseCase(gateway, nil, nil)

		_, err := uc.RequestEstimate(context.Background(), EstimateInput{FileName: "model.exe", Contents: []byte("x")})
		if !errors.Is(err, ErrUnsupportedFormat) {
			t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
		}
	})

	t.Run("upstream error passes through untouched", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		gateway := mock_interfaces.NewMockIEstimatorGateway(ctrl)
		uc := NewPricingUseCase(gateway, nil, nil)

		gateway.EXPECT().Estimate(gomock.Any(), gomock.Any()).
			Return(entities.Estimate{}, &interfaces.UpstreamError{Message: "slicer crashed"})

		_, err := uc.RequestEstimate(context.Background(), EstimateInput{FileName: "model.stl", Contents: []byte("solid")})
		var upstream *interfaces.UpstreamError
		if !errors.As(err, &upstream) {
			t.Fatalf("expected UpstreamError, got %v", err)
		}
		if upstream.Message != "slicer crashed" {
			t.Fatalf("expected upstream message preserved, got %q", upstream.Message)
		}
	})

	t.Run("malformed upstream estimate becomes an upstream error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		gateway := mock_interfaces.NewMockIEstimatorGateway(ctrl)
		uc := NewPricingUseCase(gateway, nil, nil)

		broken := validEstimate()
		broken.EstimatedGrams = -5
		gateway.EXPECT().Estimate(gomock.Any(), gomock.Any()).Return(broken, nil)

		_, err := uc.RequestEstimate(context.Background(), EstimateInput{FileName: "model.stl", Contents: []byte("solid")})
		var upstream *interfaces.UpstreamError
		if !errors.As(err, &upstream) {
			t.Fatalf("expected UpstreamError for malformed estimate, got %v", err)
		}
	})

	t.Run("anonymous success skips job persistence", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		gateway := mock_interfaces.NewMockIEstimatorGateway(ctrl)
		jobs := mock_interfaces.NewMockIPrintJobRepository(ctrl)
		uc := NewPricingUseCase(gateway, jobs, nil)

		gateway.EXPECT().Estimate(gomock.Any(), gomock.Any()).Return(validEstimate(), nil)

		res, err := uc.RequestEstimate(context.Background(), EstimateInput{FileName: "bracket.stl", Contents: []byte("solid")})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.ID != "est-1" {
			t.Fatalf("unexpected estimate: %+v", res)
		}
	})

	t.Run("signed-in success records a print job", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		gateway := mock_interfaces.NewMockIEstimatorGateway(ctrl)
		jobs := mock_interfaces.NewMockIPrintJobRepository(ctrl)
		uc := NewPricingUseCase(gateway, jobs, nil)

		gateway.EXPECT().Estimate(gomock.Any(), gomock.Any()).Return(validEstimate(), nil)
		jobs.EXPECT().Create(gomock.Any(), gomock.AssignableToTypeOf(entities.PrintJob{})).DoAndReturn(
			func(_ context.Context, j entities.PrintJob) error {
				if j.ID == "" || j.UserID != "user-1" || j.EstimateID != "est-1" {
					t.Fatalf("unexpected print job: %+v", j)
				}
				if j.FileSizeBytes != 5 || j.CreatedAt.IsZero() {
					t.Fatalf("unexpected job metadata: %+v", j)
				}
				return nil
			},
		)

		_, err := uc.RequestEstimate(context.Background(), EstimateInput{
			FileName: "bracket.stl", Contents: []byte("solid"), UserID: "user-1",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("signed-in success stores the model bytes on the job", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		gateway := mock_interfaces.NewMockIEstimatorGateway(ctrl)
		jobs := mock_interfaces.NewMockIPrintJobRepository(ctrl)
		models := mock_interfaces.NewMockIModelStorage(ctrl)
		uc := NewPricingUseCase(gateway, jobs, models)

		gateway.EXPECT().Estimate(gomock.Any(), gomock.Any()).Return(validEstimate(), nil)
		models.EXPECT().Save(gomock.Any(), "bracket.stl", gomock.Any()).DoAndReturn(
			func(_ context.Context, _ string, contents io.Reader) (string, error) {
				data, err := io.ReadAll(contents)
				if err != nil {
					t.Fatalf("reading model contents: %v", err)
				}
				if string(data) != "solid" {
					t.Fatalf("unexpected model contents: %q", data)
				}
				return "abc123_42.stl", nil
			},
		)
		jobs.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, j entities.PrintJob) error {
				if j.StoragePath != "abc123_42.stl" {
					t.Fatalf("expected storage path on the job, got %+v", j)
				}
				return nil
			},
		)

		_, err := uc.RequestEstimate(context.Background(), EstimateInput{
			FileName: "bracket.stl", Contents: []byte("solid"), UserID: "user-1",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("storage failure still records the job without a path", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		gateway := mock_interfaces.NewMockIEstimatorGateway(ctrl)
		jobs := mock_interfaces.NewMockIPrintJobRepository(ctrl)
		models := mock_interfaces.NewMockIModelStorage(ctrl)
		uc := NewPricingUseCase(gateway, jobs, models)

		gateway.EXPECT().Estimate(gomock.Any(), gomock.Any()).Return(validEstimate(), nil)
		models.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any()).Return("", errors.New("disk full"))
		jobs.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, j entities.PrintJob) error {
				if j.StoragePath != "" {
					t.Fatalf("expected empty storage path after save failure, got %+v", j)
				}
				return nil
			},
		)

		res, err := uc.RequestEstimate(context.Background(), EstimateInput{
			FileName: "bracket.stl", Contents: []byte("solid"), UserID: "user-1",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.ID != "est-1" {
			t.Fatalf("expected estimate despite storage failure, got %+v", res)
		}
	})

	t.Run("anonymous estimate never touches storage", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		gateway := mock_interfaces.NewMockIEstimatorGateway(ctrl)
		jobs := mock_interfaces.NewMockIPrintJobRepository(ctrl)
		models := mock_interfaces.NewMockIModelStorage(ctrl)
		uc := NewPricingUseCase(gateway, jobs, models)

		gateway.EXPECT().Estimate(gomock.Any(), gomock.Any()).Return(validEstimate(), nil)

		_, err := uc.RequestEstimate(context.Background(), EstimateInput{FileName: "bracket.stl", Contents: []byte("solid")})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("job persistence failure does not fail the estimate", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		gateway := mock_interfaces.NewMockIEstimatorGateway(ctrl)
		jobs := mock_interfaces.NewMockIPrintJobRepository(ctrl)
		uc := NewPricingUseCase(gateway, jobs, nil)

		gateway.EXPECT().Estimate(gomock.Any(), gomock.Any()).Return(validEstimate(), nil)
		jobs.EXPECT().Create(gomock.Any(), gomock.Any()).Return(errors.New("dynamo down"))

		res, err := uc.RequestEstimate(context.Background(), EstimateInput{
			FileName: "bracket.stl", Contents: []byte("solid"), UserID: "user-1",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.ID != "est-1" {
			t.Fatalf("expected estimate despite job failure, got %+v", res)
		}
	})
}
