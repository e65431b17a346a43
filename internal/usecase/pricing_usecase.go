package usecase

import (
	"bytes"
	"context"
	"errors"
	"log"
	"path/filepath"
	"strings"
	"time"

	"printhub/internal/domain/entities"
	"printhub/internal/usecase/interfaces"

	"github.com/google/uuid"
)

var (
	ErrFileRequired      = errors.New("file required")
	ErrUnsupportedFormat = errors.New("unsupported file format")
)

// supportedExtensions is the geometry-format whitelist. Anything else is
// rejected before the upstream call.
var supportedExtensions = map[string]bool{
	".stl":   true,
	".obj":   true,
	".3mf":   true,
	".gcode": true,
}

// EstimateInput is one pricing request. UserID is empty for anonymous
// callers; when present, the resulting estimate is also recorded as a
// print job.
type EstimateInput struct {
	FileName string
	Contents []byte
	Material string
	Quality  string
	UserID   string
}

// IPricingUseCase exposes the estimate-request gateway.
//
// The use case owns input validation and error normalization; the actual
// estimation happens in the external service behind IEstimatorGateway.
type IPricingUseCase interface {
	RequestEstimate(ctx context.Context, input EstimateInput) (entities.Estimate, error)
}

type PricingUseCase struct {
	gateway interfaces.IEstimatorGateway
	jobs    interfaces.IPrintJobRepository
	models  interfaces.IModelStorage
}

var _ IPricingUseCase = (*PricingUseCase)(nil)

func NewPricingUseCase(gateway interfaces.IEstimatorGateway, jobs interfaces.IPrintJobRepository, models interfaces.IModelStorage) *PricingUseCase {
	return &PricingUseCase{gateway: gateway, jobs: jobs, models: models}
}

// RequestEstimate validates the upload, forwards it to the estimation
// service and returns the service's estimate unchanged.
//
// Invalid input never reaches the upstream service. Upstream failures come
// back as *interfaces.UpstreamError so the handler can answer 502 rather
// than 400.
func (u *PricingUseCase) RequestEstimate(ctx context.Context, input EstimateInput) (entities.Estimate, error) {
	name := strings.TrimSpace(input.FileName)
	if name == "" || len(input.Contents) == 0 {
		return entities.Estimate{}, ErrFileRequired
	}
	if !supportedExtensions[strings.ToLower(filepath.Ext(name))] {
		return entities.Estimate{}, ErrUnsupportedFormat
	}

	estimate, err := u.gateway.Estimate(ctx, interfaces.EstimateUpload{
		FileName: name,
		Contents: input.Contents,
		Material: strings.TrimSpace(input.Material),
		Quality:  strings.TrimSpace(input.Quality),
	})
	if err != nil {
		return entities.Estimate{}, err
	}
	if err := estimate.Validate(); err != nil {
		log.Printf("[pricing][usecase] upstream returned malformed estimate file=%s err=%v", name, err)
		return entities.Estimate{}, &interfaces.UpstreamError{Message: "pricing service returned an invalid estimate"}
	}

	if input.UserID != "" && u.jobs != nil {
		// Keep the model bytes so the shop can print what was estimated.
		// Best-effort like the job record itself.
		var storagePath string
		if u.models != nil {
			path, err := u.models.Save(ctx, name, bytes.NewReader(input.Contents))
			if err != nil {
				log.Printf("[pricing][usecase] failed to store model file user_id=%s file=%s err=%v", input.UserID, name, err)
			} else {
				storagePath = path
			}
		}
		job := entities.PrintJob{
			ID:             uuid.NewString(),
			UserID:         input.UserID,
			EstimateID:     estimate.ID,
			FileName:       name,
			StoragePath:    storagePath,
			FileSizeBytes:  int64(len(input.Contents)),
			Material:       estimate.Material,
			Quality:        input.Quality,
			EstimatedPrice: estimate.EstimatedPrice,
			CreatedAt:      time.Now().UTC(),
		}
		if err := u.jobs.Create(ctx, job); err != nil {
			// Best-effort: the user still gets their estimate.
			log.Printf("[pricing][usecase] failed to persist print job user_id=%s file=%s err=%v", input.UserID, name, err)
		}
	}

	return estimate, nil
}
