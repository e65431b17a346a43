package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"printhub/internal/adapter/http/middleware"
	"printhub/internal/usecase"
	"printhub/internal/usecase/interfaces"
	"printhub/pkg"
)

// maxUploadBytes bounds the size of model files accepted for estimation.
const maxUploadBytes = 64 << 20

// PricingHandler handles estimate-request uploads and proxies them to the
// external estimation service.
type PricingHandler struct {
	usecase usecase.IPricingUseCase
}

func NewPricingHandler(uc usecase.IPricingUseCase) *PricingHandler {
	return &PricingHandler{usecase: uc}
}

// RequestEstimate accepts a multipart upload under the "file" field plus
// optional "material" and "quality" fields, and returns the estimation
// service's Estimate body unchanged.
//
// A missing file is the caller's fault (400); an estimator failure is not
// (502 with the upstream message).
func (h *PricingHandler) RequestEstimate(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadBytes)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		appErr := mapPricingError(usecase.ErrFileRequired)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		appErr := pkg.NewDomainError("UPLOAD_READ_FAILED", "Could not read uploaded file", err, http.StatusBadRequest)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	defer file.Close()

	contents, err := io.ReadAll(file)
	if err != nil {
		appErr := pkg.NewDomainError("UPLOAD_READ_FAILED", "Could not read uploaded file", err, http.StatusBadRequest)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	estimate, err := h.usecase.RequestEstimate(c.Request.Context(), usecase.EstimateInput{
		FileName: fileHeader.Filename,
		Contents: contents,
		Material: c.PostForm("material"),
		Quality:  c.PostForm("quality"),
		UserID:   middleware.UserID(c),
	})
	if err != nil {
		appErr := mapPricingError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, estimate)
}

func mapPricingError(err error) *pkg.AppError {
	var upstream *interfaces.UpstreamError
	switch {
	case errors.Is(err, usecase.ErrFileRequired):
		return pkg.NewDomainErrorSimple("FILE_REQUIRED", "file required", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrUnsupportedFormat):
		return pkg.NewDomainErrorSimple("UNSUPPORTED_FORMAT", "Unsupported model file format", http.StatusBadRequest)
	case errors.As(err, &upstream):
		return pkg.NewDomainError("ESTIMATOR_UNAVAILABLE", upstream.Message, err, http.StatusBadGateway)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
