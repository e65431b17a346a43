package entities

import "fmt"

// BoundingBox holds the model's axis-aligned extents in millimeters.
// Invariant: Max[i] >= Min[i] for each axis.
type BoundingBox struct {
	Min [3]float64 `json:"min"`
	Max [3]float64 `json:"max"`
}

// Dimensions returns the per-axis extents |max - min|.
func (b BoundingBox) Dimensions() [3]float64 {
	var d [3]float64
	for i := 0; i < 3; i++ {
		d[i] = b.Max[i] - b.Min[i]
		if d[i] < 0 {
			d[i] = -d[i]
		}
	}
	return d
}

// Estimate is the priced/measured result of evaluating one uploaded model
// file. It is produced by the external estimation service and passed through
// the pricing gateway unchanged; field names mirror the service's JSON.
//
// Lifecycle:
//   - created by a successful estimator response
//   - held by the client session until discarded or materialized into a
//     cart item (the estimate ID becomes the cart line's SKU)
type Estimate struct {
	ID                string      `json:"id"`
	Material          string      `json:"material"`
	EstimatedGrams    float64     `json:"estimatedGrams"`
	EstimatedHours    float64     `json:"estimatedHours"`
	EstimatedPrice    float64     `json:"estimatedPrice"`
	BoundingBoxMM     BoundingBox `json:"boundingBoxMm"`
	TriangleCount     int         `json:"triangleCount"`
	RecommendedInfill int         `json:"recommendedInfill"`
	Warnings          []string    `json:"warnings"`
	FileName          string      `json:"fileName,omitempty"`
	FileSizeBytes     int64       `json:"fileSizeBytes,omitempty"`
	Confidence        string      `json:"confidence,omitempty"`
}

// Validate rejects estimates that violate the contract with the estimation
// service. A body failing these checks is treated as malformed upstream
// output and never surfaced partially.
func (e Estimate) Validate() error {
	if e.ID == "" {
		return fmt.Errorf("estimate missing id")
	}
	if e.EstimatedGrams < 0 || e.EstimatedHours < 0 || e.EstimatedPrice < 0 {
		return fmt.Errorf("estimate has negative quantities")
	}
	if e.TriangleCount < 0 {
		return fmt.Errorf("negative triangle count")
	}
	if e.RecommendedInfill < 0 || e.RecommendedInfill > 100 {
		return fmt.Errorf("recommended infill %d out of range", e.RecommendedInfill)
	}
	for i := 0; i < 3; i++ {
		if e.BoundingBoxMM.Max[i] < e.BoundingBoxMM.Min[i] {
			return fmt.Errorf("bounding box inverted on axis %d", i)
		}
	}
	return nil
}
