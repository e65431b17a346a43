package entities

import "time"

// PrintJob records an estimate requested by a signed-in user, so the shop
// can match uploads to later orders. Persistence is best-effort: a failed
// write never fails the estimate request.
type PrintJob struct {
	ID             string    `json:"id"`
	UserID         string    `json:"userId"`
	EstimateID     string    `json:"estimateId"`
	FileName       string    `json:"fileName"`
	StoragePath    string    `json:"storagePath,omitempty"`
	FileSizeBytes  int64     `json:"fileSizeBytes"`
	Material       string    `json:"material"`
	Quality        string    `json:"quality"`
	EstimatedPrice float64   `json:"estimatedPrice"`
	CreatedAt      time.Time `json:"createdAt"`
}
