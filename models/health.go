package models

// Health is the body of GET /health.
type Health struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}

// Healthy reports whether the backend declared itself healthy.
func (h Health) Healthy() bool {
	return h.Status == "healthy"
}
