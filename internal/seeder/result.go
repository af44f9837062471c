package seeder

import "github.com/google/uuid"

// Metadata keys set by the batch loops
const (
	MetaTotalRequested = "total_requested"
	MetaTotalGenerated = "total_generated"
	MetaTotalFailed    = "total_failed"
	MetaOrders         = "orders"
	MetaCustomers      = "customers"
)

// EntityRef identifies one generated entity in result metadata
type EntityRef struct {
	ID          uuid.UUID `json:"id"`
	IncrementID string    `json:"increment_id,omitempty"`
	Email       string    `json:"email,omitempty"`
}

// Result aggregates the outcome of one generation call: a success
// flag, per-item errors and warnings, and open metadata for batch
// totals and entity summaries.
type Result struct {
	Success  bool           `json:"success"`
	Type     string         `json:"type"`
	Errors   []string       `json:"errors,omitempty"`
	Warnings []string       `json:"warnings,omitempty"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// NewResult creates an empty result with the given entity type tag
func NewResult(entityType string) *Result {
	return &Result{
		Type:     entityType,
		Metadata: make(map[string]any),
	}
}

// AddError records an error message
func (r *Result) AddError(msg string) {
	r.Errors = append(r.Errors, msg)
}

// AddWarning records a warning message
func (r *Result) AddWarning(msg string) {
	r.Warnings = append(r.Warnings, msg)
}

// SetMeta sets a metadata entry
func (r *Result) SetMeta(key string, value any) {
	r.Metadata[key] = value
}

// Generated returns the generated-entity count from metadata
func (r *Result) Generated() int {
	if v, ok := r.Metadata[MetaTotalGenerated].(int); ok {
		return v
	}
	return 0
}

// Failed returns the failed-entity count from metadata
func (r *Result) Failed() int {
	if v, ok := r.Metadata[MetaTotalFailed].(int); ok {
		return v
	}
	return 0
}
