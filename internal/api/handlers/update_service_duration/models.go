package update_service_duration

// UpdateDurationRequest HTTP request model
type UpdateDurationRequest struct {
	DurationMinutes int `json:"durationMinutes"`
}
