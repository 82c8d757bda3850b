package health

// StatusHealthy is the only status the service reports while it can answer requests.
const StatusHealthy = "healthy"

// HealthData is the payload for the health endpoint.
type HealthData struct {
	Status string `json:"status" doc:"Service health status" example:"healthy"`
}

// Output is the response wrapper for the health endpoint.
type Output struct {
	Body HealthData
}
