package version

// Current is the application version reported by GET /version. It is fixed
// and independent of the OpenAPI document version.
const Current = "1.0.1"

// VersionData models the version response payload.
type VersionData struct {
	Version string `json:"version" doc:"Application version" example:"1.0.1"`
}

// Output is the response wrapper for the version endpoint.
type Output struct {
	Body VersionData
}
