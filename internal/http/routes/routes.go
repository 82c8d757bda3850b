// Package routes registers every HTTP operation of the service.
package routes

import (
	"github.com/danielgtaylor/huma/v2"

	"github.com/janisto/hello-world-api/internal/http/health"
	"github.com/janisto/hello-world-api/internal/http/root"
	"github.com/janisto/hello-world-api/internal/http/version"
)

// Register wires all HTTP routes into the provided API.
func Register(api huma.API) {
	root.Register(api)
	health.Register(api)
	version.Register(api)
}
