package routes

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
)

func TestRegisterWiresAllRoutes(t *testing.T) {
	router := chi.NewRouter()
	cfg := huma.DefaultConfig("RoutesTest", "test")
	cfg.CreateHooks = nil
	api := humachi.New(router, cfg)
	Register(api)

	tests := []struct {
		path string
		key  string
		want string
	}{
		{"/", "message", "Hello World, Welcome to FastAPI!"},
		{"/health", "status", "healthy"},
		{"/version", "version", "1.0.1"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp := httptest.NewRecorder()
			router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, tt.path, nil))

			if resp.Code != http.StatusOK {
				t.Fatalf("expected 200, got %d", resp.Code)
			}
			var body map[string]string
			if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
				t.Fatalf("json unmarshal: %v", err)
			}
			if len(body) != 1 || body[tt.key] != tt.want {
				t.Fatalf("unexpected body: %v", body)
			}
		})
	}
}

func TestRegisterDocumentsExactlyThreeOperations(t *testing.T) {
	api := humachi.New(chi.NewRouter(), huma.DefaultConfig("RoutesDocs", "test"))
	Register(api)

	ids := map[string]bool{}
	for _, item := range api.OpenAPI().Paths {
		if item.Get != nil {
			ids[item.Get.OperationID] = true
		}
	}
	for _, id := range []string{"get-root", "get-health", "get-version"} {
		if !ids[id] {
			t.Errorf("missing operation %s", id)
		}
	}
	if len(ids) != 3 {
		t.Errorf("expected 3 operations, got %v", ids)
	}
}

func TestRegisterNamesPayloadSchemasDistinctly(t *testing.T) {
	api := humachi.New(chi.NewRouter(), huma.DefaultConfig("RoutesSchemas", "test"))
	Register(api)

	schemas := api.OpenAPI().Components.Schemas.Map()
	for _, name := range []string{"GreetingData", "HealthData", "VersionData"} {
		if _, ok := schemas[name]; !ok {
			t.Errorf("expected schema %s to be registered", name)
		}
	}
}
