package root

// Greeting is the fixed message served at the API root.
const Greeting = "Hello World, Welcome to FastAPI!"

// GreetingData models the root response payload.
type GreetingData struct {
	Message string `json:"message" doc:"Greeting message" example:"Hello World, Welcome to FastAPI!"`
}

// Output is the response wrapper for the root endpoint.
type Output struct {
	Body GreetingData
}
