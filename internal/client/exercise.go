package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/fatih/color"
)

// Paths requested by Exercise, relative to the service URL.
var exercisePaths = []string{"", "/health", "/version"}

var (
	headingSprintf = color.New(color.Bold).Sprintf
	okSprintf      = color.HiGreenString
	failSprintf    = color.HiRedString
)

// Exerciser calls each service endpoint with a bearer token and prints what came back.
type Exerciser struct {
	httpClient *http.Client
	out        io.Writer
}

// NewExerciser returns an Exerciser printing to out. A nil httpClient uses http.DefaultClient.
func NewExerciser(httpClient *http.Client, out io.Writer) *Exerciser {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Exerciser{httpClient: httpClient, out: out}
}

// Exercise requests baseURL, baseURL/health and baseURL/version in order.
// A failed request is printed and the next one still runs; the returned error
// joins every request failure.
func (e *Exerciser) Exercise(ctx context.Context, baseURL, token string) error {
	var errs []error
	for i, path := range exercisePaths {
		if i > 0 {
			fmt.Fprintln(e.out)
		}
		if err := e.get(ctx, baseURL+path, token); err != nil {
			fmt.Fprintln(e.out, failSprintf("Request error: %v", err))
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (e *Exerciser) get(ctx context.Context, url, token string) error {
	fmt.Fprintln(e.out, headingSprintf("Testing: %s", url))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}

	status := fmt.Sprintf("Status: %d", resp.StatusCode)
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		status = okSprintf("%s", status)
	} else {
		status = failSprintf("%s", status)
	}
	fmt.Fprintln(e.out, status)
	fmt.Fprintf(e.out, "Response: %s\n", renderBody(body))
	return nil
}

// renderBody returns the body re-encoded as compact JSON, or the raw text when
// it is not JSON.
func renderBody(body []byte) string {
	var v any
	if err := json.Unmarshal(body, &v); err != nil {
		return string(body)
	}
	out, err := json.Marshal(v)
	if err != nil {
		return string(body)
	}
	return string(out)
}
