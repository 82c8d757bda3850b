package logging

import (
	"fmt"
	"os"
	"regexp"
	"sync"

	"go.uber.org/zap"
)

const (
	traceparentHeader = "traceparent"
	cloudTraceHeader  = "X-Cloud-Trace-Context"
)

// W3C Trace Context: {version}-{trace-id}-{parent-id}-{trace-flags}
var traceparentRe = regexp.MustCompile(`^([0-9a-fA-F]{2})-([0-9a-fA-F]{32})-([0-9a-fA-F]{16})-([0-9a-fA-F]{2})$`)

// Legacy Google format: TRACE_ID/SPAN_ID;o=OPTIONS, span ID in decimal.
var cloudTraceRe = regexp.MustCompile(`^([0-9a-fA-F]{32})/([0-9]+)(?:;o=([01]))?$`)

var (
	projectIDOnce   sync.Once
	cachedProjectID string
)

// spanContext is the subset of an incoming trace header that Cloud Logging correlates on.
type spanContext struct {
	TraceID string
	SpanID  string
	Sampled bool
}

// parseTraceparent extracts a span context from a W3C traceparent header.
func parseTraceparent(header string) (spanContext, bool) {
	m := traceparentRe.FindStringSubmatch(header)
	if m == nil {
		return spanContext{}, false
	}
	return spanContext{TraceID: m[2], SpanID: m[3], Sampled: m[4] == "01"}, true
}

// parseCloudTrace extracts a span context from an X-Cloud-Trace-Context header.
// The decimal span ID is converted to the 16-digit hex form used by traceparent.
func parseCloudTrace(header string) (spanContext, bool) {
	m := cloudTraceRe.FindStringSubmatch(header)
	if m == nil {
		return spanContext{}, false
	}
	var span uint64
	if _, err := fmt.Sscan(m[2], &span); err != nil {
		return spanContext{}, false
	}
	return spanContext{TraceID: m[1], SpanID: fmt.Sprintf("%016x", span), Sampled: m[3] == "1"}, true
}

// spanFromHeaders prefers traceparent and falls back to the legacy Cloud header.
func spanFromHeaders(traceparent, cloudTrace string) (spanContext, bool) {
	if sc, ok := parseTraceparent(traceparent); ok {
		return sc, true
	}
	return parseCloudTrace(cloudTrace)
}

func (sc spanContext) resource(projectID string) string {
	return fmt.Sprintf("projects/%s/traces/%s", projectID, sc.TraceID)
}

func (sc spanContext) fields(projectID string) []zap.Field {
	return []zap.Field{
		zap.String("logging.googleapis.com/trace", sc.resource(projectID)),
		zap.String("logging.googleapis.com/spanId", sc.SpanID),
		zap.Bool("logging.googleapis.com/trace_sampled", sc.Sampled),
	}
}

func loggerWithTrace(base *zap.Logger, sc spanContext, hasSpan bool, projectID, requestID string) *zap.Logger {
	if base == nil {
		base = zap.NewNop()
	}
	var fields []zap.Field
	if hasSpan && projectID != "" {
		fields = sc.fields(projectID)
	}
	if requestID != "" {
		fields = append(fields, zap.String("requestId", requestID))
	}
	if len(fields) == 0 {
		return base
	}
	return base.With(fields...)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func resolveProjectID() string {
	projectIDOnce.Do(func() {
		cachedProjectID = firstNonEmpty(
			os.Getenv("GOOGLE_CLOUD_PROJECT"),
			os.Getenv("GCP_PROJECT"),
			os.Getenv("GCLOUD_PROJECT"),
			os.Getenv("PROJECT_ID"),
		)
	})
	return cachedProjectID
}
