package observability

import (
	"context"
	"os"
	"strconv"

	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

const defaultServiceName = "calculator-api"

// ServiceName is OTEL_SERVICE_NAME, or "calculator-api" when unset.
func ServiceName() string {
	name := os.Getenv("OTEL_SERVICE_NAME")
	if name == "" {
		name = defaultServiceName
	}
	return name
}

// ExportEnabled reports whether OTLP export should be set up. It honours the
// standard OTEL_SDK_DISABLED switch; unparsable values leave export on.
func ExportEnabled() bool {
	disabled, err := strconv.ParseBool(os.Getenv("OTEL_SDK_DISABLED"))
	return err != nil || !disabled
}

func newResource(ctx context.Context) (*resource.Resource, error) {
	return resource.New(
		ctx,
		resource.WithFromEnv(),
		resource.WithAttributes(
			semconv.ServiceName(ServiceName()),
		),
	)
}

func noopShutdown(context.Context) error { return nil }
