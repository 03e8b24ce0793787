package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// unmatchedRoute labels requests that hit no registered route, so random
// paths cannot blow up label cardinality.
const unmatchedRoute = "unknown"

// HTTPMetricsMiddleware counts and times every request, labelled by method,
// route pattern and status code. If the instruments cannot be created the
// middleware passes requests through untouched.
func HTTPMetricsMiddleware(meterProvider metric.MeterProvider, namespace string) gin.HandlerFunc {
	inst, err := newInstruments(meterProvider.Meter(namespace), instrumentDef{
		countName:   namespace + "_http_requests_total",
		countDesc:   "Total number of HTTP requests",
		countUnit:   "{request}",
		secondsName: namespace + "_http_request_duration_seconds",
		secondsDesc: "HTTP request duration in seconds",
	})
	if err != nil {
		return func(c *gin.Context) { c.Next() }
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		ctx := c.Request.Context()
		attrs := []attribute.KeyValue{
			attribute.String("method", c.Request.Method),
			attribute.String("path", routeLabel(c.FullPath())),
			attribute.String("status_code", strconv.Itoa(c.Writer.Status())),
		}
		inst.add(ctx, attrs...)
		inst.observe(ctx, time.Since(start), attrs...)
	}
}

func routeLabel(fullPath string) string {
	if fullPath == "" {
		return unmatchedRoute
	}
	return fullPath
}
