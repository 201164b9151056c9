package http

import (
	"github.com/gin-gonic/gin"
	"gopkg.in/DataDog/dd-trace-go.v1/ddtrace/ext"
	"gopkg.in/DataDog/dd-trace-go.v1/ddtrace/tracer"
)

// Trace opens a web span per request and hands its context to the handlers,
// so repo spans and log lines join the same trace.
func Trace(service string) gin.HandlerFunc {
	return func(c *gin.Context) {
		span, ctx := tracer.StartSpanFromContext(c.Request.Context(), "http.request",
			tracer.ServiceName(service),
			tracer.SpanType(ext.SpanTypeWeb),
			tracer.ResourceName(c.Request.Method+" "+routeOf(c)),
			tracer.Tag(ext.HTTPMethod, c.Request.Method),
			tracer.Tag(ext.HTTPURL, c.Request.URL.Path),
		)
		defer span.Finish()
		c.Request = c.Request.WithContext(ctx)

		c.Next()

		span.SetTag(ext.HTTPCode, c.Writer.Status())
		if err := c.Errors.Last(); err != nil {
			span.SetTag(ext.Error, err.Err)
		}
	}
}
