package middleware

import (
	"strconv"
	"time"

	"provider-bridge/pkg/metrics"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// Metrics reports a request counter and response time per route.
func Metrics(reporter metrics.Reporter, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unknown"
		}
		tags := map[string]string{
			"route":  c.Request.Method + " " + route,
			"status": strconv.Itoa(c.Writer.Status()),
		}
		if _, ok := c.Get(CtxReplyCode); ok {
			tags["code"] = strconv.Itoa(c.GetInt(CtxReplyCode))
		}

		ms := float64(time.Since(start).Microseconds()) / 1000
		if err := reporter.TimeInMilliseconds("response.time", ms, tags, 1); err != nil {
			log.Debug().Err(err).Msg("metrics: report response time")
		}
		if err := reporter.Count("requests", 1, tags, 1); err != nil {
			log.Debug().Err(err).Msg("metrics: report request count")
		}
	}
}
