package api

import (
	"fmt"
	"strconv"

	"github.com/labstack/echo/v5"
)

// DecodeParams are the query parameters accepted by POST /v1/samples.
type DecodeParams struct {
	// MaxEvents stops decoding after this many kept events. Zero means the
	// service default.
	MaxEvents int
	// Events includes the decoded events in the response body.
	Events bool
}

func decodeParams(c *echo.Context) (DecodeParams, error) {
	var p DecodeParams
	if v := c.QueryParam("max_events"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return p, newInvalidRequest(fmt.Sprintf("max_events: invalid value %q", v))
		}
		p.MaxEvents = n
	}
	if v := c.QueryParam("events"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return p, newInvalidRequest(fmt.Sprintf("events: invalid value %q", v))
		}
		p.Events = b
	}
	return p, nil
}
