package envelope

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// Response is the wrapper every API endpoint returns.
type Response struct {
	Success   bool        `json:"success"`
	Message   string      `json:"message"`
	Data      interface{} `json:"data"`
	Count     *int        `json:"count"`
	Timestamp string      `json:"timestamp"`
}

var now = time.Now

func stamp() string {
	return now().UTC().Format(time.RFC3339Nano)
}

// OK wraps a single value. Count stays null.
func OK(message string, data interface{}) *Response {
	return &Response{Success: true, Message: message, Data: data, Timestamp: stamp()}
}

// List wraps a collection and reports its length in Count.
func List[T any](message string, items []T) *Response {
	if items == nil {
		items = []T{}
	}
	n := len(items)
	return &Response{Success: true, Message: message, Data: items, Count: &n, Timestamp: stamp()}
}

func Fail(message string) *Response {
	return &Response{Success: false, Message: message, Timestamp: stamp()}
}

// JSON writes r with the given status.
func JSON(c echo.Context, status int, r *Response) error {
	return c.JSON(status, r)
}

// ErrorHandler renders errors that escape handlers and middleware (unknown
// routes, rate limiting, panics) in the same envelope as handled responses.
func ErrorHandler(logger zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status := http.StatusInternalServerError
		message := http.StatusText(status)

		var he *echo.HTTPError
		if errors.As(err, &he) {
			status = he.Code
			if he.Internal != nil {
				logger.Debug().Err(he.Internal).Int("status", status).Msg("http error")
			}
			switch m := he.Message.(type) {
			case string:
				message = m
			case error:
				message = m.Error()
			case nil:
				message = http.StatusText(status)
			default:
				message = fmt.Sprintf("%v", m)
			}
		} else {
			logger.Error().Err(err).Str("path", c.Request().URL.Path).Msg("unhandled error")
		}

		var werr error
		if c.Request().Method == http.MethodHead {
			werr = c.NoContent(status)
		} else {
			werr = JSON(c, status, Fail(message))
		}
		if werr != nil {
			logger.Error().Err(werr).Msg("write error response")
		}
	}
}
