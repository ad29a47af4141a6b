package cache

import (
	"bytes"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/postbook/postbook/internal/logging"
)

// Middleware serves cached JSON for GET requests and stores fresh 200
// responses. A nil cache is a pass-through, so the middleware can be wired
// unconditionally.
func (c *ResponseCache) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ec echo.Context) error {
			if c == nil || c.client == nil || ec.Request().Method != http.MethodGet {
				return next(ec)
			}

			ctx := ec.Request().Context()
			key := "response:" + ec.Request().URL.RequestURI()

			if cached, ok := c.Get(ctx, key); ok {
				return ec.JSONBlob(http.StatusOK, []byte(cached))
			}

			body := new(bytes.Buffer)
			mw := io.MultiWriter(ec.Response().Writer, body)
			ec.Response().Writer = &captureWriter{Writer: mw, ResponseWriter: ec.Response().Writer}

			if err := next(ec); err != nil {
				return err
			}

			if ec.Response().Status == http.StatusOK {
				if err := c.Set(ctx, key, body.String()); err != nil {
					logging.FromContext(ctx).Warn("cache_set_failed", "key", key, "error", err)
				}
			}
			return nil
		}
	}
}

type captureWriter struct {
	io.Writer
	http.ResponseWriter
}

func (w *captureWriter) Write(b []byte) (int, error) {
	return w.Writer.Write(b)
}
