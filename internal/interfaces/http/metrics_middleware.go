package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
)

// httpObserver lo implementa *metrics.Recorder.
type httpObserver interface {
	ObserveHTTP(method, route string, status int, elapsed time.Duration)
}

// RequestMetrics mide cada request por patrón de ruta (no por URL, para acotar la cardinalidad).
func RequestMetrics(obs httpObserver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		// c.Method() apunta al buffer de fasthttp, que se reutiliza entre requests.
		obs.ObserveHTTP(utils.CopyString(c.Method()), c.Route().Path, status, time.Since(start))
		return err
	}
}
