package web

import (
	"context"
	"errors"
	"runtime/debug"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/vendorflow-web/internal/backend"
	"github.com/spec-kit/vendorflow-web/internal/observability"
	"github.com/spec-kit/vendorflow-web/internal/web/views"
	"github.com/spec-kit/vendorflow-web/pkg/util"
)

// RegisterMiddlewares attaches global middlewares such as error handling and logging.
func RegisterMiddlewares(app *fiber.App, logger *zap.Logger, metrics *observability.Metrics, timeout time.Duration) {
	if timeout > 0 {
		app.Use(requestTimeoutMiddleware(timeout))
	}
	app.Use(errorPageMiddleware(logger, metrics))
	app.Use(observability.RequestLogger(logger, metrics))
}

func requestTimeoutMiddleware(timeout time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), timeout)
		defer cancel()
		c.SetUserContext(ctx)
		return c.Next()
	}
}

// errorPageMiddleware converts errors escaping handlers into rendered error
// pages. Backend reachability failures become a 502 with the connectivity
// message; anything unrecognized becomes a generic 500.
func errorPageMiddleware(logger *zap.Logger, metrics *observability.Metrics) fiber.Handler {
	return func(c *fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("panic recovered", zap.Any("panic", r), zap.ByteString("stack", debug.Stack()))
				err = util.NewInternalError(nil)
			}
			if err == nil {
				return
			}

			domainErr := classify(err)
			metrics.RecordError(c.Path(), c.Method(), domainErr.Code)
			if domainErr.HTTPStatus >= 500 {
				logger.Error("request failed", zap.Error(domainErr))
			}

			c.Status(domainErr.HTTPStatus)
			err = views.Render(c, "error", views.ErrorData{
				Title:   "Error",
				Status:  domainErr.HTTPStatus,
				Code:    domainErr.Code,
				Message: domainErr.Message,
			})
		}()
		return c.Next()
	}
}

func classify(err error) *util.DomainError {
	if errors.Is(err, backend.ErrUnreachable) {
		return util.ToDomainError(util.NewBadGateway("Cannot reach the server. Please check your connection.", err))
	}
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return util.NewDomainError("HTTP_ERROR", fiberErr.Message, fiberErr.Code)
	}
	return util.ToDomainError(err)
}
