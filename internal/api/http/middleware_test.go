package http

import (
	stdhttp "net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spec-kit/helpdesk/internal/apperrors"
	"github.com/spec-kit/helpdesk/internal/observability"
)

func TestRequestLogRecordsConvertedStatus(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	logger := zap.New(core)

	app := fiber.New()
	RegisterMiddlewares(app, logger, observability.NewMetrics(), 0)
	app.Get("/missing", func(c *fiber.Ctx) error {
		return apperrors.NewNotFound("Ticket not found")
	})

	resp, err := app.Test(httptest.NewRequest(stdhttp.MethodGet, "/missing", nil), -1)
	require.NoError(t, err)
	require.Equal(t, stdhttp.StatusNotFound, resp.StatusCode)

	entries := logs.FilterMessage("request").All()
	require.Len(t, entries, 1)
	require.Equal(t, int64(stdhttp.StatusNotFound), entries[0].ContextMap()["status"])
}

func TestRequestTimeoutDeadlineReachesHandlers(t *testing.T) {
	app := fiber.New()
	RegisterMiddlewares(app, zap.NewNop(), observability.NewMetrics(), 50*time.Millisecond)

	var hadDeadline bool
	app.Get("/deadline", func(c *fiber.Ctx) error {
		_, hadDeadline = c.UserContext().Deadline()
		return c.SendStatus(stdhttp.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest(stdhttp.MethodGet, "/deadline", nil), -1)
	require.NoError(t, err)
	require.Equal(t, stdhttp.StatusOK, resp.StatusCode)
	require.True(t, hadDeadline)
}

func TestPanicBecomesUniformFailure(t *testing.T) {
	app := fiber.New()
	RegisterMiddlewares(app, zap.NewNop(), observability.NewMetrics(), 0)
	app.Get("/boom", func(c *fiber.Ctx) error {
		panic("handler blew up")
	})

	resp, err := app.Test(httptest.NewRequest(stdhttp.MethodGet, "/boom", nil), -1)
	require.NoError(t, err)
	require.Equal(t, stdhttp.StatusInternalServerError, resp.StatusCode)
}
