// Package api exposes the tax engine and record store over HTTP.
package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/itrgo/tax-estimator/internal/calculation"
	"github.com/itrgo/tax-estimator/internal/config"
	"github.com/itrgo/tax-estimator/internal/logger"
	"github.com/itrgo/tax-estimator/internal/store"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// HeaderUserID identifies the caller. Authentication happens upstream.
const HeaderUserID = "X-User-ID"

// Server wires the handlers onto an echo instance
type Server struct {
	echo    *echo.Echo
	engine  *calculation.Engine
	records store.RecordStore
	parser  *config.InputParser
	logger  *logger.Logger
}

// NewServer creates the HTTP server. If log is nil, a no-op logger is used.
func NewServer(engine *calculation.Engine, records store.RecordStore, log *logger.Logger) *Server {
	if log == nil {
		log = logger.NewNop()
	}
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	s := &Server{
		echo:    e,
		engine:  engine,
		records: records,
		parser:  config.NewInputParser(),
		logger:  log.Named("api"),
	}
	e.HTTPErrorHandler = s.handleError

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.BodyLimit("1M"))
	e.Use(s.requestLogger())

	s.routes()
	return s
}

func (s *Server) routes() {
	s.echo.GET("/healthz", s.health)

	v1 := s.echo.Group("/api/v1")
	v1.POST("/tax/calculate", s.calculate)
	v1.GET("/tax/years", s.years)

	records := v1.Group("/records", requireUser)
	records.POST("", s.createRecord)
	records.GET("", s.listRecords)
	records.GET("/:id", s.getRecord)
	records.PUT("/:id", s.updateRecord)
	records.DELETE("/:id", s.deleteRecord)
}

// Handler returns the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start serves until Shutdown is called
func (s *Server) Start(settings config.ServerSettings) error {
	srv := &http.Server{
		Addr:         settings.Address,
		Handler:      s.echo,
		ReadTimeout:  settings.ReadTimeout,
		WriteTimeout: settings.WriteTimeout,
	}
	s.logger.Infof("listening on %s", settings.Address)
	if err := s.echo.StartServer(srv); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting requests and waits for in-flight ones
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func (s *Server) requestLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:       true,
		LogMethod:    true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			log := s.logger.With(
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency,
				"request_id", v.RequestID,
			)
			if v.Error != nil {
				log.Warnf("request failed: %v", v.Error)
				return nil
			}
			log.Infof("request")
			return nil
		},
	})
}
