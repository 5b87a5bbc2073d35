package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/lexbrit/traduko/internal/observability"
	"github.com/lexbrit/traduko/internal/schema"
	"github.com/lexbrit/traduko/internal/service"
	"github.com/lexbrit/traduko/internal/translation"
)

const maxTranslateBodyBytes = 64 * 1024

type Options struct {
	Host            string
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

type Server struct {
	translator *service.Translator
	logger     zerolog.Logger
	opts       Options
}

func NewServer(translator *service.Translator, logger zerolog.Logger, opts Options) *Server {
	host := strings.TrimSpace(opts.Host)
	if host == "" {
		host = "0.0.0.0"
	}
	port := opts.Port
	if port <= 0 {
		port = 8091
	}
	readTimeout := opts.ReadTimeout
	if readTimeout <= 0 {
		readTimeout = 10 * time.Second
	}
	writeTimeout := opts.WriteTimeout
	if writeTimeout <= 0 {
		writeTimeout = 30 * time.Second
	}
	shutdownTimeout := opts.ShutdownTimeout
	if shutdownTimeout <= 0 {
		shutdownTimeout = 10 * time.Second
	}

	return &Server{
		translator: translator,
		logger:     logger,
		opts: Options{
			Host:            host,
			Port:            port,
			ReadTimeout:     readTimeout,
			WriteTimeout:    writeTimeout,
			ShutdownTimeout: shutdownTimeout,
		},
	}
}

func (s *Server) Start(ctx context.Context) error {
	if s == nil || s.translator == nil {
		return fmt.Errorf("server is not initialized")
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = s.httpErrorHandler

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept"},
		MaxAge:       3600,
	}))
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:    true,
		LogURI:       true,
		LogMethod:    true,
		LogLatency:   true,
		LogRemoteIP:  true,
		LogRequestID: true,
		LogError:     true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			if v.Error != nil {
				s.logger.Error().
					Err(v.Error).
					Str("method", v.Method).
					Str("uri", v.URI).
					Int("status", v.Status).
					Dur("latency", v.Latency).
					Str("remote_ip", v.RemoteIP).
					Str("request_id", v.RequestID).
					Msg("http request failed")
				return nil
			}
			s.logger.Debug().
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("http request")
			return nil
		},
	}))

	s.registerRoutes(e)

	addr := fmt.Sprintf("%s:%d", s.opts.Host, s.opts.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      e,
		ReadTimeout:  s.opts.ReadTimeout,
		WriteTimeout: s.opts.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", addr).Msg("http server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.opts.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	}
}

func (s *Server) registerRoutes(e *echo.Echo) {
	e.GET("/healthz", s.handleHealth)
	e.GET("/metrics", echo.WrapHandler(observability.MetricsHandler()))

	api := e.Group("/api")
	api.POST("/translate", s.handleTranslate)
	api.GET("/history", s.handleHistory)
	api.DELETE("/history", s.handleClearHistory)
	api.GET("/languages", s.handleLanguages)
	api.GET("/view", s.handleView)
}

func (s *Server) handleHealth(c echo.Context) error {
	return success(c, map[string]string{"status": "ok"})
}

func (s *Server) handleTranslate(c echo.Context) error {
	body, err := io.ReadAll(io.LimitReader(c.Request().Body, maxTranslateBodyBytes))
	if err != nil {
		return fail(c, http.StatusBadRequest, "failed to read request body", nil)
	}

	req, err := schema.ValidateTranslateRequest(json.RawMessage(body))
	if err != nil {
		return fail(c, http.StatusBadRequest, err.Error(), nil)
	}

	result, err := s.translator.Translate(c.Request().Context(), req.Text, req.SourceLang, req.TargetLang, req.Provider)
	if err != nil {
		switch {
		case errors.Is(err, translation.ErrNetwork), errors.Is(err, translation.ErrDecode):
			return fail(c, http.StatusBadGateway, err.Error(), nil)
		default:
			return fail(c, http.StatusBadRequest, err.Error(), nil)
		}
	}

	return success(c, result)
}

func (s *Server) handleHistory(c echo.Context) error {
	records, err := s.translator.History(c.Request().Context())
	if err != nil {
		// A failed read degrades to an empty list instead of breaking the view.
		s.logger.Error().Err(err).Msg("history read failed")
		return success(c, map[string]any{"history": []any{}})
	}
	return success(c, map[string]any{"history": records})
}

func (s *Server) handleClearHistory(c echo.Context) error {
	records, err := s.translator.Clear(c.Request().Context())
	if err != nil {
		return fail(c, http.StatusBadGateway, err.Error(), map[string]any{"history": records})
	}
	return success(c, map[string]any{"history": records})
}

func (s *Server) handleLanguages(c echo.Context) error {
	return success(c, map[string]any{"languages": translation.LanguageOptions()})
}

func (s *Server) handleView(c echo.Context) error {
	return success(c, s.translator.Snapshot())
}

func (s *Server) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		message := http.StatusText(httpErr.Code)
		if msg, ok := httpErr.Message.(string); ok && strings.TrimSpace(msg) != "" {
			message = msg
		}
		_ = fail(c, httpErr.Code, message, nil)
		return
	}

	s.logger.Error().Err(err).Msg("unhandled http error")
	_ = internalError(c, "internal server error")
}
