// Package httpapi serves did:cheqd resolution over HTTP in the shape of a
// Universal Resolver driver.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"xdao.co/didcheqd/cidutil"
	"xdao.co/didcheqd/did"
	"xdao.co/didcheqd/driver"
	"xdao.co/didcheqd/internal/observability"
	"xdao.co/didcheqd/model"
)

const version = "0.1.0"

type Config struct {
	CORSOrigins []string
	Logger      zerolog.Logger
	Networks    []string
}

type Server struct {
	driver   *driver.Driver
	router   *gin.Engine
	networks []string
	started  time.Time
}

func New(d *driver.Driver, cfg Config) *Server {
	observability.RegisterMetrics()
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(observability.RequestLogger(cfg.Logger))
	r.Use(observability.RequestMetricsMiddleware())

	corsCfg := cors.Config{
		AllowMethods: []string{"GET"},
		AllowHeaders: []string{"Origin", "Accept", "If-None-Match"},
		MaxAge:       12 * time.Hour,
	}
	if origins := normalizeOrigins(cfg.CORSOrigins); len(origins) > 0 {
		corsCfg.AllowOrigins = origins
	} else {
		corsCfg.AllowAllOrigins = true
	}
	r.Use(cors.New(corsCfg))

	s := &Server{driver: d, router: r, networks: cfg.Networks, started: time.Now()}
	s.routes()
	return s
}

func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) routes() {
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":   "ok",
			"uptime":   time.Since(s.started).String(),
			"networks": s.networks,
			"version":  version,
		})
	})
	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	s.router.GET("/1.0/identifiers/*did", s.resolve)
}

func (s *Server) resolve(c *gin.Context) {
	input := strings.TrimPrefix(c.Param("did"), "/")
	if q := c.Request.URL.RawQuery; q != "" {
		input += "?" + q
	}

	raw := rawDocumentType(c.GetHeader("Accept"))
	out, err := s.driver.Dereference(c.Request.Context(), input, raw)
	if err != nil {
		writeError(c, err)
		return
	}

	if out.Resource != nil {
		etag := `"` + cidutil.CIDv1RawSHA256(out.Content) + `"`
		c.Header("ETag", etag)
		if c.GetHeader("If-None-Match") == etag {
			c.Status(http.StatusNotModified)
			return
		}
		contentType := out.Metadata.ContentType
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		c.Data(http.StatusOK, contentType, out.Content)
		return
	}

	if raw != "" {
		c.Data(http.StatusOK, raw, out.Content)
		return
	}
	result := model.NewResolutionResult(out.Content, out.Document, model.ResolutionMetadata{
		ContentType: out.Metadata.ContentType,
		DID: &model.DIDInfo{
			DIDString:        input,
			MethodSpecificID: strings.TrimPrefix(input, did.Prefix),
			Method:           did.Method,
		},
	})
	c.Header("Content-Type", model.MediaTypeResolutionResult)
	c.JSON(http.StatusOK, result)
}

// rawDocumentType returns the DID document media type the client asked for,
// or "" when it wants the resolution result envelope.
func rawDocumentType(accept string) string {
	for _, part := range strings.Split(accept, ",") {
		mt := strings.TrimSpace(strings.SplitN(part, ";", 2)[0])
		switch mt {
		case model.MediaTypeDIDLDJSON, model.MediaTypeDIDJSON:
			return mt
		}
	}
	return ""
}

func writeError(c *gin.Context, err error) {
	code := model.Classify(err)
	c.Set(observability.ErrorCodeKey, string(code))
	c.Header("Content-Type", model.MediaTypeResolutionResult)
	c.JSON(statusFor(code), model.ErrorResult(err))
}

func statusFor(code model.ErrorCode) int {
	switch code {
	case model.ErrInvalidDid, model.ErrInvalidDidURL:
		return http.StatusBadRequest
	case model.ErrNotFound:
		return http.StatusNotFound
	case model.ErrMethodNotSupported:
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

func normalizeOrigins(origins []string) []string {
	out := make([]string, 0, len(origins))
	for _, o := range origins {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}
