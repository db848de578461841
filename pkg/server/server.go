package server

import (
	"context"
	"errors"
	"io"
	"mime"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/kataras/svg2jsx"
	"github.com/kataras/svg2jsx/pkg/markup"
)

// RequestIDHeader carries the per-request identifier.
const RequestIDHeader = "X-Request-ID"

// DefaultMaxBodyBytes bounds the size of an uploaded SVG.
const DefaultMaxBodyBytes = 5 << 20

// Options configures the HTTP service.
type Options struct {
	Convert      svg2jsx.Options
	Logger       svg2jsx.Logger // nil = no request logging
	MaxBodyBytes int64          // default DefaultMaxBodyBytes
}

// Server exposes the conversion pipeline over HTTP:
//
//	POST /api/convert   raw SVG body, {"svg": "..."} JSON, or multipart "file" upload
//	GET  /healthz
//	GET  /metrics       Prometheus metrics
type Server struct {
	opts   Options
	engine *gin.Engine

	registry    *prometheus.Registry
	conversions *prometheus.CounterVec
	duration    prometheus.Histogram
}

type convertRequest struct {
	SVG *string `json:"svg" binding:"required"`
}

// New builds a server with its own metrics registry.
func New(opts Options) *Server {
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = DefaultMaxBodyBytes
	}

	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	s := &Server{
		opts:     opts,
		registry: reg,
		conversions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "svg2jsx_conversions_total",
			Help: "Conversions by output target and result",
		}, []string{"target", "result"}),
		duration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "svg2jsx_conversion_duration_seconds",
			Help:    "Time spent converting one input, formatting included",
			Buckets: prometheus.ExponentialBuckets(0.0001, 2, 14), // 0.1ms to ~800ms
		}),
	}

	engine := gin.New()
	engine.Use(gin.Recovery(), s.requestID(), s.logRequests())

	engine.GET("/healthz", s.health)
	engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))
	engine.POST("/api/convert", s.convert)

	s.engine = engine
	return s
}

// Handler returns the http.Handler serving all routes.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves on addr until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
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
		if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "version": svg2jsx.Version})
}

func (s *Server) convert(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, s.opts.MaxBodyBytes)

	input, status, err := s.readInput(c)
	if err != nil {
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	var target svg2jsx.Target
	if t := c.Query("target"); t != "" {
		target, err = svg2jsx.ParseTarget(t)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	start := time.Now()
	result := svg2jsx.Convert(c.Request.Context(), input, s.opts.Convert)
	s.duration.Observe(time.Since(start).Seconds())
	s.observe(result)

	if target != "" {
		c.String(http.StatusOK, result.Get(target))
		return
	}
	c.JSON(http.StatusOK, result)
}

// readInput extracts the SVG text from a multipart upload, a JSON body, or
// a raw body, in that order of precedence by content type.
func (s *Server) readInput(c *gin.Context) (string, int, error) {
	mediaType, _, _ := mime.ParseMediaType(c.GetHeader("Content-Type"))

	switch mediaType {
	case "multipart/form-data":
		fh, err := c.FormFile("file")
		if err != nil {
			return "", http.StatusBadRequest, errors.New(`missing "file" form field`)
		}
		if !isSVGUpload(filepath.Ext(fh.Filename), fh.Header.Get("Content-Type")) {
			return "", http.StatusUnsupportedMediaType, errors.New("uploaded file is not an SVG")
		}
		f, err := fh.Open()
		if err != nil {
			return "", http.StatusBadRequest, err
		}
		defer f.Close()
		data, err := io.ReadAll(f)
		if err != nil {
			return "", http.StatusBadRequest, err
		}
		text, err := markup.Decode(data, fh.Header.Get("Content-Type"))
		if err != nil {
			return "", http.StatusUnsupportedMediaType, err
		}
		return text, http.StatusOK, nil

	case "application/json":
		var req convertRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			return "", http.StatusBadRequest, err
		}
		return *req.SVG, http.StatusOK, nil

	default:
		data, err := io.ReadAll(c.Request.Body)
		if err != nil {
			var maxErr *http.MaxBytesError
			if errors.As(err, &maxErr) {
				return "", http.StatusRequestEntityTooLarge, err
			}
			return "", http.StatusBadRequest, err
		}
		text, err := markup.Decode(data, c.GetHeader("Content-Type"))
		if err != nil {
			return "", http.StatusUnsupportedMediaType, err
		}
		return text, http.StatusOK, nil
	}
}

func isSVGUpload(ext, contentType string) bool {
	if strings.EqualFold(ext, ".svg") {
		return true
	}
	mediaType, _, _ := mime.ParseMediaType(contentType)
	return mediaType == "image/svg+xml"
}

func (s *Server) observe(r *svg2jsx.Result) {
	for _, t := range svg2jsx.Targets {
		result := "ok"
		switch r.Get(t) {
		case svg2jsx.InvalidPlaceholder:
			result = "invalid"
		case svg2jsx.ErrorPlaceholder:
			result = "error"
		}
		s.conversions.WithLabelValues(string(t), result).Inc()
	}
}

func (s *Server) requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

func (s *Server) logRequests() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		if s.opts.Logger == nil {
			return
		}
		s.opts.Logger.Infof("%s %s %d %s [%s]",
			c.Request.Method, c.Request.URL.Path, c.Writer.Status(),
			time.Since(start).Round(time.Microsecond), c.GetString("request_id"))
	}
}
