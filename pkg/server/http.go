// Package server exposes the translation service over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/dasmlab/fassara/pkg/lang"
	"github.com/dasmlab/fassara/pkg/service"
)

// Version is reported by the root endpoint.
const Version = "1.0.0"

// HTTPServer serves the translation API.
type HTTPServer struct {
	svc    *service.TranslationService
	logger *logrus.Logger
	port   int
	srv    *http.Server
}

// New creates an HTTP server over the given translation service.
func New(svc *service.TranslationService, logger *logrus.Logger, port int) *HTTPServer {
	if logger == nil {
		logger = logrus.New()
	}
	return &HTTPServer{
		svc:    svc,
		logger: logger,
		port:   port,
	}
}

// Router builds the gin engine with all routes registered.
func (s *HTTPServer) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger(), cors())

	r.GET("/", s.handleRoot)
	r.GET("/health", s.handleHealth)
	r.GET("/languages", s.handleLanguages)
	r.GET("/model/info", s.handleModelInfo)
	r.POST("/translate", s.handleTranslate)
	r.POST("/translate/batch", s.handleTranslateBatch)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

// Start runs the server until Shutdown is called or it fails.
func (s *HTTPServer) Start() error {
	s.srv = &http.Server{
		Addr:    fmt.Sprintf(":%d", s.port),
		Handler: s.Router(),
	}

	s.logger.WithFields(logrus.Fields{
		"port": s.port,
	}).Info("Starting HTTP server")

	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests and stops the server.
func (s *HTTPServer) Shutdown(ctx context.Context) error {
	if s.srv == nil {
		return nil
	}
	return s.srv.Shutdown(ctx)
}

// translationRequest is the POST /translate payload.
type translationRequest struct {
	Text       string `json:"text" binding:"required"`
	SourceLang string `json:"source_lang"`
	TargetLang string `json:"target_lang"`
	MaxLength  int    `json:"max_length"`
	NumBeams   int    `json:"num_beams"`
}

// batchTranslationRequest is the POST /translate/batch payload.
type batchTranslationRequest struct {
	Texts      []string `json:"texts" binding:"required"`
	SourceLang string   `json:"source_lang"`
	TargetLang string   `json:"target_lang"`
	MaxLength  int      `json:"max_length"`
	NumBeams   int      `json:"num_beams"`
}

// translationResponse is the wire shape. TranslatedText duplicates
// Translation for compatibility with older clients.
type translationResponse struct {
	Translation    string `json:"translation"`
	TranslatedText string `json:"translated_text"`
	SourceLang     string `json:"source_lang"`
	TargetLang     string `json:"target_lang"`
	OriginalText   string `json:"original_text"`
}

func toResponse(res service.Result) translationResponse {
	return translationResponse{
		Translation:    res.Translation,
		TranslatedText: res.Translation,
		SourceLang:     res.SourceLang,
		TargetLang:     res.TargetLang,
		OriginalText:   res.OriginalText,
	}
}

func (s *HTTPServer) handleTranslate(c *gin.Context) {
	var req translationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	res, err := s.svc.Translate(c.Request.Context(), service.Request{
		Text:       req.Text,
		SourceLang: req.SourceLang,
		TargetLang: req.TargetLang,
		MaxLength:  req.MaxLength,
		NumBeams:   req.NumBeams,
	})
	if err != nil {
		s.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, toResponse(res))
}

func (s *HTTPServer) handleTranslateBatch(c *gin.Context) {
	var req batchTranslationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	results, err := s.svc.TranslateBatch(c.Request.Context(), service.BatchRequest{
		Texts:      req.Texts,
		SourceLang: req.SourceLang,
		TargetLang: req.TargetLang,
		MaxLength:  req.MaxLength,
		NumBeams:   req.NumBeams,
	})
	if err != nil {
		s.renderError(c, err)
		return
	}

	translations := make([]translationResponse, 0, len(results))
	for _, res := range results {
		translations = append(translations, toResponse(res))
	}

	c.JSON(http.StatusOK, gin.H{
		"translations": translations,
		"count":        len(translations),
	})
}

func (s *HTTPServer) handleModelInfo(c *gin.Context) {
	info, status, err := s.svc.ModelInfo(c.Request.Context())
	if err != nil {
		s.logger.WithError(err).Error("Failed to get model info")
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Could not retrieve model information"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"model_info": info,
		"status":     status,
	})
}

func (s *HTTPServer) handleLanguages(c *gin.Context) {
	supported := make(map[string]gin.H)
	for _, l := range lang.Supported() {
		supported[string(l.Code)] = gin.H{
			"name":        l.Name,
			"native_name": l.NativeName,
		}
	}

	pairs := make([]gin.H, 0, 2)
	for _, p := range lang.Pairs() {
		pairs = append(pairs, gin.H{
			"source": string(p.Source),
			"target": string(p.Target),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"supported_languages": supported,
		"translation_pairs":   pairs,
	})
}

func (s *HTTPServer) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":       "healthy",
		"model_loaded": !s.svc.DemoMode(),
		"timestamp":    time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *HTTPServer) handleRoot(c *gin.Context) {
	status := "online"
	c.JSON(http.StatusOK, gin.H{
		"message":      "English-Hausa Translator API",
		"version":      Version,
		"status":       status,
		"model_loaded": !s.svc.DemoMode(),
		"docs":         "/languages",
	})
}

// renderError maps service errors onto HTTP statuses: caller errors get 400,
// engine failures get 500.
func (s *HTTPServer) renderError(c *gin.Context, err error) {
	var valErr *service.ValidationError
	if errors.As(err, &valErr) {
		c.JSON(http.StatusBadRequest, gin.H{"detail": valErr.Error()})
		return
	}

	var genErr *service.GenerationError
	if errors.As(err, &genErr) {
		s.logger.WithError(genErr.Err).Error("Translation error")
		c.JSON(http.StatusInternalServerError, gin.H{"detail": fmt.Sprintf("Translation failed: %v", genErr.Err)})
		return
	}

	s.logger.WithError(err).Error("Unexpected error")
	c.JSON(http.StatusInternalServerError, gin.H{"detail": "internal server error"})
}

// requestLogger logs each request with logrus fields.
func (s *HTTPServer) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.WithFields(logrus.Fields{
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"status":      c.Writer.Status(),
			"duration_ms": time.Since(start).Milliseconds(),
		}).Info("Request handled")
	}
}

// cors allows all origins. The web UI is served from a different host.
func cors() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
