package http

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/yasharthbajpai/speech-to-text/internal/config"
	"github.com/yasharthbajpai/speech-to-text/internal/metrics"
	"github.com/yasharthbajpai/speech-to-text/internal/pipeline"
	"github.com/yasharthbajpai/speech-to-text/internal/services"
)

type Server struct {
	engine *gin.Engine
	cfg    config.Config
}

func NewServer(cfg config.Config) (*Server, error) {
	gin.SetMode(gin.ReleaseMode)

	registry := prometheus.NewRegistry()
	m := metrics.New(registry)

	tokens, err := services.NewGoogleTokenProvider(cfg.GoogleCredentialsFile)
	if err != nil {
		return nil, fmt.Errorf("init token provider: %w", err)
	}

	speechSvc := services.NewSpeechService(cfg, tokens, m)
	extractSvc := services.NewExtractionService(cfg, m)
	normalizer := services.NewNormalizer()
	pdfSvc := services.NewPDFService()

	pipe := pipeline.New(speechSvc, extractSvc, normalizer, m)

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(RequestID())
	engine.Use(RequestLogger(m))
	engine.Use(MaxBodySize(cfg.MaxUploadBytes))
	engine.Use(CORS())

	api := NewAPI(cfg, pipe, pdfSvc)
	registerRoutes(engine, api, registry)

	return &Server{engine: engine, cfg: cfg}, nil
}

func (s *Server) Run() error {
	addr := fmt.Sprintf(":%s", s.cfg.Port)
	return s.engine.Run(addr)
}
