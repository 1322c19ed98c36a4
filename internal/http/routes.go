package http

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/yasharthbajpai/speech-to-text/internal/config"
	"github.com/yasharthbajpai/speech-to-text/internal/domain"
	"github.com/yasharthbajpai/speech-to-text/internal/pipeline"
	"github.com/yasharthbajpai/speech-to-text/internal/services"
)

// PipelineRunner is the handler's view of the orchestrator; tests substitute
// a stub so no outbound calls happen.
type PipelineRunner interface {
	Run(ctx context.Context, audio []byte) (pipeline.Result, error)
}

// TranscribeResponse is the success envelope for POST /transcribe and the
// request body for the PDF report endpoint.
type TranscribeResponse struct {
	Status     string `json:"status"`
	Transcript string `json:"transcript"`
	domain.NormalizedResult
}

type API struct {
	cfg      config.Config
	pipeline PipelineRunner
	pdf      *services.PDFService
}

func NewAPI(cfg config.Config, pipe PipelineRunner, pdf *services.PDFService) *API {
	return &API{cfg: cfg, pipeline: pipe, pdf: pdf}
}

func registerRoutes(r *gin.Engine, api *API, registry *prometheus.Registry) {
	r.GET("/", api.handleHealth)
	r.POST("/transcribe", api.handleTranscribe)
	r.POST("/reports/pdf", api.handleReportPDF)
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))
}

func (a *API) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"message": "Voice-to-Action Backend is running",
		"version": "1.0.0",
	})
}

func (a *API) handleTranscribe(c *gin.Context) {
	fileHeader, err := c.FormFile("audio")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No audio file uploaded"})
		return
	}

	upload, err := fileHeader.Open()
	if err != nil {
		log.Printf("error opening upload: %v", err)
		respondServerError(c, err)
		return
	}
	defer upload.Close()

	audio, err := io.ReadAll(upload)
	if err != nil {
		log.Printf("error reading upload: %v", err)
		respondServerError(c, err)
		return
	}

	result, err := a.pipeline.Run(c.Request.Context(), audio)
	if err != nil {
		switch {
		case errors.Is(err, pipeline.ErrNoAudio):
			c.JSON(http.StatusBadRequest, gin.H{"error": "No audio file uploaded"})
		case errors.Is(err, pipeline.ErrEmptyTranscript):
			c.JSON(http.StatusBadRequest, gin.H{
				"status": "error",
				"error":  "No transcript generated",
			})
		default:
			log.Printf("pipeline failed: %v", err)
			respondServerError(c, err)
		}
		return
	}

	c.JSON(http.StatusOK, TranscribeResponse{
		Status:           "success",
		Transcript:       result.Transcript,
		NormalizedResult: result.Normalized,
	})
}

func (a *API) handleReportPDF(c *gin.Context) {
	var payload TranscribeResponse
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	buf := &bytes.Buffer{}
	if err := a.pdf.WriteReport(buf, payload.Transcript, payload.NormalizedResult); err != nil {
		log.Printf("pdf report failed: %v", err)
		respondServerError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="meeting-report.pdf"`)
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}

func respondServerError(c *gin.Context, err error) {
	c.JSON(http.StatusInternalServerError, gin.H{
		"status":  "error",
		"error":   "Processing failed",
		"details": err.Error(),
	})
}
