package api

import (
	"context"
	"embed"
	"html/template"
	"net/http"

	"pdf_shrinker/pdf"
	"pdf_shrinker/storage"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Converter shrinks the file described by a pdf.Request.
type Converter interface {
	Compress(ctx context.Context, req pdf.Request) error
}

// Config holds everything the handlers need
type Config struct {
	Store       *storage.Area
	Converter   Converter
	Logger      *zap.Logger
	MaxFileSize int64
}

func (c *Config) logger() *zap.Logger {
	if c.Logger == nil {
		return zap.NewNop()
	}
	return c.Logger
}

func SetupRoutes(r *gin.Engine, config *Config) {
	r.SetHTMLTemplate(template.Must(template.ParseFS(templatesFS, "templates/*.html")))

	// Web UI route
	r.GET("/", HandleIndex)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "pdf_shrinker",
		})
	})

	r.POST("/shrink-pdf", func(c *gin.Context) { HandleShrinkPDF(c, config) })
}
