package handlers

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/rmitchellscott/orangesnap/internal/extraction"
	"github.com/rmitchellscott/orangesnap/internal/logging"
)

// ExtractionTypeHeader selects solid colors or gradient pairs.
const ExtractionTypeHeader = "x-extraction-type"

// ExtractHandler serves color suggestions for uploaded screenshots.
type ExtractHandler struct {
	service *extraction.Service
}

// NewExtractHandler creates a new extract handler
func NewExtractHandler(service *extraction.Service) *ExtractHandler {
	return &ExtractHandler{service: service}
}

// ExtractColors handles POST /api/extract-colors with a multipart "image" field.
func (h *ExtractHandler) ExtractColors(c *gin.Context) {
	// Configuration problems are reported before the upload is read.
	if err := h.service.Check(); err != nil {
		logging.ErrorWithComponent(logging.ComponentExtraction, "Extraction unavailable", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	kind, err := extraction.ParseType(c.GetHeader(ExtractionTypeHeader))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unsupported extraction type: " + c.GetHeader(ExtractionTypeHeader)})
		return
	}

	upload, err := readUpload(c)
	if err != nil {
		if isTooLarge(err) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "Request payload too large"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": extraction.ErrMissingImage.Error()})
		return
	}

	palette, err := h.service.Extract(c.Request.Context(), upload, kind)
	if err != nil {
		writeExtractionError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"colors": palette.Values(),
		"type":   kind,
	})
}

func readUpload(c *gin.Context) (extraction.Image, error) {
	file, header, err := c.Request.FormFile("image")
	if err != nil {
		return extraction.Image{}, err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return extraction.Image{}, err
	}
	if len(data) == 0 {
		return extraction.Image{}, extraction.ErrMissingImage
	}
	return extraction.Image{Data: data, ContentType: header.Header.Get("Content-Type")}, nil
}

func isTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr) || strings.Contains(err.Error(), "request body too large")
}

func writeExtractionError(c *gin.Context, err error) {
	var perr *extraction.ParseError
	switch {
	case errors.As(err, &perr):
		c.JSON(http.StatusInternalServerError, gin.H{"error": perr.Error(), "raw": perr.Raw})
	case errors.Is(err, extraction.ErrMissingImage):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		logging.ErrorWithComponent(logging.ComponentExtraction, "Error extracting colors", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
