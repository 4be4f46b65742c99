package apihandlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"scribe/internal/app"
	"scribe/internal/models"
	"scribe/internal/services"
)

type APIHandler struct {
	App *app.App
}

func NewAPIHandler(a *app.App) *APIHandler {
	return &APIHandler{App: a}
}

type startRequestBody struct {
	S3URI string `json:"s3_uri"`
}

// StartTranscriptionHandler handles POST /. The declared content type
// selects the mode: audio/* for a binary upload, application/json for a
// pre-existing storage reference. The job is started and the handler
// returns immediately; no waiting happens here.
func (h *APIHandler) StartTranscriptionHandler(c *gin.Context) {
	contentType := c.GetHeader("Content-Type")
	req := services.StartRequest{ContentType: contentType}

	if strings.HasPrefix(strings.ToLower(contentType), "application/json") {
		var body startRequestBody
		if err := c.ShouldBindJSON(&body); err != nil {
			JSONError(c, http.StatusBadRequest, "Invalid JSON body", err.Error())
			return
		}
		req.S3URI = body.S3URI
	} else {
		data, err := io.ReadAll(c.Request.Body)
		if err != nil {
			JSONError(c, http.StatusBadRequest, "Unreadable body", err.Error())
			return
		}
		req.Body = data
		req.Base64 = strings.EqualFold(c.GetHeader("Content-Transfer-Encoding"), "base64")
	}

	result, err := h.App.Stateless.Start(c.Request.Context(), req)
	if err != nil {
		h.respondStartError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"status":   "processing",
		"job_name": result.Token,
		"s3_uri":   result.SourceURI,
		"message":  "Transcription started. Check status at: GET /" + result.Token,
	})
}

func (h *APIHandler) respondStartError(c *gin.Context, err error) {
	var sizeErr *models.SizeLimitError
	switch {
	case errors.As(err, &sizeErr):
		JSONError(c, http.StatusRequestEntityTooLarge, "File too large",
			fmt.Sprintf("Maximum file size is %dMB. Use S3 URI for larger files.", sizeErr.Limit/(1024*1024)))
	case errors.Is(err, models.ErrValidation):
		JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
	default:
		log.WithError(err).Error("Start transcription failed")
		JSONError(c, http.StatusInternalServerError, "Internal server error", err.Error())
	}
}

// StatusHandler handles GET /:job_name with a single poll; it never blocks
// waiting for the job.
func (h *APIHandler) StatusHandler(c *gin.Context) {
	token := c.Param("job_name")

	res, err := h.App.Stateless.Status(c.Request.Context(), token)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			JSONError(c, http.StatusNotFound, "Job not found",
				"No transcription job found with name: "+token)
			return
		}
		log.WithError(err).WithField("job", token).Error("Status check failed")
		JSONError(c, http.StatusInternalServerError, "Internal server error", err.Error())
		return
	}

	switch res.Classification {
	case models.ClassCompleted:
		c.JSON(http.StatusOK, gin.H{
			"status":     "completed",
			"job_name":   token,
			"transcript": res.Transcript,
			"language":   res.Language,
		})
	case models.ClassFailed:
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":   "failed",
			"job_name": token,
			"error":    res.FailureReason,
		})
	default:
		c.JSON(http.StatusAccepted, gin.H{
			"status":   "processing",
			"job_name": token,
			"message":  "Transcription still in progress",
		})
	}
}
