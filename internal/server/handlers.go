package server

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/kapu/ayovirals-go/internal/constants"
	"github.com/kapu/ayovirals-go/internal/domain"
	"github.com/kapu/ayovirals-go/internal/service/result"
	apperrors "github.com/kapu/ayovirals-go/pkg/errors"
	"go.uber.org/zap"
)

// processRequest uses pointers so a missing field can be told apart from an
// empty one.
type processRequest struct {
	VideoURL *string `json:"video_url" binding:"required"`
	Persona  *string `json:"persona" binding:"required"`
}

type batchRequest struct {
	Requests []processRequest `json:"requests" binding:"required"`
}

// processResponse is the public shape of a ProcessingResult.
type processResponse struct {
	ID       string   `json:"id"`
	Summary  string   `json:"summary"`
	Hooks    []string `json:"hooks"`
	Keywords []string `json:"keywords"`
	Platform string   `json:"platform"`
	Persona  string   `json:"persona"`
}

func newProcessResponse(res *domain.ProcessingResult) processResponse {
	return processResponse{
		ID:       res.ID,
		Summary:  res.Summary,
		Hooks:    res.Hooks,
		Keywords: res.Keywords,
		Platform: string(res.Platform),
		Persona:  res.Persona,
	}
}

func (r processRequest) validate() (domain.ProcessingRequest, error) {
	if r.VideoURL == nil || r.Persona == nil {
		return domain.ProcessingRequest{}, errMissingField
	}
	url := strings.TrimSpace(*r.VideoURL)
	if url == "" {
		return domain.ProcessingRequest{}, apperrors.NewValidationError("Video URL is required", "video_url", *r.VideoURL)
	}
	if len(url) > constants.RequestLimits.MaxURLLength {
		return domain.ProcessingRequest{}, apperrors.NewValidationError("Video URL is too long", "video_url", len(url))
	}
	return domain.ProcessingRequest{
		VideoURL: url,
		Persona:  strings.TrimSpace(*r.Persona),
	}, nil
}

var errMissingField = errors.New("video_url and persona are required")

func (s *Server) handleRoot(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "AyoVirals API is running!"})
}

func (s *Server) handleProcessVideo(c *gin.Context) {
	var body processRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		s.writeUnprocessable(c, err)
		return
	}

	req, err := body.validate()
	if err != nil {
		s.writeValidation(c, err)
		return
	}

	res := s.deps.Processor.Process(c.Request.Context(), req)
	c.JSON(http.StatusOK, newProcessResponse(res))
}

func (s *Server) handleProcessVideos(c *gin.Context) {
	var body batchRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		s.writeUnprocessable(c, err)
		return
	}

	if n := len(body.Requests); n == 0 || n > constants.RequestLimits.MaxBatchSize {
		s.writeError(c, apperrors.NewValidationError("Batch must contain between 1 and 10 requests", "requests", n))
		return
	}

	reqs := make([]domain.ProcessingRequest, 0, len(body.Requests))
	for _, r := range body.Requests {
		req, err := r.validate()
		if err != nil {
			s.writeValidation(c, err)
			return
		}
		reqs = append(reqs, req)
	}

	results := s.deps.Processor.ProcessBatch(c.Request.Context(), reqs)
	out := make([]processResponse, 0, len(results))
	for _, res := range results {
		out = append(out, newProcessResponse(res))
	}
	c.JSON(http.StatusOK, gin.H{"results": out})
}

func (s *Server) handlePersonas(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"personas": s.deps.Personas.List()})
}

func (s *Server) handleViralPatterns(c *gin.Context) {
	c.JSON(http.StatusOK, s.deps.Patterns)
}

func (s *Server) handleGetVideo(c *gin.Context) {
	id := c.Param("id")
	if s.deps.Store == nil {
		s.writeError(c, apperrors.NewStoreUnavailableError("none", nil))
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), constants.RequestLimits.LookupTimeout)
	defer cancel()

	record, err := s.deps.Store.FindByID(ctx, id)
	switch {
	case errors.Is(err, result.ErrNotFound):
		s.writeError(c, apperrors.NewNotFoundError("Video", id))
		return
	case err != nil:
		s.logger.Error("Video lookup failed",
			zap.String("id", id),
			zap.String("store", s.deps.Store.Name()),
			zap.Error(err))
		s.writeError(c, apperrors.NewStoreUnavailableError(s.deps.Store.Name(), err))
		return
	}

	c.JSON(http.StatusOK, record)
}

func (s *Server) writeUnprocessable(c *gin.Context, err error) {
	c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "Invalid request body: " + err.Error()})
}

func (s *Server) writeValidation(c *gin.Context, err error) {
	if errors.Is(err, errMissingField) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": err.Error()})
		return
	}
	s.writeError(c, err)
}

// writeError renders typed errors with their status; the cause stays in logs.
func (s *Server) writeError(c *gin.Context, err error) {
	status := apperrors.StatusCode(err)
	detail := "Internal server error"

	var appErr *apperrors.AppError
	var validation *apperrors.ValidationError
	var notFound *apperrors.NotFoundError
	var unavailable *apperrors.StoreUnavailableError
	switch {
	case errors.As(err, &validation):
		detail = validation.Message
	case errors.As(err, &notFound):
		detail = notFound.Message
	case errors.As(err, &unavailable):
		detail = unavailable.Message
	case errors.As(err, &appErr):
		detail = appErr.Message
	}

	c.JSON(status, gin.H{"detail": detail})
}
