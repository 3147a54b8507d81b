package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/perio-stage-predictor/internal/domain"
	"github.com/perio-stage-predictor/internal/middleware"
	"github.com/perio-stage-predictor/internal/service"
)

type predictResponse struct {
	*domain.PredictionResult
	Session panelResponse `json:"session"`
}

// handlePredictJSON handles JSON submissions.
func (s *Server) handlePredictJSON(c *gin.Context) {
	var sub service.Submission
	if err := c.ShouldBindJSON(&sub); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": domain.NewAPIError(domain.ErrInvalidInput, "Request body must be a JSON patient form", err.Error(), requestID(c)),
		})
		return
	}

	state := currentSession(c)
	result, err := s.predictor.Predict(c.Request.Context(), &sub, state)
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, predictResponse{
		PredictionResult: result,
		Session:          s.panelJSON(state.View()),
	})
}

// handleGetSession returns the sidebar state.
func (s *Server) handleGetSession(c *gin.Context) {
	c.JSON(http.StatusOK, s.panelJSON(currentSession(c).View()))
}

// handleRevealJSON opens the contact panel.
func (s *Server) handleRevealJSON(c *gin.Context) {
	state := currentSession(c)
	if err := state.Reveal(); err != nil {
		if errors.Is(err, domain.ErrNoReport) {
			c.JSON(http.StatusConflict, gin.H{
				"error": domain.NewAPIError(domain.ErrNoReportCode, "Submit the form before contacting a specialist", "", requestID(c)),
			})
			return
		}
		s.respondError(c, err)
		return
	}
	s.metrics.RecordReveal()
	c.JSON(http.StatusOK, s.panelJSON(state.View()))
}

// handleResetJSON ends the session.
func (s *Server) handleResetJSON(c *gin.Context) {
	s.endSession(c)
	c.Status(http.StatusNoContent)
}

func requestID(c *gin.Context) string {
	return c.GetString(middleware.CorrelationIDKey)
}

// respondError maps service errors onto JSON error responses.
func (s *Server) respondError(c *gin.Context, err error) {
	if verr, ok := domain.AsValidationError(err); ok {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": domain.NewAPIError(domain.ErrValidation, verr.Message, verr.Error(), requestID(c)),
			"field": verr.Field,
		})
		return
	}

	if errors.Is(err, domain.ErrNoReport) {
		c.JSON(http.StatusNotFound, gin.H{
			"error": domain.NewAPIError(domain.ErrNoReportCode, "No report has been generated yet", "", requestID(c)),
		})
		return
	}

	_ = c.Error(err)
	c.JSON(http.StatusInternalServerError, gin.H{
		"error": domain.NewAPIError(domain.ErrInternalServer, "Internal server error", "", requestID(c)),
	})
}
