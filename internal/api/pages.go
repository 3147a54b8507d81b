package api

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/perio-stage-predictor/internal/domain"
	"github.com/perio-stage-predictor/internal/middleware"
	"github.com/perio-stage-predictor/internal/service"
)

const indexTemplate = "index.html"

// handleIndex renders the empty form and the sidebar.
func (s *Server) handleIndex(c *gin.Context) {
	c.HTML(http.StatusOK, indexTemplate, s.newPageData(nil, currentSession(c)))
}

// handlePredictForm handles the HTML form submit.
func (s *Server) handlePredictForm(c *gin.Context) {
	state := currentSession(c)

	if err := c.Request.ParseForm(); err != nil {
		data := s.newPageData(nil, state)
		data.Error = "The form could not be read, please try again."
		c.HTML(http.StatusBadRequest, indexTemplate, data)
		return
	}
	values := c.Request.PostForm

	result, err := s.predictFromForm(c, values)
	if err != nil {
		data := s.newPageData(values, state)
		if verr, ok := domain.AsValidationError(err); ok {
			data.Error = verr.Message
			c.HTML(http.StatusUnprocessableEntity, indexTemplate, data)
			return
		}
		_ = c.Error(err)
		data.Error = "Something went wrong while predicting, please try again."
		c.HTML(http.StatusInternalServerError, indexTemplate, data)
		return
	}

	if err := s.presentationDelay(c.Request.Context()); err != nil {
		// Client left; the result is already in the session.
		c.Status(http.StatusRequestTimeout)
		return
	}

	data := s.newPageData(values, state)
	data.Result = result
	c.HTML(http.StatusOK, indexTemplate, data)
}

// handleRateLimitedForm re-renders the submitted form with an inline error
// when the client is over the submit limit.
func (s *Server) handleRateLimitedForm(c *gin.Context) {
	var values url.Values
	if err := c.Request.ParseForm(); err == nil {
		values = c.Request.PostForm
	}
	data := s.newPageData(values, currentSession(c))
	data.Error = middleware.RateLimitMessage + "."
	c.HTML(http.StatusTooManyRequests, indexTemplate, data)
}

func (s *Server) predictFromForm(c *gin.Context, values url.Values) (*domain.PredictionResult, error) {
	sub, err := service.ParseFormValues(values)
	if err != nil {
		return nil, err
	}
	return s.predictor.Predict(c.Request.Context(), sub, currentSession(c))
}

// handleRevealForm opens the contact panel and returns to the page.
func (s *Server) handleRevealForm(c *gin.Context) {
	switch err := currentSession(c).Reveal(); {
	case err == nil:
		s.metrics.RecordReveal()
	case !errors.Is(err, domain.ErrNoReport):
		_ = c.Error(err)
	}
	c.Redirect(http.StatusSeeOther, "/")
}

// handleResetForm ends the session and returns to a fresh page.
func (s *Server) handleResetForm(c *gin.Context) {
	s.endSession(c)
	c.Redirect(http.StatusSeeOther, "/")
}

// handleDownload serves the last report as a text attachment.
func (s *Server) handleDownload(c *gin.Context) {
	report, err := currentSession(c).Report()
	if err != nil {
		s.respondError(c, err)
		return
	}

	s.metrics.RecordDownload()
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", s.config.Report.FileName))
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(report))
}
