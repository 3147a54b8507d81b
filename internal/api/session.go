package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/perio-stage-predictor/internal/session"
)

const sessionKey = "session"

// sessionMiddleware attaches the caller's session state, starting a new
// session when the cookie is missing or refers to an ended one.
func (s *Server) sessionMiddleware() gin.HandlerFunc {
	cfg := s.cookieCfg

	return func(c *gin.Context) {
		id, _ := c.Cookie(cfg.CookieName)

		state, created := s.sessions.GetOrCreate(id)
		if created {
			s.setSessionCookie(c, state.ID())
		}

		c.Set(sessionKey, state)
		c.Next()
	}
}

func (s *Server) setSessionCookie(c *gin.Context, id string) {
	cfg := s.cookieCfg
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(cfg.CookieName, id, 0, "/", "", cfg.SecureCookie, true)
}

func (s *Server) clearSessionCookie(c *gin.Context) {
	cfg := s.cookieCfg
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(cfg.CookieName, "", -1, "/", "", cfg.SecureCookie, true)
}

// currentSession returns the state attached by sessionMiddleware.
func currentSession(c *gin.Context) *session.State {
	return c.MustGet(sessionKey).(*session.State)
}

// endSession deletes the caller's session; the next request starts a new one.
func (s *Server) endSession(c *gin.Context) {
	state := currentSession(c)
	state.Reset()
	s.sessions.Delete(state.ID())
	s.clearSessionCookie(c)
}
