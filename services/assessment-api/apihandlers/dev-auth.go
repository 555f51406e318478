package apihandlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	mw "github.com/Kleo07/MindSpaceX/pkg/apihelpers/middlewares"
	jwthandling "github.com/Kleo07/MindSpaceX/pkg/jwt-handling"
)

// AddDevAuthAPI registers the development-only token endpoint that stands in
// for the external identity provider when running the stack locally.
func (h *HttpEndpoints) AddDevAuthAPI(rg *gin.RouterGroup) {
	devGroup := rg.Group("/dev")
	{
		devGroup.POST("/session", mw.RequirePayload(), h.issueDevSessionTokenHandl)
	}
}

type devSessionReq struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
}

func (h *HttpEndpoints) issueDevSessionTokenHandl(c *gin.Context) {
	var req devSessionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
		return
	}
	if req.UserID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "userId required"})
		return
	}

	token, err := jwthandling.GenerateNewSessionToken(h.devTokenExpiresIn, req.UserID, req.Email, h.tokenSignKey)
	if err != nil {
		slog.Error("failed to generate dev session token", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "data": gin.H{"token": token}})
}
