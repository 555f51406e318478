package apihandlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"

	mw "github.com/Kleo07/MindSpaceX/pkg/apihelpers/middlewares"
	"github.com/Kleo07/MindSpaceX/pkg/assessment/scoring"
	"github.com/Kleo07/MindSpaceX/pkg/assessment/types"
)

func (h *HttpEndpoints) AddAssessmentAPI(rg *gin.RouterGroup) {
	assessmentGroup := rg.Group("/assessment")
	assessmentGroup.Use(mw.GetAndValidateSessionToken(h.tokenSignKey))
	{
		assessmentGroup.POST("/upsert", mw.RequirePayload(), h.upsertAssessmentHandl)
		assessmentGroup.GET("/:userId", h.getAssessmentHandl)
		assessmentGroup.DELETE("/:userId", h.deleteAssessmentHandl)
	}
}

// upsertAssessmentHandl merges the submitted answer fields into the caller's
// assessment document. userId is the sole lookup key; email is stored as
// denormalized metadata only.
func (h *HttpEndpoints) upsertAssessmentHandl(c *gin.Context) {
	var req types.AssessmentDocument
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Error("failed to bind upsert payload", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
		return
	}

	if req.UserID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "userId required"})
		return
	}

	session, ok := mw.GetValidatedSession(c)
	if !ok || session.Subject != req.UserID {
		slog.Warn("upsert for foreign user rejected", slog.String("userId", req.UserID))
		c.JSON(http.StatusForbidden, gin.H{"ok": false, "error": "not allowed for this user"})
		return
	}

	record := req.AssessmentRecord
	record.Sanitize()

	// score the merged result, not just the submitted fields; the race with a
	// concurrent upsert is an accepted last-write-wins limitation
	merged := record
	existing, err := h.assessmentDBConn.GetAssessmentByUserID(req.UserID)
	if err == nil {
		merged = types.Merge(existing.AssessmentRecord, record)
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		slog.Error("failed to load existing assessment", slog.String("userId", req.UserID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "server error"})
		return
	}

	doc, err := h.assessmentDBConn.UpsertAssessment(
		req.UserID,
		req.Email,
		record,
		scoring.WellnessScore(merged),
	)
	if err != nil {
		slog.Error("failed to upsert assessment", slog.String("userId", req.UserID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "data": doc})
}

func (h *HttpEndpoints) getAssessmentHandl(c *gin.Context) {
	userID := c.Param("userId")

	session, ok := mw.GetValidatedSession(c)
	if !ok || session.Subject != userID {
		c.JSON(http.StatusForbidden, gin.H{"ok": false, "error": "not allowed for this user"})
		return
	}

	doc, err := h.assessmentDBConn.GetAssessmentByUserID(userID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			// a missing document is a regular outcome, not an error
			c.JSON(http.StatusOK, gin.H{"ok": true, "data": nil})
			return
		}
		slog.Error("failed to fetch assessment", slog.String("userId", userID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "data": doc})
}

func (h *HttpEndpoints) deleteAssessmentHandl(c *gin.Context) {
	userID := c.Param("userId")

	session, ok := mw.GetValidatedSession(c)
	if !ok || session.Subject != userID {
		c.JSON(http.StatusForbidden, gin.H{"ok": false, "error": "not allowed for this user"})
		return
	}

	count, err := h.assessmentDBConn.DeleteAssessment(c.Request.Context(), userID)
	if err != nil {
		slog.Error("failed to delete assessment", slog.String("userId", userID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "server error"})
		return
	}

	slog.Info("assessment deleted", slog.String("userId", userID), slog.Int64("count", count))
	c.JSON(http.StatusOK, gin.H{"ok": true, "data": nil})
}
