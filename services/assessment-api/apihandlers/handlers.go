package apihandlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	assessmentDB "github.com/Kleo07/MindSpaceX/pkg/db/assessment"
)

func HealthCheckHandle(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true, "status": "UP"})
}

type HttpEndpoints struct {
	assessmentDBConn  *assessmentDB.AssessmentDBService
	tokenSignKey      string
	devTokenExpiresIn time.Duration
}

func NewHTTPHandler(
	tokenSignKey string,
	assessmentDBConn *assessmentDB.AssessmentDBService,
	devTokenExpiresIn time.Duration,
) *HttpEndpoints {
	return &HttpEndpoints{
		assessmentDBConn:  assessmentDBConn,
		tokenSignKey:      tokenSignKey,
		devTokenExpiresIn: devTokenExpiresIn,
	}
}
