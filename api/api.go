package api

import (
	"errors"
	"fmt"

	"foliosync/internal/domain"
	"foliosync/internal/logger"
	"foliosync/internal/repository"
	"foliosync/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// ApiHandler is the thin presentation facade over the session core. No
// business logic lives here; every handler reads or pokes the services.
type ApiHandler struct {
	IdentityRepository repository.IdentityRepository
	SessionService     service.SessionService
	AllocationStore    service.AllocationStore
	AnalysisService    service.AnalysisService
	StopSession        func()
}

func (m ApiHandler) InitializeRouterEngine() *gin.Engine {
	router := gin.Default()
	router.Use(cors.Default())

	router.GET("/", func(ctx *gin.Context) {
		ctx.JSON(200, map[string]string{"message": "welcome to foliosync"})
	})
	router.POST("/signin", m.signIn)
	router.POST("/signout", m.signOut)
	router.GET("/positions", m.listPositions)
	router.POST("/positions", m.addPosition)
	router.DELETE("/positions/:ticker", m.removePosition)
	router.POST("/save", m.savePortfolio)
	router.POST("/analyze", m.analyze)

	return router
}

func (m ApiHandler) StartApi(port int) error {
	return m.InitializeRouterEngine().Run(fmt.Sprintf(":%d", port))
}

func returnErrorJson(err error, c *gin.Context) {
	returnErrorJsonCode(err, c, statusCodeForError(err))
}

func returnErrorJsonCode(err error, c *gin.Context, code int) {
	logger.Error(err)
	c.AbortWithStatusJSON(code, gin.H{
		"error": err.Error(),
	})
}

// statusCodeForError maps the core's error taxonomy onto HTTP statuses.
// Local invariant violations are the caller's fault; remote failures are
// gateway errors.
func statusCodeForError(err error) int {
	var validationErr domain.ValidationError
	var incompleteErr domain.IncompleteAllocationError
	var backendErr domain.AnalysisBackendError
	var networkErr domain.NetworkError
	var persistenceErr domain.PersistenceError
	var formatErr domain.ResponseFormatError

	switch {
	case errors.As(err, &validationErr), errors.As(err, &incompleteErr):
		return 400
	case errors.Is(err, domain.ErrAnalysisInFlight):
		return 409
	case errors.As(err, &backendErr), errors.As(err, &networkErr),
		errors.As(err, &persistenceErr), errors.As(err, &formatErr):
		return 502
	default:
		return 500
	}
}
