package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/seasurvey/transect-backend-go/internal/config"
	"github.com/seasurvey/transect-backend-go/internal/database"
	"github.com/seasurvey/transect-backend-go/internal/handler"
	"github.com/seasurvey/transect-backend-go/internal/metrics"
	"github.com/seasurvey/transect-backend-go/internal/middleware"
	"github.com/seasurvey/transect-backend-go/internal/repository"
	"github.com/seasurvey/transect-backend-go/internal/service"
)

// SetupRouter 设置路由
func SetupRouter(cfg *config.Config, db *database.DB, m *metrics.Metrics, log *zap.Logger) *gin.Engine {
	transectService := service.NewTransectService(repository.NewTransectRepository(db), log)
	vesselService := service.NewVesselService(repository.NewVesselRepository(db), m, log)
	observerService := service.NewObserverService(repository.NewObserverRepository(db))

	transects := handler.NewTransectHandler(transectService)
	vessels := handler.NewVesselHandler(vesselService)
	observers := handler.NewObserverHandler(observerService)

	r := gin.New()
	r.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.Logger(log),
		middleware.Metrics(m),
		middleware.CORS(),
	)

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := db.Conn().PingContext(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "error",
				"database": "disconnected",
				"error":    err.Error(),
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "ok",
			"database": string(db.Dialect()),
		})
	})
	r.GET("/metrics", gin.WrapH(m.Handler()))

	survey := r.Group("/", middleware.APIKey(cfg.APIValidation, cfg.APIKey))
	{
		survey.GET("/transect/", transects.GetAllTransects)
		survey.GET("/transect/:id", transects.GetTransectByID)
		survey.POST("/transect/", transects.UpsertTransect)

		survey.GET("/vessel/", vessels.GetAllVessels)
		survey.GET("/vessel/:id", vessels.GetVesselByID)

		survey.GET("/observer/", observers.GetAllObservers)
	}

	return r
}
