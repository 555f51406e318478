package main

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/Kleo07/MindSpaceX/pkg/apihelpers"
	"github.com/Kleo07/MindSpaceX/services/assessment-api/apihandlers"
)

func main() {
	// Start webserver
	router := gin.Default()
	router.Use(cors.New(cors.Config{
		AllowOrigins:     conf.GinConfig.AllowOrigins,
		AllowMethods:     []string{"POST", "GET", "PUT", "DELETE"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", "Content-Length"},
		ExposeHeaders:    []string{"Authorization", "Content-Type", "Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Add handlers
	router.GET("/", apihandlers.HealthCheckHandle)
	apiRoot := router.Group("/api")
	apiRoot.GET("/health", apihandlers.HealthCheckHandle)

	apiHandlers := apihandlers.NewHTTPHandler(
		conf.SessionConfig.TokenSignKey,
		assessmentDBService,
		devTokenExpiresIn,
	)
	apiHandlers.AddAssessmentAPI(apiRoot)

	if conf.SessionConfig.DevTokenEndpointEnabled {
		slog.Warn("dev token endpoint enabled - do not use in production")
		apiHandlers.AddDevAuthAPI(apiRoot)
	}

	if conf.GinConfig.DebugMode {
		apihelpers.WriteRoutesToFile(router, "assessment-api-routes.txt")
	}

	// Start the server
	slog.Info("Starting Assessment API on port " + conf.GinConfig.Port)
	if !conf.GinConfig.MTLS.Use {
		err := router.Run(":" + conf.GinConfig.Port)
		if err != nil {
			slog.Error("Exited Assessment API", slog.String("error", err.Error()))
			return
		}
	} else {
		// Create tls config for mutual TLS
		tlsConfig, err := apihelpers.LoadTLSConfig(conf.GinConfig.MTLS.CertificatePaths)
		if err != nil {
			slog.Error("Error loading TLS config.", slog.String("error", err.Error()))
			return
		}

		server := &http.Server{
			Addr:      ":" + conf.GinConfig.Port,
			Handler:   router,
			TLSConfig: tlsConfig,
		}

		err = server.ListenAndServeTLS(conf.GinConfig.MTLS.CertificatePaths.ServerCertPath, conf.GinConfig.MTLS.CertificatePaths.ServerKeyPath)
		if err != nil {
			slog.Error("Exited Assessment API", slog.String("error", err.Error()))
			return
		}
	}
}
