package routers

import (
	"fmt"
	"labreport-service/internal/app/config"
	"labreport-service/internal/app/delivery/http/controllers"
	"labreport-service/internal/app/delivery/http/middlewares"
	"labreport-service/internal/pkg/constvars"
	"labreport-service/internal/pkg/utils"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func SetupRoutes(
	router *chi.Mux,
	internalConfig *config.InternalConfig,
	middlewares *middlewares.Middlewares,
	registry *prometheus.Registry,
	labReportController *controllers.LabReportController,
) {
	corsOptions := cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders: []string{
			constvars.HeaderAccept,
			constvars.HeaderContentType,
			constvars.HeaderXAPIKey,
			constvars.HeaderXRequestID,
		},
		ExposedHeaders: []string{
			constvars.HeaderContentDisposition,
			constvars.HeaderXLabReportMessage,
			constvars.HeaderXRequestID,
		},
		MaxAge: 300,
	}
	router.Use(cors.Handler(corsOptions))

	router.Use(middlewares.ErrorHandler)
	router.Use(middlewares.RequestIDMiddleware)
	router.Use(middlewares.Logging)

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.HealthCheckSuccessMessage, map[string]string{
			"version": internalConfig.App.Version,
		})
	})
	if registry != nil {
		router.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	endpointPrefix := fmt.Sprintf("/%s", internalConfig.App.EndpointPrefix)
	versionPrefix := fmt.Sprintf("/%s", internalConfig.App.Version)

	router.Route(endpointPrefix, func(r chi.Router) {
		r.Route(versionPrefix, func(r chi.Router) {
			r.Use(middlewares.RateLimit())
			r.Use(middlewares.APIKeyAuth)

			r.Route("/lab-reports", func(r chi.Router) {
				attachLabReportRoutes(r, labReportController)
			})
		})
	})
}
