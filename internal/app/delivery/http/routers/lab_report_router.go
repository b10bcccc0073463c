package routers

import (
	"labreport-service/internal/app/delivery/http/controllers"

	"github.com/go-chi/chi/v5"
)

func attachLabReportRoutes(router chi.Router, labReportController *controllers.LabReportController) {
	router.Get("/view/{mrn}", labReportController.ViewReport)

	router.Route("/{appointment_id}", func(r chi.Router) {
		r.Get("/", labReportController.GetForm)
		r.Put("/results", labReportController.SetResults)
		r.Get("/result", labReportController.GetResult)
		r.Put("/timestamps", labReportController.SetTimestamps)
		r.Get("/preview", labReportController.Preview)
		r.Post("/generate", labReportController.Generate)
	})
}
