package controllers

import (
	"context"
	"errors"
	"labreport-service/internal/app/contracts"
	"labreport-service/internal/pkg/constvars"
	"labreport-service/internal/pkg/dto/requests"
	"labreport-service/internal/pkg/dto/responses"
	"labreport-service/internal/pkg/exceptions"
	"labreport-service/internal/pkg/utils"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type LabReportController struct {
	Log               *zap.Logger
	LabSessionUsecase contracts.LabSessionUsecase
	LabReportUsecase  contracts.LabReportUsecase
	RequestTimeout    time.Duration
}

func NewLabReportController(
	logger *zap.Logger,
	labSessionUsecase contracts.LabSessionUsecase,
	labReportUsecase contracts.LabReportUsecase,
	requestTimeout time.Duration,
) *LabReportController {
	return &LabReportController{
		Log:               logger,
		LabSessionUsecase: labSessionUsecase,
		LabReportUsecase:  labReportUsecase,
		RequestTimeout:    requestTimeout,
	}
}

func (ctrl *LabReportController) GetForm(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok {
		ctrl.Log.Error("LabReportController.GetForm requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}

	appointmentID, err := ctrl.appointmentIDParam(r)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctrl.Log.Info("LabReportController.GetForm called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointmentID))

	ctx, cancel := ctrl.requestContext(r)
	defer cancel()

	form, err := ctrl.LabReportUsecase.GetForm(ctx, appointmentID)
	if err != nil {
		ctrl.Log.Error("LabReportController.GetForm LabReportUsecase.GetForm error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err))
		ctrl.buildErrorResponse(w, err)
		return
	}

	ctrl.Log.Info("LabReportController.GetForm succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingResponseLengthKey, len(form.Tests)))
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetLabReportFormSuccessMessage, form)
}

func (ctrl *LabReportController) SetResults(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok {
		ctrl.Log.Error("LabReportController.SetResults requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}

	appointmentID, err := ctrl.appointmentIDParam(r)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	request := new(requests.SetLabResults)
	if err := json.NewDecoder(r.Body).Decode(request); err != nil {
		ctrl.Log.Error("LabReportController.SetResults error decoding request body",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err))
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}

	if err := utils.ValidateStruct(request); err != nil {
		ctrl.Log.Error("LabReportController.SetResults validation error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err))
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctrl.Log.Info("LabReportController.SetResults called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
		zap.Int(constvars.LoggingResultCountKey, len(request.Results)))

	ctx, cancel := ctrl.requestContext(r)
	defer cancel()

	if err := ctrl.LabSessionUsecase.SetResults(ctx, appointmentID, request.Results); err != nil {
		ctrl.Log.Error("LabReportController.SetResults LabSessionUsecase.SetResults error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err))
		ctrl.buildErrorResponse(w, err)
		return
	}

	ctrl.Log.Info("LabReportController.SetResults succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID))
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.SetLabResultsSuccessMessage, nil)
}

func (ctrl *LabReportController) GetResult(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok {
		ctrl.Log.Error("LabReportController.GetResult requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}

	appointmentID, err := ctrl.appointmentIDParam(r)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	key := strings.TrimSpace(r.URL.Query().Get(constvars.QueryParamResultKey))
	if key == "" {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrURLParamValidation(nil, constvars.QueryParamResultKey))
		return
	}

	ctrl.Log.Info("LabReportController.GetResult called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
		zap.String(constvars.LoggingResultKey, key))

	ctx, cancel := ctrl.requestContext(r)
	defer cancel()

	value, err := ctrl.LabSessionUsecase.GetResult(ctx, appointmentID, key)
	if err != nil {
		ctrl.Log.Error("LabReportController.GetResult LabSessionUsecase.GetResult error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err))
		ctrl.buildErrorResponse(w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetLabResultSuccessMessage, responses.LabResult{Key: key, Value: value})
}

func (ctrl *LabReportController) SetTimestamps(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok {
		ctrl.Log.Error("LabReportController.SetTimestamps requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}

	appointmentID, err := ctrl.appointmentIDParam(r)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	request := new(requests.SetLabTimestamps)
	if err := json.NewDecoder(r.Body).Decode(request); err != nil {
		ctrl.Log.Error("LabReportController.SetTimestamps error decoding request body",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err))
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}

	if err := utils.ValidateStruct(request); err != nil {
		ctrl.Log.Error("LabReportController.SetTimestamps validation error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err))
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	collectedAt, err := parseOptionalTimestamp(request.CollectedAt)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}
	reportedAt, err := parseOptionalTimestamp(request.ReportedAt)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctrl.Log.Info("LabReportController.SetTimestamps called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointmentID))

	ctx, cancel := ctrl.requestContext(r)
	defer cancel()

	session, err := ctrl.LabSessionUsecase.SetTimestamps(ctx, appointmentID, collectedAt, reportedAt)
	if err != nil {
		ctrl.Log.Error("LabReportController.SetTimestamps LabSessionUsecase.SetTimestamps error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err))
		ctrl.buildErrorResponse(w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.SetLabTimestampsSuccessMessage, responses.LabTimestamps{
		CollectedAt: utils.FormatReportTimestamp(session.CollectedAt),
		ReportedAt:  utils.FormatReportTimestamp(session.ReportedAt),
	})
}

func (ctrl *LabReportController) Preview(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok {
		ctrl.Log.Error("LabReportController.Preview requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}

	appointmentID, err := ctrl.appointmentIDParam(r)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctrl.Log.Info("LabReportController.Preview called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointmentID))

	ctx, cancel := ctrl.requestContext(r)
	defer cancel()

	preview, err := ctrl.LabReportUsecase.PreviewReport(ctx, appointmentID)
	if err != nil {
		ctrl.Log.Error("LabReportController.Preview LabReportUsecase.PreviewReport error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err))
		ctrl.buildErrorResponse(w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.PreviewLabReportSuccessMessage, preview)
}

// Generate renders, stores and returns the report as an inline PDF. The upload
// acknowledgement travels in the X-Lab-Report-Message header.
func (ctrl *LabReportController) Generate(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok {
		ctrl.Log.Error("LabReportController.Generate requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}

	appointmentID, err := ctrl.appointmentIDParam(r)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctrl.Log.Info("LabReportController.Generate called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointmentID))

	ctx, cancel := ctrl.requestContext(r)
	defer cancel()

	result, err := ctrl.LabReportUsecase.GenerateReport(ctx, &requests.GenerateLabReport{AppointmentID: appointmentID})
	if err != nil {
		ctrl.Log.Error("LabReportController.Generate LabReportUsecase.GenerateReport error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err))
		ctrl.buildErrorResponse(w, err)
		return
	}

	ctrl.Log.Info("LabReportController.Generate succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingMRNKey, result.MRN),
		zap.Int(constvars.LoggingArtifactSizeKey, result.Artifact.Size()))
	utils.BuildPDFResponse(w, result.Artifact.FileName, result.Message, result.Artifact.Content)
}

// ViewReport redirects to the stored copy of a patient's report.
func (ctrl *LabReportController) ViewReport(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok {
		ctrl.Log.Error("LabReportController.ViewReport requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}

	mrn := strings.TrimSpace(chi.URLParam(r, constvars.URLParamMRN))

	ctrl.Log.Info("LabReportController.ViewReport called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingMRNKey, mrn))

	ctx, cancel := ctrl.requestContext(r)
	defer cancel()

	url, err := ctrl.LabReportUsecase.OpenStoredReport(ctx, mrn)
	if err != nil {
		ctrl.Log.Error("LabReportController.ViewReport LabReportUsecase.OpenStoredReport error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err))
		ctrl.buildErrorResponse(w, err)
		return
	}

	http.Redirect(w, r, url, constvars.StatusFound)
}

func (ctrl *LabReportController) requestContext(r *http.Request) (context.Context, context.CancelFunc) {
	if ctrl.RequestTimeout <= 0 {
		return context.WithCancel(r.Context())
	}
	return context.WithTimeout(r.Context(), ctrl.RequestTimeout)
}

func (ctrl *LabReportController) appointmentIDParam(r *http.Request) (string, error) {
	appointmentID := strings.TrimSpace(chi.URLParam(r, constvars.URLParamAppointmentID))
	if appointmentID == "" {
		return "", exceptions.ErrURLParamValidation(nil, constvars.URLParamAppointmentID)
	}
	return appointmentID, nil
}

func (ctrl *LabReportController) buildErrorResponse(w http.ResponseWriter, err error) {
	var customErr *exceptions.CustomError
	if errors.Is(err, context.DeadlineExceeded) && !errors.As(err, &customErr) {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
		return
	}
	utils.BuildErrorResponse(ctrl.Log, w, err)
}

func parseOptionalTimestamp(value string) (*time.Time, error) {
	if strings.TrimSpace(value) == "" {
		return nil, nil
	}
	parsed, err := utils.ParseReportTimestamp(value)
	if err != nil {
		return nil, exceptions.ErrInvalidReportTimestamp(err, value)
	}
	return &parsed, nil
}
