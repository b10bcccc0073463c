package exceptions

import (
	"fmt"
	"labreport-service/internal/pkg/constvars"
)

var (
	ErrURLParamValidation = func(err error, paramName string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadRequest, constvars.ErrClientCannotProcessRequest, fmt.Sprintf(constvars.ErrDevURLParamValidationFailed, paramName))
	}
	ErrInputValidation = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadRequest, FormatFirstValidationError(err), constvars.ErrDevValidationFailed)
	}
	ErrCannotParseJSON = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadRequest, constvars.ErrClientCannotProcessRequest, constvars.ErrDevCannotParseJSON)
	}
	ErrCannotMarshalJSON = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevCannotMarshalJSON)
	}
	ErrServerDeadlineExceeded = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusGatewayTimeout, constvars.ErrClientServerLongRespond, constvars.ErrDevServerDeadlineExceeded)
	}
	ErrMissingRequestID = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevMissingRequestID)
	}
	ErrInvalidAPIKey = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusUnauthorized, constvars.ErrClientNotAuthorized, constvars.ErrClientNotAuthorized)
	}
	ErrTooManyRequests = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusTooManyRequests, constvars.ErrClientTooManyRequests, constvars.ErrDevRateLimitExceeded)
	}
	ErrInvalidReportTimestamp = func(err error, value string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadRequest, constvars.ErrClientInvalidReportTimestamp, fmt.Sprintf(constvars.ErrDevInvalidReportTimestamp, value))
	}

	// Clinic API
	ErrCreateHTTPRequest = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevCreateHTTPRequest)
	}
	ErrSendHTTPRequest = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadGateway, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevSendHTTPRequest)
	}
	ErrDecodeResponse = func(err error, source string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadGateway, constvars.ErrClientSomethingWrongWithApplication, fmt.Sprintf(constvars.ErrDevDecodeResponse, source))
	}

	// Appointment loading
	ErrLoadAppointmentRejected = func(err error, clientMessage string, statusCode int) *CustomError {
		if clientMessage == "" {
			clientMessage = constvars.ErrClientFetchAppointmentFailed
		}
		return BuildNewCustomError(err, constvars.StatusBadGateway, clientMessage, fmt.Sprintf(constvars.ErrDevClinicAPIRejected, "appointment", statusCode))
	}
	ErrLoadAppointment = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadGateway, constvars.ErrClientFetchAppointmentError, constvars.ErrDevSendHTTPRequest)
	}
	ErrAppointmentNotLoaded = func(err error, appointmentID string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusUnprocessableEntity, constvars.ErrClientAppointmentDataMissing, fmt.Sprintf(constvars.ErrDevAppointmentNotLoaded, appointmentID))
	}

	// Result store
	ErrResultNotFound = func(err error, key string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusNotFound, constvars.ErrClientResultKeyNotFound, fmt.Sprintf(constvars.ErrDevResultKeyNotFound, key))
	}

	// Report generation
	ErrComposeLabReport = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientGenerateLabReportFailed, constvars.ErrDevComposeLabReport)
	}
	ErrGenerateQRCode = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientGenerateLabReportFailed, constvars.ErrDevGenerateQRCode)
	}
	ErrRenderLabReportPage = func(err error, pageIndex int) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientGenerateLabReportFailed, fmt.Sprintf(constvars.ErrDevRenderLabReportPage, pageIndex))
	}
	ErrEncodeLabReportPage = func(err error, pageIndex int) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientGenerateLabReportFailed, fmt.Sprintf(constvars.ErrDevEncodeLabReportPage, pageIndex))
	}
	ErrAssembleLabReportPDF = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientGenerateLabReportFailed, constvars.ErrDevAssembleLabReportPDF)
	}
	ErrLabSessionBusy = func(err error, appointmentID string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusConflict, constvars.ErrClientLabSessionBusy, fmt.Sprintf(constvars.ErrDevLabSessionLocked, appointmentID))
	}
	ErrLabReportInProgress = func(err error, mrn string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusConflict, constvars.ErrClientLabReportInProgress, fmt.Sprintf(constvars.ErrDevLabReportLocked, mrn))
	}

	// Upload and view
	ErrBuildMultipartBody = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientGenerateLabReportFailed, constvars.ErrDevBuildMultipartBody)
	}
	ErrUploadLabReportRejected = func(err error, clientMessage string) *CustomError {
		if clientMessage == "" {
			clientMessage = constvars.ErrClientSaveLabReportFailed
		}
		return BuildNewCustomError(err, constvars.StatusBadGateway, clientMessage, constvars.ErrDevUploadLabReportRejected)
	}
	ErrMissingMRN = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadRequest, constvars.ErrClientMRNMissing, fmt.Sprintf(constvars.ErrDevURLParamValidationFailed, constvars.URLParamMRN))
	}
	ErrOpenLabReport = func(err error, reportURL string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientOpenLabReportFailed, fmt.Sprintf(constvars.ErrDevInvalidStoredReportURL, reportURL))
	}

	// Minio
	ErrMinioCreateObject = func(err error, bucketName string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSaveLabReportFailed, fmt.Sprintf(constvars.ErrDevMinioFailedToCreateObject, bucketName))
	}
	ErrMinioPresignObject = func(err error, bucketName string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientOpenLabReportFailed, fmt.Sprintf(constvars.ErrDevMinioFailedToPresignObject, bucketName))
	}

	// Redis
	ErrRedisGetNoData = func(err error, redisKey string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, fmt.Sprintf(constvars.ErrDevRedisGetNoData, redisKey))
	}
	ErrRedisGet = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevRedisGetData)
	}
	ErrRedisSet = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevRedisSetData)
	}
	ErrRedisDelete = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevRedisDeleteData)
	}
	ErrRedisSetNX = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevRedisSetNX)
	}
	ErrRedisUnlock = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevRedisUnlock)
	}

	// Bootstrap
	ErrUnknownSessionStoreDriver = func(err error, driver string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientUnknownSessionStore, fmt.Sprintf(constvars.ErrDevUnknownSessionStoreDriver, driver))
	}
	ErrUnknownLabReportGateway = func(err error, gateway string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientUnknownLabReportGateway, fmt.Sprintf(constvars.ErrDevUnknownLabReportGatewayName, gateway))
	}
)
