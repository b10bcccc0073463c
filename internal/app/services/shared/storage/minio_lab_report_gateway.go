package storage

import (
	"bytes"
	"context"
	"fmt"
	"labreport-service/internal/app/contracts"
	"labreport-service/internal/app/models"
	"labreport-service/internal/pkg/constvars"
	"labreport-service/internal/pkg/exceptions"
	"labreport-service/internal/pkg/utils"
	"time"

	"go.uber.org/zap"
)

// minioLabReportGateway keeps reports in a bucket instead of handing them to
// the clinic API. Reports are viewed through presigned URLs.
type minioLabReportGateway struct {
	Storage    contracts.Storage
	BucketName string
	URLExpiry  time.Duration
	Log        *zap.Logger
}

func NewMinioLabReportGateway(storage contracts.Storage, bucketName string, urlExpiry time.Duration, logger *zap.Logger) contracts.LabReportGateway {
	return &minioLabReportGateway{
		Storage:    storage,
		BucketName: bucketName,
		URLExpiry:  urlExpiry,
		Log:        logger,
	}
}

func (g *minioLabReportGateway) UploadReport(ctx context.Context, mrn string, artifact *models.ReportArtifact) (*models.UploadAck, error) {
	requestID := utils.RequestIDFromContext(ctx)
	objectName := fmt.Sprintf(constvars.LabReportObjectNameFormat, mrn)
	g.Log.Info("minioLabReportGateway.UploadReport called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingMRNKey, mrn),
		zap.String(constvars.LoggingBucketNameKey, g.BucketName),
		zap.String(constvars.LoggingObjectNameKey, objectName),
		zap.Int(constvars.LoggingArtifactSizeKey, artifact.Size()),
	)

	if mrn == "" {
		return nil, exceptions.ErrMissingMRN(nil)
	}

	_, err := g.Storage.UploadObject(ctx, bytes.NewReader(artifact.Content), int64(artifact.Size()), g.BucketName, objectName, artifact.ContentType)
	if err != nil {
		g.Log.Error("minioLabReportGateway.UploadReport error uploading object",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	g.Log.Info("minioLabReportGateway.UploadReport succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingObjectNameKey, objectName),
	)
	return &models.UploadAck{Success: true}, nil
}

func (g *minioLabReportGateway) StoredReportURL(ctx context.Context, mrn string) (string, error) {
	requestID := utils.RequestIDFromContext(ctx)
	g.Log.Info("minioLabReportGateway.StoredReportURL called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingMRNKey, mrn),
	)

	if mrn == "" {
		return "", exceptions.ErrMissingMRN(nil)
	}

	objectName := fmt.Sprintf(constvars.LabReportObjectNameFormat, mrn)
	url, err := g.Storage.GetObjectUrlWithExpiryTime(ctx, g.BucketName, objectName, g.URLExpiry)
	if err != nil {
		g.Log.Error("minioLabReportGateway.StoredReportURL error presigning object",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return "", err
	}
	return url, nil
}
