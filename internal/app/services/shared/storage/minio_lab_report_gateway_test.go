package storage

import (
	"context"
	"errors"
	"io"
	"labreport-service/internal/app/models"
	"labreport-service/internal/pkg/exceptions"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeStorage struct {
	uploads   map[string][]byte
	uploadErr error
	calls     int
}

func (f *fakeStorage) UploadObject(ctx context.Context, file io.Reader, size int64, bucketName, objectName, contentType string) (string, error) {
	f.calls++
	if f.uploadErr != nil {
		return "", f.uploadErr
	}
	content, err := io.ReadAll(file)
	if err != nil {
		return "", err
	}
	f.uploads[bucketName+"/"+objectName] = content
	return objectName, nil
}

func (f *fakeStorage) GetObjectUrlWithExpiryTime(ctx context.Context, bucketName, objectName string, expiryTime time.Duration) (string, error) {
	f.calls++
	return "https://minio.local/" + bucketName + "/" + objectName + "?expires=" + expiryTime.String(), nil
}

func TestMinioLabReportGateway(t *testing.T) {
	ctx := context.Background()
	artifact := &models.ReportArtifact{FileName: "M1.pdf", ContentType: "application/pdf", Content: []byte("%PDF-1.3")}

	t.Run("Upload Stores Under MRN", func(t *testing.T) {
		storage := &fakeStorage{uploads: map[string][]byte{}}
		gateway := NewMinioLabReportGateway(storage, "lab-reports", time.Hour, zap.NewNop())

		ack, err := gateway.UploadReport(ctx, "M1", artifact)
		require.NoError(t, err)
		assert.True(t, ack.Success)
		assert.Equal(t, []byte("%PDF-1.3"), storage.uploads["lab-reports/lab-reports/M1.pdf"])
	})

	t.Run("Upload Failure Is Returned", func(t *testing.T) {
		storage := &fakeStorage{uploads: map[string][]byte{}, uploadErr: exceptions.ErrMinioCreateObject(errors.New("bucket gone"), "lab-reports")}
		gateway := NewMinioLabReportGateway(storage, "lab-reports", time.Hour, zap.NewNop())

		ack, err := gateway.UploadReport(ctx, "M1", artifact)
		assert.Nil(t, ack)
		assert.Error(t, err)
	})

	t.Run("Stored URL Is Presigned", func(t *testing.T) {
		storage := &fakeStorage{uploads: map[string][]byte{}}
		gateway := NewMinioLabReportGateway(storage, "lab-reports", time.Hour, zap.NewNop())

		url, err := gateway.StoredReportURL(ctx, "M1")
		require.NoError(t, err)
		assert.Equal(t, "https://minio.local/lab-reports/lab-reports/M1.pdf?expires=1h0m0s", url)
	})

	t.Run("Empty MRN Issues No Request", func(t *testing.T) {
		storage := &fakeStorage{uploads: map[string][]byte{}}
		gateway := NewMinioLabReportGateway(storage, "lab-reports", time.Hour, zap.NewNop())

		url, err := gateway.StoredReportURL(ctx, "")
		assert.Empty(t, url)

		var customErr *exceptions.CustomError
		require.ErrorAs(t, err, &customErr)
		assert.Equal(t, "MRN is missing", customErr.ClientMessage)
		assert.Zero(t, storage.calls)
	})
}
