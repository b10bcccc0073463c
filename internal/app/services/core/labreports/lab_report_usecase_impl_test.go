package labreports

import (
	"context"
	"errors"
	"labreport-service/internal/app/models"
	"labreport-service/internal/pkg/dto/requests"
	"labreport-service/internal/pkg/exceptions"
	"labreport-service/internal/pkg/metrics"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeSessions struct {
	sessions map[string]*models.LabSession
}

func (f *fakeSessions) LoadAppointment(ctx context.Context, appointmentID string) (*models.LabSession, error) {
	return f.GetSession(ctx, appointmentID)
}

func (f *fakeSessions) GetSession(ctx context.Context, appointmentID string) (*models.LabSession, error) {
	session, ok := f.sessions[appointmentID]
	if !ok {
		return nil, exceptions.ErrAppointmentNotLoaded(nil, appointmentID)
	}
	return session, nil
}

func (f *fakeSessions) SetResult(ctx context.Context, appointmentID, key, value string) error {
	return nil
}

func (f *fakeSessions) SetResults(ctx context.Context, appointmentID string, results map[string]string) error {
	return nil
}

func (f *fakeSessions) GetResult(ctx context.Context, appointmentID, key string) (string, error) {
	return "", nil
}

func (f *fakeSessions) SetTimestamps(ctx context.Context, appointmentID string, collectedAt, reportedAt *time.Time) (*models.LabSession, error) {
	return nil, nil
}

type fakeExporter struct {
	pages [][]models.ReportPage
	err   error
}

func (f *fakeExporter) Export(ctx context.Context, pages []models.ReportPage) (*models.ReportArtifact, error) {
	f.pages = append(f.pages, pages)
	if f.err != nil {
		return nil, f.err
	}
	return &models.ReportArtifact{ContentType: "application/pdf", Content: []byte("%PDF")}, nil
}

type fakeGateway struct {
	uploads    []string
	uploadErr  error
	urlLookups int
}

func (f *fakeGateway) UploadReport(ctx context.Context, mrn string, artifact *models.ReportArtifact) (*models.UploadAck, error) {
	f.uploads = append(f.uploads, mrn+"/"+artifact.FileName)
	if f.uploadErr != nil {
		return nil, f.uploadErr
	}
	return &models.UploadAck{Success: true}, nil
}

func (f *fakeGateway) StoredReportURL(ctx context.Context, mrn string) (string, error) {
	f.urlLookups++
	return "http://clinic.local/api/appointments/openLabReport/" + mrn, nil
}

type fakeLocker struct {
	held     map[string]bool
	unlocked int
}

func (f *fakeLocker) TryLock(ctx context.Context, key string, expiration time.Duration) (bool, string, error) {
	if f.held[key] {
		return false, "", nil
	}
	f.held[key] = true
	return true, "lock-value", nil
}

func (f *fakeLocker) Unlock(ctx context.Context, key, lockValue string) error {
	delete(f.held, key)
	f.unlocked++
	return nil
}

type usecaseFixture struct {
	usecase  *labReportUsecase
	exporter *fakeExporter
	gateway  *fakeGateway
	locker   *fakeLocker
}

func newUsecaseFixture() *usecaseFixture {
	sessions := &fakeSessions{sessions: map[string]*models.LabSession{
		"A1": newSession(&models.Appointment{
			MRN:         "M1",
			LabLocation: "InHouse",
			Labs:        []string{models.CBCTestName, "ICT malaria"},
		}, nil),
	}}
	fixture := &usecaseFixture{
		exporter: &fakeExporter{},
		gateway:  &fakeGateway{},
		locker:   &fakeLocker{held: map[string]bool{}},
	}
	fixture.usecase = newLabReportUsecase(
		LabReportUsecaseConfig{
			Catalog:               models.DefaultLabCatalog(),
			Template:              models.DefaultReportTemplate(),
			GatewayName:           "clinic_api",
			GenerationLockTimeout: time.Minute,
			ClinicAPIBaseUrl:      "http://clinic.local/api",
		},
		sessions,
		fixture.exporter,
		fixture.gateway,
		fixture.locker,
		metrics.NewMetrics(prometheus.NewRegistry(), "test"),
		zap.NewNop(),
	)
	fixture.usecase.now = func() time.Time { return testNow }
	return fixture
}

func TestGenerateReport(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		fixture := newUsecaseFixture()

		result, err := fixture.usecase.GenerateReport(ctx, &requests.GenerateLabReport{AppointmentID: "A1"})
		require.NoError(t, err)

		assert.Equal(t, "M1", result.MRN)
		assert.Equal(t, "M1.pdf", result.Artifact.FileName)
		assert.Equal(t, "Lab Report saved on server successfully!", result.Message)
		require.Len(t, fixture.exporter.pages, 1)
		assert.Len(t, fixture.exporter.pages[0], 2)
		assert.Equal(t, "http://clinic.local/api/appointments/openLabReport/M1", fixture.exporter.pages[0][0].Header.QRCodeURL)
		assert.Equal(t, []string{"M1/M1.pdf"}, fixture.gateway.uploads)
		assert.Equal(t, 1, fixture.locker.unlocked)
	})

	t.Run("Upload Rejected Returns No Artifact", func(t *testing.T) {
		fixture := newUsecaseFixture()
		fixture.gateway.uploadErr = exceptions.ErrUploadLabReportRejected(errors.New("not confirmed"), "disk full")

		result, err := fixture.usecase.GenerateReport(ctx, &requests.GenerateLabReport{AppointmentID: "A1"})
		assert.Nil(t, result)

		var customErr *exceptions.CustomError
		require.ErrorAs(t, err, &customErr)
		assert.Equal(t, "disk full", customErr.ClientMessage)
		assert.Zero(t, fixture.gateway.urlLookups)
		assert.Equal(t, 1, fixture.locker.unlocked)
	})

	t.Run("Export Failure", func(t *testing.T) {
		fixture := newUsecaseFixture()
		fixture.exporter.err = exceptions.ErrRenderLabReportPage(errors.New("boom"), 0)

		_, err := fixture.usecase.GenerateReport(ctx, &requests.GenerateLabReport{AppointmentID: "A1"})

		var customErr *exceptions.CustomError
		require.ErrorAs(t, err, &customErr)
		assert.Equal(t, "Failed to generate lab report", customErr.ClientMessage)
		assert.Empty(t, fixture.gateway.uploads)
	})

	t.Run("Skip Upload", func(t *testing.T) {
		fixture := newUsecaseFixture()

		result, err := fixture.usecase.GenerateReport(ctx, &requests.GenerateLabReport{AppointmentID: "A1", SkipUpload: true})
		require.NoError(t, err)
		assert.NotNil(t, result.Artifact)
		assert.Nil(t, result.Ack)
		assert.Empty(t, fixture.gateway.uploads)
	})

	t.Run("Concurrent Generation Is Refused", func(t *testing.T) {
		fixture := newUsecaseFixture()
		fixture.locker.held["labreport:lock:M1"] = true

		_, err := fixture.usecase.GenerateReport(ctx, &requests.GenerateLabReport{AppointmentID: "A1"})

		var customErr *exceptions.CustomError
		require.ErrorAs(t, err, &customErr)
		assert.Equal(t, 409, customErr.StatusCode)
		assert.Empty(t, fixture.exporter.pages)
	})

	t.Run("Appointment Not Loaded", func(t *testing.T) {
		fixture := newUsecaseFixture()

		_, err := fixture.usecase.GenerateReport(ctx, &requests.GenerateLabReport{AppointmentID: "missing"})

		var customErr *exceptions.CustomError
		require.ErrorAs(t, err, &customErr)
		assert.Equal(t, "Appointment data is missing", customErr.ClientMessage)
		assert.Empty(t, fixture.exporter.pages)
	})
}

func TestOpenStoredReport(t *testing.T) {
	ctx := context.Background()

	t.Run("Empty MRN", func(t *testing.T) {
		fixture := newUsecaseFixture()

		url, err := fixture.usecase.OpenStoredReport(ctx, "")
		assert.Empty(t, url)

		var customErr *exceptions.CustomError
		require.ErrorAs(t, err, &customErr)
		assert.Equal(t, "MRN is missing", customErr.ClientMessage)
		assert.Zero(t, fixture.gateway.urlLookups)
	})

	t.Run("Resolved By Gateway", func(t *testing.T) {
		fixture := newUsecaseFixture()

		url, err := fixture.usecase.OpenStoredReport(ctx, "M1")
		require.NoError(t, err)
		assert.Equal(t, "http://clinic.local/api/appointments/openLabReport/M1", url)
	})
}

func TestPreviewAndForm(t *testing.T) {
	ctx := context.Background()
	fixture := newUsecaseFixture()

	preview, err := fixture.usecase.PreviewReport(ctx, "A1")
	require.NoError(t, err)
	assert.Equal(t, "M1.pdf", preview.FileName)
	assert.Len(t, preview.Pages, 2)

	form, err := fixture.usecase.GetForm(ctx, "A1")
	require.NoError(t, err)
	assert.Equal(t, "M1", form.Summary.MRN)
	require.Len(t, form.Tests, 2)
	assert.True(t, form.Tests[0].Editable)
	assert.Len(t, form.Tests[0].Fields, 12)
}
