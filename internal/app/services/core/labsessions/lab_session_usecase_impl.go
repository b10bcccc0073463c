package labsessions

import (
	"context"
	"errors"
	"labreport-service/internal/app/contracts"
	"labreport-service/internal/app/models"
	"labreport-service/internal/pkg/constvars"
	"labreport-service/internal/pkg/exceptions"
	"labreport-service/internal/pkg/utils"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

var (
	labSessionUsecaseInstance contracts.LabSessionUsecase
	onceLabSessionUsecase     sync.Once
)

// labSessionUsecase keeps one report-entry session per appointment in the
// key value store: the appointment fetched from the clinic API, the entered
// results and the report timestamps. Writes to one session are serialized
// by lockSession; Locker is only set when sessions are shared through redis.
type labSessionUsecase struct {
	AppointmentClient contracts.AppointmentClient
	Repository        contracts.KeyValueRepository
	Locker            contracts.LockerService
	SessionTTL        time.Duration
	LockTimeout       time.Duration
	Log               *zap.Logger
	locks             *appointmentLocks
}

type LabSessionUsecaseConfig struct {
	SessionTTL  time.Duration
	LockTimeout time.Duration
}

func NewLabSessionUsecase(
	cfg LabSessionUsecaseConfig,
	appointmentClient contracts.AppointmentClient,
	repository contracts.KeyValueRepository,
	locker contracts.LockerService,
	logger *zap.Logger,
) contracts.LabSessionUsecase {
	onceLabSessionUsecase.Do(func() {
		labSessionUsecaseInstance = newLabSessionUsecase(cfg, appointmentClient, repository, locker, logger)
	})
	return labSessionUsecaseInstance
}

func newLabSessionUsecase(
	cfg LabSessionUsecaseConfig,
	appointmentClient contracts.AppointmentClient,
	repository contracts.KeyValueRepository,
	locker contracts.LockerService,
	logger *zap.Logger,
) *labSessionUsecase {
	return &labSessionUsecase{
		AppointmentClient: appointmentClient,
		Repository:        repository,
		Locker:            locker,
		SessionTTL:        cfg.SessionTTL,
		LockTimeout:       cfg.LockTimeout,
		Log:               logger,
		locks:             newAppointmentLocks(),
	}
}

// LoadAppointment fetches the appointment from the clinic API the first time
// an id is seen. Later calls are served from the stored session.
func (uc *labSessionUsecase) LoadAppointment(ctx context.Context, appointmentID string) (*models.LabSession, error) {
	requestID := utils.RequestIDFromContext(ctx)
	uc.Log.Info("labSessionUsecase.LoadAppointment called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
	)

	session, err := uc.findSession(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if !session.Appointment.IsEmpty() {
		uc.Log.Info("labSessionUsecase.LoadAppointment served from session",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
		)
		return session, nil
	}

	unlock, err := uc.lockSession(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	// A concurrent first load may have stored the appointment while we waited.
	session, err = uc.findSession(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if !session.Appointment.IsEmpty() {
		return session, nil
	}

	appointment, err := uc.AppointmentClient.FindAppointmentByID(ctx, appointmentID)
	if err != nil {
		uc.Log.Error("labSessionUsecase.LoadAppointment error calling AppointmentClient.FindAppointmentByID",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	if appointment.IsEmpty() {
		return nil, exceptions.ErrAppointmentNotLoaded(errors.New("clinic API returned no appointment"), appointmentID)
	}

	session.Appointment = appointment
	err = uc.saveSession(ctx, session)
	if err != nil {
		return nil, err
	}

	uc.Log.Info("labSessionUsecase.LoadAppointment succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
		zap.String(constvars.LoggingMRNKey, appointment.MRN),
	)
	return session, nil
}

// GetSession returns a session whose appointment has been loaded.
func (uc *labSessionUsecase) GetSession(ctx context.Context, appointmentID string) (*models.LabSession, error) {
	session, err := uc.findSession(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if session.Appointment.IsEmpty() {
		return nil, exceptions.ErrAppointmentNotLoaded(nil, appointmentID)
	}
	return session, nil
}

func (uc *labSessionUsecase) SetResult(ctx context.Context, appointmentID, key, value string) error {
	return uc.SetResults(ctx, appointmentID, map[string]string{key: value})
}

func (uc *labSessionUsecase) SetResults(ctx context.Context, appointmentID string, results map[string]string) error {
	requestID := utils.RequestIDFromContext(ctx)
	uc.Log.Info("labSessionUsecase.SetResults called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
		zap.Int(constvars.LoggingResultCountKey, len(results)),
	)

	unlock, err := uc.lockSession(ctx, appointmentID)
	if err != nil {
		return err
	}
	defer unlock()

	session, err := uc.GetSession(ctx, appointmentID)
	if err != nil {
		return err
	}

	for key, value := range results {
		session.Results.Set(key, value)
	}

	return uc.saveSession(ctx, session)
}

func (uc *labSessionUsecase) GetResult(ctx context.Context, appointmentID, key string) (string, error) {
	session, err := uc.GetSession(ctx, appointmentID)
	if err != nil {
		return "", err
	}

	value, ok := session.Results.Get(key)
	if !ok {
		return "", exceptions.ErrResultNotFound(nil, key)
	}
	return value, nil
}

// SetTimestamps overwrites only the timestamps that are given.
func (uc *labSessionUsecase) SetTimestamps(ctx context.Context, appointmentID string, collectedAt, reportedAt *time.Time) (*models.LabSession, error) {
	requestID := utils.RequestIDFromContext(ctx)
	uc.Log.Info("labSessionUsecase.SetTimestamps called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
	)

	unlock, err := uc.lockSession(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	session, err := uc.GetSession(ctx, appointmentID)
	if err != nil {
		return nil, err
	}

	if collectedAt != nil {
		session.CollectedAt = collectedAt
	}
	if reportedAt != nil {
		session.ReportedAt = reportedAt
	}

	err = uc.saveSession(ctx, session)
	if err != nil {
		return nil, err
	}
	return session, nil
}

func (uc *labSessionUsecase) findSession(ctx context.Context, appointmentID string) (*models.LabSession, error) {
	sessionData, err := uc.Repository.Get(ctx, sessionKey(appointmentID))
	if err != nil {
		uc.Log.Error("labSessionUsecase.findSession error reading session",
			zap.String(constvars.LoggingRequestIDKey, utils.RequestIDFromContext(ctx)),
			zap.Error(err),
		)
		return nil, err
	}
	if sessionData == "" {
		return models.NewLabSession(appointmentID), nil
	}

	session := new(models.LabSession)
	err = json.Unmarshal([]byte(sessionData), session)
	if err != nil {
		return nil, exceptions.ErrCannotParseJSON(err)
	}
	if session.Results == nil {
		session.Results = models.NewResultStore()
	}
	session.AppointmentID = appointmentID
	return session, nil
}

func (uc *labSessionUsecase) saveSession(ctx context.Context, session *models.LabSession) error {
	err := uc.Repository.Set(ctx, sessionKey(session.AppointmentID), session, uc.SessionTTL)
	if err != nil {
		uc.Log.Error("labSessionUsecase.saveSession error writing session",
			zap.String(constvars.LoggingRequestIDKey, utils.RequestIDFromContext(ctx)),
			zap.String(constvars.LoggingAppointmentIDKey, session.AppointmentID),
			zap.Error(err),
		)
		return err
	}
	return nil
}

func sessionKey(appointmentID string) string {
	return constvars.LabSessionKeyPrefix + appointmentID
}
