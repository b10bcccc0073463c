package labsessions

import (
	"context"
	"labreport-service/internal/pkg/constvars"
	"labreport-service/internal/pkg/exceptions"
	"labreport-service/internal/pkg/utils"
	"sync"
	"time"

	"go.uber.org/zap"
)

const sessionLockRetryInterval = 20 * time.Millisecond

// appointmentLocks hands out one mutex per appointment id and forgets it
// once nobody holds or waits for it.
type appointmentLocks struct {
	mu    sync.Mutex
	locks map[string]*appointmentLock
}

type appointmentLock struct {
	sync.Mutex
	refs int
}

func newAppointmentLocks() *appointmentLocks {
	return &appointmentLocks{locks: make(map[string]*appointmentLock)}
}

func (l *appointmentLocks) lock(appointmentID string) (unlock func()) {
	l.mu.Lock()
	entry, ok := l.locks[appointmentID]
	if !ok {
		entry = &appointmentLock{}
		l.locks[appointmentID] = entry
	}
	entry.refs++
	l.mu.Unlock()

	entry.Lock()
	return func() {
		entry.Unlock()
		l.mu.Lock()
		entry.refs--
		if entry.refs == 0 {
			delete(l.locks, appointmentID)
		}
		l.mu.Unlock()
	}
}

// lockSession serializes every read-modify-write of one appointment's
// session. Within the process a keyed mutex is enough; when sessions live in
// redis the shared LockerService also fences other replicas.
func (uc *labSessionUsecase) lockSession(ctx context.Context, appointmentID string) (func(), error) {
	release := uc.locks.lock(appointmentID)
	if uc.Locker == nil {
		return release, nil
	}

	requestID := utils.RequestIDFromContext(ctx)
	lockKey := constvars.LabSessionLockPrefix + appointmentID
	ticker := time.NewTicker(sessionLockRetryInterval)
	defer ticker.Stop()

	for {
		acquired, lockValue, err := uc.Locker.TryLock(ctx, lockKey, uc.LockTimeout)
		if err != nil {
			release()
			if ctx.Err() != nil {
				return nil, exceptions.ErrLabSessionBusy(ctx.Err(), appointmentID)
			}
			return nil, err
		}
		if acquired {
			return func() {
				unlockErr := uc.Locker.Unlock(context.WithoutCancel(ctx), lockKey, lockValue)
				if unlockErr != nil {
					uc.Log.Warn("labSessionUsecase.lockSession error releasing session lock",
						zap.String(constvars.LoggingRequestIDKey, requestID),
						zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
						zap.Error(unlockErr),
					)
				}
				release()
			}, nil
		}

		select {
		case <-ctx.Done():
			release()
			return nil, exceptions.ErrLabSessionBusy(ctx.Err(), appointmentID)
		case <-ticker.C:
		}
	}
}
