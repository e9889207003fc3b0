package services

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// SessionSweeper periodically evicts expired session rows so the sessions
// table never accumulates dead tokens between restarts.
type SessionSweeper struct {
	auth     *AuthService
	schedule cron.Schedule
	runner   *cron.Cron
	logger   zerolog.Logger
}

// NewSessionSweeper builds a sweeper on the given cron spec, e.g. "@every 1h".
func NewSessionSweeper(auth *AuthService, spec string, logger zerolog.Logger) (*SessionSweeper, error) {
	schedule, err := cron.ParseStandard(spec)
	if err != nil {
		return nil, err
	}
	return &SessionSweeper{
		auth:     auth,
		schedule: schedule,
		runner:   cron.New(),
		logger:   logger,
	}, nil
}

// Start registers the sweep job and launches the scheduler. Each run gets a
// bounded context so a wedged backend cannot pile up sweep goroutines.
func (sweeper *SessionSweeper) Start() {
	sweeper.runner.Schedule(sweeper.schedule, cron.FuncJob(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if _, err := sweeper.auth.CleanupExpiredSessions(ctx); err != nil {
			sweeper.logger.Error().Err(err).Msg("session sweep failed")
		}
	}))
	sweeper.runner.Start()
}

// Stop halts scheduling and waits for an in-flight sweep to finish.
func (sweeper *SessionSweeper) Stop() {
	<-sweeper.runner.Stop().Done()
}
