package screening

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/gyeh/schemescreen/internal/config"
	"github.com/gyeh/schemescreen/internal/model"
)

// PipelineError wraps an error with the phase where it occurred.
type PipelineError struct {
	Phase string
	Err   error
}

func (e *PipelineError) Error() string {
	return fmt.Sprintf("%s: %s", e.Phase, e.Err)
}

func (e *PipelineError) Unwrap() error {
	return e.Err
}

// Phases reported in PipelineError.
const (
	PhasePreflight = "preflight"
	PhaseSchemes   = "schemes"
	PhaseEvaluate  = "evaluate"
	PhaseFinalize  = "finalize"
)

// Run executes the batch screening pipeline: preflight → schemes →
// evaluate → finalize. A failed evaluate or finalize marks the batch failed and
// removes its partial results.
func Run(ctx context.Context, pool *pgxpool.Pool, log zerolog.Logger, cfg *config.Config) (*model.BatchSummary, error) {
	totalStart := time.Now()

	engine, err := cfg.Engine()
	if err != nil {
		return nil, &PipelineError{Phase: PhasePreflight, Err: err}
	}

	// Phase 1: Preflight
	log.Info().Str("file", cfg.FilePath).Msg("starting preflight")
	pf, err := Preflight(ctx, pool, log, cfg.FilePath, cfg.Force)
	if err != nil {
		return nil, &PipelineError{Phase: PhasePreflight, Err: err}
	}

	if pf.AlreadyScreened {
		log.Info().
			Str("batch_id", pf.BatchID.String()).
			Str("sha256", pf.FileSHA256).
			Msg("file already screened, skipping (use --force to re-screen)")
		return &model.BatchSummary{
			FilePath:        pf.FilePath,
			FileSHA256:      pf.FileSHA256,
			BatchID:         pf.BatchID.String(),
			AlreadyScreened: true,
			DurationTotal:   time.Since(totalStart),
		}, nil
	}

	// Phase 2: Scheme dimension upsert
	if err := UpsertSchemes(ctx, pool, log, engine.Catalogue); err != nil {
		return nil, &PipelineError{Phase: PhaseSchemes, Err: err}
	}

	// Phase 3: Evaluate
	log.Info().Int("schemes", engine.Catalogue.Len()).Msg("starting evaluation")
	if err := UpdateStatus(ctx, pool, pf.BatchID, "evaluating"); err != nil {
		return nil, &PipelineError{Phase: PhaseEvaluate, Err: err}
	}

	evalResult, err := Evaluate(ctx, pool, log, pf, engine, cfg.DeriveVerification)
	if err != nil {
		fail(ctx, pool, log, pf)
		return nil, &PipelineError{Phase: PhaseEvaluate, Err: err}
	}

	// Phase 4: Finalize
	log.Info().Msg("finalizing")
	fin, err := Finalize(ctx, pool, log, pf.BatchID, evalResult)
	if err != nil {
		fail(ctx, pool, log, pf)
		return nil, &PipelineError{Phase: PhaseFinalize, Err: err}
	}

	summary := &model.BatchSummary{
		FilePath:         pf.FilePath,
		FileSHA256:       pf.FileSHA256,
		BatchID:          pf.BatchID.String(),
		ProfilesRead:     evalResult.ProfilesRead,
		ProfilesRejected: evalResult.ProfilesRejected,
		RowsWritten:      evalResult.RowsWritten,
		EligibleByScheme: fin.EligibleByScheme,
		DurationEvaluate: evalResult.Duration,
		DurationFinalize: fin.Duration,
		DurationTotal:    time.Since(totalStart),
	}

	log.Info().
		Int64("profiles_read", summary.ProfilesRead).
		Int64("profiles_rejected", summary.ProfilesRejected).
		Int64("rows_written", summary.RowsWritten).
		Str("total_duration", summary.DurationTotal.String()).
		Msg("screening pipeline complete")

	return summary, nil
}

// fail marks the batch failed and deletes its partial rows. Errors are
// logged only; the phase error is what the caller reports.
func fail(ctx context.Context, pool *pgxpool.Pool, log zerolog.Logger, pf *PreflightResult) {
	if err := UpdateStatus(ctx, pool, pf.BatchID, "failed"); err != nil {
		log.Warn().Err(err).Msg("could not mark batch failed")
	}
	if err := Cleanup(ctx, pool, log, pf.BatchID); err != nil {
		log.Warn().Err(err).Msg("partial result cleanup failed (non-fatal)")
	}
}
