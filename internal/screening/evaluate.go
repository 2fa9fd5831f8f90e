package screening

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/gyeh/schemescreen/internal/db"
	"github.com/gyeh/schemescreen/internal/eligibility"
	"github.com/gyeh/schemescreen/internal/model"
	"github.com/gyeh/schemescreen/internal/parquetread"
)

const readBatchSize = 512

// EvaluateResult holds metrics from the evaluate phase.
type EvaluateResult struct {
	ProfilesRead     int64
	ProfilesRejected int64
	RowsWritten      int64
	Duration         time.Duration
}

var errStopped = errors.New("producer stopped")

// Evaluate streams profiles from the Parquet file through the engine and
// COPY-loads one result row per profile and scheme into
// screen.scheme_results.
func Evaluate(ctx context.Context, pool *pgxpool.Pool, log zerolog.Logger, pf *PreflightResult, engine *eligibility.Engine, deriveVerification bool) (*EvaluateResult, error) {
	start := time.Now()

	reader, err := parquetread.Open(pf.FilePath)
	if err != nil {
		return nil, fmt.Errorf("evaluate open: %w", err)
	}
	defer reader.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	ch := make(chan *model.ScreeningRow, readBatchSize)
	errCh := make(chan error, 1)

	var profilesRead, profilesRejected int64

	// Producer goroutine: read Parquet → evaluate → push rows to channel
	go func() {
		defer close(ch)
		seen := make(map[string]bool)

		err := reader.Each(readBatchSize, func(row *model.ProfileRow) error {
			profilesRead++
			if row.ProfileID == "" || seen[row.ProfileID] {
				profilesRejected++
				log.Warn().Int64("row", profilesRead).Str("profile_id", row.ProfileID).Msg("profile rejected: missing or duplicate id")
				return nil
			}
			seen[row.ProfileID] = true

			for _, r := range EvaluateRow(pf.BatchID, row, engine, deriveVerification) {
				select {
				case ch <- r:
				case <-ctx.Done():
					return errStopped
				}
			}
			return nil
		})
		if errors.Is(err, errStopped) {
			err = ctx.Err()
		}
		if err != nil {
			err = fmt.Errorf("at profile %d: %w", profilesRead, err)
		}
		errCh <- err
	}()

	// Consumer: COPY from channel into the results table
	source := db.NewChannelSource(ch)
	rowsWritten, copyErr := pool.CopyFrom(ctx,
		pgx.Identifier{"screen", "scheme_results"},
		model.ScreeningColumns(),
		source,
	)
	if copyErr != nil {
		// Unblock the producer if COPY gave up early.
		cancel()
	}

	prodErr := <-errCh
	if copyErr != nil {
		return nil, fmt.Errorf("evaluate copy: %w", copyErr)
	}
	if prodErr != nil {
		return nil, fmt.Errorf("evaluate producer: %w", prodErr)
	}

	dur := time.Since(start)
	log.Info().
		Int64("profiles_read", profilesRead).
		Int64("profiles_rejected", profilesRejected).
		Int64("rows_written", rowsWritten).
		Str("duration", dur.String()).
		Float64("profiles_per_sec", float64(profilesRead)/dur.Seconds()).
		Msg("evaluation complete")

	return &EvaluateResult{
		ProfilesRead:     profilesRead,
		ProfilesRejected: profilesRejected,
		RowsWritten:      rowsWritten,
		Duration:         dur,
	}, nil
}
