package screening

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	embedsql "github.com/gyeh/schemescreen/internal/sql"
)

// FinalizeResult holds what finalize read back from the results table.
type FinalizeResult struct {
	EligibleByScheme map[string]int64
	Duration         time.Duration
}

// Finalize records the batch counts, marks it completed, reads back the
// per-scheme eligible counts and runs ANALYZE.
func Finalize(ctx context.Context, pool *pgxpool.Pool, log zerolog.Logger, batchID uuid.UUID, res *EvaluateResult) (*FinalizeResult, error) {
	start := time.Now()

	if _, err := pool.Exec(ctx, embedsql.CompleteBatch, batchID, res.ProfilesRead, res.ProfilesRejected, res.RowsWritten); err != nil {
		return nil, fmt.Errorf("complete batch: %w", err)
	}

	counts, err := EligibleCounts(ctx, pool, batchID)
	if err != nil {
		return nil, err
	}
	for scheme, n := range counts {
		log.Info().Str("scheme", scheme).Int64("eligible", n).Msg("eligible profiles")
	}

	if _, err := pool.Exec(ctx, embedsql.AnalyzeResults); err != nil {
		return nil, fmt.Errorf("analyze results: %w", err)
	}
	log.Info().Msg("ANALYZE complete")

	return &FinalizeResult{EligibleByScheme: counts, Duration: time.Since(start)}, nil
}

// EligibleCounts returns the number of eligible profiles per scheme for a
// batch. Schemes with no eligible profile are absent.
func EligibleCounts(ctx context.Context, pool *pgxpool.Pool, batchID uuid.UUID) (map[string]int64, error) {
	rows, err := pool.Query(ctx, embedsql.EligibleCounts, batchID)
	if err != nil {
		return nil, fmt.Errorf("eligible counts: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int64)
	for rows.Next() {
		var scheme string
		var n int64
		if err := rows.Scan(&scheme, &n); err != nil {
			return nil, fmt.Errorf("scan eligible count: %w", err)
		}
		counts[scheme] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("eligible counts: %w", err)
	}
	return counts, nil
}
