package screening

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/gyeh/schemescreen/internal/normalize"
	"github.com/gyeh/schemescreen/internal/parquetread"
	embedsql "github.com/gyeh/schemescreen/internal/sql"
)

// PreflightResult holds everything resolved before evaluation starts.
type PreflightResult struct {
	// FilePath is the path passed to Preflight, stored as-is.
	FilePath string
	// FileSHA256 is the hex-encoded SHA-256 digest of the file.
	FileSHA256 string
	FileSize   int64
	// BatchID identifies the screen.batches row. A re-screened file keeps
	// the id it was first registered with.
	BatchID uuid.UUID
	// NumRows is the row count from the Parquet metadata.
	NumRows int64
	// AlreadyScreened is true when this SHA already completed and force is
	// off, so the pipeline can skip the file.
	AlreadyScreened bool
}

// Preflight hashes the file, validates its schema and registers the batch.
func Preflight(ctx context.Context, pool *pgxpool.Pool, log zerolog.Logger, filePath string, force bool) (*PreflightResult, error) {
	start := time.Now()

	sha, err := normalize.FileHash(filePath)
	if err != nil {
		return nil, fmt.Errorf("preflight hash: %w", err)
	}

	stat, err := os.Stat(filePath)
	if err != nil {
		return nil, fmt.Errorf("preflight stat: %w", err)
	}

	reader, err := parquetread.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("preflight open: %w", err)
	}
	defer reader.Close()

	if err := parquetread.ValidateSchema(reader.Schema()); err != nil {
		return nil, fmt.Errorf("preflight validate: %w", err)
	}
	numRows := reader.NumRows()

	log.Info().
		Str("file", filepath.Base(filePath)).
		Str("sha256", sha).
		Int64("rows", numRows).
		Dur("duration", time.Since(start)).
		Msg("preflight complete")

	batchID, already, err := registerBatch(ctx, pool, filepath.Base(filePath), sha, force)
	if err != nil {
		return nil, fmt.Errorf("preflight register batch: %w", err)
	}

	return &PreflightResult{
		FilePath:        filePath,
		FileSHA256:      sha,
		FileSize:        stat.Size(),
		BatchID:         batchID,
		NumRows:         numRows,
		AlreadyScreened: already,
	}, nil
}

func registerBatch(ctx context.Context, pool *pgxpool.Pool, fileName, sha string, force bool) (uuid.UUID, bool, error) {
	var batchID uuid.UUID
	err := pool.QueryRow(ctx, embedsql.RegisterBatch, uuid.New(), fileName, sha).Scan(&batchID)
	if err == nil {
		return batchID, false, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return uuid.Nil, false, fmt.Errorf("register batch: %w", err)
	}

	// Already registered (ON CONFLICT DO NOTHING returned no rows).
	var status string
	if err := pool.QueryRow(ctx, embedsql.LookupBatch, sha).Scan(&batchID, &status); err != nil {
		return uuid.Nil, false, fmt.Errorf("lookup existing batch: %w", err)
	}
	if !force && status == "completed" {
		return batchID, true, nil
	}

	// Reset for re-screening.
	if _, err := pool.Exec(ctx, embedsql.DeleteBatchResults, batchID); err != nil {
		return uuid.Nil, false, fmt.Errorf("clear previous results: %w", err)
	}
	if err := UpdateStatus(ctx, pool, batchID, "pending"); err != nil {
		return uuid.Nil, false, fmt.Errorf("reset batch status: %w", err)
	}
	return batchID, false, nil
}

// UpdateStatus sets the batch status.
func UpdateStatus(ctx context.Context, pool *pgxpool.Pool, batchID uuid.UUID, status string) error {
	_, err := pool.Exec(ctx, embedsql.UpdateBatchStatus, batchID, status)
	return err
}
