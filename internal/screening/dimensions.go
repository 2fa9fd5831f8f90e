package screening

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/gyeh/schemescreen/internal/eligibility"
	embedsql "github.com/gyeh/schemescreen/internal/sql"
)

// UpsertSchemes writes the catalogue being screened into screen.schemes so
// result rows can be joined to scheme metadata.
func UpsertSchemes(ctx context.Context, pool *pgxpool.Pool, log zerolog.Logger, cat *eligibility.Catalogue) error {
	start := time.Now()

	defs := cat.Schemes()
	batch := &pgx.Batch{}
	for _, def := range defs {
		batch.Queue(embedsql.UpsertScheme,
			def.ID, def.Name, def.Description, def.Rule.Kind,
			int32(len(def.Criteria)), int32(len(def.Documents)))
	}

	br := pool.SendBatch(ctx, batch)
	for _, def := range defs {
		if _, err := br.Exec(); err != nil {
			br.Close()
			return fmt.Errorf("upsert scheme %s: %w", def.ID, err)
		}
	}
	if err := br.Close(); err != nil {
		return fmt.Errorf("upsert schemes: %w", err)
	}

	log.Info().
		Int("schemes_upserted", len(defs)).
		Dur("duration", time.Since(start)).
		Msg("schemes upserted")
	return nil
}
