package screening_test

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	embeddedpostgres "github.com/fergusstrange/embedded-postgres"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	goparquet "github.com/parquet-go/parquet-go"

	"github.com/gyeh/schemescreen/internal/config"
	"github.com/gyeh/schemescreen/internal/db"
	"github.com/gyeh/schemescreen/internal/eligibility"
	"github.com/gyeh/schemescreen/internal/fixture"
	"github.com/gyeh/schemescreen/internal/logging"
	"github.com/gyeh/schemescreen/internal/model"
	"github.com/gyeh/schemescreen/internal/normalize"
	"github.com/gyeh/schemescreen/internal/screening"
)

const (
	testPort     = 15433
	testDB       = "screentest"
	testUser     = "postgres"
	testPassword = "postgres"
)

var testDSN string

func TestMain(m *testing.M) {
	flag.Parse()
	if testing.Short() {
		os.Exit(m.Run())
	}

	pg := embeddedpostgres.NewDatabase(
		embeddedpostgres.DefaultConfig().
			Port(uint32(testPort)).
			Database(testDB).
			Username(testUser).
			Password(testPassword).
			Version(embeddedpostgres.V16).
			StartTimeout(30 * time.Second),
	)
	if err := pg.Start(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to start embedded postgres: %v\n", err)
		os.Exit(1)
	}
	testDSN = fmt.Sprintf("postgresql://%s:%s@localhost:%d/%s?sslmode=disable",
		testUser, testPassword, testPort, testDB)

	code := m.Run()

	if err := pg.Stop(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to stop embedded postgres: %v\n", err)
	}
	os.Exit(code)
}

// setupDB connects, drops the screen schema and reapplies migrations.
func setupDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	if testDSN == "" {
		t.Skip("integration test skipped in -short mode")
	}
	ctx := context.Background()

	pool, err := db.NewPool(ctx, testDSN, logging.Setup("text"))
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(pool.Close)

	if _, err := pool.Exec(ctx, "DROP SCHEMA IF EXISTS screen CASCADE"); err != nil {
		t.Fatalf("drop schema: %v", err)
	}
	if err := db.ApplyMigrations(ctx, pool, logging.Setup("text")); err != nil {
		t.Fatalf("migrations: %v", err)
	}
	return pool
}

// writeFixture writes rows with a GenericWriter and returns the file path.
func writeFixture(t *testing.T, rows []model.ProfileRow) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "profiles.parquet")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create fixture: %v", err)
	}
	w := goparquet.NewGenericWriter[model.ProfileRow](f)
	if _, err := w.Write(rows); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("close fixture: %v", err)
	}
	return path
}

// expectedEligible evaluates rows in-process to get the per-scheme eligible
// counts the database should report.
func expectedEligible(rows []model.ProfileRow) map[string]int64 {
	engine := eligibility.NewEngine()
	counts := make(map[string]int64)
	for i := range rows {
		p, tr := normalize.ToProfile(&rows[i])
		for _, s := range engine.BuildWorkspace(p, tr).Eligible() {
			counts[s.ID]++
		}
	}
	return counts
}

func TestEndToEnd_Screen(t *testing.T) {
	pool := setupDB(t)
	ctx := context.Background()
	log := logging.Setup("text")

	rows := fixture.Generate(120, 42)
	rows[10].ProfileID = rows[9].ProfileID // duplicate id is rejected
	path := writeFixture(t, rows)

	cfg := &config.Config{DSN: testDSN, FilePath: path}
	summary, err := screening.Run(ctx, pool, log, cfg)
	if err != nil {
		t.Fatalf("screening.Run: %v", err)
	}

	schemes := int64(eligibility.DefaultCatalogue().Len())

	t.Run("summary_metrics", func(t *testing.T) {
		if summary.ProfilesRead != 120 {
			t.Errorf("ProfilesRead: got %d, want 120", summary.ProfilesRead)
		}
		if summary.ProfilesRejected != 1 {
			t.Errorf("ProfilesRejected: got %d, want 1", summary.ProfilesRejected)
		}
		if summary.RowsWritten != 119*schemes {
			t.Errorf("RowsWritten: got %d, want %d", summary.RowsWritten, 119*schemes)
		}
	})

	t.Run("batch_row", func(t *testing.T) {
		var status string
		var read, written int64
		err := pool.QueryRow(ctx,
			"SELECT status, profiles_read, rows_written FROM screen.batches WHERE batch_id = $1",
			uuid.MustParse(summary.BatchID)).Scan(&status, &read, &written)
		if err != nil {
			t.Fatalf("query batch: %v", err)
		}
		if status != "completed" || read != 120 || written != summary.RowsWritten {
			t.Errorf("unexpected batch row: status=%s read=%d written=%d", status, read, written)
		}
	})

	t.Run("eligible_counts", func(t *testing.T) {
		want := expectedEligible(append(append([]model.ProfileRow{}, rows[:10]...), rows[11:]...))
		for scheme, n := range want {
			if summary.EligibleByScheme[scheme] != n {
				t.Errorf("%s: got %d eligible, want %d", scheme, summary.EligibleByScheme[scheme], n)
			}
		}
		if len(summary.EligibleByScheme) != len(want) {
			t.Errorf("scheme sets differ: got %v, want %v", summary.EligibleByScheme, want)
		}
	})

	t.Run("scheme_dimension", func(t *testing.T) {
		var n int64
		if err := pool.QueryRow(ctx, "SELECT count(*) FROM screen.schemes").Scan(&n); err != nil {
			t.Fatalf("count schemes: %v", err)
		}
		if n != schemes {
			t.Errorf("expected %d schemes upserted, got %d", schemes, n)
		}
	})

	t.Run("rank_per_profile", func(t *testing.T) {
		var bad int64
		err := pool.QueryRow(ctx, `
			SELECT count(*) FROM (
				SELECT profile_id FROM screen.scheme_results
				GROUP BY profile_id
				HAVING min(rank) <> 1 OR max(rank) <> count(*)
			) x`).Scan(&bad)
		if err != nil {
			t.Fatalf("query ranks: %v", err)
		}
		if bad != 0 {
			t.Errorf("%d profiles have non-contiguous ranks", bad)
		}
	})

	t.Run("band_consistency", func(t *testing.T) {
		var bad int64
		err := pool.QueryRow(ctx, `
			SELECT count(*) FROM screen.scheme_results
			WHERE (eligible AND band <> 'eligible')
			   OR (NOT eligible AND band = 'eligible')
			   OR met_criteria > total_criteria
			   OR met_ratio_bps NOT BETWEEN 0 AND 10000`).Scan(&bad)
		if err != nil {
			t.Fatalf("query bands: %v", err)
		}
		if bad != 0 {
			t.Errorf("%d inconsistent result rows", bad)
		}
	})
}

func TestEndToEnd_SkipAndForce(t *testing.T) {
	pool := setupDB(t)
	ctx := context.Background()
	log := logging.Setup("text")

	path := writeFixture(t, fixture.Generate(20, 5))
	cfg := &config.Config{DSN: testDSN, FilePath: path}

	first, err := screening.Run(ctx, pool, log, cfg)
	if err != nil {
		t.Fatalf("first run: %v", err)
	}

	second, err := screening.Run(ctx, pool, log, cfg)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if !second.AlreadyScreened || second.BatchID != first.BatchID {
		t.Errorf("expected second run to be skipped, got %+v", second)
	}

	cfg.Force = true
	cfg.SchemeIDs = []string{"pmjay", "esic"}
	third, err := screening.Run(ctx, pool, log, cfg)
	if err != nil {
		t.Fatalf("forced run: %v", err)
	}
	if third.BatchID != first.BatchID || third.AlreadyScreened {
		t.Errorf("forced run should reuse the batch id: %+v", third)
	}

	var count int64
	if err := pool.QueryRow(ctx, "SELECT count(*) FROM screen.scheme_results WHERE batch_id = $1", uuid.MustParse(first.BatchID)).Scan(&count); err != nil {
		t.Fatalf("count results: %v", err)
	}
	if count != 40 {
		t.Errorf("expected previous rows replaced by 20 profiles x 2 schemes, got %d", count)
	}
}

func TestPreflight_InvalidSchema(t *testing.T) {
	pool := setupDB(t)
	type other struct {
		Code string `parquet:"code"`
	}
	path := filepath.Join(t.TempDir(), "bad.parquet")
	if err := goparquet.WriteFile(path, []other{{Code: "x"}}); err != nil {
		t.Fatalf("write: %v", err)
	}

	_, err := screening.Run(context.Background(), pool, logging.Setup("text"), &config.Config{FilePath: path})
	pe, ok := err.(*screening.PipelineError)
	if !ok || pe.Phase != screening.PhasePreflight {
		t.Fatalf("expected preflight error, got %v", err)
	}
}
