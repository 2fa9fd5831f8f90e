package sql

import (
	"embed"
)

// Migrations holds the DDL applied by db.ApplyMigrations, in filename order.
//
//go:embed migrations/*.sql
var Migrations embed.FS

//go:embed queries/register_batch.sql
var RegisterBatch string

//go:embed queries/lookup_batch.sql
var LookupBatch string

//go:embed queries/update_batch_status.sql
var UpdateBatchStatus string

//go:embed queries/complete_batch.sql
var CompleteBatch string

//go:embed queries/delete_batch_results.sql
var DeleteBatchResults string

//go:embed queries/eligible_counts.sql
var EligibleCounts string

//go:embed queries/analyze_results.sql
var AnalyzeResults string

//go:embed queries/upsert_scheme.sql
var UpsertScheme string
