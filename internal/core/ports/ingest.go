package ports

import "context"

// ProductRowJob is one bulk-upload row bound to the actor who submitted the
// batch. Rows pass through the same validation as a single product create.
type ProductRowJob struct {
	Actor Actor
	Input ProductInput
}

// RowQueue fans bulk-upload rows out to the ingest workers. Rows sharing a
// SKU land on the same worker, so no SKU is processed concurrently.
type RowQueue interface {
	Enqueue(job ProductRowJob)
	EnqueueBatch(jobs []ProductRowJob)
}

// RowProcessor consumes queued rows.
type RowProcessor interface {
	Process(ctx context.Context, job ProductRowJob) error
}

// ExportService serializes the catalog to a downloadable snapshot and
// parses uploads in the same layout back into product inputs.
type ExportService interface {
	// ExportCSV renders every product as one CSV row, header included.
	ExportCSV(ctx context.Context) ([]byte, error)
	// ParseBulkCSV validates a whole upload and converts each row into a
	// product input. Any bad row fails the whole batch.
	ParseBulkCSV(ctx context.Context, data []byte) ([]ProductInput, error)
}
