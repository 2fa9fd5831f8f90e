package parquetread

import (
	"fmt"
	"io"
	"os"

	"github.com/parquet-go/parquet-go"

	"github.com/gyeh/schemescreen/internal/model"
)

// Reader streams ProfileRow records out of a batch screening file.
type Reader struct {
	file   *os.File
	reader *parquet.GenericReader[model.ProfileRow]
}

// Open opens a Parquet file and returns a streaming Reader.
func Open(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open parquet file: %w", err)
	}

	stat, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("stat parquet file: %w", err)
	}

	pf, err := parquet.OpenFile(f, stat.Size())
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("open parquet: %w", err)
	}

	return &Reader{file: f, reader: parquet.NewGenericReader[model.ProfileRow](pf)}, nil
}

// NumRows returns the row count from the file metadata.
func (r *Reader) NumRows() int64 {
	return r.reader.NumRows()
}

// Read fills rows and returns how many were read, with io.EOF at the end.
func (r *Reader) Read(rows []model.ProfileRow) (int, error) {
	n, err := r.reader.Read(rows)
	if err != nil && err != io.EOF {
		return n, fmt.Errorf("read parquet rows: %w", err)
	}
	return n, err
}

// Each reads the file to the end in batches of size, calling fn for every
// row. It stops at the first error fn returns.
func (r *Reader) Each(size int, fn func(row *model.ProfileRow) error) error {
	buf := make([]model.ProfileRow, size)
	for {
		n, readErr := r.Read(buf)
		for i := 0; i < n; i++ {
			if err := fn(&buf[i]); err != nil {
				return err
			}
		}
		if readErr == io.EOF {
			return nil
		}
		if readErr != nil {
			return readErr
		}
	}
}

// Schema returns the file's Parquet schema.
func (r *Reader) Schema() *parquet.Schema {
	return r.reader.Schema()
}

// Close releases all resources.
func (r *Reader) Close() error {
	if err := r.reader.Close(); err != nil {
		r.file.Close()
		return err
	}
	return r.file.Close()
}
