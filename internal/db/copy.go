package db

import (
	"github.com/jackc/pgx/v5"

	"github.com/gyeh/schemescreen/internal/model"
)

// ChannelSource implements pgx.CopyFromSource over ScreeningRows arriving on
// a channel, so the evaluating producer and the COPY writer run in lockstep.
type ChannelSource struct {
	ch      <-chan *model.ScreeningRow
	current *model.ScreeningRow
	copied  int64
}

// NewChannelSource creates a CopyFromSource backed by a channel.
func NewChannelSource(ch <-chan *model.ScreeningRow) *ChannelSource {
	return &ChannelSource{ch: ch}
}

// Next advances to the next row. Returns false when the channel is closed.
func (s *ChannelSource) Next() bool {
	row, ok := <-s.ch
	if !ok {
		return false
	}
	s.current = row
	s.copied++
	return true
}

// Values returns the current row's values in COPY column order.
func (s *ChannelSource) Values() ([]any, error) {
	return s.current.CopyValues(), nil
}

// Err always returns nil; producer errors travel on their own channel.
func (s *ChannelSource) Err() error {
	return nil
}

// Copied returns how many rows have been handed to COPY so far.
func (s *ChannelSource) Copied() int64 {
	return s.copied
}

var _ pgx.CopyFromSource = (*ChannelSource)(nil)
