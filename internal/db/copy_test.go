package db

import (
	"testing"

	"github.com/google/uuid"

	"github.com/gyeh/schemescreen/internal/model"
)

func TestChannelSource(t *testing.T) {
	ch := make(chan *model.ScreeningRow, 2)
	ch <- &model.ScreeningRow{BatchID: uuid.New(), ProfileID: "p-1", SchemeID: "pmjay"}
	ch <- &model.ScreeningRow{BatchID: uuid.New(), ProfileID: "p-1", SchemeID: "esic"}
	close(ch)

	src := NewChannelSource(ch)
	var schemes []string
	for src.Next() {
		vals, err := src.Values()
		if err != nil {
			t.Fatalf("Values: %v", err)
		}
		if len(vals) != len(model.ScreeningColumns()) {
			t.Fatalf("expected %d values, got %d", len(model.ScreeningColumns()), len(vals))
		}
		schemes = append(schemes, vals[3].(string))
	}
	if src.Err() != nil {
		t.Fatalf("Err: %v", src.Err())
	}
	if src.Copied() != 2 || schemes[0] != "pmjay" || schemes[1] != "esic" {
		t.Errorf("unexpected rows: copied=%d schemes=%v", src.Copied(), schemes)
	}
}
