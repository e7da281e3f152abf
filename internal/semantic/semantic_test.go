package semantic

import "testing"

func TestChunk(t *testing.T) {
	rows := make([]postText, 7)
	for i := range rows {
		rows[i].PostID = string(rune('a' + i))
	}

	batches := chunk(rows, 3)
	if len(batches) != 3 {
		t.Fatalf("chunk() produced %d batches, want 3", len(batches))
	}
	if len(batches[0]) != 3 || len(batches[1]) != 3 || len(batches[2]) != 1 {
		t.Errorf("batch sizes = %d/%d/%d, want 3/3/1", len(batches[0]), len(batches[1]), len(batches[2]))
	}
	if batches[2][0].PostID != "g" {
		t.Errorf("last element = %q, want g", batches[2][0].PostID)
	}
}

func TestChunk_Edges(t *testing.T) {
	if got := chunk(nil, 3); got != nil {
		t.Errorf("chunk(nil) = %v, want nil", got)
	}
	if got := chunk(make([]postText, 2), 0); got != nil {
		t.Errorf("chunk(size 0) = %v, want nil", got)
	}
	if got := chunk(make([]postText, 2), 10); len(got) != 1 || len(got[0]) != 2 {
		t.Errorf("chunk(oversized) = %v batches, want one batch of 2", got)
	}
}
