package helpers

import (
	"testing"
)

func TestCalculateOffsetLimit(t *testing.T) {
	tests := []struct {
		name       string
		page       int
		limit      int
		wantOffset uint64
		wantLimit  int
	}{
		{"first page", 1, 10, 0, 10},
		{"second page", 2, 10, 10, 10},
		{"zero page falls back to first", 0, 10, 0, 10},
		{"negative page falls back to first", -3, 10, 0, 10},
		{"zero limit uses default", 1, 0, 0, DefaultPageSize},
		{"limit above max falls back to default", 1, 500, 0, DefaultPageSize},
		{"offset respects effective limit", 3, 500, 20, DefaultPageSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			offset, limit := CalculateOffsetLimit(tt.page, tt.limit)
			if offset != tt.wantOffset || limit != tt.wantLimit {
				t.Errorf("CalculateOffsetLimit(%d, %d) = (%d, %d), want (%d, %d)",
					tt.page, tt.limit, offset, limit, tt.wantOffset, tt.wantLimit)
			}
		})
	}
}

func TestTotalPages(t *testing.T) {
	tests := []struct {
		name  string
		total int64
		limit int
		want  int
	}{
		{"empty", 0, 10, 0},
		{"exact fit", 20, 10, 2},
		{"partial last page", 21, 10, 3},
		{"single item", 1, 10, 1},
		{"zero limit uses default", 5, 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TotalPages(tt.total, tt.limit); got != tt.want {
				t.Errorf("TotalPages(%d, %d) = %d, want %d", tt.total, tt.limit, got, tt.want)
			}
		})
	}
}
