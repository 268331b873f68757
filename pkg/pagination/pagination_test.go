package pagination

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name      string
		in        Params
		wantPage  int
		wantLimit int
	}{
		{name: "zeroValues", in: Params{}, wantPage: 1, wantLimit: DefaultLimit},
		{name: "negative", in: Params{Page: -2, Limit: -5}, wantPage: 1, wantLimit: DefaultLimit},
		{name: "withinBounds", in: Params{Page: 3, Limit: 24}, wantPage: 3, wantLimit: 24},
		{name: "overMax", in: Params{Page: 1, Limit: 5000}, wantPage: 1, wantLimit: MaxLimit},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.in.Normalize()
			if got.Page != tt.wantPage || got.Limit != tt.wantLimit {
				t.Fatalf("got page=%d limit=%d, want page=%d limit=%d", got.Page, got.Limit, tt.wantPage, tt.wantLimit)
			}
		})
	}
}

func TestOffset(t *testing.T) {
	if off := (Params{Page: 1, Limit: 12}).Offset(); off != 0 {
		t.Fatalf("page 1 should not skip, got %d", off)
	}
	if off := (Params{Page: 4, Limit: 12}).Offset(); off != 36 {
		t.Fatalf("expected offset 36, got %d", off)
	}
	if off := (Params{}).Offset(); off != 0 {
		t.Fatalf("zero params should normalize to offset 0, got %d", off)
	}
}

func TestPages(t *testing.T) {
	tests := []struct {
		total int64
		limit int
		want  int
	}{
		{total: 0, limit: 12, want: 0},
		{total: 1, limit: 12, want: 1},
		{total: 12, limit: 12, want: 1},
		{total: 13, limit: 12, want: 2},
		{total: 120, limit: 12, want: 10},
		{total: 121, limit: 12, want: 11},
		{total: 5, limit: 0, want: 1},
	}
	for _, tt := range tests {
		if got := Pages(tt.total, tt.limit); got != tt.want {
			t.Fatalf("Pages(%d, %d)=%d, want %d", tt.total, tt.limit, got, tt.want)
		}
	}
}
