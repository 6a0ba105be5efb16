package wellness

import "testing"

func TestQuickAmount(t *testing.T) {
	want := []int{250, 500, 750, 1000}
	for i, w := range want {
		got, err := QuickAmount(i + 1)
		if err != nil {
			t.Fatalf("QuickAmount(%d) error = %v", i+1, err)
		}
		if got != w {
			t.Errorf("QuickAmount(%d) = %d, want %d", i+1, got, w)
		}
	}
	for _, n := range []int{0, 5, -1} {
		if _, err := QuickAmount(n); err == nil {
			t.Errorf("QuickAmount(%d) expected error", n)
		}
	}
}

func TestClampCustomAmount(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{0, 50},
		{10, 50},
		{50, 50},
		{330, 350},
		{320, 300},
		{1999, 2000},
		{5000, 2000},
		{-200, 50},
	}
	for _, tt := range tests {
		if got := ClampCustomAmount(tt.in); got != tt.want {
			t.Errorf("ClampCustomAmount(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
