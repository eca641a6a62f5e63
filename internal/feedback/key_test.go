package feedback

import "testing"

func TestCacheKey(t *testing.T) {
	tests := []struct {
		name      string
		quizID    int64
		incorrect []int64
		want      string
	}{
		{"single miss", 1, []int64{3}, "1_3"},
		{"sorted ascending", 1, []int64{7, 3}, "1_3,7"},
		{"already sorted", 42, []int64{1, 2, 3}, "42_1,2,3"},
		{"duplicates removed", 5, []int64{9, 3, 9, 3}, "5_3,9"},
		{"empty set", 8, nil, "8_"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CacheKey(tt.quizID, tt.incorrect); got != tt.want {
				t.Errorf("CacheKey(%d, %v) = %q, want %q", tt.quizID, tt.incorrect, got, tt.want)
			}
		})
	}
}

func TestCacheKeyOrderIndependent(t *testing.T) {
	a := CacheKey(3, []int64{12, 4, 8})
	b := CacheKey(3, []int64{8, 12, 4})
	if a != b {
		t.Errorf("expected identical keys for the same miss set, got %q and %q", a, b)
	}
}
