package pdg

import "testing"

func TestStandardInvisible(t *testing.T) {
	t.Parallel()

	tab := Standard()
	for _, id := range []int32{12, -12, 14, -16, 1000022, 1000039} {
		if !tab.Invisible(id) {
			t.Errorf("expected %d to be invisible", id)
		}
	}
	for _, id := range []int32{11, 13, 22, 211, 2212} {
		if tab.Invisible(id) {
			t.Errorf("expected %d to be visible", id)
		}
	}
}

func TestStandardHadronic(t *testing.T) {
	t.Parallel()

	tab := Standard()
	tests := []struct {
		id   int32
		want bool
	}{
		{1, true},
		{-5, true},
		{6, false},
		{21, true},
		{11, false},
		{13, false},
		{22, false},
		{12, false},
		{111, true},
		{-211, true},
		{130, true},
		{310, true},
		{2212, true},
		{-2112, true},
		{3122, true},
		{1000022, false},
		{2101, false},
	}
	for _, tc := range tests {
		if got := tab.Hadronic(tc.id); got != tc.want {
			t.Errorf("Hadronic(%d): got %v want %v", tc.id, got, tc.want)
		}
	}
}

func TestWithExtendsCopy(t *testing.T) {
	t.Parallel()

	base := Standard()
	ext := base.With([]int32{-9000006}, []int32{6})
	if !ext.Invisible(9000006) {
		t.Fatal("expected extended invisible code")
	}
	if !ext.Hadronic(-6) {
		t.Fatal("expected extended hadronic code")
	}
	if base.Invisible(9000006) || base.Hadronic(6) {
		t.Fatal("With must not modify the receiver")
	}
	if !ext.Invisible(12) {
		t.Fatal("extended table lost standard codes")
	}
}
