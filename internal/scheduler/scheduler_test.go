package scheduler

import "testing"

func TestShouldRunHonoursCycleSchedule(t *testing.T) {
	// A status with cycle 3 at index 0 should run on global cycles 0,3,6...
	cases := []struct {
		globalCycle, index, cycle int
		want                      bool
	}{
		{0, 0, 3, true},
		{1, 0, 3, false},
		{3, 0, 3, true},
		{2, 2, 3, true}, // (2 - 2%3) mod 3 == 0
		{0, 0, 0, false},
	}
	for _, c := range cases {
		got := shouldRun(c.globalCycle, c.index, c.cycle)
		if got != c.want {
			t.Errorf("shouldRun(%d,%d,%d) = %v, want %v", c.globalCycle, c.index, c.cycle, got, c.want)
		}
	}
}

func TestFloorModNeverNegative(t *testing.T) {
	if floorMod(-1, 3) != 2 {
		t.Fatalf("floorMod(-1,3) = %d, want 2", floorMod(-1, 3))
	}
	if floorMod(5, 3) != 2 {
		t.Fatalf("floorMod(5,3) = %d, want 2", floorMod(5, 3))
	}
}
