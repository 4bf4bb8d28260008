package util

import "testing"

func TestFormatBytes(t *testing.T) {
	testCases := []struct {
		in   float64
		want string
	}{
		{0, " 0.0   B"},
		{99, "99.0   B"},
		{1536, " 1.5 KiB"},
		{3 * 1024 * 1024, " 3.0 MiB"},
	}

	for _, tc := range testCases {
		got := formatBytes(tc.in)
		if got != tc.want {
			t.Errorf("formatBytes(%v) = %q, want %q", tc.in, got, tc.want)
		}
		if len(got) != 8 {
			t.Errorf("formatBytes(%v) has width %d, want 8", tc.in, len(got))
		}
	}
}

func TestFormatStats(t *testing.T) {
	prev := Snapshot{MsgsSent: 1, MsgsRecv: 1, BytesSent: 40, BytesRecv: 40}
	cur := Snapshot{MsgsSent: 3, MsgsRecv: 2, BytesSent: 140, BytesRecv: 90}

	want := "Out:  2 msg  0.1 KiB | In:  1 msg 50.0   B | Total: 3↑ 2↓"
	if got := formatStats(cur, prev); got != want {
		t.Fatalf("formatStats = %q, want %q", got, want)
	}
}

func TestNewSeed(t *testing.T) {
	a, err := NewSeed()
	if err != nil {
		t.Fatalf("NewSeed failed: %v", err)
	}
	b, err := NewSeed()
	if err != nil {
		t.Fatalf("NewSeed failed: %v", err)
	}
	if a == b {
		t.Fatalf("two seeds are equal: %d", a)
	}
}
