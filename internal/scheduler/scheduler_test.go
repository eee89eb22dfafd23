package scheduler

import "testing"

func TestNewRejectsBadSpec(t *testing.T) {
	if _, err := New("not a cron spec", nil); err == nil {
		t.Fatal("invalid cron spec should fail")
	}
}

func TestNewAcceptsStandardSpec(t *testing.T) {
	s, err := New("0 */6 * * *", nil)
	if err != nil {
		t.Fatalf("standard spec rejected: %v", err)
	}
	if s.Cron() == nil {
		t.Fatal("cron instance missing")
	}
}
