package models

import (
	"testing"
	"time"
)

func TestValidateTestDriveLeadTime(t *testing.T) {
	now := time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)

	cases := []struct {
		name      string
		scheduled time.Time
		wantErr   bool
	}{
		{"exactly 30 minutes out", now.Add(30 * time.Minute), false},
		{"an hour out", now.Add(time.Hour), false},
		{"29 minutes out", now.Add(29 * time.Minute), true},
		{"in the past", now.Add(-time.Hour), true},
		{"right now", now, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := validateTestDriveLeadTime(tc.scheduled, now)
			if tc.wantErr && err == nil {
				t.Fatal("expected error")
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestTestDriveSlotsConflict(t *testing.T) {
	base := time.Date(2026, 6, 1, 14, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		a, b time.Time
		want bool
	}{
		{"same slot", base, base, true},
		{"one hour apart", base, base.Add(time.Hour), true},
		{"89 minutes apart", base, base.Add(89 * time.Minute), true},
		{"exactly 90 minutes apart", base, base.Add(90 * time.Minute), false},
		{"two hours apart", base, base.Add(2 * time.Hour), false},
		{"earlier slot inside window", base, base.Add(-time.Hour), true},
		{"earlier slot outside window", base, base.Add(-2 * time.Hour), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := testDriveSlotsConflict(tc.a, tc.b); got != tc.want {
				t.Fatalf("conflict(%s, %s) = %v, want %v", tc.a, tc.b, got, tc.want)
			}
		})
	}
}
