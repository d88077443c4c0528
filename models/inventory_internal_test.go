package models

import "testing"

func TestValidateAllocationBounds(t *testing.T) {
	cases := []struct {
		name                           string
		allocated, available, reserved int
		minStock, maxStock             int
		wantErr                        bool
	}{
		{"valid", 10, 8, 2, 2, 20, false},
		{"zero stock valid", 0, 0, 0, 0, 1, false},
		{"negative allocated", -1, 0, 0, 0, 10, true},
		{"negative available", 0, -1, 0, 0, 10, true},
		{"negative reserved", 0, 0, -1, 0, 10, true},
		{"negative min stock", 0, 0, 0, -1, 10, true},
		{"max equals min", 5, 5, 0, 10, 10, true},
		{"max below min", 5, 5, 0, 10, 5, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := validateAllocationBounds(tc.allocated, tc.available, tc.reserved, tc.minStock, tc.maxStock)
			if tc.wantErr && err == nil {
				t.Fatal("expected error")
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}
