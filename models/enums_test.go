package models

import (
	"encoding/json"
	"testing"
)

func TestUserRoleIsManufacturerSide(t *testing.T) {
	if !UserRoleAdmin.IsManufacturerSide() {
		t.Error("ADMIN should be manufacturer side")
	}
	if !UserRoleEVMStaff.IsManufacturerSide() {
		t.Error("EVM_STAFF should be manufacturer side")
	}
	if UserRoleDealerManager.IsManufacturerSide() {
		t.Error("DEALER_MANAGER should not be manufacturer side")
	}
	if UserRoleDealerStaff.IsManufacturerSide() {
		t.Error("DEALER_STAFF should not be manufacturer side")
	}
}

func TestUserRoleUnmarshalJSON(t *testing.T) {
	var role UserRole
	if err := json.Unmarshal([]byte(`"DEALER_MANAGER"`), &role); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if role != UserRoleDealerManager {
		t.Fatalf("got %s", role)
	}

	if err := json.Unmarshal([]byte(`"SUPERUSER"`), &role); err == nil {
		t.Fatal("unknown role should fail")
	}
	if err := json.Unmarshal([]byte(`42`), &role); err == nil {
		t.Fatal("non-string role should fail")
	}
}

func TestTestDriveStatusUnmarshalJSON(t *testing.T) {
	var status TestDriveStatus
	if err := json.Unmarshal([]byte(`"Successfully"`), &status); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status != TestDriveStatusSuccessfully {
		t.Fatalf("got %s", status)
	}
	if err := json.Unmarshal([]byte(`"Done"`), &status); err == nil {
		t.Fatal("unknown status should fail")
	}
}

func TestParseReportPeriod(t *testing.T) {
	cases := map[string]ReportPeriod{
		"monthly":   ReportPeriodMonthly,
		"quarterly": ReportPeriodQuarterly,
		"yearly":    ReportPeriodYearly,
	}
	for raw, want := range cases {
		got, err := ParseReportPeriod(raw)
		if err != nil {
			t.Fatalf("ParseReportPeriod(%q): %v", raw, err)
		}
		if got != want {
			t.Fatalf("ParseReportPeriod(%q) = %s, want %s", raw, got, want)
		}
	}
	if _, err := ParseReportPeriod("weekly"); err == nil {
		t.Fatal("unsupported period should fail")
	}
}
