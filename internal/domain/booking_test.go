package domain

import "testing"

func TestParseBookingStatus(t *testing.T) {
	for _, raw := range []string{"Pending", "Accepted", "Rejected", "InProgress", "Completed"} {
		if _, ok := ParseBookingStatus(raw); !ok {
			t.Errorf("expected %q to parse", raw)
		}
	}
	if _, ok := ParseBookingStatus("Cancelled"); ok {
		t.Error("unknown status must not parse")
	}
	if _, ok := ParseBookingStatus(""); ok {
		t.Error("empty status must not parse")
	}
}

func TestNextStatuses(t *testing.T) {
	cases := []struct {
		from BookingStatus
		want []BookingStatus
	}{
		{BookingStatusPending, []BookingStatus{BookingStatusAccepted, BookingStatusRejected}},
		{BookingStatusAccepted, []BookingStatus{BookingStatusInProgress}},
		{BookingStatusInProgress, []BookingStatus{BookingStatusCompleted}},
		{BookingStatusRejected, nil},
		{BookingStatusCompleted, nil},
	}
	for _, tc := range cases {
		got := tc.from.NextStatuses()
		if len(got) != len(tc.want) {
			t.Errorf("%s: expected %v, got %v", tc.from, tc.want, got)
			continue
		}
		for i := range got {
			if got[i] != tc.want[i] {
				t.Errorf("%s: expected %v, got %v", tc.from, tc.want, got)
			}
		}
	}
}

func TestTerminal(t *testing.T) {
	if !BookingStatusCompleted.Terminal() || !BookingStatusRejected.Terminal() {
		t.Error("Completed and Rejected are terminal")
	}
	if BookingStatusPending.Terminal() || BookingStatusAccepted.Terminal() || BookingStatusInProgress.Terminal() {
		t.Error("active statuses are not terminal")
	}
}

func TestServiceKey(t *testing.T) {
	if (Service{ServiceID: 3, ID: 9}).Key() != 3 {
		t.Error("serviceId takes precedence")
	}
	if (Service{ID: 9}).Key() != 9 {
		t.Error("id is the fallback")
	}
}
