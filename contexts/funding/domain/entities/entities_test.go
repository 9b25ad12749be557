package entities

import "testing"

func TestAllocationStatusTransitions(t *testing.T) {
	cases := []struct {
		from    AllocationStatus
		to      AllocationStatus
		allowed bool
	}{
		{AllocationStatusAllocated, AllocationStatusDisbursed, true},
		{AllocationStatusAllocated, AllocationStatusCancelled, true},
		{AllocationStatusAllocated, AllocationStatusCompleted, false},
		{AllocationStatusAllocated, AllocationStatusAllocated, false},
		{AllocationStatusDisbursed, AllocationStatusCompleted, true},
		{AllocationStatusDisbursed, AllocationStatusCancelled, false},
		{AllocationStatusDisbursed, AllocationStatusAllocated, false},
		{AllocationStatusCompleted, AllocationStatusCancelled, false},
		{AllocationStatusCompleted, AllocationStatusDisbursed, false},
		{AllocationStatusCancelled, AllocationStatusAllocated, false},
		{AllocationStatusCancelled, AllocationStatusDisbursed, false},
	}
	for _, tc := range cases {
		if got := tc.from.CanTransitionTo(tc.to); got != tc.allowed {
			t.Errorf("%s -> %s: got %v, want %v", tc.from, tc.to, got, tc.allowed)
		}
	}
}

func TestAllocationStatusCountsAgainstBalance(t *testing.T) {
	for _, status := range []AllocationStatus{
		AllocationStatusAllocated,
		AllocationStatusDisbursed,
		AllocationStatusCompleted,
	} {
		if !status.CountsAgainstBalance() {
			t.Errorf("%s should count against the donation balance", status)
		}
	}
	if AllocationStatusCancelled.CountsAgainstBalance() {
		t.Error("cancelled allocations must not count against the donation balance")
	}
}

func TestRequestStatusDecided(t *testing.T) {
	if RequestStatusPending.Decided() {
		t.Error("pending must not be decided")
	}
	if !RequestStatusApproved.Decided() || !RequestStatusRejected.Decided() {
		t.Error("approved and rejected are decided states")
	}
}

func TestRoleCanRequestFunds(t *testing.T) {
	cases := map[Role]bool{
		RoleStudent:    true,
		RoleDepartment: true,
		RoleDonor:      false,
		RoleAdmin:      false,
	}
	for role, want := range cases {
		if got := role.CanRequestFunds(); got != want {
			t.Errorf("%s.CanRequestFunds() = %v, want %v", role, got, want)
		}
	}
}
