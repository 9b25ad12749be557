package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	allocationports "clearfund/contexts/funding/allocation-engine/ports"
	"clearfund/contexts/funding/domain/entities"
	domainerrors "clearfund/contexts/funding/domain/errors"
	donationports "clearfund/contexts/funding/donation-ledger/ports"
	requestports "clearfund/contexts/funding/request-ledger/ports"
	viewports "clearfund/contexts/funding/transparency-view/ports"
)

// Store is the in-memory backend for every funding port. The four ledgers
// share one store because their relations join each other: balances sum
// allocations against donations, and every read joins user profiles for
// display fields. A single mutex makes the funds-check-then-insert of
// CreateAllocation atomic.
type Store struct {
	mu sync.Mutex

	donations   map[int64]entities.Donation
	requests    map[int64]entities.BudgetRequest
	allocations map[int64]entities.Allocation
	profiles    map[int64]entities.UserProfile

	nextDonationID   int64
	nextRequestID    int64
	nextAllocationID int64
}

func NewStore() *Store {
	return &Store{
		donations:   make(map[int64]entities.Donation),
		requests:    make(map[int64]entities.BudgetRequest),
		allocations: make(map[int64]entities.Allocation),
		profiles:    make(map[int64]entities.UserProfile),
	}
}

// UpsertUserProfile projects identity data into the funding store so reads
// can join donor and requester display fields.
func (s *Store) UpsertUserProfile(ctx context.Context, profile entities.UserProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profiles[profile.UserID] = profile
	return nil
}

// Now satisfies the ledgers' Clock port.
func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

// NewReceiptNumber satisfies the donation ledger's ReceiptGenerator port.
func (s *Store) NewReceiptNumber(ctx context.Context) (string, error) {
	return fmt.Sprintf("RCP%d-%s", time.Now().UnixMilli(), uuid.NewString()[:4]), nil
}

// --- donation ledger ---

func (s *Store) CreateDonation(ctx context.Context, donation entities.Donation) (entities.Donation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextDonationID++
	donation.ID = s.nextDonationID
	s.donations[donation.ID] = donation
	return donation, nil
}

func (s *Store) GetDonation(ctx context.Context, donationID int64) (donationports.DonationRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	donation, ok := s.donations[donationID]
	if !ok {
		return donationports.DonationRecord{}, domainerrors.ErrDonationNotFound
	}
	return s.donationRecord(donation), nil
}

func (s *Store) ListDonations(ctx context.Context) ([]donationports.DonationRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.listDonations(func(entities.Donation) bool { return true }), nil
}

func (s *Store) ListDonationsByDonor(ctx context.Context, donorID int64) ([]donationports.DonationRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.listDonations(func(d entities.Donation) bool { return d.DonorID == donorID }), nil
}

func (s *Store) ListDonationsBySourceTag(ctx context.Context, sourceTag string) ([]donationports.DonationRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.listDonations(func(d entities.Donation) bool {
		return s.profiles[d.DonorID].SourceTag == sourceTag
	}), nil
}

func (s *Store) GetDonationBalance(ctx context.Context, donationID int64) (donationports.Balance, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	donation, ok := s.donations[donationID]
	if !ok {
		return donationports.Balance{}, domainerrors.ErrDonationNotFound
	}
	allocated := s.allocatedSum(donationID)
	return donationports.Balance{
		Amount:    donation.Amount,
		Allocated: allocated,
		Remaining: donation.Amount.Sub(allocated),
	}, nil
}

func (s *Store) DonationStats(ctx context.Context) (donationports.Stats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stats := donationports.Stats{}
	donors := make(map[int64]struct{})
	for _, donation := range s.donations {
		if donation.Status != entities.DonationStatusCompleted {
			continue
		}
		stats.TotalDonations++
		stats.TotalAmount = stats.TotalAmount.Add(donation.Amount)
		donors[donation.DonorID] = struct{}{}
	}
	stats.UniqueDonors = len(donors)
	if stats.TotalDonations > 0 {
		stats.AverageAmount = stats.TotalAmount.
			Div(decimal.NewFromInt(int64(stats.TotalDonations))).Round(2)
	}
	return stats, nil
}

// --- request ledger ---

func (s *Store) CreateRequest(ctx context.Context, request entities.BudgetRequest) (entities.BudgetRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextRequestID++
	request.ID = s.nextRequestID
	s.requests[request.ID] = request
	return request, nil
}

func (s *Store) GetRequest(ctx context.Context, requestID int64) (requestports.RequestRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	request, ok := s.requests[requestID]
	if !ok {
		return requestports.RequestRecord{}, domainerrors.ErrRequestNotFound
	}
	return s.requestRecord(request), nil
}

func (s *Store) ListRequests(ctx context.Context) ([]requestports.RequestRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.listRequests(func(entities.BudgetRequest) bool { return true }), nil
}

func (s *Store) ListRequestsByStatus(ctx context.Context, status entities.RequestStatus) ([]requestports.RequestRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.listRequests(func(r entities.BudgetRequest) bool { return r.Status == status }), nil
}

func (s *Store) ListRequestsByRequester(ctx context.Context, requesterID int64) ([]requestports.RequestRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.listRequests(func(r entities.BudgetRequest) bool { return r.RequesterID == requesterID }), nil
}

func (s *Store) UpdateRequest(ctx context.Context, request entities.BudgetRequest) (entities.BudgetRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.requests[request.ID]
	if !ok {
		return entities.BudgetRequest{}, domainerrors.ErrRequestNotFound
	}
	if current.Status != entities.RequestStatusPending {
		return entities.BudgetRequest{}, domainerrors.ErrRequestLocked
	}
	request.RequesterID = current.RequesterID
	request.RequesterType = current.RequesterType
	request.Status = current.Status
	request.CreatedAt = current.CreatedAt
	s.requests[request.ID] = request
	return request, nil
}

func (s *Store) DeleteRequest(ctx context.Context, requestID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.requests[requestID]
	if !ok {
		return domainerrors.ErrRequestNotFound
	}
	if current.Status != entities.RequestStatusPending {
		return domainerrors.ErrRequestLocked
	}
	delete(s.requests, requestID)
	return nil
}

func (s *Store) DecideRequest(ctx context.Context, requestID int64, status entities.RequestStatus, adminNotes string, decidedAt time.Time) (entities.BudgetRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.requests[requestID]
	if !ok {
		return entities.BudgetRequest{}, domainerrors.ErrRequestNotFound
	}
	if current.Status != entities.RequestStatusPending {
		return entities.BudgetRequest{}, domainerrors.ErrRequestLocked
	}
	current.Status = status
	current.AdminNotes = adminNotes
	current.UpdatedAt = decidedAt
	s.requests[requestID] = current
	return current, nil
}

func (s *Store) RequestStats(ctx context.Context) (requestports.Stats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stats := requestports.Stats{}
	requesters := make(map[int64]struct{})
	for _, request := range s.requests {
		stats.TotalRequests++
		stats.TotalRequested = stats.TotalRequested.Add(request.AmountRequested)
		requesters[request.RequesterID] = struct{}{}
		switch request.Status {
		case entities.RequestStatusPending:
			stats.PendingRequests++
		case entities.RequestStatusApproved:
			stats.ApprovedRequests++
		case entities.RequestStatusRejected:
			stats.RejectedRequests++
		}
	}
	stats.UniqueRequesters = len(requesters)
	if stats.TotalRequests > 0 {
		stats.AverageRequested = stats.TotalRequested.
			Div(decimal.NewFromInt(int64(stats.TotalRequests))).Round(2)
	}
	return stats, nil
}

// --- allocation engine ---

// CreateAllocation holds the store lock across the funds check and the
// insert, so concurrent creates against the same donation serialize and can
// never jointly overdraw it.
func (s *Store) CreateAllocation(ctx context.Context, allocation entities.Allocation) (entities.Allocation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	donation, ok := s.donations[allocation.DonationID]
	if !ok {
		return entities.Allocation{}, domainerrors.ErrDonationNotFound
	}
	if _, ok := s.requests[allocation.RequestID]; !ok {
		return entities.Allocation{}, domainerrors.ErrRequestNotFound
	}

	remaining := donation.Amount.Sub(s.allocatedSum(allocation.DonationID))
	if allocation.AmountAllocated.GreaterThan(remaining) {
		return entities.Allocation{}, &domainerrors.InsufficientFundsError{
			Remaining: remaining,
			Requested: allocation.AmountAllocated,
		}
	}

	s.nextAllocationID++
	allocation.ID = s.nextAllocationID
	s.allocations[allocation.ID] = allocation
	return allocation, nil
}

func (s *Store) GetAllocation(ctx context.Context, allocationID int64) (allocationports.AllocationRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	allocation, ok := s.allocations[allocationID]
	if !ok {
		return allocationports.AllocationRecord{}, domainerrors.ErrAllocationNotFound
	}
	return s.allocationRecord(allocation), nil
}

func (s *Store) ListAllocations(ctx context.Context) ([]allocationports.AllocationRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.listAllocations(func(entities.Allocation) bool { return true }), nil
}

func (s *Store) ListAllocationsByDonation(ctx context.Context, donationID int64) ([]allocationports.AllocationRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.listAllocations(func(a entities.Allocation) bool { return a.DonationID == donationID }), nil
}

func (s *Store) ListAllocationsByRequest(ctx context.Context, requestID int64) ([]allocationports.AllocationRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.listAllocations(func(a entities.Allocation) bool { return a.RequestID == requestID }), nil
}

func (s *Store) ListAllocationsByBeneficiaryType(ctx context.Context, beneficiaryType entities.Role) ([]allocationports.AllocationRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.listAllocations(func(a entities.Allocation) bool { return a.BeneficiaryType == beneficiaryType }), nil
}

// ListAllocationsBySourceTag filters on the donation owner's source tag
// inside the query itself. The donor-privacy boundary lives here, not only
// in the caller's access check.
func (s *Store) ListAllocationsBySourceTag(ctx context.Context, sourceTag string) ([]allocationports.AllocationRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.listAllocations(func(a entities.Allocation) bool {
		donation, ok := s.donations[a.DonationID]
		if !ok {
			return false
		}
		return s.profiles[donation.DonorID].SourceTag == sourceTag
	}), nil
}

func (s *Store) SetAllocationStatus(ctx context.Context, allocationID int64, from, to entities.AllocationStatus, updatedAt time.Time) (entities.Allocation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	allocation, ok := s.allocations[allocationID]
	if !ok {
		return entities.Allocation{}, domainerrors.ErrAllocationNotFound
	}
	if allocation.Status != from {
		return entities.Allocation{}, domainerrors.ErrInvalidTransition
	}
	allocation.Status = to
	allocation.UpdatedAt = updatedAt
	s.allocations[allocationID] = allocation
	return allocation, nil
}

func (s *Store) AllocationStats(ctx context.Context) (allocationports.Stats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stats := allocationports.Stats{}
	beneficiaries := make(map[entities.Role]struct{})
	fundedDonations := make(map[int64]struct{})
	for _, allocation := range s.allocations {
		switch allocation.Status {
		case entities.AllocationStatusAllocated:
			stats.ActiveAllocations++
		case entities.AllocationStatusDisbursed:
			stats.DisbursedAllocations++
		case entities.AllocationStatusCompleted:
			stats.CompletedAllocations++
		case entities.AllocationStatusCancelled:
			stats.CancelledAllocations++
			continue
		}
		stats.TotalAllocations++
		stats.TotalAllocated = stats.TotalAllocated.Add(allocation.AmountAllocated)
		beneficiaries[allocation.BeneficiaryType] = struct{}{}
		fundedDonations[allocation.DonationID] = struct{}{}
	}
	stats.UniqueBeneficiaryTypes = len(beneficiaries)
	stats.DonationsWithAllocations = len(fundedDonations)
	if stats.TotalAllocations > 0 {
		stats.AverageAllocated = stats.TotalAllocated.
			Div(decimal.NewFromInt(int64(stats.TotalAllocations))).Round(2)
	}
	return stats, nil
}

// --- transparency view ---

func (s *Store) FundingTrail(ctx context.Context) ([]viewports.TrailEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := make([]viewports.TrailEntry, 0, len(s.allocations))
	linkedDonations := make(map[int64]struct{})
	linkedRequests := make(map[int64]struct{})

	for _, allocation := range sortedAllocations(s.allocations) {
		linkedDonations[allocation.DonationID] = struct{}{}
		linkedRequests[allocation.RequestID] = struct{}{}

		entry := viewports.TrailEntry{
			AllocationID:     ptr(allocation.ID),
			AmountAllocated:  ptr(allocation.AmountAllocated),
			AllocationStatus: allocation.Status,
			AllocatedAt:      ptr(allocation.CreatedAt),
		}
		if donation, ok := s.donations[allocation.DonationID]; ok {
			fillDonationSide(&entry, donation, s.profiles[donation.DonorID])
		}
		if request, ok := s.requests[allocation.RequestID]; ok {
			fillRequestSide(&entry, request, s.profiles[request.RequesterID])
		}
		entries = append(entries, entry)
	}

	// Outer-join rows: unlinked donations and requests are displayable
	// states, not errors.
	for _, donation := range sortedDonations(s.donations) {
		if _, ok := linkedDonations[donation.ID]; ok {
			continue
		}
		entry := viewports.TrailEntry{}
		fillDonationSide(&entry, donation, s.profiles[donation.DonorID])
		entries = append(entries, entry)
	}
	for _, request := range sortedRequests(s.requests) {
		if _, ok := linkedRequests[request.ID]; ok {
			continue
		}
		entry := viewports.TrailEntry{}
		fillRequestSide(&entry, request, s.profiles[request.RequesterID])
		entries = append(entries, entry)
	}
	return entries, nil
}

func (s *Store) DonationSummaries(ctx context.Context) ([]viewports.DonationSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	summaries := make([]viewports.DonationSummary, 0, len(s.donations))
	for _, donation := range sortedDonations(s.donations) {
		profile := s.profiles[donation.DonorID]
		allocated := s.allocatedSum(donation.ID)
		count := 0
		for _, allocation := range s.allocations {
			if allocation.DonationID == donation.ID && allocation.Status.CountsAgainstBalance() {
				count++
			}
		}
		summaries = append(summaries, viewports.DonationSummary{
			DonationID:      donation.ID,
			DonorName:       profile.Name,
			DonorSourceTag:  profile.SourceTag,
			Purpose:         donation.Purpose,
			DonationType:    donation.DonationType,
			Amount:          donation.Amount,
			Allocated:       allocated,
			Remaining:       donation.Amount.Sub(allocated),
			AllocationCount: count,
			CreatedAt:       donation.CreatedAt,
		})
	}
	return summaries, nil
}

func (s *Store) RequestSummaries(ctx context.Context) ([]viewports.RequestSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	summaries := make([]viewports.RequestSummary, 0, len(s.requests))
	for _, request := range sortedRequests(s.requests) {
		profile := s.profiles[request.RequesterID]
		allocated := decimal.Zero
		count := 0
		for _, allocation := range s.allocations {
			if allocation.RequestID == request.ID && allocation.Status.CountsAgainstBalance() {
				allocated = allocated.Add(allocation.AmountAllocated)
				count++
			}
		}
		effective := string(request.Status)
		if allocated.IsPositive() {
			effective = "allocated"
		}
		summaries = append(summaries, viewports.RequestSummary{
			RequestID:       request.ID,
			RequesterName:   profile.Name,
			RequesterType:   request.RequesterType,
			EventName:       request.EventName,
			AmountRequested: request.AmountRequested,
			Allocated:       allocated,
			Status:          request.Status,
			EffectiveStatus: effective,
			AllocationCount: count,
			CreatedAt:       request.CreatedAt,
		})
	}
	return summaries, nil
}

func (s *Store) Overview(ctx context.Context) (viewports.Overview, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	overview := viewports.Overview{}
	donors := make(map[int64]struct{})
	for _, donation := range s.donations {
		overview.TotalDonations++
		overview.TotalDonated = overview.TotalDonated.Add(donation.Amount)
		donors[donation.DonorID] = struct{}{}
	}
	overview.UniqueDonors = len(donors)
	for _, request := range s.requests {
		overview.TotalRequests++
		overview.TotalRequested = overview.TotalRequested.Add(request.AmountRequested)
		switch request.Status {
		case entities.RequestStatusPending:
			overview.PendingRequests++
		case entities.RequestStatusApproved:
			overview.ApprovedRequests++
		}
	}
	for _, allocation := range s.allocations {
		if !allocation.Status.CountsAgainstBalance() {
			continue
		}
		overview.TotalAllocations++
		overview.TotalAllocated = overview.TotalAllocated.Add(allocation.AmountAllocated)
	}
	overview.TotalRemaining = overview.TotalDonated.Sub(overview.TotalAllocated)
	return overview, nil
}

// --- internals, caller holds the lock ---

func (s *Store) allocatedSum(donationID int64) decimal.Decimal {
	sum := decimal.Zero
	for _, allocation := range s.allocations {
		if allocation.DonationID == donationID && allocation.Status.CountsAgainstBalance() {
			sum = sum.Add(allocation.AmountAllocated)
		}
	}
	return sum
}

func (s *Store) donationRecord(donation entities.Donation) donationports.DonationRecord {
	profile := s.profiles[donation.DonorID]
	return donationports.DonationRecord{
		Donation:       donation,
		DonorName:      profile.Name,
		DonorEmail:     profile.Email,
		DonorSourceTag: profile.SourceTag,
	}
}

func (s *Store) listDonations(keep func(entities.Donation) bool) []donationports.DonationRecord {
	records := make([]donationports.DonationRecord, 0, len(s.donations))
	for _, donation := range sortedDonations(s.donations) {
		if keep(donation) {
			records = append(records, s.donationRecord(donation))
		}
	}
	return records
}

func (s *Store) requestRecord(request entities.BudgetRequest) requestports.RequestRecord {
	profile := s.profiles[request.RequesterID]
	return requestports.RequestRecord{
		Request:            request,
		RequesterName:      profile.Name,
		RequesterEmail:     profile.Email,
		RequesterDept:      profile.Department,
		RequesterStudentID: profile.StudentID,
	}
}

func (s *Store) listRequests(keep func(entities.BudgetRequest) bool) []requestports.RequestRecord {
	records := make([]requestports.RequestRecord, 0, len(s.requests))
	for _, request := range sortedRequests(s.requests) {
		if keep(request) {
			records = append(records, s.requestRecord(request))
		}
	}
	return records
}

func (s *Store) allocationRecord(allocation entities.Allocation) allocationports.AllocationRecord {
	record := allocationports.AllocationRecord{Allocation: allocation}
	if donation, ok := s.donations[allocation.DonationID]; ok {
		record.DonationPurpose = donation.Purpose
		profile := s.profiles[donation.DonorID]
		record.DonorName = profile.Name
		record.DonorSourceTag = profile.SourceTag
	}
	if request, ok := s.requests[allocation.RequestID]; ok {
		record.EventName = request.EventName
		record.RequesterName = s.profiles[request.RequesterID].Name
	}
	record.AllocatorName = s.profiles[allocation.AllocatedBy].Name
	return record
}

func (s *Store) listAllocations(keep func(entities.Allocation) bool) []allocationports.AllocationRecord {
	records := make([]allocationports.AllocationRecord, 0, len(s.allocations))
	for _, allocation := range sortedAllocations(s.allocations) {
		if keep(allocation) {
			records = append(records, s.allocationRecord(allocation))
		}
	}
	return records
}

func fillDonationSide(entry *viewports.TrailEntry, donation entities.Donation, profile entities.UserProfile) {
	entry.DonationID = ptr(donation.ID)
	entry.DonationAmount = ptr(donation.Amount)
	entry.DonationPurpose = donation.Purpose
	entry.DonorName = profile.Name
	entry.DonorSourceTag = profile.SourceTag
	entry.DonatedAt = ptr(donation.CreatedAt)
}

func fillRequestSide(entry *viewports.TrailEntry, request entities.BudgetRequest, profile entities.UserProfile) {
	entry.RequestID = ptr(request.ID)
	entry.EventName = request.EventName
	entry.RequesterName = profile.Name
	entry.RequesterType = request.RequesterType
	entry.AmountRequested = ptr(request.AmountRequested)
	entry.RequestedAt = ptr(request.CreatedAt)
}

func sortedDonations(m map[int64]entities.Donation) []entities.Donation {
	out := make([]entities.Donation, 0, len(m))
	for _, v := range m {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func sortedRequests(m map[int64]entities.BudgetRequest) []entities.BudgetRequest {
	out := make([]entities.BudgetRequest, 0, len(m))
	for _, v := range m {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func sortedAllocations(m map[int64]entities.Allocation) []entities.Allocation {
	out := make([]entities.Allocation, 0, len(m))
	for _, v := range m {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func ptr[T any](v T) *T { return &v }
