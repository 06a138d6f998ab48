package booking

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	bookingRepo "mindlink/database/repository/booking"
	"mindlink/models"
)

// memRepo is an in-memory BookingRepository with the same compare-and-swap
// semantics as the Mongo implementation. afterGet, when set, runs after each
// read so tests can line two writers up on the same stale status.
type memRepo struct {
	mu       sync.Mutex
	bookings map[string]models.Booking
	writes   int
	afterGet func()
}

func newMemRepo(seed ...models.Booking) *memRepo {
	r := &memRepo{bookings: make(map[string]models.Booking)}
	for _, b := range seed {
		r.bookings[b.ID] = b
	}
	return r
}

func (r *memRepo) Create(ctx context.Context, b *models.Booking) error {
	r.mu.Lock()
	r.bookings[b.ID] = *b
	r.writes++
	r.mu.Unlock()
	return nil
}

func (r *memRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	r.mu.Lock()
	b, ok := r.bookings[id]
	r.mu.Unlock()
	if !ok {
		return nil, bookingRepo.ErrNotFound
	}
	if r.afterGet != nil {
		r.afterGet()
	}
	copied := b
	return &copied, nil
}

func (r *memRepo) CompareAndSwap(ctx context.Context, id string, expected models.BookingStatus, mutate func(*models.Booking) error) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrNotFound
	}
	if b.Status != expected {
		return nil, bookingRepo.ErrConflict
	}
	updated := b
	if err := mutate(&updated); err != nil {
		return nil, err
	}
	updated.UpdatedAt = time.Now().UTC()
	r.bookings[id] = updated
	r.writes++
	copied := updated
	return &copied, nil
}

func (r *memRepo) ListByCounselor(ctx context.Context, counselorID string) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Booking
	for _, b := range r.bookings {
		if b.CounselorID == counselorID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *memRepo) ListByMember(ctx context.Context, memberID string) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Booking
	for _, b := range r.bookings {
		if b.MemberID == memberID || b.PartnerMemberID == memberID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *memRepo) UpdateFeedback(ctx context.Context, id string, rating int, feedback string) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrNotFound
	}
	b.Rating = rating
	b.Feedback = feedback
	b.UpdatedAt = time.Now().UTC()
	r.bookings[id] = b
	r.writes++
	copied := b
	return &copied, nil
}

func (r *memRepo) writeCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.writes
}

// fakeCall records torn-down rooms.
type fakeCall struct {
	mu    sync.Mutex
	ended []string
}

func (f *fakeCall) OpenRoom(ctx context.Context, bookingID string) (string, error) {
	return "room", nil
}
func (f *fakeCall) GetRoom(ctx context.Context, bookingID string) (string, error) { return "room", nil }
func (f *fakeCall) EndRoom(ctx context.Context, bookingID string) error {
	f.mu.Lock()
	f.ended = append(f.ended, bookingID)
	f.mu.Unlock()
	return nil
}

func confirmBooking() models.Booking {
	now := time.Now().UTC()
	return models.Booking{
		ID:          "b-1",
		MemberID:    "m-1",
		CounselorID: "c-1",
		StartAt:     now.Add(time.Hour),
		EndAt:       now.Add(2 * time.Hour),
		Price:       45000,
		Status:      models.StatusConfirm,
	}
}

func newService(repo *memRepo) (*DefaultLifecycleService, *fakeCall) {
	fc := &fakeCall{}
	return &DefaultLifecycleService{Repo: repo, Call: fc}, fc
}

func denialOf(t *testing.T, err error) *TransitionError {
	t.Helper()
	var denial *TransitionError
	if !errors.As(err, &denial) {
		t.Fatalf("expected TransitionError, got %v", err)
	}
	return denial
}

func TestFinalizeBlockedWithoutNotes(t *testing.T) {
	repo := newMemRepo(confirmBooking())
	svc, fc := newService(repo)
	ctx := context.Background()

	draft := models.NoteDraft{ProblemSummary: "", Guides: "ok"}
	_, err := svc.FinalizeSession(ctx, "b-1", "c-1", draft)
	denial := denialOf(t, err)
	if denial.Reason != ReasonNotesRequired {
		t.Fatalf("expected notes-required, got %s", denial.Reason)
	}
	if len(denial.Fields) != 1 || denial.Fields[0] != FieldProblemSummary {
		t.Fatalf("expected problemSummary named, got %v", denial.Fields)
	}

	// Failure is idempotent: same result, still zero store writes.
	_, err2 := svc.FinalizeSession(ctx, "b-1", "c-1", draft)
	denial2 := denialOf(t, err2)
	if denial2.Reason != denial.Reason || len(denial2.Fields) != len(denial.Fields) {
		t.Fatalf("second blocked finalize differs: %v vs %v", denial2, denial)
	}
	if repo.writeCount() != 0 {
		t.Fatalf("blocked finalize must not touch the store, saw %d writes", repo.writeCount())
	}
	b, _ := repo.GetByID(ctx, "b-1")
	if b.Status != models.StatusConfirm {
		t.Fatalf("status moved to %s on blocked finalize", b.Status)
	}
	if len(fc.ended) != 0 {
		t.Fatal("call room torn down despite blocked finalize")
	}
}

func TestFinalizeSuccess(t *testing.T) {
	repo := newMemRepo(confirmBooking())
	svc, fc := newService(repo)
	ctx := context.Background()

	draft := models.NoteDraft{ProblemSummary: "anxiety", Guides: "breathing exercises"}
	updated, err := svc.FinalizeSession(ctx, "b-1", "c-1", draft)
	if err != nil {
		t.Fatalf("finalize: %v", err)
	}
	if updated.Status != models.StatusFinish {
		t.Fatalf("expected Finish, got %s", updated.Status)
	}
	if updated.ProblemSummary != "anxiety" || updated.Guides != "breathing exercises" {
		t.Fatalf("notes not persisted verbatim: %+v", updated)
	}
	if repo.writeCount() != 1 {
		t.Fatalf("expected exactly one store write, saw %d", repo.writeCount())
	}
	if len(fc.ended) != 1 || fc.ended[0] != "b-1" {
		t.Fatalf("call room not torn down after finalize: %v", fc.ended)
	}
}

func TestFinalizeByWrongCounselor(t *testing.T) {
	repo := newMemRepo(confirmBooking())
	svc, _ := newService(repo)

	draft := models.NoteDraft{ProblemSummary: "anxiety", Guides: "breathing exercises"}
	_, err := svc.FinalizeSession(context.Background(), "b-1", "c-other", draft)
	if denialOf(t, err).Reason != ReasonRoleNotPermitted {
		t.Fatalf("expected role-not-permitted, got %v", err)
	}
	if repo.writeCount() != 0 {
		t.Fatal("store mutated by unauthorized finalize")
	}
}

func TestFinalizeAfterStatusMoved(t *testing.T) {
	b := confirmBooking()
	b.Status = models.StatusFinish
	repo := newMemRepo(b)
	svc, _ := newService(repo)

	draft := models.NoteDraft{ProblemSummary: "anxiety", Guides: "breathing exercises"}
	_, err := svc.FinalizeSession(context.Background(), "b-1", "c-1", draft)
	if denialOf(t, err).Reason != ReasonInvalidTransition {
		t.Fatalf("expected invalid-transition, got %v", err)
	}
}

func TestSaveNotesGuidesMissingKeepsFinish(t *testing.T) {
	b := confirmBooking()
	b.Status = models.StatusFinish
	repo := newMemRepo(b)
	svc, _ := newService(repo)

	_, err := svc.SaveNotesAndMaybeComplete(context.Background(), "b-1", "c-1", models.NoteDraft{ProblemSummary: "anxiety"})
	denial := denialOf(t, err)
	if denial.Reason != ReasonMissingRequiredField {
		t.Fatalf("expected missing-required-field, got %s", denial.Reason)
	}
	if len(denial.Fields) != 1 || denial.Fields[0] != FieldGuides {
		t.Fatalf("expected guides named, got %v", denial.Fields)
	}

	got, _ := repo.GetByID(context.Background(), "b-1")
	if got.Status != models.StatusFinish || got.ProblemSummary != "" {
		t.Fatalf("store must show neither notes nor Complete, got %+v", got)
	}
	if repo.writeCount() != 0 {
		t.Fatal("failed note write touched the store")
	}
}

func TestSaveNotesCompletesAtomically(t *testing.T) {
	b := confirmBooking()
	b.Status = models.StatusFinish
	repo := newMemRepo(b)
	svc, _ := newService(repo)

	draft := models.NoteDraft{ProblemSummary: "anxiety", ProblemAnalysis: "rooted in work stress", Guides: "breathing exercises"}
	updated, err := svc.SaveNotesAndMaybeComplete(context.Background(), "b-1", "c-1", draft)
	if err != nil {
		t.Fatalf("save notes: %v", err)
	}
	if updated.Status != models.StatusComplete {
		t.Fatalf("expected Complete, got %s", updated.Status)
	}
	if updated.ProblemAnalysis != "rooted in work stress" {
		t.Fatalf("analysis not persisted: %+v", updated)
	}
	if repo.writeCount() != 1 {
		t.Fatalf("notes and status must commit in one write, saw %d", repo.writeCount())
	}
}

func TestSaveNotesEditInPlaceOnComplete(t *testing.T) {
	b := confirmBooking()
	b.Status = models.StatusComplete
	b.ProblemSummary = "anxiety"
	b.Guides = "breathing exercises"
	repo := newMemRepo(b)
	svc, _ := newService(repo)
	ctx := context.Background()

	updated, err := svc.SaveNotesAndMaybeComplete(ctx, "b-1", "c-1", models.NoteDraft{
		ProblemSummary: "generalized anxiety",
		Guides:         "breathing exercises, sleep hygiene",
	})
	if err != nil {
		t.Fatalf("edit in place: %v", err)
	}
	if updated.Status != models.StatusComplete {
		t.Fatalf("edit in place moved status to %s", updated.Status)
	}
	if updated.ProblemSummary != "generalized anxiety" {
		t.Fatalf("edit not applied: %+v", updated)
	}

	// Mandatory fields cannot be cleared back to empty.
	_, err = svc.SaveNotesAndMaybeComplete(ctx, "b-1", "c-1", models.NoteDraft{ProblemSummary: "", Guides: ""})
	if denialOf(t, err).Reason != ReasonMissingRequiredField {
		t.Fatalf("expected missing-required-field on clear, got %v", err)
	}
	got, _ := repo.GetByID(ctx, "b-1")
	if got.ProblemSummary != "generalized anxiety" {
		t.Fatalf("clear attempt mutated notes: %+v", got)
	}
}

func TestSaveNotesNotYetEligible(t *testing.T) {
	repo := newMemRepo(confirmBooking())
	svc, _ := newService(repo)

	_, err := svc.SaveNotesAndMaybeComplete(context.Background(), "b-1", "c-1", models.NoteDraft{
		ProblemSummary: "anxiety", Guides: "breathing exercises",
	})
	if denialOf(t, err).Reason != ReasonNotYetEligible {
		t.Fatalf("expected not-yet-eligible, got %v", err)
	}
	if repo.writeCount() != 0 {
		t.Fatal("early note write touched the store")
	}
}

func TestCancelAsMemberRoundTrip(t *testing.T) {
	repo := newMemRepo(confirmBooking())
	svc, _ := newService(repo)
	ctx := context.Background()

	updated, err := svc.CancelAsMember(ctx, "b-1", "m-1", "schedule conflict")
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if updated.Status != models.StatusMemberCancel {
		t.Fatalf("expected MemberCancel, got %s", updated.Status)
	}

	got, err := repo.GetByID(ctx, "b-1")
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if got.Status != models.StatusMemberCancel || got.CancelReason != "schedule conflict" {
		t.Fatalf("round trip lost data: %+v", got)
	}
}

func TestCancelAsMemberWithoutReason(t *testing.T) {
	repo := newMemRepo(confirmBooking())
	svc, _ := newService(repo)

	_, err := svc.CancelAsMember(context.Background(), "b-1", "m-1", "  ")
	denial := denialOf(t, err)
	if denial.Reason != ReasonMissingRequiredField || len(denial.Fields) != 1 || denial.Fields[0] != FieldCancelReason {
		t.Fatalf("expected missing cancelReason, got %+v", denial)
	}
}

func TestCancelByStranger(t *testing.T) {
	repo := newMemRepo(confirmBooking())
	svc, _ := newService(repo)

	_, err := svc.CancelAsMember(context.Background(), "b-1", "m-impostor", "whatever")
	if denialOf(t, err).Reason != ReasonRoleNotPermitted {
		t.Fatalf("expected role-not-permitted, got %v", err)
	}
}

func TestCounselorCancelGoesToRefund(t *testing.T) {
	repo := newMemRepo(confirmBooking())
	svc, _ := newService(repo)

	updated, err := svc.CancelAsCounselor(context.Background(), "b-1", "c-1", "illness")
	if err != nil {
		t.Fatalf("counselor cancel: %v", err)
	}
	if updated.Status != models.StatusRefund {
		t.Fatalf("counselor cancel must land in Refund, got %s", updated.Status)
	}
	if updated.CancelReason != "illness" {
		t.Fatalf("reason lost: %+v", updated)
	}
}

func TestRescheduleFlow(t *testing.T) {
	repo := newMemRepo(confirmBooking())
	svc, _ := newService(repo)
	ctx := context.Background()

	newStart := time.Date(2026, 9, 10, 14, 0, 0, 0, time.UTC)
	newEnd := newStart.Add(time.Hour)

	proposed, err := svc.ProposeReschedule(ctx, "b-1", "m-1", newStart, newEnd)
	if err != nil {
		t.Fatalf("propose: %v", err)
	}
	if proposed.Status != models.StatusReschedule {
		t.Fatalf("expected Reschedule, got %s", proposed.Status)
	}

	accepted, err := svc.AcceptReschedule(ctx, "b-1", "c-1")
	if err != nil {
		t.Fatalf("accept: %v", err)
	}
	if accepted.Status != models.StatusConfirm {
		t.Fatalf("expected Confirm after accept, got %s", accepted.Status)
	}
	if !accepted.StartAt.Equal(newStart) || !accepted.EndAt.Equal(newEnd) {
		t.Fatalf("proposed slot not adopted: %+v", accepted)
	}
	if !accepted.ProposedStartAt.IsZero() {
		t.Fatalf("proposal not cleared after accept: %+v", accepted)
	}
}

func TestReportResolutions(t *testing.T) {
	tests := []struct {
		name    string
		resolve func(svc *DefaultLifecycleService, ctx context.Context) (*models.Booking, error)
		want    models.BookingStatus
	}{
		{
			name: "refund upholds the report",
			resolve: func(svc *DefaultLifecycleService, ctx context.Context) (*models.Booking, error) {
				return svc.RefundOnReport(ctx, "b-1", "admin-1")
			},
			want: models.StatusRefund,
		},
		{
			name: "reject dismisses the report",
			resolve: func(svc *DefaultLifecycleService, ctx context.Context) (*models.Booking, error) {
				return svc.RejectOnReport(ctx, "b-1", "admin-1")
			},
			want: models.StatusRejected,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newMemRepo(confirmBooking())
			svc, _ := newService(repo)
			ctx := context.Background()

			if _, err := svc.ReportBooking(ctx, "b-1", "m-1", "counselor never joined"); err != nil {
				t.Fatalf("report: %v", err)
			}
			resolved, err := tt.resolve(svc, ctx)
			if err != nil {
				t.Fatalf("resolve: %v", err)
			}
			if resolved.Status != tt.want {
				t.Fatalf("expected %s, got %s", tt.want, resolved.Status)
			}
			if !resolved.IsReport || resolved.ReportMessage != "counselor never joined" {
				t.Fatalf("report metadata lost: %+v", resolved)
			}
		})
	}
}

func TestReportFromFinishAndComplete(t *testing.T) {
	for _, status := range []models.BookingStatus{models.StatusFinish, models.StatusComplete} {
		b := confirmBooking()
		b.Status = status
		repo := newMemRepo(b)
		svc, _ := newService(repo)

		updated, err := svc.ReportBooking(context.Background(), "b-1", "m-1", "billing issue")
		if err != nil {
			t.Fatalf("report from %s: %v", status, err)
		}
		if updated.Status != models.StatusReport {
			t.Fatalf("expected Report, got %s", updated.Status)
		}
	}
}

func TestReportResolutionDeniedForNonAdmins(t *testing.T) {
	b := confirmBooking()
	b.Status = models.StatusReport
	b.IsReport = true
	b.ReportMessage = "no-show"
	repo := newMemRepo(b)
	svc, _ := newService(repo)

	// The counselor owns the booking but the table reserves this edge for admins.
	_, err := svc.transition(context.Background(), "b-1", models.RoleCounselor, "c-1", models.StatusRefund, nil)
	if denialOf(t, err).Reason != ReasonRoleNotPermitted {
		t.Fatalf("expected role-not-permitted, got %v", err)
	}
}

func TestConcurrentCancelAndFinalize(t *testing.T) {
	repo := newMemRepo(confirmBooking())
	svc, _ := newService(repo)
	ctx := context.Background()

	// Barrier: both operations read Confirm before either reaches the store
	// write, forcing a real decision-vs-write race.
	var barrier sync.WaitGroup
	barrier.Add(2)
	repo.afterGet = func() {
		barrier.Done()
		barrier.Wait()
	}

	var wg sync.WaitGroup
	wg.Add(2)
	var cancelErr, finalizeErr error
	go func() {
		defer wg.Done()
		_, cancelErr = svc.CancelAsCounselor(ctx, "b-1", "c-1", "illness")
	}()
	go func() {
		defer wg.Done()
		_, finalizeErr = svc.FinalizeSession(ctx, "b-1", "c-1", models.NoteDraft{
			ProblemSummary: "anxiety", Guides: "breathing exercises",
		})
	}()
	wg.Wait()
	repo.afterGet = nil

	if (cancelErr == nil) == (finalizeErr == nil) {
		t.Fatalf("exactly one writer must win: cancel=%v finalize=%v", cancelErr, finalizeErr)
	}
	loser := cancelErr
	if loser == nil {
		loser = finalizeErr
	}
	if denialOf(t, loser).Reason != ReasonConflict {
		t.Fatalf("loser must see conflict, got %v", loser)
	}

	got, _ := repo.GetByID(ctx, "b-1")
	if got.Status != models.StatusRefund && got.Status != models.StatusFinish {
		t.Fatalf("unexpected final status %s", got.Status)
	}
	if repo.writeCount() != 1 {
		t.Fatalf("expected exactly one committed write, saw %d", repo.writeCount())
	}
}

func TestSubmitFeedback(t *testing.T) {
	b := confirmBooking()
	b.Status = models.StatusComplete
	repo := newMemRepo(b)
	svc, _ := newService(repo)
	ctx := context.Background()

	updated, err := svc.SubmitFeedback(ctx, "b-1", "m-1", 5, "very helpful")
	if err != nil {
		t.Fatalf("feedback: %v", err)
	}
	if updated.Rating != 5 || updated.Feedback != "very helpful" {
		t.Fatalf("feedback not stored: %+v", updated)
	}
	if updated.Status != models.StatusComplete {
		t.Fatalf("feedback moved status to %s", updated.Status)
	}

	if _, err := svc.SubmitFeedback(ctx, "b-1", "m-1", 9, "broken"); err == nil {
		t.Fatal("expected error for out-of-range rating")
	}
}

func TestSubmitFeedbackBeforeFinish(t *testing.T) {
	repo := newMemRepo(confirmBooking())
	svc, _ := newService(repo)

	_, err := svc.SubmitFeedback(context.Background(), "b-1", "m-1", 4, "too early")
	if denialOf(t, err).Reason != ReasonNotYetEligible {
		t.Fatalf("expected not-yet-eligible, got %v", err)
	}
}

func TestCreateBookingValidation(t *testing.T) {
	repo := newMemRepo()
	svc, _ := newService(repo)
	ctx := context.Background()
	now := time.Now()

	valid := CreateBookingInput{
		MemberID:    "m-1",
		CounselorID: "c-1",
		StartAt:     now.Add(time.Hour),
		EndAt:       now.Add(2 * time.Hour),
		Price:       30000,
	}

	b, err := svc.CreateBooking(ctx, valid)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if b.Status != models.StatusConfirm {
		t.Fatalf("new booking must start in Confirm, got %s", b.Status)
	}
	if b.ID == "" {
		t.Fatal("no id assigned")
	}

	endBeforeStart := valid
	endBeforeStart.EndAt = valid.StartAt
	if _, err := svc.CreateBooking(ctx, endBeforeStart); err == nil {
		t.Fatal("expected error for end <= start")
	}

	negativePrice := valid
	negativePrice.Price = -1
	if _, err := svc.CreateBooking(ctx, negativePrice); err == nil {
		t.Fatal("expected error for negative price")
	}
}

func TestCoupleSessionPartnerMayAct(t *testing.T) {
	b := confirmBooking()
	b.PartnerMemberID = "m-2"
	repo := newMemRepo(b)
	svc, _ := newService(repo)

	updated, err := svc.CancelAsMember(context.Background(), "b-1", "m-2", "we resolved it ourselves")
	if err != nil {
		t.Fatalf("partner cancel: %v", err)
	}
	if updated.Status != models.StatusMemberCancel {
		t.Fatalf("expected MemberCancel, got %s", updated.Status)
	}
}
