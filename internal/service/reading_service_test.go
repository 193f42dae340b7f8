package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/Tafhim-87/Quran-track/internal/dto"
	"github.com/Tafhim-87/Quran-track/internal/repository"
)

// ── test helpers ──

type readingFixture struct {
	svc          *readingService
	participants *mockParticipantRepo
	readings     *mockReadingRepo
	cache        *mockProgressCache
}

func setupTestReadingService(startDate string) *readingFixture {
	participants := newMockParticipantRepo()
	readings := newMockReadingRepo(participants)
	repo := &repository.Repository{Participant: participants, Reading: readings}
	cache := newMockProgressCache()
	campaign := testCampaign(startDate, 30)

	svc := NewReadingService(repo, campaign, cache, 0.5, 5.0, zap.NewNop()).(*readingService)
	return &readingFixture{svc: svc, participants: participants, readings: readings, cache: cache}
}

// at pins the service clock to 10:00 on the given date.
func (f *readingFixture) at(day string) {
	now := date(day).Add(10 * time.Hour)
	f.svc.now = func() time.Time { return now }
}

// ── Submit tests ──

func TestReadingService_Submit_FirstSubmission(t *testing.T) {
	f := setupTestReadingService("2025-03-01")
	f.at("2025-03-05")

	result, err := f.svc.Submit(context.Background(), &dto.SubmitReadingRequest{Name: "Ali", Para: 2})
	if err != nil {
		t.Fatalf("Submit should succeed: %v", err)
	}
	if result.Name != "Ali" {
		t.Errorf("expected name Ali, got %s", result.Name)
	}
	if result.Para != 2 {
		t.Errorf("expected para 2, got %v", result.Para)
	}
	if result.TotalPara != 2 {
		t.Errorf("expected total 2, got %v", result.TotalPara)
	}
	if result.CampaignDay != 5 {
		t.Errorf("expected campaign day 5, got %d", result.CampaignDay)
	}
	if len(f.readings.readings) != 1 {
		t.Errorf("expected 1 reading in the log, got %d", len(f.readings.readings))
	}
}

func TestReadingService_Submit_DuplicateSameDay(t *testing.T) {
	f := setupTestReadingService("2025-03-01")
	f.at("2025-03-05")

	if _, err := f.svc.Submit(context.Background(), &dto.SubmitReadingRequest{Name: "Ali", Para: 2}); err != nil {
		t.Fatalf("first submit should succeed: %v", err)
	}

	_, err := f.svc.Submit(context.Background(), &dto.SubmitReadingRequest{Name: "Ali", Para: 1})
	if !errors.Is(err, ErrAlreadySubmittedToday) {
		t.Fatalf("expected ErrAlreadySubmittedToday, got: %v", err)
	}

	// ledger still reflects only the first submission
	p, err := f.participants.GetByName(context.Background(), "Ali")
	if err != nil {
		t.Fatalf("participant lookup failed: %v", err)
	}
	if p.TotalPara != 2 {
		t.Errorf("expected total 2 after rejected duplicate, got %v", p.TotalPara)
	}
	if len(f.readings.readings) != 1 {
		t.Errorf("expected 1 reading after rejected duplicate, got %d", len(f.readings.readings))
	}
}

func TestReadingService_Submit_NextDayAccepted(t *testing.T) {
	f := setupTestReadingService("2025-03-01")

	f.at("2025-03-05")
	if _, err := f.svc.Submit(context.Background(), &dto.SubmitReadingRequest{Name: "Ali", Para: 2}); err != nil {
		t.Fatalf("day 5 submit should succeed: %v", err)
	}

	f.at("2025-03-06")
	result, err := f.svc.Submit(context.Background(), &dto.SubmitReadingRequest{Name: "Ali", Para: 1.5})
	if err != nil {
		t.Fatalf("day 6 submit should succeed: %v", err)
	}
	if result.TotalPara != 3.5 {
		t.Errorf("expected running total 3.5, got %v", result.TotalPara)
	}
	if result.CampaignDay != 6 {
		t.Errorf("expected campaign day 6, got %d", result.CampaignDay)
	}
}

func TestReadingService_Submit_ParaOutOfRange(t *testing.T) {
	f := setupTestReadingService("2025-03-01")
	f.at("2025-03-05")

	for _, para := range []float64{0.4, 5.5, 0, -1} {
		_, err := f.svc.Submit(context.Background(), &dto.SubmitReadingRequest{Name: "Ali", Para: para})
		if !errors.Is(err, ErrParaOutOfRange) {
			t.Errorf("para %v: expected ErrParaOutOfRange, got: %v", para, err)
		}
	}

	// no participant and no reading was written
	if len(f.participants.participants) != 0 {
		t.Errorf("expected no participants, got %d", len(f.participants.participants))
	}
	if len(f.readings.readings) != 0 {
		t.Errorf("expected no readings, got %d", len(f.readings.readings))
	}
}

func TestReadingService_Submit_BoundaryParaAccepted(t *testing.T) {
	f := setupTestReadingService("2025-03-01")
	f.at("2025-03-05")

	if _, err := f.svc.Submit(context.Background(), &dto.SubmitReadingRequest{Name: "low", Para: 0.5}); err != nil {
		t.Errorf("para 0.5 should be accepted: %v", err)
	}
	if _, err := f.svc.Submit(context.Background(), &dto.SubmitReadingRequest{Name: "high", Para: 5}); err != nil {
		t.Errorf("para 5 should be accepted: %v", err)
	}
}

func TestReadingService_Submit_BlankName(t *testing.T) {
	f := setupTestReadingService("2025-03-01")
	f.at("2025-03-05")

	for _, name := range []string{"", "   ", "\t"} {
		_, err := f.svc.Submit(context.Background(), &dto.SubmitReadingRequest{Name: name, Para: 2})
		if !errors.Is(err, ErrNameRequired) {
			t.Errorf("name %q: expected ErrNameRequired, got: %v", name, err)
		}
	}
}

func TestReadingService_Submit_NameTrimmed(t *testing.T) {
	f := setupTestReadingService("2025-03-01")

	f.at("2025-03-05")
	if _, err := f.svc.Submit(context.Background(), &dto.SubmitReadingRequest{Name: "  Ali  ", Para: 2}); err != nil {
		t.Fatalf("submit should succeed: %v", err)
	}

	f.at("2025-03-06")
	result, err := f.svc.Submit(context.Background(), &dto.SubmitReadingRequest{Name: "Ali", Para: 1})
	if err != nil {
		t.Fatalf("submit should succeed: %v", err)
	}
	// same participant, totals accumulate
	if result.TotalPara != 3 {
		t.Errorf("expected total 3 for trimmed name, got %v", result.TotalPara)
	}
}

func TestReadingService_Submit_NameCaseSensitive(t *testing.T) {
	f := setupTestReadingService("2025-03-01")
	f.at("2025-03-05")

	if _, err := f.svc.Submit(context.Background(), &dto.SubmitReadingRequest{Name: "Sam", Para: 2}); err != nil {
		t.Fatalf("submit should succeed: %v", err)
	}
	// "sam" is a different participant, so same-day submit is allowed
	result, err := f.svc.Submit(context.Background(), &dto.SubmitReadingRequest{Name: "sam", Para: 1})
	if err != nil {
		t.Fatalf("submit for distinct lowercase name should succeed: %v", err)
	}
	if result.TotalPara != 1 {
		t.Errorf("expected separate total 1 for %q, got %v", "sam", result.TotalPara)
	}
}

func TestReadingService_Submit_RunningTotalAcrossDays(t *testing.T) {
	f := setupTestReadingService("2025-03-01")

	amounts := []float64{2, 0.5, 3, 1.5, 5}
	days := []string{"2025-03-01", "2025-03-02", "2025-03-03", "2025-03-04", "2025-03-05"}

	var want float64
	var last *dto.SubmitReadingResponse
	for i, amount := range amounts {
		f.at(days[i])
		result, err := f.svc.Submit(context.Background(), &dto.SubmitReadingRequest{Name: "Ali", Para: amount})
		if err != nil {
			t.Fatalf("submit %d should succeed: %v", i, err)
		}
		want += amount
		last = result
	}

	if last.TotalPara != want {
		t.Errorf("expected running total %v, got %v", want, last.TotalPara)
	}
}

func TestReadingService_Submit_UpdatesProgressCache(t *testing.T) {
	f := setupTestReadingService("2025-03-01")
	f.at("2025-03-05")

	if _, err := f.svc.Submit(context.Background(), &dto.SubmitReadingRequest{Name: "Ali", Para: 2}); err != nil {
		t.Fatalf("submit should succeed: %v", err)
	}

	cached := f.cache.snapshots["Ali"]
	if cached == nil {
		t.Fatal("expected progress snapshot for Ali")
	}
	if cached.TotalPara != 2 || cached.LastPara != 2 || cached.CampaignDay != 5 {
		t.Errorf("unexpected snapshot: %+v", cached)
	}
}

func TestReadingService_Submit_CacheFailureDoesNotFailSubmit(t *testing.T) {
	f := setupTestReadingService("2025-03-01")
	f.at("2025-03-05")
	f.cache.setErr = errors.New("redis down")

	if _, err := f.svc.Submit(context.Background(), &dto.SubmitReadingRequest{Name: "Ali", Para: 2}); err != nil {
		t.Fatalf("submit should succeed despite cache failure: %v", err)
	}
}

// ── List tests ──

func TestReadingService_List_ScenarioSummary(t *testing.T) {
	f := setupTestReadingService("2025-03-01")
	f.at("2025-03-05")

	if _, err := f.svc.Submit(context.Background(), &dto.SubmitReadingRequest{Name: "Ali", Para: 2}); err != nil {
		t.Fatalf("submit Ali should succeed: %v", err)
	}
	if _, err := f.svc.Submit(context.Background(), &dto.SubmitReadingRequest{Name: "Ali", Para: 1}); !errors.Is(err, ErrAlreadySubmittedToday) {
		t.Fatalf("expected duplicate rejection, got: %v", err)
	}
	if _, err := f.svc.Submit(context.Background(), &dto.SubmitReadingRequest{Name: "sara", Para: 0.5}); err != nil {
		t.Fatalf("submit sara should succeed: %v", err)
	}

	result, err := f.svc.List(context.Background(), &dto.ReadingListRequest{})
	if err != nil {
		t.Fatalf("List should succeed: %v", err)
	}

	s := result.Summary
	if s.TotalSubmissions != 2 {
		t.Errorf("expected 2 submissions, got %d", s.TotalSubmissions)
	}
	if s.TotalParaRead != 2.5 {
		t.Errorf("expected total para 2.5, got %v", s.TotalParaRead)
	}
	if s.UniqueParticipants != 2 {
		t.Errorf("expected 2 unique participants, got %d", s.UniqueParticipants)
	}
	if s.AverageParaPerReading != 1.25 {
		t.Errorf("expected average 1.25, got %v", s.AverageParaPerReading)
	}
}

func TestReadingService_List_EmptySummaryAllZero(t *testing.T) {
	f := setupTestReadingService("2025-03-01")

	result, err := f.svc.List(context.Background(), &dto.ReadingListRequest{})
	if err != nil {
		t.Fatalf("List should succeed: %v", err)
	}

	s := result.Summary
	if s.TotalSubmissions != 0 || s.TotalParaRead != 0 || s.UniqueParticipants != 0 || s.AverageParaPerReading != 0 {
		t.Errorf("expected all-zero summary, got %+v", s)
	}
	if result.Count != 0 {
		t.Errorf("expected count 0, got %d", result.Count)
	}
}

func TestReadingService_List_NewestFirst(t *testing.T) {
	f := setupTestReadingService("2025-03-01")

	f.at("2025-03-04")
	if _, err := f.svc.Submit(context.Background(), &dto.SubmitReadingRequest{Name: "Ali", Para: 1}); err != nil {
		t.Fatal(err)
	}
	f.at("2025-03-05")
	if _, err := f.svc.Submit(context.Background(), &dto.SubmitReadingRequest{Name: "Ali", Para: 2}); err != nil {
		t.Fatal(err)
	}

	result, err := f.svc.List(context.Background(), &dto.ReadingListRequest{})
	if err != nil {
		t.Fatalf("List should succeed: %v", err)
	}
	if len(result.List) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(result.List))
	}
	if result.List[0].CampaignDay != 5 || result.List[1].CampaignDay != 4 {
		t.Errorf("expected newest first (day 5 then 4), got %d then %d",
			result.List[0].CampaignDay, result.List[1].CampaignDay)
	}
}

func TestReadingService_List_DayFilterMatchesStoredIndex(t *testing.T) {
	f := setupTestReadingService("2025-03-01")

	f.at("2025-03-04")
	if _, err := f.svc.Submit(context.Background(), &dto.SubmitReadingRequest{Name: "Ali", Para: 1}); err != nil {
		t.Fatal(err)
	}
	f.at("2025-03-05")
	if _, err := f.svc.Submit(context.Background(), &dto.SubmitReadingRequest{Name: "sara", Para: 2}); err != nil {
		t.Fatal(err)
	}

	day := 5
	result, err := f.svc.List(context.Background(), &dto.ReadingListRequest{Day: &day})
	if err != nil {
		t.Fatalf("List should succeed: %v", err)
	}
	if len(result.List) != 1 {
		t.Fatalf("expected 1 row for day 5, got %d", len(result.List))
	}
	if result.List[0].Name != "sara" {
		t.Errorf("expected sara's day-5 reading, got %s", result.List[0].Name)
	}
}

func TestReadingService_List_NameFilterCaseInsensitiveSubstring(t *testing.T) {
	f := setupTestReadingService("2025-03-01")
	f.at("2025-03-05")

	if _, err := f.svc.Submit(context.Background(), &dto.SubmitReadingRequest{Name: "Samira", Para: 2}); err != nil {
		t.Fatal(err)
	}
	if _, err := f.svc.Submit(context.Background(), &dto.SubmitReadingRequest{Name: "Ali", Para: 1}); err != nil {
		t.Fatal(err)
	}

	result, err := f.svc.List(context.Background(), &dto.ReadingListRequest{Name: "sam"})
	if err != nil {
		t.Fatalf("List should succeed: %v", err)
	}
	if len(result.List) != 1 {
		t.Fatalf("expected 1 row for filter %q, got %d", "sam", len(result.List))
	}
	if result.List[0].Name != "Samira" {
		t.Errorf("expected Samira, got %s", result.List[0].Name)
	}
	if result.Summary.TotalSubmissions != 1 || result.Summary.TotalParaRead != 2 {
		t.Errorf("summary should reflect the filtered set, got %+v", result.Summary)
	}
}

func TestReadingService_List_TotalParaIsQueryTimeSnapshot(t *testing.T) {
	f := setupTestReadingService("2025-03-01")

	f.at("2025-03-04")
	if _, err := f.svc.Submit(context.Background(), &dto.SubmitReadingRequest{Name: "Ali", Para: 1}); err != nil {
		t.Fatal(err)
	}
	f.at("2025-03-05")
	if _, err := f.svc.Submit(context.Background(), &dto.SubmitReadingRequest{Name: "Ali", Para: 2}); err != nil {
		t.Fatal(err)
	}

	result, err := f.svc.List(context.Background(), &dto.ReadingListRequest{})
	if err != nil {
		t.Fatalf("List should succeed: %v", err)
	}
	// the day-4 row shows the current running total, not the total at submit
	for _, row := range result.List {
		if row.TotalPara != 3 {
			t.Errorf("expected snapshot total 3 on row day %d, got %v", row.CampaignDay, row.TotalPara)
		}
	}
}

// ── summarize tests ──

func TestSummarize_Empty(t *testing.T) {
	s := summarize(nil)
	if s.TotalSubmissions != 0 || s.TotalParaRead != 0 || s.UniqueParticipants != 0 || s.AverageParaPerReading != 0 {
		t.Errorf("expected all-zero summary, got %+v", s)
	}
}

func TestSummarize_AverageRoundedToTwoDecimals(t *testing.T) {
	rows := []dto.ReadingResponse{
		{Name: "a", Para: 1},
		{Name: "b", Para: 1},
		{Name: "c", Para: 2},
	}
	s := summarize(rows)
	if s.AverageParaPerReading != 1.33 {
		t.Errorf("expected average 1.33, got %v", s.AverageParaPerReading)
	}
}
