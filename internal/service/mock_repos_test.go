package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"gorm.io/gorm"

	"github.com/Tafhim-87/Quran-track/internal/model"
	"github.com/Tafhim-87/Quran-track/pkg/redis"
)

// ── Mock ParticipantRepository ──

type mockParticipantRepo struct {
	participants map[string]*model.Participant // by id
	idCounter    int
}

func newMockParticipantRepo() *mockParticipantRepo {
	return &mockParticipantRepo{participants: make(map[string]*model.Participant)}
}

func (m *mockParticipantRepo) Create(_ context.Context, participant *model.Participant) error {
	for _, p := range m.participants {
		if p.Name == participant.Name {
			return gorm.ErrDuplicatedKey
		}
	}
	m.idCounter++
	if participant.ParticipantID == "" {
		participant.ParticipantID = fmt.Sprintf("p-%d", m.idCounter)
	}
	participant.CreatedAt = time.Now()
	participant.UpdatedAt = time.Now()
	cp := *participant
	m.participants[participant.ParticipantID] = &cp
	return nil
}

func (m *mockParticipantRepo) GetByID(_ context.Context, id string) (*model.Participant, error) {
	if p, ok := m.participants[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockParticipantRepo) GetByName(_ context.Context, name string) (*model.Participant, error) {
	for _, p := range m.participants {
		if p.Name == name {
			cp := *p
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockParticipantRepo) List(_ context.Context) ([]model.Participant, error) {
	result := make([]model.Participant, 0, len(m.participants))
	for _, p := range m.participants {
		result = append(result, *p)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].TotalPara != result[j].TotalPara {
			return result[i].TotalPara > result[j].TotalPara
		}
		return result[i].Name < result[j].Name
	})
	return result, nil
}

// ── Mock ReadingRepository ──

type mockReadingRepo struct {
	readings     []model.Reading
	participants *mockParticipantRepo
	idCounter    int
}

func newMockReadingRepo(participants *mockParticipantRepo) *mockReadingRepo {
	return &mockReadingRepo{participants: participants}
}

func sameCalendarDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func (m *mockReadingRepo) ExistsOnDate(_ context.Context, participantID string, date time.Time) (bool, error) {
	for _, r := range m.readings {
		if r.ParticipantID == participantID && sameCalendarDay(r.SubmittedAt, date) {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockReadingRepo) CreateWithTotal(_ context.Context, reading *model.Reading, participant *model.Participant) error {
	// unique (participant, calendar day) backstop, like the real index
	for _, r := range m.readings {
		if r.ParticipantID == reading.ParticipantID && sameCalendarDay(r.SubmittedAt, reading.SubmittedAt) {
			return gorm.ErrDuplicatedKey
		}
	}

	stored, ok := m.participants.participants[reading.ParticipantID]
	if !ok {
		return gorm.ErrRecordNotFound
	}

	m.idCounter++
	if reading.ReadingID == "" {
		reading.ReadingID = fmt.Sprintf("r-%d", m.idCounter)
	}
	reading.CreatedAt = time.Now()
	reading.UpdatedAt = time.Now()
	m.readings = append(m.readings, *reading)

	stored.TotalPara += reading.Para
	stored.UpdatedAt = time.Now()
	*participant = *stored
	return nil
}

func (m *mockReadingRepo) List(_ context.Context, campaignDay *int) ([]model.Reading, error) {
	var result []model.Reading
	for _, r := range m.readings {
		if campaignDay != nil && r.CampaignDay != *campaignDay {
			continue
		}
		cp := r
		if p, ok := m.participants.participants[r.ParticipantID]; ok {
			pcp := *p
			cp.Participant = &pcp
		}
		result = append(result, cp)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].SubmittedAt.After(result[j].SubmittedAt)
	})
	return result, nil
}

func (m *mockReadingRepo) LatestByParticipant(_ context.Context, participantID string) (*model.Reading, error) {
	var latest *model.Reading
	for i := range m.readings {
		r := &m.readings[i]
		if r.ParticipantID != participantID {
			continue
		}
		if latest == nil || r.SubmittedAt.After(latest.SubmittedAt) {
			latest = r
		}
	}
	if latest == nil {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *latest
	return &cp, nil
}

// ── Mock ProgressCache ──

type mockProgressCache struct {
	snapshots map[string]*redis.Progress
	setErr    error
	getErr    error
}

func newMockProgressCache() *mockProgressCache {
	return &mockProgressCache{snapshots: make(map[string]*redis.Progress)}
}

func (m *mockProgressCache) SetProgress(_ context.Context, p *redis.Progress) error {
	if m.setErr != nil {
		return m.setErr
	}
	cp := *p
	m.snapshots[p.Name] = &cp
	return nil
}

func (m *mockProgressCache) GetProgress(_ context.Context, name string) (*redis.Progress, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	if p, ok := m.snapshots[name]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, nil
}
