package store

import (
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/certavo/certavo-backend/internal/apperrors"
	"github.com/certavo/certavo-backend/internal/model"
)

// Store owns all campaign state. Every mutation goes through it, so the
// rest of the codebase never shares mutable aggregates.
type Store interface {
	Create() (string, error)
	Get(id string) (*model.Campaign, error)
	SetTemplate(id string, t model.TemplateDetails) error
	AppendStudents(id string, students []model.Student) error
	SetMessage(id, message string) error
	SetDispatchReport(id string, r model.DispatchReport) error

	// FindByCode scans every campaign for a student holding the code.
	// Codes are only unique within a campaign; on a cross-campaign
	// collision the first match in lexical campaign-id order wins.
	FindByCode(code string) (*model.Campaign, *model.Student, error)
}

// MemoryStore keeps campaigns in process memory behind a single RWMutex.
// It is the system of record for the process lifetime only.
type MemoryStore struct {
	mu        sync.RWMutex
	campaigns map[string]*model.Campaign
}

var _ Store = (*MemoryStore)(nil)

func NewMemory() *MemoryStore {
	return &MemoryStore{campaigns: make(map[string]*model.Campaign)}
}

func (s *MemoryStore) Create() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := uuid.NewString()
	s.campaigns[id] = &model.Campaign{ID: id, Students: []model.Student{}}
	return id, nil
}

// Get returns a copy of the aggregate, so callers can read it without
// holding the store lock.
func (s *MemoryStore) Get(id string) (*model.Campaign, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.campaigns[id]
	if !ok {
		return nil, apperrors.NewCampaignNotFound(id)
	}
	return copyCampaign(c), nil
}

func (s *MemoryStore) SetTemplate(id string, t model.TemplateDetails) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.campaigns[id]
	if !ok {
		return apperrors.NewCampaignNotFound(id)
	}
	// Wholesale replacement, never a partial update.
	c.Template = &t
	return nil
}

func (s *MemoryStore) AppendStudents(id string, students []model.Student) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.campaigns[id]
	if !ok {
		return apperrors.NewCampaignNotFound(id)
	}
	c.Students = append(c.Students, students...)
	return nil
}

func (s *MemoryStore) SetMessage(id, message string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.campaigns[id]
	if !ok {
		return apperrors.NewCampaignNotFound(id)
	}
	c.EmailMessage = message
	return nil
}

func (s *MemoryStore) SetDispatchReport(id string, r model.DispatchReport) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.campaigns[id]
	if !ok {
		return apperrors.NewCampaignNotFound(id)
	}
	c.LastDispatch = &r
	return nil
}

func (s *MemoryStore) FindByCode(code string) (*model.Campaign, *model.Student, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.campaigns))
	for id := range s.campaigns {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		c := s.campaigns[id]
		for i := range c.Students {
			if c.Students[i].Code == code {
				cc := copyCampaign(c)
				return cc, &cc.Students[i], nil
			}
		}
	}
	return nil, nil, apperrors.NewCodeNotFound(code)
}

func copyCampaign(c *model.Campaign) *model.Campaign {
	cc := &model.Campaign{
		ID:           c.ID,
		EmailMessage: c.EmailMessage,
		Students:     make([]model.Student, len(c.Students)),
	}
	copy(cc.Students, c.Students)
	if c.Template != nil {
		t := *c.Template
		cc.Template = &t
	}
	if c.LastDispatch != nil {
		r := *c.LastDispatch
		cc.LastDispatch = &r
	}
	return cc
}
