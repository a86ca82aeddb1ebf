// Package storagetest provides an in-memory Storage for service tests.
// It mirrors the gorm implementation's contract: generated IDs,
// complaints returned newest-first, responses oldest-first.
package storagetest

import (
	"sort"

	"seodesk/backend/internal/models"
	"seodesk/backend/internal/storage"

	"github.com/google/uuid"
)

type Fake struct {
	Users         map[string]*models.User
	Networks      map[string]*models.Network
	Optimizations map[string]*models.Optimization
	Complaints    map[string]*models.Complaint
	Responses     map[string]*models.Response

	// Events records every published domain event in order.
	Events []models.DomainEvent
}

var _ storage.Storage = (*Fake)(nil)

func NewFake() *Fake {
	return &Fake{
		Users:         make(map[string]*models.User),
		Networks:      make(map[string]*models.Network),
		Optimizations: make(map[string]*models.Optimization),
		Complaints:    make(map[string]*models.Complaint),
		Responses:     make(map[string]*models.Response),
	}
}

func (f *Fake) GetUserByID(id string) (*models.User, error) {
	if u, ok := f.Users[id]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, storage.ErrNotFound
}

func (f *Fake) GetUserByTelegramChatID(chatID int64) (*models.User, error) {
	for _, u := range f.Users {
		if u.TelegramChatID != nil && *u.TelegramChatID == chatID {
			copied := *u
			return &copied, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (f *Fake) SaveUser(user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	copied := *user
	f.Users[user.ID] = &copied
	return nil
}

func (f *Fake) GetNetworkByID(id string) (*models.Network, error) {
	if n, ok := f.Networks[id]; ok {
		copied := *n
		return &copied, nil
	}
	return nil, storage.ErrNotFound
}

func (f *Fake) SaveNetwork(network *models.Network) error {
	if network.ID == "" {
		network.ID = uuid.New().String()
	}
	copied := *network
	f.Networks[network.ID] = &copied
	return nil
}

func (f *Fake) GetOptimizationByID(id string) (*models.Optimization, error) {
	opt, ok := f.Optimizations[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	copied := *opt
	complaints, err := f.GetComplaintsForOptimization(id)
	if err != nil {
		return nil, err
	}
	responses, err := f.GetResponsesForOptimization(id)
	if err != nil {
		return nil, err
	}
	copied.Complaints = complaints
	copied.Responses = responses
	return &copied, nil
}

func (f *Fake) SaveOptimization(opt *models.Optimization) error {
	if opt.ID == "" {
		opt.ID = uuid.New().String()
	}
	copied := *opt
	copied.Complaints = nil
	copied.Responses = nil
	f.Optimizations[opt.ID] = &copied
	return nil
}

func (f *Fake) GetComplaintByID(id string) (*models.Complaint, error) {
	if c, ok := f.Complaints[id]; ok {
		copied := *c
		return &copied, nil
	}
	return nil, storage.ErrNotFound
}

func (f *Fake) SaveComplaint(complaint *models.Complaint) error {
	if complaint.ID == "" {
		complaint.ID = uuid.New().String()
	}
	copied := *complaint
	f.Complaints[complaint.ID] = &copied
	return nil
}

func (f *Fake) GetComplaintsForOptimization(optimizationID string) ([]models.Complaint, error) {
	var out []models.Complaint
	for _, c := range f.Complaints {
		if c.OptimizationID != nil && *c.OptimizationID == optimizationID {
			out = append(out, *c)
		}
	}
	sort.SliceStable(out, func(a, b int) bool {
		return out[a].CreatedAt.After(out[b].CreatedAt)
	})
	return out, nil
}

func (f *Fake) GetComplaintsForNetwork(networkID string) ([]models.Complaint, error) {
	var out []models.Complaint
	for _, c := range f.Complaints {
		if c.NetworkID != nil && *c.NetworkID == networkID {
			out = append(out, *c)
		}
	}
	sort.SliceStable(out, func(a, b int) bool {
		return out[a].CreatedAt.After(out[b].CreatedAt)
	})
	return out, nil
}

func (f *Fake) ListOpenComplaints() ([]models.Complaint, error) {
	var out []models.Complaint
	for _, c := range f.Complaints {
		if !c.IsTerminal() {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (f *Fake) SaveResponse(response *models.Response) error {
	if response.ID == "" {
		response.ID = uuid.New().String()
	}
	copied := *response
	f.Responses[response.ID] = &copied
	return nil
}

func (f *Fake) GetResponsesForOptimization(optimizationID string) ([]models.Response, error) {
	var out []models.Response
	for _, r := range f.Responses {
		if r.OptimizationID != nil && *r.OptimizationID == optimizationID {
			out = append(out, *r)
		}
	}
	sort.SliceStable(out, func(a, b int) bool {
		return out[a].CreatedAt.Before(out[b].CreatedAt)
	})
	return out, nil
}

func (f *Fake) GetResponsesForComplaint(complaintID string) ([]models.Response, error) {
	var out []models.Response
	for _, r := range f.Responses {
		if r.ComplaintID != nil && *r.ComplaintID == complaintID {
			out = append(out, *r)
		}
	}
	sort.SliceStable(out, func(a, b int) bool {
		return out[a].CreatedAt.Before(out[b].CreatedAt)
	})
	return out, nil
}

func (f *Fake) PublishEvent(event models.DomainEvent) error {
	f.Events = append(f.Events, event)
	return nil
}
