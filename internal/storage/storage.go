package storage

import (
	"context"
	"encoding/json"
	"errors"

	"seodesk/backend/internal/logger"
	"seodesk/backend/internal/models"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("record not found")

// EventsChannel is the Redis Pub/Sub channel domain events are
// published on and the event hub subscribes to.
const EventsChannel = "seodesk:events"

type Storage interface {
	GetUserByID(id string) (*models.User, error)
	GetUserByTelegramChatID(chatID int64) (*models.User, error)
	SaveUser(user *models.User) error

	GetNetworkByID(id string) (*models.Network, error)
	SaveNetwork(network *models.Network) error

	// GetOptimizationByID loads the optimization with its complaints
	// (newest first) and optimization-scoped responses (oldest first).
	GetOptimizationByID(id string) (*models.Optimization, error)
	SaveOptimization(opt *models.Optimization) error

	GetComplaintByID(id string) (*models.Complaint, error)
	SaveComplaint(complaint *models.Complaint) error
	GetComplaintsForOptimization(optimizationID string) ([]models.Complaint, error)
	GetComplaintsForNetwork(networkID string) ([]models.Complaint, error)
	ListOpenComplaints() ([]models.Complaint, error)

	SaveResponse(response *models.Response) error
	GetResponsesForOptimization(optimizationID string) ([]models.Response, error)
	GetResponsesForComplaint(complaintID string) ([]models.Response, error)

	PublishEvent(event models.DomainEvent) error
}

// Service implements Storage over PostgreSQL (gorm) with Redis for
// event fan-out between instances.
type Service struct {
	DB    *gorm.DB
	Redis *redis.Client
	Ctx   context.Context
	Log   *logger.Logger
}

// NewStorageService constructs the storage service. Redis may be nil
// for consumers that never publish events (the admin CLI).
func NewStorageService(db *gorm.DB, rdb *redis.Client, log *logger.Logger) *Service {
	return &Service{
		DB:    db,
		Redis: rdb,
		Ctx:   context.Background(),
		Log:   log,
	}
}

func (s *Service) GetUserByID(id string) (*models.User, error) {
	var user models.User
	err := s.DB.First(&user, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Service) GetUserByTelegramChatID(chatID int64) (*models.User, error) {
	var user models.User
	err := s.DB.First(&user, "telegram_chat_id = ?", chatID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Service) SaveUser(user *models.User) error {
	return s.DB.Save(user).Error
}

func (s *Service) GetNetworkByID(id string) (*models.Network, error) {
	var network models.Network
	err := s.DB.First(&network, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &network, nil
}

func (s *Service) SaveNetwork(network *models.Network) error {
	return s.DB.Save(network).Error
}

// GetOptimizationByID preloads complaints newest-first so that display
// ordinals (total - index) number the oldest complaint 1, and responses
// oldest-first for timeline assembly.
func (s *Service) GetOptimizationByID(id string) (*models.Optimization, error) {
	var opt models.Optimization
	err := s.DB.
		Preload("Complaints", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC")
		}).
		Preload("Responses", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		First(&opt, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		s.Log.Error("failed to load optimization", "optimization_id", id, "error", err)
		return nil, err
	}
	return &opt, nil
}

func (s *Service) SaveOptimization(opt *models.Optimization) error {
	// Child rows are owned by their own save paths; never cascade them
	// from an optimization update.
	return s.DB.Omit("Complaints", "Responses").Save(opt).Error
}

func (s *Service) GetComplaintByID(id string) (*models.Complaint, error) {
	var complaint models.Complaint
	err := s.DB.
		Preload("Responses", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		First(&complaint, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &complaint, nil
}

func (s *Service) SaveComplaint(complaint *models.Complaint) error {
	if err := s.DB.Omit("Responses").Save(complaint).Error; err != nil {
		s.Log.Error("failed to save complaint", "complaint_id", complaint.ID, "error", err)
		return err
	}
	return nil
}

func (s *Service) GetComplaintsForOptimization(optimizationID string) ([]models.Complaint, error) {
	var complaints []models.Complaint
	err := s.DB.
		Where("optimization_id = ?", optimizationID).
		Order("created_at DESC").
		Find(&complaints).Error
	if err != nil {
		return nil, err
	}
	return complaints, nil
}

func (s *Service) GetComplaintsForNetwork(networkID string) ([]models.Complaint, error) {
	var complaints []models.Complaint
	err := s.DB.
		Preload("Responses", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Where("network_id = ? AND scope = ?", networkID, models.ScopeProject).
		Order("created_at DESC").
		Find(&complaints).Error
	if err != nil {
		return nil, err
	}
	return complaints, nil
}

// ListOpenComplaints returns every complaint not yet in a terminal
// state, newest first. Used by the admin CLI.
func (s *Service) ListOpenComplaints() ([]models.Complaint, error) {
	var complaints []models.Complaint
	err := s.DB.
		Where("status NOT IN ?", []string{models.ComplaintStatusResolved, models.ComplaintStatusDismissed}).
		Order("created_at DESC").
		Find(&complaints).Error
	if err != nil {
		return nil, err
	}
	return complaints, nil
}

func (s *Service) SaveResponse(response *models.Response) error {
	if err := s.DB.Create(response).Error; err != nil {
		s.Log.Error("failed to save response", "response_id", response.ID, "error", err)
		return err
	}
	return nil
}

func (s *Service) GetResponsesForOptimization(optimizationID string) ([]models.Response, error) {
	var responses []models.Response
	err := s.DB.
		Where("optimization_id = ?", optimizationID).
		Order("created_at ASC").
		Find(&responses).Error
	if err != nil {
		return nil, err
	}
	return responses, nil
}

func (s *Service) GetResponsesForComplaint(complaintID string) ([]models.Response, error) {
	var responses []models.Response
	err := s.DB.
		Where("complaint_id = ?", complaintID).
		Order("created_at ASC").
		Find(&responses).Error
	if err != nil {
		return nil, err
	}
	return responses, nil
}

// PublishEvent pushes a domain event onto the Redis events channel. A
// nil Redis client makes this a no-op so CLI consumers can skip it.
func (s *Service) PublishEvent(event models.DomainEvent) error {
	if s.Redis == nil {
		return nil
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return s.Redis.Publish(s.Ctx, EventsChannel, payload).Err()
}
