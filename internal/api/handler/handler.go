package handler

import (
	"seodesk/backend/internal/complaint"
	"seodesk/backend/internal/eventhub"
	"seodesk/backend/internal/logger"
	"seodesk/backend/internal/optimization"
	"seodesk/backend/internal/storage"
)

// Handler bundles the services the HTTP layer dispatches into.
type Handler struct {
	Complaints    *complaint.Service
	Optimizations *optimization.Service
	Storage       storage.Storage
	Hub           *eventhub.Hub
	Log           *logger.Logger
	JWTSecret     []byte
}

func NewHandler(
	complaints *complaint.Service,
	optimizations *optimization.Service,
	s storage.Storage,
	hub *eventhub.Hub,
	log *logger.Logger,
	jwtSecret []byte,
) *Handler {
	return &Handler{
		Complaints:    complaints,
		Optimizations: optimizations,
		Storage:       s,
		Hub:           hub,
		Log:           log,
		JWTSecret:     jwtSecret,
	}
}
