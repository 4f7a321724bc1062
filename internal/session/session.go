// Package session provides the in-memory session state for the
// planning platform: chat transcripts and itinerary history.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tripgpt/planning-platform/internal/model"
	"github.com/tripgpt/planning-platform/pkg/logger"
)

// ErrNotFound is returned when a session does not exist.
var ErrNotFound = errors.New("session not found")

// ErrNoItinerary is returned when an itinerary index is out of range.
var ErrNoItinerary = errors.New("itinerary not found")

// Service holds planning sessions. State is transient: sessions live in
// memory for the lifetime of the process.
type Service struct {
	logger *logger.Logger

	sessions map[string]*model.Session
	mu       sync.RWMutex
}

// NewService creates a new session service.
func NewService(log *logger.Logger) *Service {
	return &Service{
		logger:   log,
		sessions: make(map[string]*model.Session),
	}
}

// Create opens a new planning session.
func (s *Service) Create(ctx context.Context, req *model.CreateSessionRequest) (*model.Session, error) {
	now := time.Now()

	sess := &model.Session{
		ID:        uuid.Must(uuid.NewV7()).String(),
		Title:     req.Title,
		Current:   -1,
		CreatedAt: now,
		UpdatedAt: now,
	}

	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()

	s.logger.Info("session created", zap.String("session_id", sess.ID))

	return sess, nil
}

// Get retrieves a session by ID.
func (s *Service) Get(ctx context.Context, sessionID string) (*model.Session, error) {
	s.mu.RLock()
	sess, exists := s.sessions[sessionID]
	s.mu.RUnlock()

	if !exists || sess.Deleted {
		return nil, ErrNotFound
	}

	return sess, nil
}

// List retrieves sessions with simple offset pagination.
func (s *Service) List(ctx context.Context, limit, offset int) (*model.ListSessionsResponse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var sessions []model.Session
	for _, sess := range s.sessions {
		if !sess.Deleted {
			sessions = append(sessions, *sess)
		}
	}

	total := len(sessions)
	start := offset
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}

	return &model.ListSessionsResponse{
		Sessions: sessions[start:end],
		Total:    total,
		HasMore:  end < total,
	}, nil
}

// Delete soft deletes a session.
func (s *Service) Delete(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, exists := s.sessions[sessionID]
	if !exists || sess.Deleted {
		return ErrNotFound
	}

	sess.Deleted = true
	sess.UpdatedAt = time.Now()

	return nil
}

// AppendTurn appends a chat turn to the session transcript.
func (s *Service) AppendTurn(ctx context.Context, sessionID string, role model.Role, content string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, exists := s.sessions[sessionID]
	if !exists || sess.Deleted {
		return ErrNotFound
	}

	sess.Turns = append(sess.Turns, model.ChatTurn{
		Role:      role,
		Content:   content,
		CreatedAt: time.Now(),
	})
	sess.UpdatedAt = time.Now()

	return nil
}

// AppendItinerary appends an itinerary to the session history and makes
// it the current one.
func (s *Service) AppendItinerary(ctx context.Context, sessionID string, it model.Itinerary) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, exists := s.sessions[sessionID]
	if !exists || sess.Deleted {
		return ErrNotFound
	}

	sess.Itineraries = append(sess.Itineraries, it)
	sess.Current = len(sess.Itineraries) - 1
	sess.UpdatedAt = time.Now()

	return nil
}

// SelectItinerary re-selects a past itinerary as the current one.
func (s *Service) SelectItinerary(ctx context.Context, sessionID string, index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, exists := s.sessions[sessionID]
	if !exists || sess.Deleted {
		return ErrNotFound
	}

	if index < 0 || index >= len(sess.Itineraries) {
		return ErrNoItinerary
	}

	sess.Current = index
	sess.UpdatedAt = time.Now()

	return nil
}

// Itinerary returns the itinerary at the given history index.
func (s *Service) Itinerary(ctx context.Context, sessionID string, index int) (*model.Itinerary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, exists := s.sessions[sessionID]
	if !exists || sess.Deleted {
		return nil, ErrNotFound
	}

	if index < 0 || index >= len(sess.Itineraries) {
		return nil, ErrNoItinerary
	}

	it := sess.Itineraries[index]
	return &it, nil
}

// Current returns the session's current itinerary, or ErrNoItinerary
// when none has been produced yet.
func (s *Service) Current(ctx context.Context, sessionID string) (*model.Itinerary, error) {
	s.mu.RLock()
	sess, exists := s.sessions[sessionID]
	index := -1
	deleted := true
	if exists {
		index = sess.Current
		deleted = sess.Deleted
	}
	s.mu.RUnlock()

	if !exists || deleted {
		return nil, ErrNotFound
	}

	return s.Itinerary(ctx, sessionID, index)
}
