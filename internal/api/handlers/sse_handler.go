package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/arogyamitra/SwasthyaSahayak/backend/internal/api/middleware"
	"github.com/arogyamitra/SwasthyaSahayak/backend/internal/domain/entities"
	"github.com/arogyamitra/SwasthyaSahayak/backend/internal/domain/providers"
)

// SSEHandler handles Server-Sent Events for live report and conversation
// updates. Every event triggers a full re-read of the owner's projection;
// the stream always carries complete snapshots, never deltas.
type SSEHandler struct {
	eventBus      providers.EventBus
	reports       ReportService
	conversations ConversationService
	clients       map[string]map[chan *entities.ChangeEvent]bool // channel -> clients
	mu            sync.RWMutex
}

// NewSSEHandler creates a new SSE handler.
func NewSSEHandler(eventBus providers.EventBus, reports ReportService, conversations ConversationService) *SSEHandler {
	return &SSEHandler{
		eventBus:      eventBus,
		reports:       reports,
		conversations: conversations,
		clients:       make(map[string]map[chan *entities.ChangeEvent]bool),
	}
}

// StreamReports handles SSE connections for the owner's report list
// GET /api/stream/reports
func (h *SSEHandler) StreamReports(w http.ResponseWriter, r *http.Request) {
	session := middleware.SessionFromContext(r.Context())
	if session == nil {
		respondWithError(w, http.StatusUnauthorized, "sign-in required")
		return
	}

	channel := providers.GetReportsChannel(session.ID)
	h.stream(w, r, channel, func(ctx context.Context) (interface{}, error) {
		reports, err := h.reports.RecentReports(ctx, session.ID)
		if err != nil {
			return nil, err
		}
		return map[string]interface{}{
			"reports": reports,
			"count":   len(reports),
		}, nil
	})
}

// StreamConversations handles SSE connections for the owner's history
// GET /api/stream/conversations
func (h *SSEHandler) StreamConversations(w http.ResponseWriter, r *http.Request) {
	session := middleware.SessionFromContext(r.Context())
	if session == nil {
		respondWithError(w, http.StatusUnauthorized, "sign-in required")
		return
	}

	channel := providers.GetConversationsChannel(session.ID)
	h.stream(w, r, channel, func(ctx context.Context) (interface{}, error) {
		turns, err := h.conversations.History(ctx, session.ID)
		if err != nil {
			return nil, err
		}
		return map[string]interface{}{
			"turns": turns,
			"count": len(turns),
		}, nil
	})
}

// stream runs the SSE loop: an initial snapshot on connect, then a fresh
// snapshot after each change event, with heartbeats in between.
func (h *SSEHandler) stream(w http.ResponseWriter, r *http.Request, channel string, snapshot func(ctx context.Context) (interface{}, error)) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		respondWithError(w, http.StatusInternalServerError, "streaming not supported")
		return
	}

	// Set headers for SSE
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")

	// Create client channel
	clientChan := make(chan *entities.ChangeEvent, 10)

	// Register client
	h.registerClient(channel, clientChan)
	defer h.unregisterClient(channel, clientChan)

	// Subscribe to events
	eventChan, err := h.eventBus.Subscribe(r.Context(), channel)
	if err != nil {
		log.Printf("Failed to subscribe to channel %s: %v", channel, err)
		return
	}

	// Send initial snapshot
	h.sendSnapshot(r.Context(), w, snapshot)
	flusher.Flush()

	// Start forwarding events
	go h.forwardEvents(r.Context(), eventChan, clientChan)

	// Keep connection alive and send events
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-r.Context().Done():
			log.Printf("Client disconnected from stream: %s", channel)
			return
		case <-ticker.C:
			// Send heartbeat
			h.sendEvent(w, "heartbeat", map[string]interface{}{
				"timestamp": time.Now(),
			})
			flusher.Flush()
		case event := <-clientChan:
			if event == nil {
				continue
			}
			h.sendSnapshot(r.Context(), w, snapshot)
			flusher.Flush()
		}
	}
}

// sendSnapshot re-reads the projection and sends it as a full
// replacement.
func (h *SSEHandler) sendSnapshot(ctx context.Context, w http.ResponseWriter, snapshot func(ctx context.Context) (interface{}, error)) {
	data, err := snapshot(ctx)
	if err != nil {
		log.Printf("Failed to load snapshot: %v", err)
		h.sendEvent(w, "error", map[string]string{"error": "failed to load snapshot"})
		return
	}
	h.sendEvent(w, "snapshot", data)
}

// forwardEvents forwards events from the event bus to a client channel
func (h *SSEHandler) forwardEvents(ctx context.Context, eventChan <-chan *entities.ChangeEvent, clientChan chan<- *entities.ChangeEvent) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-eventChan:
			if !ok {
				return
			}
			select {
			case clientChan <- event:
			default:
				// Client channel full, skip event
			}
		}
	}
}

// registerClient registers a client for a channel
func (h *SSEHandler) registerClient(channel string, clientChan chan *entities.ChangeEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.clients[channel] == nil {
		h.clients[channel] = make(map[chan *entities.ChangeEvent]bool)
	}
	h.clients[channel][clientChan] = true
	log.Printf("Client registered for channel: %s (total: %d)", channel, len(h.clients[channel]))
}

// unregisterClient unregisters a client from a channel
func (h *SSEHandler) unregisterClient(channel string, clientChan chan *entities.ChangeEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if clients, exists := h.clients[channel]; exists {
		delete(clients, clientChan)
		log.Printf("Client unregistered from channel: %s (remaining: %d)", channel, len(clients))

		// Clean up empty channel
		if len(clients) == 0 {
			delete(h.clients, channel)
		}
	}
}

// sendEvent sends an SSE event to the client
func (h *SSEHandler) sendEvent(w http.ResponseWriter, eventType string, data interface{}) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		log.Printf("Failed to marshal event data: %v", err)
		return
	}

	fmt.Fprintf(w, "event: %s\n", eventType)
	fmt.Fprintf(w, "data: %s\n\n", jsonData)
}

// GetClientCount returns the number of connected clients for debugging
func (h *SSEHandler) GetClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	count := 0
	for _, clients := range h.clients {
		count += len(clients)
	}
	return count
}
