package services

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// feedChannel is the Redis pub-sub channel carrying feed events across
// instances.
const feedChannel = "feed:events"

// Feed event types delivered to websocket subscribers.
const (
	FeedEventPostCreated    = "post.created"
	FeedEventCommentCreated = "comment.created"
)

// FeedEvent is the payload broadcast over Redis and WebSocket when a post or
// comment is published.
type FeedEvent struct {
	Type      string    `json:"type"`
	PostID    string    `json:"post_id"`
	UserID    string    `json:"user_id"`
	Name      string    `json:"name,omitempty"`
	Text      string    `json:"text,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// FeedService fans out feed events. Events go through Redis pub-sub so every
// instance sees mutations applied on any other instance; a single shared
// subscriber per process feeds the local websocket connections.
type FeedService struct {
	client *redis.Client

	mu          sync.RWMutex
	subscribers map[int]chan FeedEvent
	nextID      int

	started sync.Once
}

func NewFeedService(client *redis.Client) *FeedService {
	return &FeedService{
		client:      client,
		subscribers: make(map[int]chan FeedEvent),
	}
}

// Publish sends an event to Redis. Best effort: a failed publish is logged,
// never surfaced to the mutation that triggered it.
func (s *FeedService) Publish(ctx context.Context, event FeedEvent) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("failed to marshal feed event: %v", err)
		return
	}
	if err := s.client.Publish(ctx, feedChannel, data).Err(); err != nil {
		log.Printf("failed to publish feed event: %v", err)
	}
}

// Subscribe registers a local listener. The returned cancel func must be
// called on disconnect.
func (s *FeedService) Subscribe() (<-chan FeedEvent, func()) {
	ch := make(chan FeedEvent, 16)

	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subscribers[id] = ch
	s.mu.Unlock()

	cancel := func() {
		s.mu.Lock()
		if existing, ok := s.subscribers[id]; ok {
			delete(s.subscribers, id)
			close(existing)
		}
		s.mu.Unlock()
	}
	return ch, cancel
}

// Start ensures a single shared Redis listener per instance.
func (s *FeedService) Start(ctx context.Context) {
	s.started.Do(func() {
		go s.runSubscriber(ctx)
	})
}

func (s *FeedService) runSubscriber(ctx context.Context) {
	backoff := time.Second

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		func() {
			pubsub := s.client.Subscribe(ctx, feedChannel)
			defer pubsub.Close()

			log.Println("✅ Feed Redis subscriber started (channel: feed:events)")

			for {
				msg, err := pubsub.ReceiveMessage(ctx)
				if err != nil {
					if ctx.Err() != nil {
						return
					}
					log.Printf("Redis feed subscriber error: %v", err)
					time.Sleep(backoff)
					backoff *= 2
					if backoff > 30*time.Second {
						backoff = 30 * time.Second
					}
					return
				}

				backoff = time.Second

				var event FeedEvent
				if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
					log.Printf("failed to unmarshal feed event: %v", err)
					continue
				}

				s.fanOut(event)
			}
		}()

		if ctx.Err() != nil {
			return
		}
	}
}

// fanOut delivers an event to every local subscriber. Slow consumers drop
// events rather than block the subscriber loop.
func (s *FeedService) fanOut(event FeedEvent) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, ch := range s.subscribers {
		select {
		case ch <- event:
		default:
		}
	}
}
