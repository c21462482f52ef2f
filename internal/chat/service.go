package chat

import (
	"context"
	"strings"
	"time"

	"github.com/angelmondragon/secondnest/internal/state"
	pkgerrors "github.com/angelmondragon/secondnest/pkg/errors"
	"github.com/google/uuid"
)

const (
	// StateKey names the persisted chat log.
	StateKey = "secondnest_chats"
	// SellerID is the sender id used for automatic replies.
	SellerID = "seller"
	// MaxMessageLength bounds a single buyer message.
	MaxMessageLength = 1000
)

// Message is one chat line about a listing.
type Message struct {
	ID         string    `json:"id"`
	SenderID   string    `json:"senderId"`
	ReceiverID string    `json:"receiverId"`
	Message    string    `json:"message"`
	Timestamp  time.Time `json:"timestamp"`
	ItemID     string    `json:"itemId,omitempty"`
}

// Exchange is a buyer message together with the seller's reply.
type Exchange struct {
	Sent  Message `json:"sent"`
	Reply Message `json:"reply"`
}

// Service stores chat history in a (session-scoped) state store.
type Service struct {
	store  state.Store
	picker ReplyPicker
	now    func() time.Time
	newID  func() string
}

// Option customizes a Service.
type Option func(*Service)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithIDGenerator overrides message id generation.
func WithIDGenerator(fn func() string) Option {
	return func(s *Service) { s.newID = fn }
}

func NewService(store state.Store, picker ReplyPicker, opts ...Option) *Service {
	if picker == nil {
		picker = NewRandomPicker()
	}
	s := &Service{
		store:  store,
		picker: picker,
		now:    func() time.Time { return time.Now().UTC() },
		newID:  func() string { return uuid.NewString() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Send stores the buyer's message and an automatic seller reply for itemID.
func (s *Service) Send(ctx context.Context, itemID, buyerID, text string) (Exchange, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Exchange{}, pkgerrors.New(pkgerrors.CodeValidation, "message is required")
	}
	if len([]rune(text)) > MaxMessageLength {
		return Exchange{}, pkgerrors.New(pkgerrors.CodeValidation, "message is too long").
			WithDetails(map[string]any{"max_length": MaxMessageLength})
	}

	log, err := state.Load(ctx, s.store, StateKey, []Message{})
	if err != nil {
		return Exchange{}, err
	}

	sentAt := s.now()
	exchange := Exchange{
		Sent: Message{
			ID:         s.newID(),
			SenderID:   buyerID,
			ReceiverID: SellerID,
			Message:    text,
			Timestamp:  sentAt,
			ItemID:     itemID,
		},
		Reply: Message{
			ID:         s.newID(),
			SenderID:   SellerID,
			ReceiverID: buyerID,
			Message:    s.picker.PickReply(),
			Timestamp:  s.now(),
			ItemID:     itemID,
		},
	}

	log = append(log, exchange.Sent, exchange.Reply)
	if err := state.Save(ctx, s.store, StateKey, log); err != nil {
		return Exchange{}, err
	}
	return exchange, nil
}

// History returns the messages about itemID in the order they were stored.
func (s *Service) History(ctx context.Context, itemID string) ([]Message, error) {
	log, err := state.Load(ctx, s.store, StateKey, []Message{})
	if err != nil {
		return nil, err
	}
	out := make([]Message, 0, len(log))
	for _, m := range log {
		if m.ItemID == itemID {
			out = append(out, m)
		}
	}
	return out, nil
}
