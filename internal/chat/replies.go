package chat

import (
	"math/rand/v2"
	"sync"
)

// ReplyPicker chooses the seller's automatic response.
type ReplyPicker interface {
	PickReply() string
}

// AutoReplies are the canned seller responses.
var AutoReplies = []string{
	"Hi! Thanks for your interest. When would you like to see the item?",
	"The item is still available! Would you like to schedule a viewing?",
	"I'm available for viewings this week. What time works best for you?",
	"Great! I can meet at the local IKEA store for the handover.",
	"The condition is exactly as described in the listing. Let me know if you have any specific questions!",
	"Yes, I can hold it for you until tomorrow. Let me know what time works for pickup.",
	"The measurements are exactly as listed in the description. It should fit your space perfectly!",
	"I can help with delivery if needed. There would be a small additional fee.",
}

// RandomPicker picks uniformly from its replies.
type RandomPicker struct {
	replies []string
}

// NewRandomPicker uses AutoReplies when replies is empty.
func NewRandomPicker(replies ...string) *RandomPicker {
	if len(replies) == 0 {
		replies = AutoReplies
	}
	return &RandomPicker{replies: replies}
}

func (p *RandomPicker) PickReply() string {
	return p.replies[rand.IntN(len(p.replies))]
}

// SequencePicker cycles through its replies in order.
type SequencePicker struct {
	mu      sync.Mutex
	replies []string
	next    int
}

func NewSequencePicker(replies ...string) *SequencePicker {
	if len(replies) == 0 {
		replies = AutoReplies
	}
	return &SequencePicker{replies: replies}
}

func (p *SequencePicker) PickReply() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	reply := p.replies[p.next%len(p.replies)]
	p.next++
	return reply
}
