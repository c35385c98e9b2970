package bot

import (
	"sync"
)

// Conversation states for multi-step flows. The scratchpad lives in
// process memory only: it is lost on restart and never shared.
type State string

const (
	StateIdle           State = ""
	StateAnnMedia       State = "ann_media"
	StateAnnDescription State = "ann_description"
	StateAnnKeyword     State = "ann_keyword"
	StateAnnConfirm     State = "ann_confirm"
	StatePromoCode      State = "promo_code"
	StateGiftRecipient  State = "gift_recipient"
	StateGiftAmount     State = "gift_amount"
)

// Conversation is the per-user scratchpad for an in-flight flow.
type Conversation struct {
	State State

	// announcement draft
	AnnType        string
	MediaID        string
	MediaKind      string
	Description    string
	Keyword        string

	// gift draft
	GiftRecipient int64
}

// Sessions keys conversations by Telegram user ID.
type Sessions struct {
	mu    sync.Mutex
	convs map[int64]*Conversation
}

func NewSessions() *Sessions {
	return &Sessions{convs: make(map[int64]*Conversation)}
}

// Get returns the user's conversation, or nil when no flow is active.
func (s *Sessions) Get(userID int64) *Conversation {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.convs[userID]
}

// Begin replaces any in-flight flow with a fresh conversation.
func (s *Sessions) Begin(userID int64, state State) *Conversation {
	s.mu.Lock()
	defer s.mu.Unlock()
	conv := &Conversation{State: state}
	s.convs[userID] = conv
	return conv
}

// End drops the user's conversation.
func (s *Sessions) End(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.convs, userID)
}
