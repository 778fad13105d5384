package conversation

import (
	"errors"
	"modelchat/app/provider"
	"strings"
	"sync"
	"time"

	"github.com/samber/do"
)

var (
	ErrEmptyMessage     = errors.New("message is empty")
	ErrExchangeInFlight = errors.New("another exchange is already in flight")
	ErrUnknownProvider  = errors.New("unknown provider")
)

// Service holds the single conversation of the session: an append-only
// message log, the selected provider and the in-flight exchange marker.
// At most one exchange is pending at a time.
type Service struct {
	mu sync.RWMutex

	messages []Message
	selected provider.ID
	inFlight bool

	// exchangeSeq grows on every accepted exchange and on every reset,
	// so a reply landing after a provider switch no longer matches.
	exchangeSeq uint64
}

func New(_ *do.Injector) (*Service, error) {
	return &Service{
		selected: provider.IDGemini,
	}, nil
}

func (s *Service) Snapshot() []Message {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]Message, len(s.messages))
	copy(result, s.messages)

	return result
}

func (s *Service) Selected() provider.ID {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.selected
}

func (s *Service) InFlight() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.inFlight
}

// Select switches the active model and clears the log: conversations are
// never mixed across providers. A pending exchange is invalidated, its
// reply will be discarded when it lands.
func (s *Service) Select(id provider.ID) error {
	if _, ok := provider.Parse(string(id)); !ok {
		return ErrUnknownProvider
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.selected = id
	s.reset()

	return nil
}

// Reset clears the log and invalidates any pending exchange.
func (s *Service) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.reset()
}

func (s *Service) reset() {
	s.messages = s.messages[:0]
	s.inFlight = false
	s.exchangeSeq++
}

// Exchange describes one accepted turn: the id used to land its reply,
// the provider captured at submission time and the appended user message.
type Exchange struct {
	ID          uint64
	Provider    provider.ID
	UserMessage Message
}

// Begin starts one exchange: it appends the user message, raises the
// in-flight flag and captures the provider selected at submission time.
func (s *Service) Begin(text string) (Exchange, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return Exchange{}, ErrEmptyMessage
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.inFlight {
		return Exchange{}, ErrExchangeInFlight
	}

	msg := Message{
		Text:      trimmed,
		Sender:    SenderUser,
		CreatedAt: time.Now(),
	}

	s.messages = append(s.messages, msg)
	s.inFlight = true
	s.exchangeSeq++

	return Exchange{
		ID:          s.exchangeSeq,
		Provider:    s.selected,
		UserMessage: msg,
	}, nil
}

// Complete lands the bot reply of exchange id. A reply whose exchange was
// invalidated in the meantime is dropped and Complete reports false.
func (s *Service) Complete(id uint64, text string, prov provider.ID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.inFlight || id != s.exchangeSeq {
		return false
	}

	s.messages = append(s.messages, Message{
		Text:      text,
		Sender:    SenderBot,
		Provider:  prov,
		CreatedAt: time.Now(),
	})
	s.inFlight = false

	return true
}
