// internal/notify/registry.go
package notify

import "sync"

// Registry is the process-lifetime set of recipient chat IDs. It is
// append-only and deduplicated; entries are lost on restart unless a fixed
// chat ID is configured, in which case dynamic subscription is disabled
// entirely and the fixed ID is the only recipient.
type Registry struct {
	mu          sync.RWMutex
	fixedChatID string
	chats       []string
	seen        map[string]struct{}
}

// NewRegistry creates a recipient registry. A non-empty fixedChatID puts
// the registry in fixed mode.
func NewRegistry(fixedChatID string) *Registry {
	return &Registry{
		fixedChatID: fixedChatID,
		seen:        make(map[string]struct{}),
	}
}

// Subscribe registers a chat ID, returning true when it is newly added.
// In fixed mode subscription is skipped entirely.
func (r *Registry) Subscribe(chatID string) bool {
	if chatID == "" {
		return false
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.fixedChatID != "" {
		return false
	}
	if _, ok := r.seen[chatID]; ok {
		return false
	}

	r.seen[chatID] = struct{}{}
	r.chats = append(r.chats, chatID)
	return true
}

// Recipients returns the current delivery targets
func (r *Registry) Recipients() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.fixedChatID != "" {
		return []string{r.fixedChatID}
	}

	recipients := make([]string, len(r.chats))
	copy(recipients, r.chats)
	return recipients
}

// Count returns the number of dynamically subscribed chats
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.chats)
}

// FixedChatID returns the configured fixed recipient, empty in dynamic mode
func (r *Registry) FixedChatID() string {
	return r.fixedChatID
}

// UsingFixed reports whether the registry is in fixed-recipient mode
func (r *Registry) UsingFixed() bool {
	return r.fixedChatID != ""
}
