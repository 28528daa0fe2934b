package notifier

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownChat is returned when no transport owns a chat id's namespace.
var ErrUnknownChat = errors.New("no transport for chat")

// Notifier delivers plain-text messages to a namespaced chat id such as "tg:123" or "slack:C1".
type Notifier interface {
	SendText(ctx context.Context, chatID string, text string, dryRun bool) error
}

// Router picks the Notifier registered for a chat id's namespace.
type Router struct {
	routes map[string]Notifier
}

var _ Notifier = (*Router)(nil)

// NewRouter creates an empty Router.
func NewRouter() *Router {
	return &Router{routes: make(map[string]Notifier)}
}

// Register binds a namespace ("tg", "slack") to a Notifier.
func (r *Router) Register(namespace string, n Notifier) {
	r.routes[namespace] = n
}

func (r *Router) SendText(ctx context.Context, chatID string, text string, dryRun bool) error {
	ns, _, ok := strings.Cut(chatID, ":")
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownChat, chatID)
	}
	n, ok := r.routes[ns]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownChat, chatID)
	}
	return n.SendText(ctx, chatID, text, dryRun)
}

// StripNamespace returns the transport-local part of a namespaced id.
func StripNamespace(id string) string {
	if _, local, ok := strings.Cut(id, ":"); ok {
		return local
	}
	return id
}
