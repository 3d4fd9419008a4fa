package socket

import (
	"github.com/Marga-Ghale/club-portal/internal/repository"
)

// Broadcaster turns domain events into feed messages.
type Broadcaster struct {
	hub *Hub
}

func NewBroadcaster(hub *Hub) *Broadcaster {
	return &Broadcaster{hub: hub}
}

// PublishNotification pushes a freshly stored in-app notification.
func (b *Broadcaster) PublishNotification(n *repository.Notification) {
	b.hub.Broadcast(MessageNotification, map[string]any{
		"id":         n.ID,
		"title":      n.Title,
		"message":    n.Message,
		"type":       n.Type,
		"is_read":    n.IsRead,
		"created_at": n.CreatedAt,
	})
}

func (b *Broadcaster) SendNotificationCount(total, unread int) {
	b.hub.Broadcast(MessageNotificationCount, map[string]any{
		"total":  total,
		"unread": unread,
	})
}
