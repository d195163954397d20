package notify

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"lending-engine/internal/domain/notify"
)

// Notification is an outbox row later drained by the host's delivery
// workers (email, push). The engine only ever appends.
type Notification struct {
	ID        uint64          `gorm:"primaryKey;autoIncrement"`
	UserID    string          `gorm:"size:64;index"`
	Kind      string          `gorm:"size:64"`
	Payload   json.RawMessage `gorm:"type:json"`
	CreatedAt time.Time
}

func (Notification) TableName() string { return "notifications" }

// OutboxNotifier writes notification rows best-effort: failures are logged
// and swallowed so a broken outbox never fails a loan or payment operation.
type OutboxNotifier struct {
	db  *gorm.DB
	log *zap.Logger
}

var _ notify.Notifier = (*OutboxNotifier)(nil)

func NewOutboxNotifier(db *gorm.DB, log *zap.Logger) *OutboxNotifier {
	return &OutboxNotifier{db: db, log: log}
}

func (n *OutboxNotifier) Notify(ctx context.Context, userID, kind string, payload map[string]any) {
	raw, err := json.Marshal(payload)
	if err != nil {
		n.log.Warn("notification payload marshal failed",
			zap.String("user_id", userID), zap.String("kind", kind), zap.Error(err))
		return
	}
	row := Notification{UserID: userID, Kind: kind, Payload: raw, CreatedAt: time.Now().UTC()}
	if err := n.db.WithContext(ctx).Create(&row).Error; err != nil {
		n.log.Warn("notification write failed",
			zap.String("user_id", userID), zap.String("kind", kind), zap.Error(err))
	}
}
