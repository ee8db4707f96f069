package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/lrms/workforce-service/internal/events"
)

const (
	auditLogKey        = "audit:log"
	defaultAuditMaxLen = 1000
)

// AuditEntry is one line of the audit trail.
type AuditEntry struct {
	ID        string           `json:"id"`
	Action    events.EventType `json:"action"`
	SubjectID int64            `json:"subjectId,omitempty"`
	Actor     events.Actor     `json:"actor"`
	Details   any              `json:"details,omitempty"`
	Timestamp time.Time        `json:"timestamp"`
}

// AuditService records user lifecycle events in a capped Redis list.
type AuditService struct {
	dispatcher events.Dispatcher
	client     *redis.Client
	logger     *zap.Logger
	maxLen     int64
}

// NewAuditService creates the service. A nil client disables persistence;
// events are then only logged.
func NewAuditService(dispatcher events.Dispatcher, client *redis.Client, logger *zap.Logger) *AuditService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuditService{
		dispatcher: dispatcher,
		client:     client,
		logger:     logger,
		maxLen:     defaultAuditMaxLen,
	}
}

// RegisterHandlers subscribes to every user event.
func (a *AuditService) RegisterHandlers() {
	if a.dispatcher == nil {
		return
	}
	for _, eventType := range events.AllEventTypes() {
		a.dispatcher.Subscribe(eventType, a.handle)
	}
}

func (a *AuditService) handle(ctx context.Context, event events.Event) error {
	a.logger.Info(string(event.Type),
		zap.String("event_id", event.ID),
		zap.Int64("subject_id", event.SubjectID),
		zap.Int64("actor_id", event.Actor.UserID))
	return a.Record(ctx, event)
}

// Record appends event to the trail, trimming it to the configured length.
func (a *AuditService) Record(ctx context.Context, event events.Event) error {
	if a.client == nil {
		return nil
	}
	entry := AuditEntry{
		ID:        event.ID,
		Action:    event.Type,
		SubjectID: event.SubjectID,
		Actor:     event.Actor,
		Details:   event.Payload,
		Timestamp: event.Timestamp,
	}
	raw, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshal audit entry: %w", err)
	}

	pipe := a.client.TxPipeline()
	pipe.LPush(ctx, auditLogKey, raw)
	pipe.LTrim(ctx, auditLogKey, 0, a.maxLen-1)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("append audit entry: %w", err)
	}
	return nil
}

// Recent returns up to limit entries, newest first.
func (a *AuditService) Recent(ctx context.Context, limit int64) ([]AuditEntry, error) {
	if a.client == nil {
		return []AuditEntry{}, nil
	}
	if limit <= 0 || limit > a.maxLen {
		limit = 100
	}
	raws, err := a.client.LRange(ctx, auditLogKey, 0, limit-1).Result()
	if err != nil {
		return nil, fmt.Errorf("read audit log: %w", err)
	}
	entries := make([]AuditEntry, 0, len(raws))
	for _, raw := range raws {
		var entry AuditEntry
		if err := json.Unmarshal([]byte(raw), &entry); err != nil {
			a.logger.Warn("skipping malformed audit entry", zap.Error(err))
			continue
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
