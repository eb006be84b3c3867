package services

import (
	"encoding/json"
	"log"
	"time"

	"github.com/shopspring/decimal"
)

type AuditEvent struct {
	Timestamp time.Time       `json:"timestamp"`
	EventType string          `json:"event_type"`
	AccountID int64           `json:"account_id"`
	Amount    decimal.Decimal `json:"amount"`
	Status    string          `json:"status"`
	Details   any             `json:"details,omitempty"`
}

// AuditLogger records money-movement outcomes as structured events.
type AuditLogger struct{}

func NewAuditLogger() *AuditLogger {
	return &AuditLogger{}
}

func (a *AuditLogger) LogTransaction(eventType string, accountID int64, amount decimal.Decimal, status string) {
	a.log(AuditEvent{
		Timestamp: time.Now(),
		EventType: eventType,
		AccountID: accountID,
		Amount:    amount,
		Status:    status,
	})
}

func (a *AuditLogger) LogError(eventType string, accountID int64, amount decimal.Decimal, err error) {
	a.log(AuditEvent{
		Timestamp: time.Now(),
		EventType: eventType,
		AccountID: accountID,
		Amount:    amount,
		Status:    "FAILED",
		Details:   map[string]string{"error": err.Error()},
	})
}

func (a *AuditLogger) log(event AuditEvent) {
	data, _ := json.Marshal(event)
	log.Printf("AUDIT: %s", string(data))
}
