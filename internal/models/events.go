package models

import (
	"time"
)

const EventTypePreconfirmCompleted = "preconfirm_completed"

// KafkaPreconfirmEvent сигнал о завершении проверки, публикуется только после коммита
type KafkaPreconfirmEvent struct {
	EventID   string              `json:"event_id"`
	EventType string              `json:"event_type"`
	Timestamp time.Time           `json:"timestamp"`
	Data      KafkaPreconfirmData `json:"data"`
}

// KafkaPreconfirmData данные о принятом решении
type KafkaPreconfirmData struct {
	CheckID            int64    `json:"check_id"`
	PaymentID          string   `json:"payment_id"`
	UserID             string   `json:"user_id"`
	Decision           Decision `json:"decision"`
	RiskTriggers       []string `json:"risk_triggers"`
	RequiredForms      []string `json:"required_forms"`
	RequiredActions    []string `json:"required_actions"`
	ApprovalsRequired  int      `json:"approvals_required"`
	Amount             string   `json:"amount"`
	Currency           string   `json:"currency"`
	DestinationCountry string   `json:"destination_country"`
}

// DecisionStats агрегированные счетчики решений и триггеров
type DecisionStats struct {
	Decisions      map[string]int64 `json:"decisions"`
	Triggers       map[string]int64 `json:"triggers"`
	EscalatedUsers int64            `json:"escalated_users"`
}
