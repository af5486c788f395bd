package models

import (
	"time"
)

type ApprovalRole string

const (
	RoleMaker   ApprovalRole = "maker"
	RoleChecker ApprovalRole = "checker"
)

func (r ApprovalRole) Valid() bool {
	return r == RoleMaker || r == RoleChecker
}

type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "pending"
	ApprovalApproved ApprovalStatus = "approved"
	ApprovalRejected ApprovalStatus = "rejected"
)

// IsTerminal сообщает, является ли статус конечным
func (s ApprovalStatus) IsTerminal() bool {
	return s == ApprovalApproved || s == ApprovalRejected
}

type DocumentType string

const (
	DocumentInvoice    DocumentType = "invoice"
	DocumentContract   DocumentType = "contract"
	DocumentPO         DocumentType = "po"
	DocumentScreenshot DocumentType = "screenshot"
)

func (d DocumentType) Valid() bool {
	switch d {
	case DocumentInvoice, DocumentContract, DocumentPO, DocumentScreenshot:
		return true
	}
	return false
}

// AuditInfo метаданные вызова, фиксируемые в момент записи
type AuditInfo struct {
	IP        string    `json:"ip"`
	UserAgent string    `json:"user_agent"`
	Timestamp time.Time `json:"timestamp"`
}

// Reviewer последний участник, принявший решение по согласованию платежа
type Reviewer struct {
	UserID     string         `json:"user_id"`
	Role       ApprovalRole   `json:"role"`
	Status     ApprovalStatus `json:"status"`
	ReviewedAt time.Time      `json:"reviewed_at"`
}

// CheckRecord неизменяемая запись решения по попытке платежа (одна на payment_id)
type CheckRecord struct {
	ID              int64     `json:"id" db:"id"`
	PaymentID       string    `json:"payment_id" db:"payment_id"`
	UserID          string    `json:"user_id" db:"user_id"`
	RiskTriggers    []string  `json:"risk_triggers" db:"risk_triggers"`
	Answers         Answers   `json:"answers" db:"answers"`
	CopResult       *string   `json:"cop_result,omitempty" db:"cop_result"`
	Decision        Decision  `json:"decision" db:"decision"`
	RequiredForms   []string  `json:"required_forms" db:"required_forms"`
	RequiredActions []string  `json:"required_actions" db:"required_actions"`
	Messages        []string  `json:"messages" db:"messages"`
	Reviewer        *Reviewer `json:"reviewer,omitempty" db:"reviewer"`
	Audit           AuditInfo `json:"audit" db:"audit"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" db:"updated_at"`
}

// ApprovalRecord запись maker/checker согласования по платежу
type ApprovalRecord struct {
	ID         int64          `json:"id" db:"id"`
	PaymentID  string         `json:"payment_id" db:"payment_id"`
	UserID     string         `json:"user_id" db:"user_id"`
	Role       ApprovalRole   `json:"role" db:"role"`
	Status     ApprovalStatus `json:"status" db:"status"`
	Notes      *string        `json:"notes,omitempty" db:"notes"`
	ApprovedAt *time.Time     `json:"approved_at,omitempty" db:"approved_at"`
	CreatedAt  time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at" db:"updated_at"`
}

// DocumentRecord метаданные загруженного подтверждающего документа
type DocumentRecord struct {
	ID           int64        `json:"id" db:"id"`
	PaymentID    string       `json:"payment_id" db:"payment_id"`
	Type         DocumentType `json:"type" db:"type"`
	FilePath     string       `json:"file_path" db:"file_path"`
	OriginalName string       `json:"original_name" db:"original_name"`
	FileSize     int64        `json:"file_size" db:"file_size"`
	CreatedAt    time.Time    `json:"created_at" db:"created_at"`
}

// CheckDetails запись решения вместе с согласованиями и документами
type CheckDetails struct {
	Check     *CheckRecord      `json:"check"`
	Approvals []*ApprovalRecord `json:"approvals"`
	Documents []*DocumentRecord `json:"documents"`
}

// ResolveApprovalRequest тело запроса на решение по согласованию
type ResolveApprovalRequest struct {
	Outcome ApprovalStatus `json:"outcome" binding:"required,oneof=approved rejected"`
	UserID  string         `json:"userId" binding:"required"`
	Notes   string         `json:"notes"`
}

// CreateApprovalRequest тело запроса на создание требования согласования
type CreateApprovalRequest struct {
	Role ApprovalRole `json:"role" binding:"required,oneof=maker checker"`
}
