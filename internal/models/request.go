package models

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"payment-preconfirm/internal/apperrors"
)

// CopResult результат проверки Confirmation of Payee
type CopResult string

const (
	CopMatch        CopResult = "match"
	CopCloseMatch   CopResult = "close_match"
	CopNoMatch      CopResult = "no_match"
	CopNotSupported CopResult = "not_supported"
)

// Valid проверяет принадлежность значения перечислению
func (c CopResult) Valid() bool {
	switch c {
	case CopMatch, CopCloseMatch, CopNoMatch, CopNotSupported:
		return true
	}
	return false
}

// Amount сумма платежа; конвертация валют не выполняется
type Amount struct {
	Currency string           `json:"currency" binding:"required,len=3"`
	Value    *decimal.Decimal `json:"value" binding:"required"`
}

type Destination struct {
	Country string `json:"country" binding:"required,len=2"`
}

type Payee struct {
	ID                     string `json:"id" binding:"required"`
	IsNew                  bool   `json:"isNew"`
	BankFingerprintChanged *bool  `json:"bankFingerprintChanged,omitempty"`
}

// DecisionRequest представляет запрос на предварительную проверку платежа
type DecisionRequest struct {
	PaymentID    string         `json:"paymentId" binding:"required"`
	UserID       string         `json:"userId" binding:"required"`
	Amount       Amount         `json:"amount"`
	Destination  Destination    `json:"destination"`
	Payee        Payee          `json:"payee"`
	Cop          *CopResult     `json:"cop,omitempty" binding:"omitempty,oneof=match close_match no_match not_supported"`
	AnomalyScore *float64       `json:"anomaly_score,omitempty" binding:"omitempty,gte=0,lte=1"`
	Context      RequestContext `json:"context"`
	Answers      Answers        `json:"answers,omitempty"`
	Attachments  []interface{}  `json:"attachments,omitempty"`
}

// Validate повторяет правила границы для запросов, пришедших не через gin (gRPC, генератор)
func (r *DecisionRequest) Validate() error {
	if strings.TrimSpace(r.PaymentID) == "" {
		return apperrors.Validation("paymentId is required")
	}
	if strings.TrimSpace(r.UserID) == "" {
		return apperrors.Validation("userId is required")
	}
	if len(r.Amount.Currency) != 3 {
		return apperrors.Validation("amount.currency must be exactly 3 characters")
	}
	if r.Amount.Value == nil {
		return apperrors.Validation("amount.value is required")
	}
	if r.Amount.Value.IsNegative() {
		return apperrors.Validation("amount.value must be >= 0")
	}
	if len(r.Destination.Country) != 2 {
		return apperrors.Validation("destination.country must be exactly 2 characters")
	}
	if strings.TrimSpace(r.Payee.ID) == "" {
		return apperrors.Validation("payee.id is required")
	}
	if r.Cop != nil && !r.Cop.Valid() {
		return apperrors.Validation("cop must be one of match, close_match, no_match, not_supported")
	}
	if r.AnomalyScore != nil && (*r.AnomalyScore < 0 || *r.AnomalyScore > 1) {
		return apperrors.Validation("anomaly_score must be within [0, 1]")
	}
	if r.Context.Org != nil && r.Context.Org.HighValueThreshold != nil && r.Context.Org.HighValueThreshold.IsNegative() {
		return apperrors.Validation("context.org.high_value_threshold must be >= 0")
	}
	return nil
}

// CopString возвращает результат CoP для сохранения (nil, если не передан)
func (r *DecisionRequest) CopString() *string {
	if r.Cop == nil {
		return nil
	}
	s := string(*r.Cop)
	return &s
}

// OrgContext настройки организации, пришедшие вместе с запросом
type OrgContext struct {
	HighValueThreshold *decimal.Decimal `json:"high_value_threshold,omitempty"`
}

// RequestContext типизированный контекст запроса.
// Неизвестные ключи сохраняются в Extra и возвращаются при сериализации.
type RequestContext struct {
	Org    *OrgContext
	IsBulk bool
	Extra  map[string]json.RawMessage
}

func (c *RequestContext) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*c = RequestContext{}
	for key, value := range raw {
		switch key {
		case "org":
			if string(value) == "null" {
				continue
			}
			var org OrgContext
			if err := json.Unmarshal(value, &org); err != nil {
				return err
			}
			c.Org = &org
		case "isBulk":
			var v interface{}
			if err := json.Unmarshal(value, &v); err != nil {
				return err
			}
			c.IsBulk = Truthy(v)
		default:
			if c.Extra == nil {
				c.Extra = make(map[string]json.RawMessage)
			}
			c.Extra[key] = value
		}
	}
	return nil
}

func (c RequestContext) MarshalJSON() ([]byte, error) {
	out := make(map[string]interface{}, len(c.Extra)+2)
	for key, value := range c.Extra {
		out[key] = value
	}
	if c.Org != nil {
		out["org"] = c.Org
	}
	out["isBulk"] = c.IsBulk
	return json.Marshal(out)
}

// Answers ответы пользователя на вопросы анкеты: id вопроса -> значение
type Answers map[string]interface{}

// Flag возвращает истинность ответа; отсутствующий ответ считается false
func (a Answers) Flag(key string) bool {
	if a == nil {
		return false
	}
	return Truthy(a[key])
}

// Strings возвращает только строковые ответы; остальные типы пропускаются
func (a Answers) Strings() []string {
	var result []string
	for _, value := range a {
		if s, ok := value.(string); ok {
			result = append(result, s)
		}
	}
	return result
}

// Truthy приводит произвольное JSON-значение к bool
func Truthy(v interface{}) bool {
	switch val := v.(type) {
	case nil:
		return false
	case bool:
		return val
	case string:
		return val != "" && val != "0"
	case float64:
		return val != 0
	case float32:
		return val != 0
	case int:
		return val != 0
	case int64:
		return val != 0
	case json.Number:
		f, err := strconv.ParseFloat(string(val), 64)
		return err == nil && f != 0
	case []interface{}:
		return len(val) > 0
	case map[string]interface{}:
		return len(val) > 0
	default:
		return true
	}
}
