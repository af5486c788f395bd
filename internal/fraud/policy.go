package fraud

import (
	"payment-preconfirm/internal/models"
)

// Идентификаторы форм и действий, которые может запросить движок
const (
	FormInternationalExtension = "intl_extension_v1"
	FormInvestmentBlock        = "investment_block_v1"

	ActionOOBVerification       = "oob_verification_via_known_phone"
	ActionUploadInvoice         = "upload_invoice_pdf"
	ActionRequestSupportingDocs = "request_supporting_docs"
)

// Сообщения пользователю
const (
	MessageRomancePressure = "Reported coercion/pressure detected. Payment blocked and escalated to fraud team."
	MessageCryptoMule      = "Potential money mule activity detected. Payment blocked. Please contact support."
	MessageInternational   = "International payment requires additional information."
	MessageInvestment      = "Investment-related payment requires FCA verification."
	MessageCopNoMatch      = "Confirmation of Payee failed. Please verify payee details via a known phone number."
	MessageInvoiceChange   = "Bank details have changed. Please upload invoice and verify via a known number."
	MessageUnusualPayment  = "This payment is unusual for your account. Additional verification required."
	MessageMakerChecker    = "This payment requires approval from a second authorized person."
)

// PolicyResolver сопоставляет набор триггеров с решением.
// Чистая детерминированная функция: без I/O и без состояния.
type PolicyResolver struct{}

func NewPolicyResolver() *PolicyResolver {
	return &PolicyResolver{}
}

// Resolve применяет правила строго сверху вниз.
// Порядок:
//  1. Жесткие блокировки (romance_pressure, затем crypto_mule) - завершают оценку
//  2. Накопление форм, действий и сообщений
//  3. Двойной контроль (value_high или isBulk) - require_maker_checker
//  4. allow, если ничего не накоплено, иначе step_up
func (p *PolicyResolver) Resolve(req *models.DecisionRequest, triggers models.TriggerSet) *models.DecisionOutcome {
	// 1. Жесткие блокировки
	if triggers.RomancePressure {
		return blockOutcome(MessageRomancePressure)
	}
	if triggers.CryptoMule {
		return blockOutcome(MessageCryptoMule)
	}

	// 2. Накопление требований
	outcome := newOutcome()

	if triggers.International {
		outcome.RequiredForms = append(outcome.RequiredForms, FormInternationalExtension)
		outcome.Messages = append(outcome.Messages, MessageInternational)
	}

	if triggers.InvestmentKeywords {
		outcome.RequiredForms = append(outcome.RequiredForms, FormInvestmentBlock)
		outcome.Messages = append(outcome.Messages, MessageInvestment)
	}

	if triggers.CopNoMatch && triggers.NewPayee {
		outcome.RequiredActions = append(outcome.RequiredActions, ActionOOBVerification)
		outcome.Messages = append(outcome.Messages, MessageCopNoMatch)
	}

	// Действие OOB может повториться после правила CoP; дубликаты не удаляются
	if triggers.InvoiceChange {
		outcome.RequiredActions = append(outcome.RequiredActions, ActionUploadInvoice, ActionOOBVerification)
		outcome.Messages = append(outcome.Messages, MessageInvoiceChange)
	}

	if triggers.ValueHigh || triggers.PatternChange {
		outcome.RequiredActions = append(outcome.RequiredActions, ActionRequestSupportingDocs)
		outcome.Messages = append(outcome.Messages, MessageUnusualPayment)
	}

	// 3. Двойной контроль перекрывает итоговое решение, но сохраняет накопленное
	if triggers.ValueHigh || req.Context.IsBulk {
		outcome.Decision = models.DecisionRequireMakerChecker
		outcome.Approvals = append(outcome.Approvals, models.ApprovalRequirement{
			Role:     models.RoleChecker,
			Required: true,
		})
		outcome.Messages = append(outcome.Messages, MessageMakerChecker)
		return outcome
	}

	// 4. Итоговое решение
	if len(outcome.RequiredForms) > 0 || len(outcome.RequiredActions) > 0 {
		outcome.Decision = models.DecisionStepUp
	} else {
		outcome.Decision = models.DecisionAllow
	}

	return outcome
}

func newOutcome() *models.DecisionOutcome {
	return &models.DecisionOutcome{
		RequiredForms:   []string{},
		RequiredActions: []string{},
		Messages:        []string{},
		Approvals:       []models.ApprovalRequirement{},
	}
}

func blockOutcome(message string) *models.DecisionOutcome {
	outcome := newOutcome()
	outcome.Decision = models.DecisionBlock
	outcome.Messages = append(outcome.Messages, message)
	return outcome
}
