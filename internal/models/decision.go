package models

// Decision итоговая классификация попытки платежа
type Decision string

const (
	DecisionAllow               Decision = "allow"
	DecisionStepUp              Decision = "step_up"
	DecisionBlock               Decision = "block"
	DecisionRequireMakerChecker Decision = "require_maker_checker"
)

// Имена триггеров риска в фиксированном порядке
const (
	TriggerNewPayee           = "new_payee"
	TriggerValueHigh          = "value_high"
	TriggerPatternChange      = "pattern_change"
	TriggerInvestmentKeywords = "investment_keywords"
	TriggerInvoiceChange      = "invoice_change"
	TriggerInternational      = "international"
	TriggerRomancePressure    = "romance_pressure"
	TriggerCryptoMule         = "crypto_mule"
	TriggerCopNoMatch         = "cop_no_match"
)

// TriggerNames перечисляет все триггеры в порядке сохранения
var TriggerNames = []string{
	TriggerNewPayee,
	TriggerValueHigh,
	TriggerPatternChange,
	TriggerInvestmentKeywords,
	TriggerInvoiceChange,
	TriggerInternational,
	TriggerRomancePressure,
	TriggerCryptoMule,
	TriggerCopNoMatch,
}

// TriggerSet набор булевых сигналов риска, вычисляемый заново для каждого запроса
type TriggerSet struct {
	NewPayee           bool `json:"new_payee"`
	ValueHigh          bool `json:"value_high"`
	PatternChange      bool `json:"pattern_change"`
	InvestmentKeywords bool `json:"investment_keywords"`
	InvoiceChange      bool `json:"invoice_change"`
	International      bool `json:"international"`
	RomancePressure    bool `json:"romance_pressure"`
	CryptoMule         bool `json:"crypto_mule"`
	CopNoMatch         bool `json:"cop_no_match"`
}

// ToMap возвращает триггеры в виде имя -> значение
func (t TriggerSet) ToMap() map[string]bool {
	return map[string]bool{
		TriggerNewPayee:           t.NewPayee,
		TriggerValueHigh:          t.ValueHigh,
		TriggerPatternChange:      t.PatternChange,
		TriggerInvestmentKeywords: t.InvestmentKeywords,
		TriggerInvoiceChange:      t.InvoiceChange,
		TriggerInternational:      t.International,
		TriggerRomancePressure:    t.RomancePressure,
		TriggerCryptoMule:         t.CryptoMule,
		TriggerCopNoMatch:         t.CopNoMatch,
	}
}

// Fired возвращает имена сработавших триггеров (только они сохраняются в БД)
func (t TriggerSet) Fired() []string {
	values := t.ToMap()
	fired := make([]string, 0, len(TriggerNames))
	for _, name := range TriggerNames {
		if values[name] {
			fired = append(fired, name)
		}
	}
	return fired
}

// ApprovalRequirement требование согласования вторым лицом
type ApprovalRequirement struct {
	Role     ApprovalRole `json:"role"`
	Required bool         `json:"required"`
}

// DecisionOutcome ответ движка решений
type DecisionOutcome struct {
	Decision        Decision              `json:"decision"`
	RequiredForms   []string              `json:"requiredForms"`
	RequiredActions []string              `json:"requiredActions"`
	Messages        []string              `json:"messages"`
	Approvals       []ApprovalRequirement `json:"approvals"`
}
