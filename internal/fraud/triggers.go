package fraud

import (
	"strings"

	"github.com/shopspring/decimal"

	"payment-preconfirm/config"
	"payment-preconfirm/internal/models"
)

const (
	DefaultHighValueThreshold = 10000.0 // в единицах валюты платежа
	DefaultAnomalyThreshold   = 0.8
	DefaultHomeCountry        = "GB"
)

// investmentKeywords ищутся в строковых ответах без учета регистра
var investmentKeywords = []string{"crypto", "bot", "guaranteed", "MT4", "broker", "trading"}

var (
	romancePressureAnswers = []string{"pressure_or_secrecy", "keep_secret", "rushed", "screen_share"}
	cryptoMuleAnswers      = []string{"crypto_exchange", "moving_for_others", "funds_returned"}
)

// Thresholds статические пороги вычисления триггеров
type Thresholds struct {
	HighValue   decimal.Decimal
	Anomaly     float64
	HomeCountry string
}

// DefaultThresholds возвращает пороги по умолчанию
func DefaultThresholds() Thresholds {
	return Thresholds{
		HighValue:   decimal.NewFromFloat(DefaultHighValueThreshold),
		Anomaly:     DefaultAnomalyThreshold,
		HomeCountry: DefaultHomeCountry,
	}
}

// ThresholdsFromConfig переносит пороги из конфигурации; пустая страна заменяется значением по умолчанию
func ThresholdsFromConfig(cfg config.RiskConfig) Thresholds {
	thresholds := DefaultThresholds()
	if cfg.DefaultHighValueThreshold > 0 {
		thresholds.HighValue = decimal.NewFromFloat(cfg.DefaultHighValueThreshold)
	}
	if cfg.AnomalyThreshold > 0 {
		thresholds.Anomaly = cfg.AnomalyThreshold
	}
	if cfg.HomeCountry != "" {
		thresholds.HomeCountry = cfg.HomeCountry
	}
	return thresholds
}

// TriggerEvaluator вычисляет сигналы риска по запросу. Не имеет состояния и побочных эффектов.
type TriggerEvaluator struct {
	thresholds Thresholds
}

func NewTriggerEvaluator(thresholds Thresholds) *TriggerEvaluator {
	return &TriggerEvaluator{thresholds: thresholds}
}

// Evaluate вычисляет все триггеры; каждое правило проверяется независимо и всегда
func (e *TriggerEvaluator) Evaluate(req *models.DecisionRequest) models.TriggerSet {
	return models.TriggerSet{
		NewPayee:           req.Payee.IsNew,
		ValueHigh:          e.isHighValue(req),
		PatternChange:      e.isPatternChange(req.AnomalyScore),
		InvestmentKeywords: hasInvestmentKeywords(req.Answers),
		InvoiceChange:      req.Payee.BankFingerprintChanged != nil && *req.Payee.BankFingerprintChanged,
		International:      e.isInternational(req.Destination),
		RomancePressure:    anyFlag(req.Answers, romancePressureAnswers),
		CryptoMule:         anyFlag(req.Answers, cryptoMuleAnswers),
		CopNoMatch:         req.Cop != nil && *req.Cop == models.CopNoMatch,
	}
}

// isHighValue сравнивает сумму с порогом организации или порогом по умолчанию
func (e *TriggerEvaluator) isHighValue(req *models.DecisionRequest) bool {
	if req.Amount.Value == nil {
		return false
	}
	threshold := e.thresholds.HighValue
	if org := req.Context.Org; org != nil && org.HighValueThreshold != nil {
		threshold = *org.HighValueThreshold
	}
	return req.Amount.Value.GreaterThan(threshold)
}

func (e *TriggerEvaluator) isPatternChange(score *float64) bool {
	anomaly := 0.0
	if score != nil {
		anomaly = *score
	}
	return anomaly >= e.thresholds.Anomaly
}

func (e *TriggerEvaluator) isInternational(destination models.Destination) bool {
	return destination.Country != "" && destination.Country != e.thresholds.HomeCountry
}

// hasInvestmentKeywords проверяет явный ответ investment_features и строковые ответы
func hasInvestmentKeywords(answers models.Answers) bool {
	for _, value := range answers.Strings() {
		lower := strings.ToLower(value)
		for _, keyword := range investmentKeywords {
			if strings.Contains(lower, strings.ToLower(keyword)) {
				return true
			}
		}
	}
	return answers.Flag("investment_features")
}

func anyFlag(answers models.Answers, keys []string) bool {
	for _, key := range keys {
		if answers.Flag(key) {
			return true
		}
	}
	return false
}
