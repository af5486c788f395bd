package generator

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"payment-preconfirm/internal/apperrors"
	"payment-preconfirm/internal/models"
)

// Scenario ожидаемый итог сгенерированного запроса при порогах по умолчанию
type Scenario string

const (
	ScenarioAllow        Scenario = "allow"
	ScenarioStepUp       Scenario = "step_up"
	ScenarioBlock        Scenario = "block"
	ScenarioMakerChecker Scenario = "maker_checker"
)

// Scenarios перечисляет поддерживаемые сценарии
var Scenarios = []Scenario{ScenarioAllow, ScenarioStepUp, ScenarioBlock, ScenarioMakerChecker}

// ParseScenario разбирает сценарий из query-параметра; пустое значение означает allow
func ParseScenario(value string) (Scenario, error) {
	if value == "" {
		return ScenarioAllow, nil
	}
	for _, s := range Scenarios {
		if string(s) == value {
			return s, nil
		}
	}
	return "", apperrors.Validation("scenario must be one of allow, step_up, block, maker_checker")
}

// RequestGenerator строит реалистичные запросы предварительной проверки для демо и тестов
type RequestGenerator struct {
	mu   sync.Mutex
	rand *rand.Rand
}

func NewRequestGenerator() *RequestGenerator {
	return &RequestGenerator{
		rand: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// GenerateDecisionRequest генерирует запрос для сценария; неизвестный сценарий трактуется как allow
func (g *RequestGenerator) GenerateDecisionRequest(scenario Scenario) *models.DecisionRequest {
	g.mu.Lock()
	defer g.mu.Unlock()

	req := &models.DecisionRequest{
		PaymentID:   "pay_" + uuid.New().String(),
		UserID:      fmt.Sprintf("user_%d", g.rand.Intn(100000)),
		Amount:      g.amount(10, 5000),
		Destination: models.Destination{Country: "GB"},
		Payee: models.Payee{
			ID: fmt.Sprintf("payee_%d", g.rand.Intn(1000000)),
		},
		Answers: models.Answers{
			"payee_relationship":    "existing",
			"payment_purpose":       g.pick("gift_family", "goods_services", "property", "charity"),
			"details_source":        g.pick("official_invoice_portal", "direct_in_person"),
			"expect_goods_services": true,
			"pressure_or_secrecy":   false,
			"investment_features":   false,
			"attestation":           true,
		},
	}

	switch scenario {
	case ScenarioStepUp:
		g.stepUp(req)
	case ScenarioBlock:
		g.block(req)
	case ScenarioMakerChecker:
		g.makerChecker(req)
	default:
		g.allow(req)
	}

	return req
}

func (g *RequestGenerator) allow(req *models.DecisionRequest) {
	if g.rand.Intn(2) == 0 {
		match := models.CopMatch
		req.Cop = &match
	}
	score := g.roundScore(g.rand.Float64() * 0.5)
	req.AnomalyScore = &score
}

// stepUp добавляет один триггер, требующий форм или действий
func (g *RequestGenerator) stepUp(req *models.DecisionRequest) {
	switch g.rand.Intn(4) {
	case 0:
		// CoP no_match для нового получателя
		noMatch := models.CopNoMatch
		req.Cop = &noMatch
		req.Payee.IsNew = true
		req.Answers["payee_relationship"] = "new"
	case 1:
		req.Destination.Country = g.pick("AE", "IN", "DE", "FR", "US", "ZA")
	case 2:
		changed := true
		req.Payee.BankFingerprintChanged = &changed
		req.Answers["details_source"] = "message_email_sms"
	case 3:
		score := g.roundScore(0.8 + g.rand.Float64()*0.19)
		req.AnomalyScore = &score
	}
}

func (g *RequestGenerator) block(req *models.DecisionRequest) {
	switch g.rand.Intn(2) {
	case 0:
		req.Answers["pressure_or_secrecy"] = true
		req.Answers[g.pick("keep_secret", "rushed", "screen_share")] = true
	case 1:
		req.Answers[g.pick("crypto_exchange", "moving_for_others", "funds_returned")] = true
	}
}

func (g *RequestGenerator) makerChecker(req *models.DecisionRequest) {
	switch g.rand.Intn(2) {
	case 0:
		req.Amount = g.amount(15000, 100000)
	case 1:
		req.Context.IsBulk = true
	}
}

func (g *RequestGenerator) amount(min, max float64) models.Amount {
	value := decimal.NewFromFloat(min + g.rand.Float64()*(max-min)).Round(2)
	return models.Amount{Currency: "GBP", Value: &value}
}

func (g *RequestGenerator) roundScore(v float64) float64 {
	return float64(int(v*100)) / 100
}

func (g *RequestGenerator) pick(values ...string) string {
	return values[g.rand.Intn(len(values))]
}
