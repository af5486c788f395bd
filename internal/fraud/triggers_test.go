package fraud

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"payment-preconfirm/config"
	"payment-preconfirm/internal/models"
)

func newRequest(value int64) *models.DecisionRequest {
	amount := decimal.NewFromInt(value)
	return &models.DecisionRequest{
		PaymentID:   "pay_001",
		UserID:      "user_001",
		Amount:      models.Amount{Currency: "GBP", Value: &amount},
		Destination: models.Destination{Country: "GB"},
		Payee:       models.Payee{ID: "payee_001"},
	}
}

func boolPtr(v bool) *bool                        { return &v }
func floatPtr(v float64) *float64                 { return &v }
func copPtr(v models.CopResult) *models.CopResult { return &v }

func TestEvaluate_NoTriggers(t *testing.T) {
	evaluator := NewTriggerEvaluator(DefaultThresholds())

	triggers := evaluator.Evaluate(newRequest(50))

	assert.Equal(t, models.TriggerSet{}, triggers)
	assert.Empty(t, triggers.Fired())
}

func TestEvaluate_ValueHigh(t *testing.T) {
	evaluator := NewTriggerEvaluator(DefaultThresholds())

	tests := []struct {
		name      string
		value     int64
		threshold *decimal.Decimal
		expected  bool
	}{
		{"Below default", 9999, nil, false},
		{"Equal to default is not high", 10000, nil, false},
		{"Above default", 10001, nil, true},
		{"Org threshold lower", 600, func() *decimal.Decimal { d := decimal.NewFromInt(500); return &d }(), true},
		{"Org threshold higher", 20000, func() *decimal.Decimal { d := decimal.NewFromInt(50000); return &d }(), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := newRequest(tt.value)
			if tt.threshold != nil {
				req.Context.Org = &models.OrgContext{HighValueThreshold: tt.threshold}
			}
			assert.Equal(t, tt.expected, evaluator.Evaluate(req).ValueHigh)
		})
	}
}

func TestEvaluate_PatternChange(t *testing.T) {
	evaluator := NewTriggerEvaluator(DefaultThresholds())

	req := newRequest(50)
	assert.False(t, evaluator.Evaluate(req).PatternChange, "missing score defaults to 0")

	req.AnomalyScore = floatPtr(0.79)
	assert.False(t, evaluator.Evaluate(req).PatternChange)

	req.AnomalyScore = floatPtr(0.8)
	assert.True(t, evaluator.Evaluate(req).PatternChange)
}

func TestEvaluate_InvestmentKeywords(t *testing.T) {
	evaluator := NewTriggerEvaluator(DefaultThresholds())

	tests := []struct {
		name     string
		answers  models.Answers
		expected bool
	}{
		{"Explicit flag", models.Answers{"investment_features": true}, true},
		{"Keyword lower case", models.Answers{"purpose": "my trading account"}, true},
		{"Keyword mixed case", models.Answers{"purpose": "set up on mt4 platform"}, true},
		{"Keyword inside word", models.Answers{"purpose": "Robot vacuum"}, true},
		{"No keywords", models.Answers{"purpose": "rent for March"}, false},
		{"Non-string values skipped", models.Answers{"count": 3.0, "list": []interface{}{"crypto"}}, false},
		{"Flag false", models.Answers{"investment_features": false}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := newRequest(50)
			req.Answers = tt.answers
			assert.Equal(t, tt.expected, evaluator.Evaluate(req).InvestmentKeywords)
		})
	}
}

func TestEvaluate_AnswerBasedTriggers(t *testing.T) {
	evaluator := NewTriggerEvaluator(DefaultThresholds())

	for _, key := range []string{"pressure_or_secrecy", "keep_secret", "rushed", "screen_share"} {
		req := newRequest(50)
		req.Answers = models.Answers{key: true}
		triggers := evaluator.Evaluate(req)
		assert.True(t, triggers.RomancePressure, key)
		assert.False(t, triggers.CryptoMule, key)
	}

	for _, key := range []string{"crypto_exchange", "moving_for_others", "funds_returned"} {
		req := newRequest(50)
		req.Answers = models.Answers{key: true}
		triggers := evaluator.Evaluate(req)
		assert.True(t, triggers.CryptoMule, key)
		assert.False(t, triggers.RomancePressure, key)
	}
}

func TestEvaluate_PayeeDestinationAndCop(t *testing.T) {
	evaluator := NewTriggerEvaluator(DefaultThresholds())

	req := newRequest(50)
	req.Payee.IsNew = true
	req.Payee.BankFingerprintChanged = boolPtr(true)
	req.Destination.Country = "FR"
	req.Cop = copPtr(models.CopNoMatch)

	triggers := evaluator.Evaluate(req)

	assert.True(t, triggers.NewPayee)
	assert.True(t, triggers.InvoiceChange)
	assert.True(t, triggers.International)
	assert.True(t, triggers.CopNoMatch)
	assert.Equal(t, []string{
		models.TriggerNewPayee,
		models.TriggerInvoiceChange,
		models.TriggerInternational,
		models.TriggerCopNoMatch,
	}, triggers.Fired())
}

func TestEvaluate_CopOtherValues(t *testing.T) {
	evaluator := NewTriggerEvaluator(DefaultThresholds())

	for _, cop := range []models.CopResult{models.CopMatch, models.CopCloseMatch, models.CopNotSupported} {
		req := newRequest(50)
		req.Cop = copPtr(cop)
		assert.False(t, evaluator.Evaluate(req).CopNoMatch, string(cop))
	}
}

func TestEvaluate_CustomHomeCountry(t *testing.T) {
	thresholds := DefaultThresholds()
	thresholds.HomeCountry = "IE"
	evaluator := NewTriggerEvaluator(thresholds)

	req := newRequest(50)
	req.Destination.Country = "IE"
	assert.False(t, evaluator.Evaluate(req).International)

	req.Destination.Country = "GB"
	assert.True(t, evaluator.Evaluate(req).International)
}

func TestThresholdsFromConfig(t *testing.T) {
	thresholds := ThresholdsFromConfig(config.RiskConfig{
		DefaultHighValueThreshold: 2500,
		AnomalyThreshold:          0.6,
		HomeCountry:               "IE",
	})

	assert.True(t, thresholds.HighValue.Equal(decimal.NewFromInt(2500)))
	assert.Equal(t, 0.6, thresholds.Anomaly)
	assert.Equal(t, "IE", thresholds.HomeCountry)

	evaluator := NewTriggerEvaluator(thresholds)
	req := newRequest(3000)
	req.Destination.Country = "IE"
	triggers := evaluator.Evaluate(req)
	assert.True(t, triggers.ValueHigh)
	assert.False(t, triggers.International)
}

func TestThresholdsFromConfig_EmptyFallsBackToDefaults(t *testing.T) {
	thresholds := ThresholdsFromConfig(config.RiskConfig{})

	assert.Equal(t, DefaultThresholds(), thresholds)
}
