package fraud

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"payment-preconfirm/internal/models"
)

func decide(req *models.DecisionRequest) *models.DecisionOutcome {
	triggers := NewTriggerEvaluator(DefaultThresholds()).Evaluate(req)
	return NewPolicyResolver().Resolve(req, triggers)
}

func TestResolve_ScenarioA_Allow(t *testing.T) {
	outcome := decide(newRequest(50))

	assert.Equal(t, models.DecisionAllow, outcome.Decision)
	assert.Empty(t, outcome.RequiredForms)
	assert.Empty(t, outcome.RequiredActions)
	assert.Empty(t, outcome.Messages)
	assert.Empty(t, outcome.Approvals)
}

func TestResolve_ScenarioB_MakerChecker(t *testing.T) {
	req := newRequest(50000)
	threshold := decimal.NewFromInt(10000)
	req.Context.Org = &models.OrgContext{HighValueThreshold: &threshold}

	outcome := decide(req)

	assert.Equal(t, models.DecisionRequireMakerChecker, outcome.Decision)
	assert.Equal(t, []models.ApprovalRequirement{{Role: models.RoleChecker, Required: true}}, outcome.Approvals)
	assert.Equal(t, []string{ActionRequestSupportingDocs}, outcome.RequiredActions)
	assert.Equal(t, []string{MessageUnusualPayment, MessageMakerChecker}, outcome.Messages)
}

func TestResolve_ScenarioC_RomanceBlock(t *testing.T) {
	req := newRequest(50)
	req.Answers = models.Answers{"pressure_or_secrecy": true}

	outcome := decide(req)

	assert.Equal(t, models.DecisionBlock, outcome.Decision)
	assert.Equal(t, []string{MessageRomancePressure}, outcome.Messages)
	assert.Empty(t, outcome.RequiredForms)
	assert.Empty(t, outcome.RequiredActions)
	assert.Empty(t, outcome.Approvals)
}

func TestResolve_ScenarioD_CopNoMatchNewPayee(t *testing.T) {
	req := newRequest(50)
	req.Cop = copPtr(models.CopNoMatch)
	req.Payee.IsNew = true

	outcome := decide(req)

	assert.Equal(t, models.DecisionStepUp, outcome.Decision)
	assert.Contains(t, outcome.RequiredActions, ActionOOBVerification)
	assert.Equal(t, []string{MessageCopNoMatch}, outcome.Messages)
}

func TestResolve_CopNoMatchExistingPayeeAllows(t *testing.T) {
	req := newRequest(50)
	req.Cop = copPtr(models.CopNoMatch)

	outcome := decide(req)

	assert.Equal(t, models.DecisionAllow, outcome.Decision)
}

func TestResolve_HardBlocksWinOverEverything(t *testing.T) {
	req := newRequest(90000)
	req.Destination.Country = "NG"
	req.Payee.IsNew = true
	req.Payee.BankFingerprintChanged = boolPtr(true)
	req.Cop = copPtr(models.CopNoMatch)
	req.AnomalyScore = floatPtr(0.99)
	req.Context.IsBulk = true

	req.Answers = models.Answers{"funds_returned": true, "purpose": "guaranteed returns"}
	outcome := decide(req)
	assert.Equal(t, models.DecisionBlock, outcome.Decision)
	assert.Equal(t, []string{MessageCryptoMule}, outcome.Messages)
	assert.Empty(t, outcome.RequiredForms)
	assert.Empty(t, outcome.RequiredActions)
	assert.Empty(t, outcome.Approvals)

	// romance_pressure проверяется раньше crypto_mule
	req.Answers["screen_share"] = true
	outcome = decide(req)
	assert.Equal(t, []string{MessageRomancePressure}, outcome.Messages)
}

func TestResolve_AccumulationOrderAndDuplicateOOB(t *testing.T) {
	req := newRequest(50)
	req.Destination.Country = "US"
	req.Answers = models.Answers{"investment_features": true}
	req.Cop = copPtr(models.CopNoMatch)
	req.Payee.IsNew = true
	req.Payee.BankFingerprintChanged = boolPtr(true)
	req.AnomalyScore = floatPtr(0.9)

	outcome := decide(req)

	assert.Equal(t, models.DecisionStepUp, outcome.Decision)
	assert.Equal(t, []string{FormInternationalExtension, FormInvestmentBlock}, outcome.RequiredForms)
	assert.Equal(t, []string{
		ActionOOBVerification,
		ActionUploadInvoice,
		ActionOOBVerification,
		ActionRequestSupportingDocs,
	}, outcome.RequiredActions)
	assert.Equal(t, []string{
		MessageInternational,
		MessageInvestment,
		MessageCopNoMatch,
		MessageInvoiceChange,
		MessageUnusualPayment,
	}, outcome.Messages)
	assert.Empty(t, outcome.Approvals)
}

func TestResolve_BulkRequiresMakerCheckerWithAccumulatedForms(t *testing.T) {
	req := newRequest(50)
	req.Context.IsBulk = true
	req.Destination.Country = "DE"

	outcome := decide(req)

	assert.Equal(t, models.DecisionRequireMakerChecker, outcome.Decision)
	assert.Equal(t, []string{FormInternationalExtension}, outcome.RequiredForms)
	assert.Empty(t, outcome.RequiredActions)
	assert.Equal(t, []string{MessageInternational, MessageMakerChecker}, outcome.Messages)
	require.Len(t, outcome.Approvals, 1)
	assert.Equal(t, models.RoleChecker, outcome.Approvals[0].Role)
	assert.True(t, outcome.Approvals[0].Required)
}

func TestResolve_PatternChangeAloneStepsUp(t *testing.T) {
	req := newRequest(50)
	req.AnomalyScore = floatPtr(0.8)

	outcome := decide(req)

	assert.Equal(t, models.DecisionStepUp, outcome.Decision)
	assert.Equal(t, []string{ActionRequestSupportingDocs}, outcome.RequiredActions)
	assert.Empty(t, outcome.Approvals)
}

func TestResolve_IsDeterministic(t *testing.T) {
	resolver := NewPolicyResolver()
	req := newRequest(20000)
	req.Destination.Country = "FR"
	req.Answers = models.Answers{"purpose": "bot subscription"}
	triggers := NewTriggerEvaluator(DefaultThresholds()).Evaluate(req)

	first := resolver.Resolve(req, triggers)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, resolver.Resolve(req, triggers))
	}
}

func TestResolve_EveryTriggerCombinationYieldsOneDecision(t *testing.T) {
	resolver := NewPolicyResolver()
	req := newRequest(50)

	for mask := 0; mask < 1<<9; mask++ {
		bit := func(i int) bool { return mask&(1<<i) != 0 }
		triggers := models.TriggerSet{
			NewPayee:           bit(0),
			ValueHigh:          bit(1),
			PatternChange:      bit(2),
			InvestmentKeywords: bit(3),
			InvoiceChange:      bit(4),
			International:      bit(5),
			RomancePressure:    bit(6),
			CryptoMule:         bit(7),
			CopNoMatch:         bit(8),
		}

		outcome := resolver.Resolve(req, triggers)

		switch {
		case triggers.RomancePressure || triggers.CryptoMule:
			assert.Equal(t, models.DecisionBlock, outcome.Decision)
			assert.Len(t, outcome.Messages, 1)
			assert.Empty(t, outcome.RequiredForms)
			assert.Empty(t, outcome.RequiredActions)
			assert.Empty(t, outcome.Approvals)
		case triggers.ValueHigh:
			assert.Equal(t, models.DecisionRequireMakerChecker, outcome.Decision)
			assert.Contains(t, outcome.Approvals, models.ApprovalRequirement{Role: models.RoleChecker, Required: true})
		case len(outcome.RequiredForms) == 0 && len(outcome.RequiredActions) == 0:
			assert.Equal(t, models.DecisionAllow, outcome.Decision)
		default:
			assert.Equal(t, models.DecisionStepUp, outcome.Decision)
		}
	}
}
