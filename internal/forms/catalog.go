package forms

import (
	"sort"

	"payment-preconfirm/internal/apperrors"
)

// Option вариант ответа для полей выбора
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Field поле анкеты
type Field struct {
	ID         string              `json:"id"`
	Label      string              `json:"label"`
	Type       string              `json:"type"`
	Required   bool                `json:"required,omitempty"`
	RequiredIf map[string][]string `json:"required_if,omitempty"`
	Options    []Option            `json:"options,omitempty"`
	Text       string              `json:"text,omitempty"`
}

// Form определение анкеты, запрашиваемой у пользователя
type Form struct {
	ID          string  `json:"id"`
	Version     string  `json:"version,omitempty"`
	Title       string  `json:"title"`
	Description string  `json:"description,omitempty"`
	Fields      []Field `json:"fields"`
}

// Catalog статический каталог форм. Содержимое - конфигурация, а не логика.
type Catalog struct {
	forms map[string]func() *Form
}

func NewCatalog() *Catalog {
	return &Catalog{
		forms: map[string]func() *Form{
			"precheck_consumer_v1": consumerForm,
			"precheck_business_v1": businessForm,
			"intl_extension_v1":    internationalForm,
			"investment_block_v1":  investmentForm,
			"repeat_check_v1":      repeatCheckForm,
		},
	}
}

// GetForm возвращает новую копию формы или NotFound для неизвестного id
func (c *Catalog) GetForm(formID string) (*Form, error) {
	build, ok := c.forms[formID]
	if !ok {
		return nil, apperrors.NotFound("form %s not found", formID)
	}
	return build(), nil
}

// IDs возвращает отсортированный список идентификаторов форм
func (c *Catalog) IDs() []string {
	ids := make([]string, 0, len(c.forms))
	for id := range c.forms {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func consumerForm() *Form {
	return &Form{
		ID:          "precheck_consumer_v1",
		Version:     "1.0.0",
		Title:       "A quick check before we send this payment",
		Description: "This payment looks a bit unusual for your account. These checks help protect you from fraud and mistakes.",
		Fields: []Field{
			{
				ID:       "payee_relationship",
				Label:    "Who are you paying?",
				Type:     "single_select",
				Required: true,
				Options: []Option{
					{Value: "new", Label: "A new payee"},
					{Value: "existing", Label: "An existing payee"},
					{Value: "self", Label: "My own account"},
				},
			},
			{
				ID:       "payment_purpose",
				Label:    "What's the purpose of this payment?",
				Type:     "single_select",
				Required: true,
				Options: []Option{
					{Value: "gift_family", Label: "Gift or family & friends"},
					{Value: "goods_services", Label: "Paying for goods or services"},
					{Value: "investment", Label: "Investment or trading"},
					{Value: "property", Label: "Property/rent/deposit"},
					{Value: "loan", Label: "Loan to someone"},
					{Value: "charity", Label: "Donation/charity"},
					{Value: "other", Label: "Other"},
				},
			},
			{
				ID:       "details_source",
				Label:    "How did you get the payee's bank details?",
				Type:     "single_select",
				Required: true,
				Options: []Option{
					{Value: "official_invoice_portal", Label: "Invoice or official website/portal"},
					{Value: "direct_in_person", Label: "Directly from the person (in person/phone)"},
					{Value: "message_email_sms", Label: "From email/SMS/WhatsApp/social media"},
					{Value: "friend_third_party", Label: "From a friend or third party"},
					{Value: "memory_manual", Label: "Typed from memory"},
				},
			},
			{
				ID:       "expect_goods_services",
				Label:    "Do you expect to receive goods/services for this payment?",
				Type:     "boolean",
				Required: true,
			},
			{
				ID:       "pressure_or_secrecy",
				Label:    "Has anyone asked you to keep this payment secret or do it urgently?",
				Type:     "boolean",
				Required: true,
			},
			{
				ID:       "investment_features",
				Label:    "Is this related to crypto, trading bots, or 'guaranteed returns'?",
				Type:     "boolean",
				Required: true,
			},
			{
				ID:       "attestation",
				Label:    "Declaration",
				Type:     "checkbox",
				Required: true,
				Text:     "I confirm this payment is my decision. I understand bank transfers may be irreversible if I've been scammed.",
			},
		},
	}
}

func businessForm() *Form {
	return &Form{
		ID:          "precheck_business_v1",
		Version:     "1.0.0",
		Title:       "Quick supplier checks",
		Description: "We run a brief check for fraud and payment errors.",
		Fields: []Field{
			{
				ID:       "payee_type",
				Label:    "Payee type",
				Type:     "single_select",
				Required: true,
				Options: []Option{
					{Value: "supplier", Label: "Supplier / Vendor"},
					{Value: "payroll", Label: "Employee / Payroll"},
					{Value: "tax_duty", Label: "Tax / Duties / HMRC"},
					{Value: "refund", Label: "Customer refund"},
					{Value: "intercompany", Label: "Intercompany"},
					{Value: "professional_fees", Label: "Legal/Accounting/Professional"},
					{Value: "other", Label: "Other"},
				},
			},
		},
	}
}

func internationalForm() *Form {
	return &Form{
		ID:    "intl_extension_v1",
		Title: "International transfer details",
		Fields: []Field{
			{
				ID:       "destination_country",
				Label:    "Destination country",
				Type:     "country",
				Required: true,
			},
			{
				ID:    "purpose_code",
				Label: "Purpose code",
				Type:  "single_select",
				RequiredIf: map[string][]string{
					"destination_country_in": {"AE", "IN", "CN", "BR", "TR", "MX", "ZA"},
				},
			},
		},
	}
}

func investmentForm() *Form {
	return &Form{
		ID:    "investment_block_v1",
		Title: "Investment risk check",
		Fields: []Field{
			{
				ID:    "investment_type",
				Label: "Type of investment",
				Type:  "single_select",
				Options: []Option{
					{Value: "listed", Label: "Listed shares/ISA/SIPP"},
					{Value: "crypto", Label: "Crypto/digital assets"},
					{Value: "cfd_fx", Label: "CFD/FX platform"},
					{Value: "managed_account", Label: "'Managed account' or copy-trading"},
					{Value: "other", Label: "Other"},
				},
			},
		},
	}
}

func repeatCheckForm() *Form {
	return &Form{
		ID:    "repeat_check_v1",
		Title: "Confirm repeat payment",
		Fields: []Field{
			{
				ID:       "purpose_unchanged",
				Label:    "Is the purpose unchanged since last time?",
				Type:     "boolean",
				Required: true,
			},
		},
	}
}
