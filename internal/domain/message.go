package domain

// TemplateKind names the email template a delivery channel renders.
type TemplateKind string

const (
	TemplateUserActivation   TemplateKind = "user-activation-mail"
	TemplateSellerActivation TemplateKind = "seller-activation-mail"
	TemplateUserReset        TemplateKind = "forgot-password-user-mail"
	TemplateSellerReset      TemplateKind = "forgot-password-seller-mail"
)

// Message is one outbound notification. Phone is optional and only used by
// channels that mirror the message over SMS.
type Message struct {
	To       string
	Phone    string
	Subject  string
	Template TemplateKind
	Data     map[string]string
}
