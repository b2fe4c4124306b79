package domain

// FAQQuestion maps a display question to its lookup key on the ledger.
type FAQQuestion struct {
	Question string
	Key      string
}

var FAQCatalog = []FAQQuestion{
	{Question: "How do I create an account?", Key: "account_creation"},
	{Question: "What payment methods do you accept?", Key: "payment_methods"},
	{Question: "How long does shipping take?", Key: "shipping_time"},
	{Question: "What is your return policy?", Key: "return_policy"},
	{Question: "How can I track my order?", Key: "order_tracking"},
	{Question: "Do you offer international shipping?", Key: "international_shipping"},
	{Question: "How do I contact customer support?", Key: "contact_info"},
	{Question: "Are my payment details secure?", Key: "security_check"},
}

// FaqEntry is a question whose answer is fetched once and then kept.
type FaqEntry struct {
	Question string
	Key      string
	Answer   *string
	Pending  bool
}

func (e FaqEntry) Resolved() bool {
	return e.Answer != nil
}

const fallbackAnswerUnknown = "Please contact our support team at support@primemall.com for assistance."

var fallbackAnswers = map[string]string{
	"account_creation":       "Creating an account is easy! Simply click on the 'Sign Up' button at the top of the page, enter your email address and create a password. You'll receive a confirmation email to verify your account.",
	"payment_methods":        "We accept all major credit cards (Visa, MasterCard, American Express), PayPal, Apple Pay, and Google Pay. All transactions are secured with industry-standard encryption.",
	"shipping_time":          "Standard shipping typically takes 5-7 business days. Express shipping options are available at checkout for faster delivery (2-3 business days). International shipping times vary by location.",
	"return_policy":          "We offer a 30-day return policy for most items. Products must be unused and in their original packaging. Simply contact our customer support team to initiate a return.",
	"order_tracking":         "Once your order ships, you'll receive a confirmation email with a tracking number. You can also log into your account and view your order status in the 'My Orders' section.",
	"international_shipping": "Yes! We ship to over 100 countries worldwide. Shipping costs and delivery times vary by location. You can see the available options at checkout after entering your address.",
	"contact_info":           "You can reach our customer support team via the Contact page, by email at support@primemall.com, or through our live chat feature available 24/7. We typically respond within 24 hours.",
	"security_check":         "Absolutely. We use SSL encryption and are PCI-DSS compliant to ensure your payment information is always protected. We never store your full credit card details on our servers.",
}

// FallbackAnswer returns the offline answer for key, or a generic pointer to
// support for unknown keys.
func FallbackAnswer(key string) string {
	if answer, ok := fallbackAnswers[key]; ok {
		return answer
	}

	return fallbackAnswerUnknown
}
