package email

// Compose builds a transport-ready message from campaign content. The body is
// wrapped in a single paragraph as-is; no templating or escaping is applied.
// Recipient addresses are copied but not validated.
func Compose(subject, body string, recipients []string) *Email {
	to := make([]string, len(recipients))
	copy(to, recipients)

	return &Email{
		To:       to,
		Subject:  subject,
		TextBody: body,
		HTMLBody: "<p>" + body + "</p>",
	}
}
