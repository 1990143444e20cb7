package mailer

// EmailJob is the JSON payload put on the RabbitMQ queue for sending email.
// Handlers enqueue jobs and return; cmd/email_worker renders the named
// template and delivers. Subject/Text/HTML may be given directly instead of
// a template.
type EmailJob struct {
	To       string         `json:"to"`
	Subject  string         `json:"subject,omitempty"`
	Text     string         `json:"text,omitempty"`
	HTML     string         `json:"html,omitempty"`
	Template string         `json:"template,omitempty"` // "confirm_email", "reset_password", "test_email"
	Data     map[string]any `json:"data,omitempty"`
}
