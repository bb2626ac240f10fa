package mailer

// EmailJob is the JSON payload put on the RabbitMQ queue by the API and
// consumed by the email worker.
type EmailJob struct {
	To       string         `json:"to"`
	Subject  string         `json:"subject,omitempty"`
	Text     string         `json:"text,omitempty"`
	HTML     string         `json:"html,omitempty"`
	Template string         `json:"template,omitempty"` // currently only "welcome"
	Data     map[string]any `json:"data,omitempty"`
}
