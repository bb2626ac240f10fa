package mailer

import (
	"bytes"
	"fmt"
	"html/template"
)

// TemplateWelcome is sent once after a successful registration.
const TemplateWelcome = "welcome"

var welcomeHTML = template.Must(template.New("welcome").Parse(`
<html>
  <body style="font-family: sans-serif; color: #222;">
    <h2>Welcome to {{.AppName}}, {{.Name}}!</h2>
    <p>Your player account for <b>{{.Email}}</b> is ready.</p>
    <p>Log in any time to manage your profile and join tournaments.</p>
  </body>
</html>`))

type WelcomeData struct {
	AppName string
	Name    string
	Email   string
}

// NewWelcomeJob builds the queue payload for a registration welcome email.
func NewWelcomeJob(appName, name, email string) EmailJob {
	return EmailJob{
		To:       email,
		Template: TemplateWelcome,
		Data: map[string]any{
			"AppName": appName,
			"Name":    name,
			"Email":   email,
		},
	}
}

// RenderWelcome produces subject, text, and HTML bodies for a welcome job.
func RenderWelcome(data WelcomeData) (subject, text, html string, err error) {
	subject = fmt.Sprintf("Welcome to %s", data.AppName)
	text = fmt.Sprintf("Welcome to %s, %s! Your player account for %s is ready.",
		data.AppName, data.Name, data.Email)
	var buf bytes.Buffer
	if err = welcomeHTML.Execute(&buf, data); err != nil {
		return "", "", "", err
	}
	return subject, text, buf.String(), nil
}
