package mail

import (
	"bytes"
	"fmt"
	"html/template"
)

// Template ids selected by events and cron jobs.
const (
	TemplateOTP             = "otp-send"
	TemplateWelcome         = "welcome-email"
	TemplateEveningReminder = "daily-expense-reminder"
	TemplateMorningReminder = "daily-expense-morning-reminder"
	TemplateMonthlyReport   = "monthly-report"
)

type mailTemplate struct {
	subject string
	body    *template.Template
}

var templates = map[string]mailTemplate{
	TemplateOTP: {
		subject: "Welcome to Budget Buddy!",
		body: template.Must(template.New(TemplateOTP).Parse(`<div style="max-width:600px;margin:0 auto;padding:20px;font-family:Arial,sans-serif;">
  <h1>Hello, {{.name}}</h1>
  <p>Use the OTP below to verify your email and activate your account.</p>
  <h2 style="letter-spacing:4px;">{{.otp}}</h2>
  <p>Do not share this code with anyone. If you did not request it, you can ignore this email.</p>
</div>`)),
	},
	TemplateWelcome: {
		subject: "Welcome to Budget Buddy!",
		body: template.Must(template.New(TemplateWelcome).Parse(`<div style="max-width:600px;margin:0 auto;padding:20px;font-family:Arial,sans-serif;">
  <h1>Welcome, {{.name}}</h1>
  <p>Thanks for signing up. Set your monthly budget, add your recurring expenses and start tracking your spending.</p>
</div>`)),
	},
	TemplateEveningReminder: {
		subject: "Daily Expense Reminder",
		body: template.Must(template.New(TemplateEveningReminder).Parse(`<div style="max-width:600px;margin:0 auto;padding:20px;font-family:Arial,sans-serif;">
  <h1>Hello, {{.name}}</h1>
  <p>We noticed you haven't added your expense for today (<strong>{{.date}}</strong>).</p>
  <p>Log it now to keep your budget on track.</p>
</div>`)),
	},
	TemplateMorningReminder: {
		subject: "Morning Reminder - Did you forget yesterday's expense?",
		body: template.Must(template.New(TemplateMorningReminder).Parse(`<div style="max-width:600px;margin:0 auto;padding:20px;font-family:Arial,sans-serif;">
  <h1>Good Morning, {{.name}}</h1>
  <p>Looks like you missed logging your expenses yesterday (<strong>{{.date}}</strong>).</p>
  <p>Add it now and keep your budget on track.</p>
</div>`)),
	},
	TemplateMonthlyReport: {
		subject: "Your Monthly Expense Report",
		body: template.Must(template.New(TemplateMonthlyReport).Parse(`<div style="max-width:600px;margin:0 auto;padding:20px;font-family:Arial,sans-serif;">
  <h1>Hello, {{.name}}</h1>
  <p>Your expense report for the last month is ready.</p>
  {{.report}}
</div>`)),
	},
}

// Render renders the template with the given id and returns the mail
// subject and HTML body.
func Render(templateID string, data map[string]string) (subject, body string, err error) {
	t, ok := templates[templateID]
	if !ok {
		return "", "", fmt.Errorf("unknown mail template %q", templateID)
	}

	// The monthly report template embeds pre-rendered HTML.
	templateData := make(map[string]any, len(data))
	for k, v := range data {
		if k == "report" {
			templateData[k] = template.HTML(v)
			continue
		}
		templateData[k] = v
	}

	var buf bytes.Buffer
	if err := t.body.Execute(&buf, templateData); err != nil {
		return "", "", err
	}

	return t.subject, buf.String(), nil
}
