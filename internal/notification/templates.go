package notification

import (
	"bytes"
	"fmt"
	htmltemplate "html/template"
	"text/template"

	"github.com/dtroode/ecorewards-server/internal/model"
)

type emailTemplate struct {
	subject string
	text    *template.Template
	html    *htmltemplate.Template
}

const htmlLayout = `<!DOCTYPE html>
<html><body style="font-family: Arial, sans-serif; color: #1b4332;">
<h2 style="color: #2d6a4f;">EcoRewards</h2>
<p style="white-space: pre-line;">{{.Body}}</p>
<p style="font-size: 12px; color: #6c757d;">Thank you for recycling responsibly.</p>
</body></html>`

var layout = htmltemplate.Must(htmltemplate.New("layout").Parse(htmlLayout))

func newTemplate(name, subject, text string) emailTemplate {
	return emailTemplate{
		subject: subject,
		text:    template.Must(template.New(name).Option("missingkey=zero").Parse(text)),
		html:    layout,
	}
}

var templates = map[string]emailTemplate{
	model.TemplateOTP: newTemplate(model.TemplateOTP,
		"Your verification code - EcoRewards",
		"Your {{.Purpose}} code is {{.Code}}. It expires in {{.Minutes}} minutes."),
	model.TemplatePickupScheduled: newTemplate(model.TemplatePickupScheduled,
		"Pickup Scheduled - EcoRewards",
		"Hello {{.Name}},\n\nYour e-waste pickup is scheduled on {{.Date}} at {{.Time}}.\n\nItems: {{.Items}}\nFee: ₹{{.Fee}}\n\nThank you,\nTeam EcoRewards"),
	model.TemplatePickupCancelled: newTemplate(model.TemplatePickupCancelled,
		"Pickup Cancelled - EcoRewards",
		"Hello {{.Name}},\n\nYour pickup (ID: {{.PickupID}}) has been cancelled. If this was a mistake, please schedule again."),
	model.TemplatePickupCompleted: newTemplate(model.TemplatePickupCompleted,
		"Pickup Completed - EcoRewards",
		"Hello {{.Name}},\n\nYour pickup (ID: {{.PickupID}}) is complete. {{.Credited}} EcoPoints were added to your account.\nCurrent balance: {{.Balance}} points."),
	model.TemplateRewardRedeemed: newTemplate(model.TemplateRewardRedeemed,
		"Reward Redeemed - EcoRewards",
		"Hello {{.Name}},\n\nYou have redeemed \"{{.Reward}}\" for {{.Cost}} points. Our team will process it shortly.\nRemaining balance: {{.Balance}} points."),
	model.TemplateAccountDeleted: newTemplate(model.TemplateAccountDeleted,
		"Account Deleted - EcoRewards",
		"Your account ({{.Email}}) has been permanently deleted."),
}

// Render builds the message for event.
func Render(event model.Event) (Message, error) {
	tmpl, ok := templates[event.Template]
	if !ok {
		return Message{}, fmt.Errorf("unknown template %q", event.Template)
	}

	var text bytes.Buffer
	if err := tmpl.text.Execute(&text, event.Data); err != nil {
		return Message{}, fmt.Errorf("failed to render %s text: %w", event.Template, err)
	}

	var html bytes.Buffer
	if err := tmpl.html.Execute(&html, map[string]string{"Body": text.String()}); err != nil {
		return Message{}, fmt.Errorf("failed to render %s html: %w", event.Template, err)
	}

	return Message{
		To:      event.Recipient,
		Subject: tmpl.subject,
		Text:    text.String(),
		HTML:    html.String(),
	}, nil
}
