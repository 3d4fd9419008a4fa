package email

import (
	"bytes"
	"html/template"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// Renderer turns a plain-text notification into the club's HTML email.
type Renderer struct {
	clubName string
	tmpl     *template.Template
	now      func() time.Time
}

type notificationData struct {
	ClubName string
	Subject  string
	Lines    []string
	Year     int
}

func NewRenderer(clubName string) *Renderer {
	return &Renderer{
		clubName: clubName,
		tmpl:     template.Must(template.New("notification").Parse(notificationTemplate)),
		now:      time.Now,
	}
}

// Render wraps every line of body in its own paragraph. Blank lines are kept
// as empty paragraphs so the spacing of the message text survives.
func (r *Renderer) Render(subject, body string) (string, error) {
	body = strings.ReplaceAll(body, "\r\n", "\n")

	var buf bytes.Buffer
	err := r.tmpl.Execute(&buf, notificationData{
		ClubName: r.clubName,
		Subject:  subject,
		Lines:    strings.Split(body, "\n"),
		Year:     r.now().Year(),
	})
	if err != nil {
		return "", errors.Wrap(err, "render notification email")
	}
	return buf.String(), nil
}

const notificationTemplate = `<!DOCTYPE html>
<html>
<head>
    <meta charset="utf-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>{{.Subject}}</title>
</head>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px;">
    <div style="background: linear-gradient(135deg, #667eea 0%, #764ba2 100%); padding: 30px; text-align: center; border-radius: 10px 10px 0 0;">
        <h1 style="color: white; margin: 0; font-size: 28px;">{{.ClubName}}</h1>
        <p style="color: white; margin: 10px 0 0 0; opacity: 0.9;">Official Notification</p>
    </div>
    <div style="background: #f9f9f9; padding: 30px; border-radius: 0 0 10px 10px; border: 1px solid #e0e0e0; border-top: none;">
        <h2 style="color: #667eea; margin-top: 0;">{{.Subject}}</h2>
        <div style="background: white; padding: 20px; border-radius: 8px; margin: 20px 0;">
            {{- range .Lines}}
            <p style="margin: 10px 0;">{{.}}</p>
            {{- end}}
        </div>
        <div style="margin-top: 30px; padding-top: 20px; border-top: 1px solid #e0e0e0; text-align: center; color: #666; font-size: 12px;">
            <p>This is an automated notification from {{.ClubName}}.</p>
            <p>Please do not reply to this email.</p>
            <p style="margin-top: 15px;">&copy; {{.Year}} {{.ClubName}}. All rights reserved.</p>
        </div>
    </div>
</body>
</html>
`
