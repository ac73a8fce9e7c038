package mailer

import (
	"errors"
	"fmt"
	"strings"
	"text/template"
)

// ErrUnknownTemplate is returned for a template name not in the registry.
var ErrUnknownTemplate = errors.New("unknown template")

type messageTemplate struct {
	subject *template.Template
	body    *template.Template
}

var templates = map[string]messageTemplate{
	"welcome": {
		subject: template.Must(template.New("welcome-subject").Parse(
			`Your puzzles are on the way{{if .FirstName}}, {{.FirstName}}{{end}}!`,
		)),
		body: template.Must(template.New("welcome-body").Parse(
			`Hi{{if .FirstName}} {{.FirstName}}{{end}},

Thanks for signing up! Every week we send out a fresh printable puzzle pack
and first-look previews of new books.
{{if .BookTitle}}
You told us you're interested in "{{.BookTitle}}". We'll let you know the
moment it goes live.
{{end}}
Happy puzzling,
The Press

Unsubscribe: {{.UnsubscribeURL}}
`,
		)),
	},
	"launch": {
		subject: template.Must(template.New("launch-subject").Parse(
			`New release: {{.BookTitle}}`,
		)),
		body: template.Must(template.New("launch-body").Parse(
			`Hi{{if .FirstName}} {{.FirstName}}{{end}},

"{{.BookTitle}}" is live on Amazon today.
{{if .BookURL}}
Grab your copy: {{.BookURL}}
{{end}}
Happy puzzling,
The Press

Unsubscribe: {{.UnsubscribeURL}}
`,
		)),
	},
}

// TemplateNames lists the registered template names, for validation.
func TemplateNames() []string {
	names := make([]string, 0, len(templates))
	for name := range templates {
		names = append(names, name)
	}
	return names
}

// Render produces the subject and body for a named template.
func Render(name string, params map[string]string) (subject, body string, err error) {
	tmpl, ok := templates[name]
	if !ok {
		return "", "", fmt.Errorf("%w: %s", ErrUnknownTemplate, name)
	}

	var sb strings.Builder
	if err := tmpl.subject.Execute(&sb, params); err != nil {
		return "", "", err
	}
	subject = sb.String()

	sb.Reset()
	if err := tmpl.body.Execute(&sb, params); err != nil {
		return "", "", err
	}
	return subject, sb.String(), nil
}
