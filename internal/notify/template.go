package notify

import (
	"bytes"
	"context"
	"text/template"
)

var drafts = template.Must(template.New("drafts").Parse(`
{{- define "order_placed" -}}
Your order {{.OrderID}} has been placed. We'll let you know when it ships.
{{- end -}}
{{- define "order_updated" -}}
Update on order {{.OrderID}}: {{.Detail}}.
{{- end -}}
{{- define "kyc_submitted" -}}
We received your verification documents and will review them shortly.
{{- end -}}
{{- define "kyc_reviewed" -}}
Your identity verification was {{.Detail}}.
{{- end -}}`))

// templateDrafter drafts notification text from static templates. A
// generative-text collaborator satisfies the same interface.
type templateDrafter struct{}

// NewTemplateDrafter creates the default template-based drafter.
func NewTemplateDrafter() Drafter {
	return templateDrafter{}
}

func (templateDrafter) Draft(ctx context.Context, event Event) (string, error) {
	var buf bytes.Buffer
	if err := drafts.ExecuteTemplate(&buf, string(event.Type), event); err != nil {
		return "", err
	}
	return buf.String(), nil
}
