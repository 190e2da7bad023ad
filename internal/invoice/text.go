package invoice

import (
	"bytes"
	"text/template"

	"rent-kart/internal/model"
)

var invoiceTmpl = template.Must(template.New("invoice").Parse(`INVOICE {{.ID}}
Date: {{.CreatedAt.Format "2006-01-02"}}
Customer: {{.CustomerID}}
Deliver to: {{.Address}}

{{range .Items}}{{.ProductName}} x{{.Quantity}} ({{.Mode}}{{if .TenureMonths}}, {{.TenureMonths}}mo{{end}}): {{printf "%.2f" .LineTotal}}
{{end}}
Total: {{printf "%.2f" .Total}}
Payment: {{.PaymentMethod}}
`))

var agreementTmpl = template.Must(template.New("agreement").Parse(`RENTAL AGREEMENT FOR ORDER {{.ID}}
Customer: {{.CustomerID}}
{{if .Rental}}Rental window: {{.Rental.StartDate.Format "2006-01-02"}} to {{.Rental.EndDate.Format "2006-01-02"}}
{{if .Rental.DepositAmount}}Deposit: {{printf "%.2f" .Rental.DepositAmount}}
{{end}}{{end}}
Items:
{{range .Items}}{{if eq .Mode "rent"}}  {{.ProductName}} x{{.Quantity}}, {{.TenureMonths}} months at {{printf "%.2f" .UnitPrice}}/month
{{end}}{{end}}`))

// textRenderer renders plain-text artifacts. A PDF renderer satisfies the
// same interface when one is wired in.
type textRenderer struct{}

// NewTextRenderer creates the default plain-text renderer.
func NewTextRenderer() Renderer {
	return textRenderer{}
}

func (textRenderer) RenderInvoice(order *model.Order) ([]byte, error) {
	var buf bytes.Buffer
	if err := invoiceTmpl.Execute(&buf, order); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (textRenderer) RenderAgreement(order *model.Order) ([]byte, error) {
	var buf bytes.Buffer
	if err := agreementTmpl.Execute(&buf, order); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
