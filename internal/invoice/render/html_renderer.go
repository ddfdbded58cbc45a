package render

import (
	"bytes"
	"html/template"
	"regexp"
	"strings"
)

const invoiceHTMLTemplate = `<!doctype html>
<html lang="id">
<head>
  <meta charset="utf-8" />
  <title>{{.Preview.InvoiceNo}}</title>
  <style>
    :root {
      --primary: {{.Template.PrimaryColor}};
      --font: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, Helvetica, Arial, sans-serif;
    }
    * { box-sizing: border-box; }
    body { margin: 0; padding: 40px; font-family: var(--font); color: #1a1f36; background: #f7f9fc; }
    .invoice-card { background: #ffffff; max-width: 760px; margin: 0 auto; padding: 48px; border-radius: 4px; }
    .header { display: flex; justify-content: space-between; margin-bottom: 32px; }
    .header h1 { margin: 0; font-size: 24px; color: var(--primary); }
    .label { font-size: 11px; text-transform: uppercase; color: #8792a2; margin-bottom: 6px; font-weight: 600; }
    .value { font-size: 14px; line-height: 1.5; }
    .meta-grid { display: flex; justify-content: space-between; margin-bottom: 32px; }
    table { width: 100%; border-collapse: collapse; margin-bottom: 24px; }
    th { text-align: left; text-transform: uppercase; font-size: 11px; color: #8792a2; border-bottom: 1px solid #e3e8ee; padding: 10px 0; }
    td { padding: 12px 0; border-bottom: 1px solid #e3e8ee; font-size: 14px; }
    .td-right { text-align: right; }
    .totals { display: flex; flex-direction: column; align-items: flex-end; }
    .total-row { display: flex; justify-content: space-between; width: 260px; padding: 6px 0; font-size: 14px; }
    .total-final { border-top: 1px solid #e3e8ee; margin-top: 8px; padding-top: 8px; font-weight: 700; font-size: 16px; }
    .notes { margin-top: 40px; font-size: 12px; color: #697386; border-top: 1px solid #e3e8ee; padding-top: 16px; }
  </style>
</head>
<body>
  <div class="invoice-card" id="preview">
    <div class="header">
      <div>
        <h1>Invoice</h1>
        <div class="value">{{.Preview.InvoiceNo}}</div>
      </div>
      <div>
        {{if .Template.LogoURL}}
          <img src="{{.Template.LogoURL}}" style="max-height: 48px;" alt="{{.Template.CompanyName}}">
        {{else}}
          {{.Template.CompanyName}}
        {{end}}
      </div>
    </div>

    <div class="meta-grid">
      <div>
        <div class="label">Nick</div>
        <div class="value"><strong>{{.Preview.DisplayName}}</strong></div>
        <div class="label" style="margin-top: 12px;">Discord</div>
        <div class="value">{{.Preview.SecondaryID}}</div>
      </div>
      <div>
        <div class="label">Tanggal</div>
        <div class="value">{{.Preview.Date}}</div>
      </div>
    </div>

    <table>
      <thead>
        <tr>
          <th style="width: 50%;">Item</th>
          <th class="td-right">Qty</th>
          <th class="td-right">Harga</th>
          <th class="td-right">Jumlah</th>
        </tr>
      </thead>
      <tbody>
        {{range .Preview.Rows}}
        <tr>
          <td>{{.Description}}</td>
          <td class="td-right">{{.Quantity}}</td>
          <td class="td-right">{{.UnitPrice}}</td>
          <td class="td-right">{{.Amount}}</td>
        </tr>
        {{end}}
      </tbody>
    </table>

    <div class="totals">
      <div class="total-row"><span>Subtotal</span><span>{{.Preview.Subtotal}}</span></div>
      <div class="total-row"><span>Diskon</span><span>{{.Preview.Discount}}</span></div>
      <div class="total-row total-final"><span>Total</span><span>{{.Preview.Total}}</span></div>
    </div>

    <div class="notes">
      <div class="label">Catatan</div>
      {{.Preview.Notes}}
      {{if .Template.FooterNotes}}<br><br>{{.Template.FooterNotes}}{{end}}
    </div>
  </div>
</body>
</html>
`

var hexColorPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

type HTMLRenderer struct {
	tpl *template.Template
}

func NewRenderer() Renderer {
	return &HTMLRenderer{
		tpl: template.Must(template.New("invoice").Parse(invoiceHTMLTemplate)),
	}
}

func (r *HTMLRenderer) RenderHTML(input RenderInput) (string, error) {
	input.Template.PrimaryColor = sanitizeColor(input.Template.PrimaryColor)
	if input.Template.CompanyName == "" {
		input.Template.CompanyName = "Invoice"
	}

	var buf bytes.Buffer
	if err := r.tpl.Execute(&buf, input); err != nil {
		return "", err
	}

	return buf.String(), nil
}

func sanitizeColor(value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "#111827"
	}
	if hexColorPattern.MatchString(trimmed) {
		return trimmed
	}
	return "#111827"
}
