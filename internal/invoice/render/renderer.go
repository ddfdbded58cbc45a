package render

import invoicedomain "github.com/smallbiznis/rankinvoice/internal/invoice/domain"

// Renderer turns a preview into a standalone HTML page.
type Renderer interface {
	RenderHTML(input RenderInput) (string, error)
}

type RenderInput struct {
	Template TemplateView
	Preview  invoicedomain.Preview
}

// TemplateView carries the branding of the page.
type TemplateView struct {
	CompanyName  string
	LogoURL      string
	PrimaryColor string
	FooterNotes  string
}
