// Package templates provides email template rendering functionality.
package templates

import (
	"bytes"
	"embed"
	"fmt"
	htmltemplate "html/template"
	texttemplate "text/template"

	"github.com/brokerdash/backend/internal/application/adapter"
	domainerror "github.com/brokerdash/backend/internal/domain/error"
	"github.com/brokerdash/backend/internal/integration/entrypoint/format"
)

//go:embed *.html *.txt
var templateFS embed.FS

// TemplateDigest is the name of the monthly digest template.
const TemplateDigest = "digest"

// Renderer handles email template rendering.
type Renderer struct {
	htmlTemplates *htmltemplate.Template
	textTemplates *texttemplate.Template
	formatter     *format.Formatter
}

// NewRenderer creates a new template renderer formatting numbers for locale.
func NewRenderer(locale string) (*Renderer, error) {
	htmlTmpl, err := htmltemplate.ParseFS(templateFS, "*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML templates: %w", err)
	}

	textTmpl, err := texttemplate.ParseFS(templateFS, "*.txt")
	if err != nil {
		return nil, fmt.Errorf("failed to parse text templates: %w", err)
	}

	return &Renderer{
		htmlTemplates: htmlTmpl,
		textTemplates: textTmpl,
		formatter:     format.New(locale),
	}, nil
}

// Render renders both HTML and text versions of a template. The text
// version is empty when the template has no .txt counterpart.
func (r *Renderer) Render(templateName string, data interface{}) (html string, text string, err error) {
	if r.htmlTemplates.Lookup(templateName+".html") == nil {
		return "", "", domainerror.NewEmailError(
			domainerror.ErrCodeInvalidTemplate,
			"unknown template "+templateName,
			domainerror.ErrInvalidTemplate,
		)
	}

	var htmlBuf bytes.Buffer
	if err := r.htmlTemplates.ExecuteTemplate(&htmlBuf, templateName+".html", data); err != nil {
		return "", "", domainerror.NewEmailError(
			domainerror.ErrCodeTemplateRenderFailed,
			"failed to render HTML template "+templateName,
			fmt.Errorf("%w: %w", domainerror.ErrTemplateRenderFailed, err),
		)
	}

	if r.textTemplates.Lookup(templateName+".txt") == nil {
		return htmlBuf.String(), "", nil
	}
	var textBuf bytes.Buffer
	if err := r.textTemplates.ExecuteTemplate(&textBuf, templateName+".txt", data); err != nil {
		return "", "", domainerror.NewEmailError(
			domainerror.ErrCodeTemplateRenderFailed,
			"failed to render text template "+templateName,
			fmt.Errorf("%w: %w", domainerror.ErrTemplateRenderFailed, err),
		)
	}

	return htmlBuf.String(), textBuf.String(), nil
}

// RenderDigest renders the monthly digest with every figure already formatted.
func (r *Renderer) RenderDigest(data adapter.DigestData) (string, string, error) {
	return r.Render(TemplateDigest, r.digestView(data))
}

// DigestView contains data for the monthly digest email template.
type DigestView struct {
	Name              string
	Period            string
	GrossClosed       string
	NetClosed         string
	GrossOpen         string
	ObjectiveProgress string
	ClosedCount       int
	OpenCount         int
	FallenCount       int
	Points            int
	TopAdvisors       []DigestAdvisorView
}

// DigestAdvisorView is one formatted podium row.
type DigestAdvisorView struct {
	Position  int
	Name      string
	BrokerFee string
	Points    int
}

func (r *Renderer) digestView(data adapter.DigestData) DigestView {
	advisors := make([]DigestAdvisorView, len(data.TopAdvisors))
	for i, a := range data.TopAdvisors {
		advisors[i] = DigestAdvisorView{
			Position:  a.Position,
			Name:      a.Name,
			BrokerFee: r.formatter.Money(a.BrokerFee, data.CurrencySymbol),
			Points:    a.Points,
		}
	}

	return DigestView{
		Name:              data.Name,
		Period:            data.Period,
		GrossClosed:       r.formatter.Money(data.GrossClosed, data.CurrencySymbol),
		NetClosed:         r.formatter.Money(data.NetClosed, data.CurrencySymbol),
		GrossOpen:         r.formatter.Money(data.GrossOpen, data.CurrencySymbol),
		ObjectiveProgress: r.formatter.Percent(data.ObjectiveProgress),
		ClosedCount:       data.ClosedCount,
		OpenCount:         data.OpenCount,
		FallenCount:       data.FallenCount,
		Points:            data.Points,
		TopAdvisors:       advisors,
	}
}

var _ adapter.DigestRenderer = (*Renderer)(nil)
