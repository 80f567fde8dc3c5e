// Package pdf genera la ficha PDF de un cliente con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: logo + nombre del tenant  │  Ficha de cliente + fecha │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CLIENTE: nombre, contacto, portafolio                      │
//	│  ASESOR: nombre + email                                      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RELACIONES: Tipo | Cliente relacionado                     │
//	│  TAREAS ABIERTAS: Título | Vence                             │
//	│  ─────────────────────────────────────────────────────────  │
//	│  NOTAS                                                       │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/image"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/extension"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/advisor-crm/internal/application/usecase"
	"github.com/jhoicas/advisor-crm/internal/domain/entity"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var _ usecase.CustomerReportRenderer = (*CustomerReportGenerator)(nil)

// CustomerReportGenerator implementa usecase.CustomerReportRenderer usando Maroto v2.
type CustomerReportGenerator struct{}

// NewCustomerReportGenerator construye el generador.
func NewCustomerReportGenerator() *CustomerReportGenerator { return &CustomerReportGenerator{} }

// RenderCustomerReport genera el PDF y devuelve sus bytes.
func (g *CustomerReportGenerator) RenderCustomerReport(_ context.Context, r *usecase.CustomerReport) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Ficha de cliente", true).
		WithAuthor(r.Tenant.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(r))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(customerRow(r.Customer))
	m.AddRows(advisorRow(r.Advisor))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(sectionTitle("RELACIONES"))
	m.AddRows(relationshipRows(r.Relationships)...)
	m.AddRows(row.New(3))
	m.AddRows(sectionTitle("TAREAS ABIERTAS"))
	m.AddRows(taskRows(r.OpenTasks)...)

	if notes := strings.TrimSpace(r.Customer.Notes); notes != "" {
		m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
		m.AddRows(sectionTitle("NOTAS"))
		m.AddRows(row.New(20).Add(col.New(12).Add(
			text.New(notes, props.Text{Size: 8, Top: 1, Color: colorGray}),
		)))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: logo y nombre del tenant (izq), título y fecha (der).
func headerRow(r *usecase.CustomerReport) core.Row {
	left := col.New(7).Add(
		text.New(r.Tenant.Name, props.Text{Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1}),
		text.New(r.Tenant.Domain, props.Text{Size: 9, Top: 9, Color: colorGray}),
	)
	cols := []core.Col{left}
	if logo := logoCol(r.Tenant.Logo); logo != nil {
		left = col.New(5).Add(
			text.New(r.Tenant.Name, props.Text{Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1}),
			text.New(r.Tenant.Domain, props.Text{Size: 9, Top: 9, Color: colorGray}),
		)
		cols = []core.Col{logo, left}
	}
	cols = append(cols, col.New(5).Add(
		text.New("FICHA DE CLIENTE", props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1}),
		text.New(r.Customer.FullName(), props.Text{Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7}),
		text.New("Generado: "+r.GeneratedAt.Format("02/01/2006 15:04"), props.Text{Size: 8, Align: align.Right, Top: 14, Color: colorGray}),
	))
	return row.New(18).Add(cols...)
}

// logoCol solo PNG o JPEG; cualquier otro formato se omite.
func logoCol(logo []byte) core.Col {
	if len(logo) == 0 {
		return nil
	}
	var ext extension.Type
	switch http.DetectContentType(logo) {
	case "image/png":
		ext = extension.Png
	case "image/jpeg":
		ext = extension.Jpg
	default:
		return nil
	}
	return col.New(2).Add(image.NewFromBytes(logo, ext, props.Rect{Percent: 90, Center: true}))
}

func customerRow(c *entity.Customer) core.Row {
	return row.New(20).Add(
		col.New(12).Add(
			text.New("CLIENTE", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
			text.New(c.FullName(), props.Text{Style: fontstyle.Bold, Size: 10, Top: 6}),
			text.New(fmt.Sprintf("Email: %s   |   Tel: %s   |   Portafolio: $%s",
				nonEmpty(c.Email, "—"),
				nonEmpty(c.Phone, "—"),
				formatMoney(c.PortfolioValue),
			), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

func advisorRow(u *entity.User) core.Row {
	name, email := "Sin asesor asignado", "—"
	if u != nil {
		name, email = u.FullName(), u.Email
	}
	return row.New(14).Add(
		col.New(12).Add(
			text.New("ASESOR", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
			text.New(fmt.Sprintf("%s   |   %s", name, email), props.Text{Size: 9, Top: 7}),
		),
	)
}

func sectionTitle(s string) core.Row {
	return row.New(7).Add(col.New(12).Add(
		text.New(s, props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
	))
}

func relationshipRows(rels []usecase.ReportRelationship) []core.Row {
	if len(rels) == 0 {
		return []core.Row{emptyRow("Sin relaciones registradas")}
	}
	rows := make([]core.Row, 0, len(rels))
	for _, rel := range rels {
		related := "(cliente eliminado)"
		if rel.Related != nil {
			related = rel.Related.FullName()
			if rel.Related.Deleted {
				related += " (eliminado)"
			}
		}
		rows = append(rows, row.New(6).Add(
			col.New(4).Add(text.New(rel.Type, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(8).Add(text.New(related, props.Text{Size: 8, Top: 1})),
		))
	}
	return rows
}

func taskRows(tasks []*entity.Task) []core.Row {
	if len(tasks) == 0 {
		return []core.Row{emptyRow("Sin tareas abiertas")}
	}
	rows := make([]core.Row, 0, len(tasks))
	for _, t := range tasks {
		due := "—"
		if t.DueDate != nil {
			due = t.DueDate.Format("02/01/2006")
		}
		rows = append(rows, row.New(6).Add(
			col.New(9).Add(text.New(t.Title, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(3).Add(text.New(due, props.Text{Size: 8, Top: 1, Align: align.Right, Right: 1})),
		))
	}
	return rows
}

func emptyRow(msg string) core.Row {
	return row.New(6).Add(col.New(12).Add(
		text.New(msg, props.Text{Size: 8, Top: 1, Left: 1, Color: colorGray}),
	))
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatMoney separa miles con punto y decimales con coma. Ej: 1234567.5 → "1.234.567,50".
func formatMoney(d decimal.Decimal) string {
	s := d.Abs().StringFixed(2)
	intPart, frac := s[:len(s)-3], s[len(s)-2:]

	n := len(intPart)
	buf := make([]byte, 0, n+n/3+4)
	if d.IsNegative() {
		buf = append(buf, '-')
	}
	for i, c := range []byte(intPart) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	buf = append(buf, ',')
	buf = append(buf, frac...)
	return string(buf)
}
