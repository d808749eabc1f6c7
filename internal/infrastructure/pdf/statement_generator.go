// Package pdf genera el estado de cuenta imprimible de un préstamo.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + ID del préstamo + fecha de emisión         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  BORROWER: nombre, teléfono, dirección, documento            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Concepto | Valor (monto, tasa, plazo, total, cuota)  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: estado + notas + leyenda                            │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/prestamos-api/internal/application/ports"
	"github.com/jhoicas/prestamos-api/internal/domain/entity"
)

var _ ports.StatementGenerator = (*MarotoStatementGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoStatementGenerator implementa ports.StatementGenerator usando Maroto v2.
type MarotoStatementGenerator struct{}

// NewMarotoStatementGenerator construye el generador.
func NewMarotoStatementGenerator() *MarotoStatementGenerator { return &MarotoStatementGenerator{} }

// GenerateStatement genera el PDF y devuelve sus bytes.
func (g *MarotoStatementGenerator) GenerateStatement(_ context.Context, l *entity.Loan) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Loan Statement", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(l))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(borrowerRow(l))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	for _, r := range termsRows(l) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRows(l)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título (izq) e ID del préstamo + fecha de emisión (der).
func headerRow(l *entity.Loan) core.Row {
	return row.New(16).Add(
		col.New(7).Add(
			text.New("LOAN STATEMENT", props.Text{
				Style: fontstyle.Bold, Size: 14, Color: colorPrimary, Top: 1,
			}),
			text.New("Loan Management CRM", props.Text{
				Size: 8, Top: 10, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("Loan ID: "+l.ID, props.Text{
				Size: 7, Align: align.Right, Top: 2, Color: colorGray,
			}),
			text.New("Issued: "+time.Now().Format("02/01/2006"), props.Text{
				Size: 8, Align: align.Right, Top: 8, Color: colorGray,
			}),
		),
	)
}

// borrowerRow: datos del prestatario.
func borrowerRow(l *entity.Loan) core.Row {
	document := "—"
	if l.IDNumber != "" {
		document = strings.TrimSpace(l.IDType + " " + l.IDNumber)
	}
	return row.New(16).Add(
		col.New(12).Add(
			text.New("BORROWER", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(l.Name, props.Text{
				Style: fontstyle.Bold, Size: 11, Top: 6,
			}),
			text.New(fmt.Sprintf("Phone: %s   |   Address: %s   |   ID: %s",
				l.Phone,
				nonEmpty(l.Address, "—"),
				document,
			), props.Text{Size: 8, Top: 13, Color: colorGray}),
		),
	)
}

// termsRows: tabla Concepto | Valor con las condiciones financieras.
func termsRows(l *entity.Loan) []core.Row {
	label := func(s string) core.Col {
		return col.New(6).Add(text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Left, Top: 1, Left: 1,
		}))
	}
	value := func(s string) core.Col {
		return col.New(6).Add(text.New(s, props.Text{
			Size: 9, Align: align.Right, Top: 1, Right: 1,
		}))
	}

	term := fmt.Sprintf("%d months", l.Months)
	if l.Term == entity.TermYears {
		term = fmt.Sprintf("%d years", l.Years)
	}

	rows := []core.Row{
		row.New(7).Add(label("Loan amount"), value("Rs. "+formatMoney(l.LoanAmount))),
		row.New(7).Add(label("Interest rate (annual)"), value(l.InterestRate.StringFixed(2)+" %")),
		row.New(7).Add(label("Term"), value(term)),
		row.New(7).Add(label("Joined"), value(l.JoinDate.Format("02/01/2006"))),
	}
	if l.TotalPayable.Valid {
		rows = append(rows,
			row.New(8).Add(
				col.New(6).Add(text.New("Total payable", props.Text{
					Style: fontstyle.Bold, Size: 10, Color: colorPrimary, Top: 1, Left: 1,
				})),
				col.New(6).Add(text.New("Rs. "+formatMoney(l.TotalPayable.Decimal), props.Text{
					Style: fontstyle.Bold, Size: 10, Color: colorPrimary, Align: align.Right, Top: 1, Right: 1,
				})),
			),
			row.New(7).Add(label("Monthly installment (EMI)"), value("Rs. "+formatMoney(l.MonthlyInstallment.Decimal))),
		)
	}
	return rows
}

// footerRows: estado, notas y leyenda.
func footerRows(l *entity.Loan) []core.Row {
	rows := []core.Row{
		row.New(7).Add(col.New(12).Add(
			text.New(fmt.Sprintf("Status: %s   |   Loans under this record: %d",
				strings.ToUpper(string(l.Status)), l.TotalLoans),
				props.Text{Style: fontstyle.Bold, Size: 9, Top: 2}),
		)),
	}
	if l.Notes != "" {
		rows = append(rows, row.New(8).Add(col.New(12).Add(
			text.New("Notes: "+l.Notes, props.Text{Size: 8, Color: colorGray, Top: 1}),
		)))
	}
	rows = append(rows, row.New(8).Add(col.New(12).Add(
		text.New("Figures computed with simple interest on the principal for the agreed term. "+
			"This statement is informational and does not replace the signed agreement.",
			props.Text{Size: 6.5, Color: colorGray, Top: 2}),
	)))
	return rows
}

// ── Helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

// formatMoney agrega separador de miles al estilo 1,234,567.89.
func formatMoney(d decimal.Decimal) string {
	s := d.StringFixed(2)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	intPart, fracPart, _ := strings.Cut(s, ".")
	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	out := b.String() + "." + fracPart
	if neg {
		out = "-" + out
	}
	return out
}
