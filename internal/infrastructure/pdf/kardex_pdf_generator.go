// Package pdf genera el kardex imprimible de una muestra.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Código + Material/Lote  │  Cantidad actual + QR    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FICHA: Peso unitario / Peso total / Vencimiento            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: # | Fecha | Tipo | Movida | Antes | Después | Motivo │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: saldo calculado vs. saldo registrado               │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
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

	"github.com/jhoicas/Muestras-api/internal/application/inventory"
	"github.com/jhoicas/Muestras-api/internal/domain/entity"
)

var _ inventory.KardexPDFGenerator = (*KardexPDFGenerator)(nil)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorOut     = &props.Color{Red: 160, Green: 30, Blue: 30}
)

// KardexPDFGenerator implementa inventory.KardexPDFGenerator usando Maroto v2.
type KardexPDFGenerator struct {
	title string
}

// NewKardexPDFGenerator construye el generador. title aparece en los metadatos del PDF.
func NewKardexPDFGenerator(title string) *KardexPDFGenerator {
	if title == "" {
		title = "Kardex de muestra"
	}
	return &KardexPDFGenerator{title: title}
}

// GenerateKardexPDF genera el PDF y devuelve sus bytes.
func (g *KardexPDFGenerator) GenerateKardexPDF(_ context.Context, sample *entity.Sample, movements []*entity.Movement) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(g.title+" "+sample.Code, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(sample))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(detailRow(sample))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(movementRows(movements)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(balanceRow(sample, movements))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar kardex: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: código y material (izq), cantidad actual (centro) y QR del código (der).
func headerRow(s *entity.Sample) core.Row {
	lot := ""
	if s.Lot != "" {
		lot = "Lote: " + s.Lot
	}
	return row.New(28).Add(
		col.New(6).Add(
			text.New("KARDEX DE MUESTRA", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(s.Code, props.Text{
				Style: fontstyle.Bold, Size: 14, Top: 6,
			}),
			text.New(s.Material, props.Text{Size: 10, Top: 14}),
			text.New(lot, props.Text{Size: 8, Top: 20, Color: colorGray}),
		),
		col.New(3).Add(
			text.New("Cantidad actual", props.Text{
				Size: 8, Align: align.Right, Top: 6, Color: colorGray,
			}),
			text.New(formatThousands(s.Quantity), props.Text{
				Style: fontstyle.Bold, Size: 16, Align: align.Right, Top: 11, Color: colorPrimary,
			}),
		),
		col.New(3).Add(code.NewQr(s.Code, props.Rect{Percent: 90, Center: true})),
	)
}

// detailRow: pesos y vencimiento.
func detailRow(s *entity.Sample) core.Row {
	expiry := "-"
	if s.ExpiryDate != nil {
		expiry = s.ExpiryDate.Format("02/01/2006")
	}
	return row.New(10).Add(
		col.New(12).Add(
			text.New(fmt.Sprintf("Peso unitario: %s %s   |   Peso total: %s %s   |   Vencimiento: %s   |   Registro: %s",
				s.UnitWeight.String(), s.Unit,
				s.TotalWeight.String(), s.Unit,
				expiry, s.RegisteredAt.Format("02/01/2006"),
			), props.Text{Size: 8, Top: 3, Color: colorGray}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("#", 1, align.Center),
		h("Fecha", 2, align.Left),
		h("Tipo", 1, align.Center),
		h("Movida", 1, align.Right),
		h("Antes", 1, align.Right),
		h("Después", 1, align.Right),
		h("Motivo", 5, align.Left),
	)
}

// movementRows: una fila por movimiento en orden de ledger. Las SALIDA van en rojo.
func movementRows(movements []*entity.Movement) []core.Row {
	rows := make([]core.Row, 0, len(movements))
	for i, mv := range movements {
		cell := props.Text{Size: 8, Top: 1}
		if mv.Type == entity.MovementTypeSalida {
			cell.Color = colorOut
		}
		right := cell
		right.Align = align.Right
		right.Right = 1
		center := cell
		center.Align = align.Center
		left := cell
		left.Left = 1

		rows = append(rows, row.New(6).Add(
			col.New(1).Add(text.New(strconv.Itoa(i+1), center)),
			col.New(2).Add(text.New(mv.Date.Format("02/01/2006 15:04"), left)),
			col.New(1).Add(text.New(mv.Type, center)),
			col.New(1).Add(text.New(formatThousands(mv.QuantityMoved), right)),
			col.New(1).Add(text.New(formatThousands(mv.QuantityBefore), right)),
			col.New(1).Add(text.New(formatThousands(mv.QuantityAfter), right)),
			col.New(5).Add(text.New(mv.Reason, left)),
		))
	}
	if len(movements) == 0 {
		rows = append(rows, row.New(8).Add(col.New(12).Add(
			text.New("Sin movimientos registrados", props.Text{
				Size: 8, Align: align.Center, Top: 2, Color: colorGray,
			}),
		)))
	}
	return rows
}

// balanceRow: saldo reproducido desde los movimientos contra el saldo registrado.
func balanceRow(s *entity.Sample, movements []*entity.Movement) core.Row {
	replayed, err := inventory.ReplayLedger(movements)
	status := "Kardex cuadrado"
	color := colorPrimary
	if err != nil || replayed != s.Quantity {
		status = "Kardex descuadrado: revisar movimientos"
		color = colorOut
	}
	return row.New(14).Add(
		col.New(6).Add(text.New(status, props.Text{
			Style: fontstyle.Bold, Size: 9, Top: 3, Color: color,
		})),
		col.New(6).Add(
			text.New("Saldo calculado: "+formatThousands(replayed), props.Text{
				Size: 9, Align: align.Right, Top: 1, Right: 1,
			}),
			text.New("Saldo registrado: "+formatThousands(s.Quantity), props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 7, Right: 1,
			}),
		),
	)
}

// formatThousands inserta puntos de miles. Ej: 25000 → "25.000".
func formatThousands(n int) string {
	s := strconv.Itoa(n)
	sign := ""
	if n < 0 {
		sign, s = "-", s[1:]
	}
	l := len(s)
	if l <= 3 {
		return sign + s
	}
	buf := make([]byte, 0, l+l/3)
	for i, c := range []byte(s) {
		if i > 0 && (l-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return sign + string(buf)
}
