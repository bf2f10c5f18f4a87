// Package pdf genera el documento imprimible de una orden de compra.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Empresa + NIT       │  N° Orden + Fecha + Estado    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  EMPRESA: Dirección / Tel / Email                            │
//	│  PROVEEDOR: Nombre + NIT + contacto                          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Cant | SKU | Producto | Costo Unit. | Subtotal       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTAL                                                       │
//	│  FOOTER: QR de recepción + notas                             │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

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

	"github.com/jhoicas/Produccion-api/internal/application/purchasing"
	"github.com/jhoicas/Produccion-api/internal/domain/entity"
)

var _ purchasing.PurchaseOrderPDFGenerator = (*MarotoPDFGenerator)(nil)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

var statusLabels = map[string]string{
	entity.PurchaseStatusPending:   "PENDIENTE",
	entity.PurchaseStatusReceived:  "RECIBIDA",
	entity.PurchaseStatusCancelled: "ANULADA",
}

// MarotoPDFGenerator implementa purchasing.PurchaseOrderPDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// GeneratePurchaseOrderPDF genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GeneratePurchaseOrderPDF(
	_ context.Context,
	po *entity.PurchaseOrder,
	company *entity.Company,
	supplier *entity.Supplier,
	lines []purchasing.PurchaseLineForPDF,
) ([]byte, error) {
	if po == nil || company == nil || supplier == nil {
		return nil, fmt.Errorf("pdf: orden, empresa y proveedor son obligatorios")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Orden de compra "+po.Number, true).
		WithAuthor(company.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(po, company))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(companyRow(company))
	m.AddRows(supplierRow(supplier))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(tableDetailRows(lines)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalRow(po))

	m.AddRows(line.NewRow(3))
	m.AddRows(footerRows(po)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

func headerRow(po *entity.PurchaseOrder, company *entity.Company) core.Row {
	fecha := po.CreatedAt.Format("02/01/2006")
	estado := nonEmpty(statusLabels[po.Status], strings.ToUpper(po.Status))

	right := []core.Component{
		text.New("ORDEN DE COMPRA", props.Text{
			Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
		}),
		text.New(po.Number, props.Text{Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 6}),
		text.New("Fecha: "+fecha+"   Estado: "+estado, props.Text{
			Size: 8, Align: align.Right, Top: 13, Color: colorGray,
		}),
	}
	if po.ExpectedAt != nil {
		right = append(right, text.New("Entrega esperada: "+po.ExpectedAt.Format("02/01/2006"), props.Text{
			Size: 8, Align: align.Right, Top: 17, Color: colorGray,
		}))
	}
	return row.New(22).Add(
		col.New(7).Add(
			text.New(company.Name, props.Text{Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1}),
			text.New("NIT: "+nonEmpty(company.TaxID, "—"), props.Text{Size: 9, Top: 9, Color: colorGray}),
		),
		col.New(5).Add(right...),
	)
}

func companyRow(company *entity.Company) core.Row {
	return row.New(12).Add(
		col.New(12).Add(
			text.New("COMPRADOR", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
			text.New(fmt.Sprintf("Dirección: %s   |   Tel: %s   |   Email: %s",
				nonEmpty(company.Address, "—"),
				nonEmpty(company.Phone, "—"),
				nonEmpty(company.Email, "—"),
			), props.Text{Size: 8, Top: 7, Color: colorGray}),
		),
	)
}

func supplierRow(s *entity.Supplier) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New("PROVEEDOR", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
			text.New(s.Name, props.Text{Style: fontstyle.Bold, Size: 10, Top: 6}),
			text.New(fmt.Sprintf("NIT: %s   |   Contacto: %s   |   Email: %s   |   Tel: %s",
				nonEmpty(s.TaxID, "—"),
				nonEmpty(s.ContactName, "—"),
				nonEmpty(s.Email, "—"),
				nonEmpty(s.Phone, "—"),
			), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Cant.", 1, align.Center),
		h("SKU", 2, align.Left),
		h("Producto", 4, align.Left),
		h("Costo Unit.", 2, align.Right),
		h("Subtotal", 3, align.Right),
	).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

func tableDetailRows(lines []purchasing.PurchaseLineForPDF) []core.Row {
	result := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(fmt.Sprintf("%d %s", l.Quantity, l.Unit), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(2).Add(text.New(l.SKU, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(4).Add(text.New(l.ProductName, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New("$"+formatMoney(l.UnitCost.StringFixed(0)), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(3).Add(text.New("$"+formatMoney(l.Subtotal.StringFixed(0)), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return result
}

func totalRow(po *entity.PurchaseOrder) core.Row {
	return row.New(10).Add(
		col.New(6),
		col.New(3).Add(text.New("TOTAL:", props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 2, Top: 2,
		})),
		col.New(3).Add(text.New("$"+formatMoney(po.Total.StringFixed(0)), props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 1, Top: 2,
		})),
	)
}

// footerRows QR con el número de orden (se escanea en bodega al recibir) y notas.
func footerRows(po *entity.PurchaseOrder) []core.Row {
	notes := nonEmpty(po.Notes, "Sin observaciones.")
	rows := []core.Row{
		row.New(40).Add(
			col.New(3).Add(code.NewQr("OC:"+po.Number+"|"+po.ID, props.Rect{Percent: 95, Center: true})),
			col.New(9).Add(
				text.New("OBSERVACIONES", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 2, Left: 3}),
				text.New(notes, props.Text{Size: 8, Top: 8, Left: 3, Color: colorGray}),
			),
		),
	}
	rows = append(rows, row.New(8).Add(col.New(12).Add(
		text.New("Favor citar el número de orden en la remisión y la factura.", props.Text{
			Size: 6.5, Color: colorGray, Top: 2,
		}),
	)))
	return rows
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatMoney inserta puntos de miles en un string numérico sin decimales.
// Ej: "25000" → "25.000", "-1000000" → "-1.000.000"
func formatMoney(s string) string {
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	n := len(s)
	if n <= 3 {
		return sign + s
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return sign + string(buf)
}
