package pdf

import (
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/image"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/border"
	"github.com/johnfercher/maroto/v2/pkg/consts/extension"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/skip2/go-qrcode"
)

var (
	colorPrimary   = &props.Color{Red: 17, Green: 24, Blue: 39}    // near-black
	colorSecondary = &props.Color{Red: 107, Green: 114, Blue: 128} // gray-500
	colorAccent    = &props.Color{Red: 37, Green: 99, Blue: 235}   // blue-600
	colorTableHead = &props.Color{Red: 241, Green: 245, Blue: 249} // slate-100
	colorTableAlt  = &props.Color{Red: 249, Green: 250, Blue: 251} // gray-50
	colorGreen     = &props.Color{Red: 22, Green: 163, Blue: 74}   // green-600
	colorBorder    = &props.Color{Red: 226, Green: 232, Blue: 240} // slate-200
)

// Generate renders the document to PDF bytes. The document is validated
// first; a blank or anonymous document never reaches the layout engine.
func Generate(doc Document) ([]byte, error) {
	if err := doc.Validate(); err != nil {
		return nil, err
	}

	cfg := config.NewBuilder().
		WithLeftMargin(15).
		WithTopMargin(12).
		WithRightMargin(15).
		Build()

	m := maroto.New(cfg)

	if err := m.RegisterFooter(buildFooter(doc)); err != nil {
		return nil, fmt.Errorf("register footer: %w", err)
	}

	m.AddRows(buildHeader(doc)...)
	m.AddRows(row.New(1).WithStyle(&props.Cell{
		BorderType:  border.Bottom,
		BorderColor: colorBorder,
	}))
	m.AddRows(row.New(6))

	m.AddRows(buildAddressBlock(doc)...)
	m.AddRows(row.New(6))

	m.AddRows(buildItemsTable(doc)...)
	m.AddRows(row.New(4))

	m.AddRows(buildTotalsBlock(doc)...)

	if doc.Notes != nil && *doc.Notes != "" {
		m.AddRows(row.New(6))
		m.AddRows(buildNotesBlock(*doc.Notes)...)
	}

	m.AddRows(row.New(8))
	m.AddRows(buildLegalTerms(doc)...)

	if doc.AcceptURL != "" {
		qrRows, err := buildQRBlock(doc.AcceptURL)
		if err != nil {
			return nil, err
		}
		m.AddRows(row.New(8))
		m.AddRows(qrRows...)
	}

	generated, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("generate PDF: %w", err)
	}

	return generated.GetBytes(), nil
}

func buildHeader(doc Document) []core.Row {
	nameCol := col.New(5).Add(
		text.New(doc.AgencyName, props.Text{
			Size:  14,
			Style: fontstyle.Bold,
			Color: colorPrimary,
			Top:   4,
		}),
	)

	titleCol := col.New(7).Add(
		text.New(doc.Title(), props.Text{
			Size:  24,
			Style: fontstyle.Bold,
			Align: align.Right,
			Color: colorAccent,
		}),
		text.New(doc.Number, props.Text{
			Size:  11,
			Align: align.Right,
			Color: colorSecondary,
			Top:   12,
		}),
	)

	return []core.Row{row.New(20).Add(nameCol, titleCol)}
}

func buildAddressBlock(doc Document) []core.Row {
	var rows []core.Row

	rows = append(rows, row.New(5).Add(
		col.New(6).Add(text.New("ÉMETTEUR", props.Text{Size: 7, Style: fontstyle.Bold, Color: colorAccent})),
		col.New(3).Add(text.New("DESTINATAIRE", props.Text{Size: 7, Style: fontstyle.Bold, Color: colorAccent})),
		col.New(3).Add(text.New("DÉTAILS", props.Text{Size: 7, Style: fontstyle.Bold, Color: colorAccent, Align: align.Right})),
	))

	rows = append(rows, row.New(5).Add(
		col.New(6).Add(text.New(doc.AgencyName, props.Text{Size: 9, Style: fontstyle.Bold, Color: colorPrimary})),
		col.New(3).Add(text.New(doc.ClientName, props.Text{Size: 9, Style: fontstyle.Bold, Color: colorPrimary})),
		col.New(3).Add(text.New("Date : "+doc.IssuedAt.Format("02/01/2006"), props.Text{Size: 8, Color: colorSecondary, Align: align.Right})),
	))

	deadline := ""
	if doc.Kind == KindInvoice && doc.DueDate != nil {
		deadline = "Échéance : " + doc.DueDate.Format("02/01/2006")
	}
	if doc.Kind == KindQuote && doc.ValidUntil != nil {
		deadline = "Valable jusqu'au : " + doc.ValidUntil.Format("02/01/2006")
	}
	rows = append(rows, row.New(5).Add(
		col.New(6).Add(text.New(doc.AgencyAddress, props.Text{Size: 8, Color: colorSecondary})),
		col.New(3).Add(text.New(doc.ClientEmail, props.Text{Size: 8, Color: colorSecondary})),
		col.New(3).Add(text.New(deadline, props.Text{Size: 8, Color: colorSecondary, Align: align.Right})),
	))

	contact := joinParts([]string{doc.AgencyEmail, doc.AgencyPhone}, "  |  ")
	rows = append(rows, row.New(5).Add(
		col.New(12).Add(text.New(contact, props.Text{Size: 8, Color: colorSecondary})),
	))

	legal := []string{}
	if doc.AgencySIRET != "" {
		legal = append(legal, "SIRET : "+doc.AgencySIRET)
	}
	if doc.AgencyTVA != "" {
		legal = append(legal, "TVA : "+doc.AgencyTVA)
	}
	if len(legal) > 0 {
		rows = append(rows, row.New(5).Add(
			col.New(12).Add(text.New(joinParts(legal, "  |  "), props.Text{Size: 8, Color: colorSecondary})),
		))
	}

	return rows
}

func buildItemsTable(doc Document) []core.Row {
	var rows []core.Row

	rows = append(rows, row.New(7).Add(
		col.New(12).Add(text.New("PRESTATIONS", props.Text{
			Size:  8,
			Style: fontstyle.Bold,
			Color: colorAccent,
		})),
	))

	headerStyle := props.Text{Size: 7.5, Style: fontstyle.Bold, Color: colorPrimary, Top: 1.5}
	headerStyleRight := props.Text{Size: 7.5, Style: fontstyle.Bold, Color: colorPrimary, Align: align.Right, Top: 1.5}

	rows = append(rows, row.New(7).Add(
		col.New(6).Add(text.New("Désignation", headerStyle)),
		col.New(1).Add(text.New("Qté", headerStyle)),
		col.New(2).Add(text.New("Prix unitaire HT", headerStyleRight)),
		col.New(3).Add(text.New("Montant HT", headerStyleRight)),
	).WithStyle(&props.Cell{
		BackgroundColor: colorTableHead,
		BorderType:      border.Bottom,
		BorderColor:     colorBorder,
	}))

	normalStyle := props.Text{Size: 8, Color: colorPrimary, Top: 1}
	rightStyle := props.Text{Size: 8, Color: colorPrimary, Align: align.Right, Top: 1}

	for i, item := range doc.Items {
		r := row.New(7).Add(
			col.New(6).Add(text.New(item.Description, normalStyle)),
			col.New(1).Add(text.New(item.Quantity, normalStyle)),
			col.New(2).Add(text.New(FormatEuros(item.UnitPriceCents), rightStyle)),
			col.New(3).Add(text.New(FormatEuros(item.LineTotalCents), rightStyle)),
		)
		if i%2 == 0 {
			r.WithStyle(&props.Cell{BackgroundColor: colorTableAlt})
		}
		rows = append(rows, r)
	}

	return rows
}

func buildTotalsBlock(doc Document) []core.Row {
	var rows []core.Row

	rows = append(rows, row.New(1).WithStyle(&props.Cell{
		BorderType:  border.Bottom,
		BorderColor: colorBorder,
	}))
	rows = append(rows, row.New(3))

	labelStyle := props.Text{Size: 9, Color: colorSecondary, Align: align.Right}
	valueStyle := props.Text{Size: 9, Color: colorPrimary, Align: align.Right}

	rows = append(rows, row.New(6).Add(
		col.New(9).Add(text.New("Total HT", labelStyle)),
		col.New(3).Add(text.New(FormatEuros(doc.SubtotalCents), valueStyle)),
	))

	if doc.DiscountCents > 0 {
		rows = append(rows, row.New(6).Add(
			col.New(9).Add(text.New("Remise", labelStyle)),
			col.New(3).Add(text.New("-"+FormatEuros(doc.DiscountCents), props.Text{
				Size:  9,
				Color: colorGreen,
				Align: align.Right,
			})),
		))
	}

	tvaLabel := fmt.Sprintf("TVA %.1f%%", float64(doc.TaxRateBps)/100.0)
	rows = append(rows, row.New(6).Add(
		col.New(9).Add(text.New(tvaLabel, labelStyle)),
		col.New(3).Add(text.New(FormatEuros(doc.TaxCents), valueStyle)),
	))

	rows = append(rows, row.New(2))
	rows = append(rows, row.New(10).Add(
		col.New(9).Add(text.New("TOTAL TTC", props.Text{
			Size:  12,
			Style: fontstyle.Bold,
			Color: colorPrimary,
			Align: align.Right,
			Top:   2,
		})),
		col.New(3).Add(text.New(FormatEuros(doc.TotalCents), props.Text{
			Size:  12,
			Style: fontstyle.Bold,
			Color: colorPrimary,
			Align: align.Right,
			Top:   2,
		})),
	).WithStyle(&props.Cell{
		BackgroundColor: colorTableHead,
		BorderType:      border.Top | border.Bottom,
		BorderColor:     colorBorder,
	}))

	return rows
}

func buildNotesBlock(notes string) []core.Row {
	return []core.Row{
		row.New(5).Add(
			col.New(12).Add(text.New("REMARQUES", props.Text{
				Size:  8,
				Style: fontstyle.Bold,
				Color: colorAccent,
			})),
		),
		row.New(12).Add(
			col.New(12).Add(text.New(notes, props.Text{
				Size:  8,
				Color: colorSecondary,
				Top:   1,
			})),
		),
	}
}

func buildLegalTerms(doc Document) []core.Row {
	terms := []string{
		"1.  Devis gratuit, valable 30 jours à compter de sa date d'émission sauf mention contraire.",
		"2.  Un acompte de 30% est demandé à la signature, le solde à la livraison.",
		"3.  Tout devis accepté vaut bon de commande et engage les deux parties.",
	}
	if doc.Kind == KindInvoice {
		terms = []string{
			"1.  Paiement à réception, au plus tard à la date d'échéance indiquée.",
			"2.  Pénalités de retard : trois fois le taux d'intérêt légal ; indemnité forfaitaire de recouvrement de 40 €.",
			"3.  Pas d'escompte pour paiement anticipé.",
		}
	}

	rows := []core.Row{
		row.New(1).WithStyle(&props.Cell{
			BorderType:  border.Bottom,
			BorderColor: colorBorder,
		}),
		row.New(3),
		row.New(5).Add(
			col.New(12).Add(text.New("CONDITIONS", props.Text{
				Size:  7,
				Style: fontstyle.Bold,
				Color: colorAccent,
			})),
		),
	}
	for _, term := range terms {
		rows = append(rows, row.New(4).Add(
			col.New(12).Add(text.New(term, props.Text{Size: 7, Color: colorSecondary})),
		))
	}
	return rows
}

func buildQRBlock(acceptURL string) ([]core.Row, error) {
	png, err := qrcode.Encode(acceptURL, qrcode.Medium, 256)
	if err != nil {
		return nil, fmt.Errorf("encode QR code: %w", err)
	}

	return []core.Row{
		row.New(5).Add(
			col.New(12).Add(text.New("ACCEPTER EN LIGNE", props.Text{
				Size:  8,
				Style: fontstyle.Bold,
				Color: colorAccent,
			})),
		),
		row.New(30).Add(
			col.New(3).Add(
				image.NewFromBytes(png, extension.Png, props.Rect{
					Percent: 90,
					Center:  false,
				}),
			),
			col.New(9).Add(text.New(
				"Scannez ce code pour consulter et accepter ce devis en ligne : "+acceptURL,
				props.Text{Size: 8, Color: colorSecondary, Top: 10},
			)),
		),
	}, nil
}

func buildFooter(doc Document) core.Row {
	parts := []string{doc.AgencyName}
	if doc.AgencySIRET != "" {
		parts = append(parts, "SIRET : "+doc.AgencySIRET)
	}
	if doc.AgencyTVA != "" {
		parts = append(parts, "TVA : "+doc.AgencyTVA)
	}
	if doc.AgencyPhone != "" {
		parts = append(parts, "Tél : "+doc.AgencyPhone)
	}
	if doc.AgencyEmail != "" {
		parts = append(parts, doc.AgencyEmail)
	}

	return row.New(10).Add(
		col.New(12).Add(
			text.New(joinParts(parts, "  ·  "), props.Text{
				Size:  6.5,
				Color: colorSecondary,
				Align: align.Center,
				Top:   4,
			}),
		),
	).WithStyle(&props.Cell{
		BorderType:  border.Top,
		BorderColor: colorBorder,
	})
}

func joinParts(parts []string, sep string) string {
	result := ""
	for _, p := range parts {
		if p == "" {
			continue
		}
		if result != "" {
			result += sep
		}
		result += p
	}
	return result
}
