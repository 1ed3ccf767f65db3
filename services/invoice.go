package services

import (
	"bytes"
	"fmt"

	"github.com/Kariqs/confectionary-api/models"
	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"
)

type InvoiceRenderer struct {
	ShopName string
}

func (r InvoiceRenderer) Render(user *models.User, order *models.Order, items []models.OrderItemInfo) ([]byte, error) {
	shop := r.ShopName
	if shop == "" {
		shop = "Confectionary"
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Invoice "+order.ID, true)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, shop+" - Invoice")
	pdf.Ln(14)

	pdf.SetFont("Helvetica", "", 11)
	lines := []string{
		"Order: " + order.ID,
		"Date: " + order.Date.Format("2006-01-02"),
		"Status: " + string(order.Status),
		"Customer: " + user.Email,
		fmt.Sprintf("Ship to: %s, %s %s, %s", order.Address, order.PostalCode, order.City, order.Country),
	}
	for _, line := range lines {
		pdf.Cell(0, 6, line)
		pdf.Ln(6)
	}
	pdf.Ln(6)

	widths := []float64{95, 25, 35, 35}
	pdf.SetFont("Helvetica", "B", 11)
	for i, header := range []string{"Product", "Qty", "Unit price", "Amount"} {
		pdf.CellFormat(widths[i], 8, header, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 11)
	total := decimal.Zero
	for _, item := range items {
		amount := item.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
		total = total.Add(amount)

		pdf.CellFormat(widths[0], 7, item.Title, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[1], 7, fmt.Sprint(item.Quantity), "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[2], 7, item.Price.StringFixed(2), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[3], 7, amount.StringFixed(2), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(widths[0]+widths[1]+widths[2], 8, "Total", "1", 0, "R", false, 0, "")
	pdf.CellFormat(widths[3], 8, order.TotalPrice.StringFixed(2), "1", 0, "R", false, 0, "")
	pdf.Ln(-1)

	if !total.Equal(order.TotalPrice) {
		pdf.SetFont("Helvetica", "I", 9)
		pdf.Cell(0, 6, "Order total was adjusted after purchase.")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render invoice: %w", err)
	}
	return buf.Bytes(), nil
}
