package service

import (
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"

	"github.com/d60-Lab/homecook/internal/repository"
)

// renderReceipt 渲染支付收据 PDF
func renderReceipt(w io.Writer, row *repository.ReceiptRow) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 22)
	pdf.CellFormat(0, 12, "HomeCook - Payment Receipt", "", 1, "C", false, 0, "")
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "", 14)
	pdf.CellFormat(0, 8, fmt.Sprintf("Order ID: %d", row.ID), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 8, fmt.Sprintf("Dish: %s", row.DishName), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 8, fmt.Sprintf("Cook: %s", row.CookName), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 8, fmt.Sprintf("Total Paid: Rs. %.2f", row.TotalPrice), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 8, fmt.Sprintf("Date: %s", row.OrderTime.Format("02 Jan 2006 15:04")), "", 1, "L", false, 0, "")
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "I", 12)
	pdf.CellFormat(0, 8, "Thank you for using HomeCook!", "", 1, "C", false, 0, "")

	return pdf.Output(w)
}
