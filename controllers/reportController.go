package controllers

import (
	"log"
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportSalesReport streams the full order history as a spreadsheet:
// one sheet per order row, one sheet of revenue by month.
func ExportSalesReport(ctx *gin.Context) {
	orderList, err := orders.ListAll()
	if err != nil {
		log.Println(err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Unable to fetch orders")
		return
	}

	f := excelize.NewFile()
	defer f.Close()

	const ordersSheet = "Orders"
	f.SetSheetName("Sheet1", ordersSheet)

	headers := []string{"Order ID", "Date", "Customer", "Farmer", "Status", "Subtotal", "Tax", "Delivery Fee", "Total"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(ordersSheet, cell, header)
	}

	monthlyRevenue := make(map[string]float64)
	for i, order := range orderList {
		row := i + 2
		values := []any{
			order.ID,
			order.OrderDate.Format("2006-01-02"),
			order.UserName,
			order.FarmerName,
			order.Status,
			order.Subtotal,
			order.Tax,
			order.DeliveryFee,
			order.Total,
		}
		for j, value := range values {
			cell, _ := excelize.CoordinatesToCellName(j+1, row)
			f.SetCellValue(ordersSheet, cell, value)
		}
		monthlyRevenue[order.OrderDate.Format("2006-01")] += order.Total
	}

	const revenueSheet = "Monthly Revenue"
	if _, err := f.NewSheet(revenueSheet); err != nil {
		log.Println(err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to build report")
		return
	}
	f.SetCellValue(revenueSheet, "A1", "Month")
	f.SetCellValue(revenueSheet, "B1", "Revenue")

	months := make([]string, 0, len(monthlyRevenue))
	for month := range monthlyRevenue {
		months = append(months, month)
	}
	sort.Strings(months)
	for i, month := range months {
		cellA, _ := excelize.CoordinatesToCellName(1, i+2)
		cellB, _ := excelize.CoordinatesToCellName(2, i+2)
		f.SetCellValue(revenueSheet, cellA, month)
		f.SetCellValue(revenueSheet, cellB, monthlyRevenue[month])
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		log.Println(err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to write report")
		return
	}

	ctx.Header("Content-Disposition", `attachment; filename="sales-report.xlsx"`)
	ctx.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
