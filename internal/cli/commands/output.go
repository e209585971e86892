package commands

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/mamadbah2/salesboard/internal/domain/models"
)

const dateLayout = "2006-01-02"

func renderPage(out io.Writer, page *models.Page) {
	if len(page.Data) == 0 {
		fmt.Fprintln(out, "No sales match the current filters.")
		return
	}

	table := tablewriter.NewWriter(out)
	table.SetHeader([]string{"Transaction ID", "Date", "Customer", "Phone", "Gender", "Age", "Category", "Qty", "Region", "Payment", "Final Amount"})
	for _, s := range page.Data {
		table.Append([]string{
			strconv.FormatInt(s.TransactionID, 10),
			formatDate(s),
			s.CustomerName,
			s.PhoneNumber,
			s.Gender,
			strconv.Itoa(s.Age),
			s.ProductCategory,
			strconv.Itoa(s.Quantity),
			s.CustomerRegion,
			s.PaymentMethod,
			money(s.FinalAmount),
		})
	}
	table.Render()

	fmt.Fprintf(out, "Page %d of %d, %d records\n", page.Page, page.TotalPages, page.TotalItems)
	fmt.Fprintf(out, "Units: %d  Amount: %s  Discount: %s\n",
		page.Summary.TotalUnits, money(page.Summary.TotalAmount), money(page.Summary.TotalDiscount))
}

func renderSale(out io.Writer, s *models.Sale) {
	table := tablewriter.NewWriter(out)
	table.SetHeader([]string{"Field", "Value"})
	table.AppendBulk([][]string{
		{"ID", s.ID.Hex()},
		{"Transaction ID", strconv.FormatInt(s.TransactionID, 10)},
		{"Date", formatDate(*s)},
		{"Customer", fmt.Sprintf("%s (%s)", s.CustomerName, s.CustomerID)},
		{"Phone", s.PhoneNumber},
		{"Gender", s.Gender},
		{"Age", strconv.Itoa(s.Age)},
		{"Region", s.CustomerRegion},
		{"Product", fmt.Sprintf("%s (%s)", s.ProductName, s.ProductID)},
		{"Brand", s.Brand},
		{"Category", s.ProductCategory},
		{"Tags", strings.Join(s.Tags, ", ")},
		{"Quantity", strconv.Itoa(s.Quantity)},
		{"Price per Unit", money(s.PricePerUnit)},
		{"Discount", fmt.Sprintf("%g%%", s.DiscountPercentage)},
		{"Total Amount", money(s.TotalAmount)},
		{"Final Amount", money(s.FinalAmount)},
		{"Payment", s.PaymentMethod},
		{"Status", s.OrderStatus},
		{"Delivery", s.DeliveryType},
		{"Store", fmt.Sprintf("%s %s", s.StoreID, s.StoreLocation)},
		{"Employee", fmt.Sprintf("%s (%s)", s.EmployeeName, s.SalespersonID)},
	})
	table.Render()
}

func renderCatalog(out io.Writer, c *models.Catalog) {
	table := tablewriter.NewWriter(out)
	table.SetHeader([]string{"Filter", "Values"})
	table.SetAutoWrapText(false)
	table.AppendBulk([][]string{
		{"region", strings.Join(c.Regions, ", ")},
		{"gender", strings.Join(c.Genders, ", ")},
		{"category", strings.Join(c.Categories, ", ")},
		{"tags", strings.Join(c.Tags, ", ")},
		{"payment", strings.Join(c.PaymentMethods, ", ")},
	})
	table.Render()
}

func formatDate(s models.Sale) string {
	if s.Date.IsZero() {
		return "-"
	}
	return s.Date.Format(dateLayout)
}

func money(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
