// Package ingest loads sales from tabular sources into a store.
package ingest

import (
	"strconv"
	"strings"
	"time"

	"github.com/mamadbah2/salesboard/internal/domain/models"
	"github.com/mamadbah2/salesboard/internal/service/query"
)

// sourceDateLayout is the Date column format, e.g. 23-03-2023.
const sourceDateLayout = "02-01-2006"

// Row is one line of the sales dataset as exported by the source system.
type Row struct {
	TransactionID      string `csv:"Transaction ID"`
	Date               string `csv:"Date"`
	CustomerID         string `csv:"Customer ID"`
	CustomerName       string `csv:"Customer Name"`
	PhoneNumber        string `csv:"Phone Number"`
	Gender             string `csv:"Gender"`
	Age                string `csv:"Age"`
	CustomerRegion     string `csv:"Customer Region"`
	CustomerType       string `csv:"Customer Type"`
	ProductID          string `csv:"Product ID"`
	ProductName        string `csv:"Product Name"`
	Brand              string `csv:"Brand"`
	ProductCategory    string `csv:"Product Category"`
	Tags               string `csv:"Tags"`
	Quantity           string `csv:"Quantity"`
	PricePerUnit       string `csv:"Price per Unit"`
	DiscountPercentage string `csv:"Discount Percentage"`
	TotalAmount        string `csv:"Total Amount"`
	FinalAmount        string `csv:"Final Amount"`
	PaymentMethod      string `csv:"Payment Method"`
	OrderStatus        string `csv:"Order Status"`
	DeliveryType       string `csv:"Delivery Type"`
	StoreID            string `csv:"Store ID"`
	StoreLocation      string `csv:"Store Location"`
	SalespersonID      string `csv:"Salesperson ID"`
	EmployeeName       string `csv:"Employee Name"`
}

// Sale converts the row. Dates are read as midnight in loc; numbers that do
// not parse become zero.
func (r Row) Sale(loc *time.Location) models.Sale {
	if loc == nil {
		loc = time.Local
	}

	sale := models.Sale{
		TransactionID:      int64(parseFloat(r.TransactionID)),
		CustomerID:         strings.TrimSpace(r.CustomerID),
		CustomerName:       strings.TrimSpace(r.CustomerName),
		PhoneNumber:        strings.TrimSpace(r.PhoneNumber),
		Gender:             strings.TrimSpace(r.Gender),
		Age:                int(parseFloat(r.Age)),
		CustomerRegion:     strings.TrimSpace(r.CustomerRegion),
		CustomerType:       strings.TrimSpace(r.CustomerType),
		ProductID:          strings.TrimSpace(r.ProductID),
		ProductName:        strings.TrimSpace(r.ProductName),
		Brand:              strings.TrimSpace(r.Brand),
		ProductCategory:    strings.TrimSpace(r.ProductCategory),
		Tags:               parseTags(r.Tags),
		Quantity:           int(parseFloat(r.Quantity)),
		PricePerUnit:       parseFloat(r.PricePerUnit),
		DiscountPercentage: parseFloat(r.DiscountPercentage),
		TotalAmount:        parseFloat(r.TotalAmount),
		FinalAmount:        parseFloat(r.FinalAmount),
		PaymentMethod:      strings.TrimSpace(r.PaymentMethod),
		OrderStatus:        strings.TrimSpace(r.OrderStatus),
		DeliveryType:       strings.TrimSpace(r.DeliveryType),
		StoreID:            strings.TrimSpace(r.StoreID),
		StoreLocation:      strings.TrimSpace(r.StoreLocation),
		SalespersonID:      strings.TrimSpace(r.SalespersonID),
		EmployeeName:       strings.TrimSpace(r.EmployeeName),
	}

	if d, err := time.ParseInLocation(sourceDateLayout, strings.TrimSpace(r.Date), loc); err == nil {
		sale.Date = d
	}

	return sale
}

func parseTags(raw string) []string {
	tags := query.SplitList(raw)
	if tags == nil {
		return []string{}
	}
	return tags
}

func parseFloat(raw string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0
	}
	return v
}
