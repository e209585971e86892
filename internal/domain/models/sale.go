package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Sale is one imported sales transaction. Every attribute comes from a CSV
// row and may be missing, in which case it holds its zero value.
type Sale struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	TransactionID int64              `bson:"transactionId" json:"transactionId"`
	Date          time.Time          `bson:"date,omitempty" json:"date"`

	CustomerID     string `bson:"customerId,omitempty" json:"customerId,omitempty"`
	CustomerName   string `bson:"customerName,omitempty" json:"customerName,omitempty"`
	PhoneNumber    string `bson:"phoneNumber,omitempty" json:"phoneNumber,omitempty"`
	Gender         string `bson:"gender,omitempty" json:"gender,omitempty"`
	Age            int    `bson:"age" json:"age"`
	CustomerRegion string `bson:"customerRegion,omitempty" json:"customerRegion,omitempty"`
	CustomerType   string `bson:"customerType,omitempty" json:"customerType,omitempty"`

	ProductID       string   `bson:"productId,omitempty" json:"productId,omitempty"`
	ProductName     string   `bson:"productName,omitempty" json:"productName,omitempty"`
	Brand           string   `bson:"brand,omitempty" json:"brand,omitempty"`
	ProductCategory string   `bson:"productCategory,omitempty" json:"productCategory,omitempty"`
	Tags            []string `bson:"tags" json:"tags"`

	Quantity           int     `bson:"quantity" json:"quantity"`
	PricePerUnit       float64 `bson:"pricePerUnit" json:"pricePerUnit"`
	DiscountPercentage float64 `bson:"discountPercentage" json:"discountPercentage"`
	TotalAmount        float64 `bson:"totalAmount" json:"totalAmount"`
	// FinalAmount is taken from the source as-is; it is not derived from
	// TotalAmount and DiscountPercentage.
	FinalAmount float64 `bson:"finalAmount" json:"finalAmount"`

	PaymentMethod string `bson:"paymentMethod,omitempty" json:"paymentMethod,omitempty"`
	OrderStatus   string `bson:"orderStatus,omitempty" json:"orderStatus,omitempty"`
	DeliveryType  string `bson:"deliveryType,omitempty" json:"deliveryType,omitempty"`
	StoreID       string `bson:"storeId,omitempty" json:"storeId,omitempty"`
	StoreLocation string `bson:"storeLocation,omitempty" json:"storeLocation,omitempty"`
	SalespersonID string `bson:"salespersonId,omitempty" json:"salespersonId,omitempty"`
	EmployeeName  string `bson:"employeeName,omitempty" json:"employeeName,omitempty"`
}

// Discount is the amount taken off the list total.
func (s Sale) Discount() float64 {
	return s.TotalAmount - s.FinalAmount
}
