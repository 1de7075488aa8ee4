package order

import (
	"math"
	"strings"
	"time"
)

// Status is one of the four literal order states.
type Status string

const (
	StatusPending        Status = "PENDING"
	StatusPacked         Status = "PACKED"
	StatusOutForDelivery Status = "OUT FOR DELIVERY"
	StatusCompleted      Status = "COMPLETED"
)

// Statuses lists every valid status in lifecycle order.
var Statuses = []Status{StatusPending, StatusPacked, StatusOutForDelivery, StatusCompleted}

// ParseStatus accepts only the exact status literals.
func ParseStatus(s string) (Status, bool) {
	for _, st := range Statuses {
		if string(st) == s {
			return st, true
		}
	}
	return "", false
}

func statusList() string {
	names := make([]string, len(Statuses))
	for i, st := range Statuses {
		names[i] = string(st)
	}
	return strings.Join(names, ", ")
}

const (
	DefaultPaymentMode = "Cash on Delivery"
	DefaultItemWeight  = "500g"
)

// Item is a copy of the product taken when the order was placed. Later
// catalog edits never reach it.
type Item struct {
	ProductID   string  `json:"productId" bson:"productId"`
	ProductName string  `json:"productName" bson:"productName"`
	Quantity    int     `json:"quantity" bson:"quantity"`
	Price       float64 `json:"price" bson:"price"`
	Weight      string  `json:"weight" bson:"weight"`
}

type Order struct {
	ID           string    `json:"id" bson:"id"`
	CustomerName string    `json:"customerName" bson:"customerName"`
	Phone        string    `json:"phone" bson:"phone"`
	Address      string    `json:"address" bson:"address"`
	Pincode      string    `json:"pincode" bson:"pincode"`
	Items        []Item    `json:"items" bson:"items"`
	TotalPrice   float64   `json:"totalPrice" bson:"totalPrice"`
	PaymentMode  string    `json:"paymentMode" bson:"paymentMode"`
	Status       Status    `json:"status" bson:"status"`
	CreatedAt    time.Time `json:"createdAt" bson:"createdAt"`
}

// ItemsTotal is the sum of price times quantity over the items.
func (o Order) ItemsTotal() float64 {
	var sum float64
	for _, it := range o.Items {
		sum += it.Price * float64(it.Quantity)
	}
	return sum
}

// totalMatches reports whether TotalPrice agrees with the items to the paisa.
func (o Order) totalMatches() bool {
	return math.Abs(o.ItemsTotal()-o.TotalPrice) < 0.005
}

// CreateInput is the checkout payload.
type CreateInput struct {
	CustomerName string  `json:"customerName"`
	Phone        string  `json:"phone"`
	Address      string  `json:"address"`
	Pincode      string  `json:"pincode"`
	Items        []Item  `json:"items"`
	TotalPrice   float64 `json:"totalPrice"`
	PaymentMode  string  `json:"paymentMode"`
}

type statusUpdate struct {
	Status string `json:"status"`
}

// clone returns a copy that shares no item storage with o.
func (o Order) clone() Order {
	o.Items = append([]Item(nil), o.Items...)
	return o
}
