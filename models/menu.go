package models

import "github.com/shopspring/decimal"

// MenuItem is one purchasable catalog entry. Prices carry two fraction digits.
type MenuItem struct {
	Name     string
	Price    decimal.Decimal
	Category string
}

const (
	CategoryCoffee     = "Coffee"
	CategoryTea        = "Tea"
	CategoryColdDrinks = "Cold Drinks"
	CategoryRegular    = "Regular"
)

// CategoryGroup is one category with its items in catalog order.
type CategoryGroup struct {
	Category string
	Items    []MenuItem
}
