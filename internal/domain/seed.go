package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SeedCategories returns the sample categories every new session starts with
func SeedCategories() []*Category {
	return []*Category{
		{ID: "1", Name: "Продукты", Icon: "ShoppingCart", Color: "#0EA5E9", Limit: decimal.NewFromInt(15000)},
		{ID: "2", Name: "Транспорт", Icon: "Car", Color: "#8B5CF6", Limit: decimal.NewFromInt(5000)},
		{ID: "3", Name: "Развлечения", Icon: "Gamepad2", Color: "#F97316", Limit: decimal.NewFromInt(10000)},
		{ID: "4", Name: "Здоровье", Icon: "Heart", Color: "#EC4899", Limit: decimal.NewFromInt(8000)},
		{ID: "5", Name: "Коммуналка", Icon: "Home", Color: "#10B981", Limit: decimal.NewFromInt(7000)},
		{ID: "6", Name: "Одежда", Icon: "Shirt", Color: "#F59E0B", Limit: decimal.NewFromInt(12000)},
	}
}

// SeedExpenses returns the sample expenses every new session starts with, in store order
func SeedExpenses() []*Expense {
	return []*Expense{
		{ID: "1", CategoryID: "1", Amount: decimal.NewFromInt(2500), Description: "Покупка в супермаркете", Date: seedDate(3)},
		{ID: "2", CategoryID: "2", Amount: decimal.NewFromInt(500), Description: "Метро", Date: seedDate(4)},
		{ID: "3", CategoryID: "3", Amount: decimal.NewFromInt(1800), Description: "Кино с друзьями", Date: seedDate(4)},
		{ID: "4", CategoryID: "1", Amount: decimal.NewFromInt(3200), Description: "Продукты на неделю", Date: seedDate(5)},
		{ID: "5", CategoryID: "4", Amount: decimal.NewFromInt(2100), Description: "Аптека", Date: seedDate(5)},
	}
}

func seedDate(day int) time.Time {
	return time.Date(2024, time.December, day, 0, 0, 0, 0, time.UTC)
}
