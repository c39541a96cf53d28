package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Category string

const (
	CategoryHot     Category = "hot"
	CategoryCold    Category = "cold"
	CategoryDessert Category = "dessert"
)

func IsValidCategory(category Category) bool {
	switch category {
	case CategoryHot, CategoryCold, CategoryDessert:
		return true
	default:
		return false
	}
}

// DefaultSizes is assigned to products created without an explicit size list.
var DefaultSizes = []string{"S", "M", "L"}

const DefaultStock = 100

type Product struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Category    Category        `json:"category"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	ImageURL    string          `json:"image_url"`
	Ingredients string          `json:"ingredients"`
	Sizes       []string        `json:"sizes"`
	Stock       int             `json:"stock"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ProductFilter narrows ListProducts. Zero values mean "no constraint".
type ProductFilter struct {
	Query    string
	Category Category
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
}

type ProductRepository interface {
	CreateProduct(product *Product) (*Product, error)
	GetProductByID(id int64) (*Product, error)
	GetProductByName(name string) (*Product, error)
	ListProducts(filter ProductFilter) ([]Product, error)
	UpdateProduct(product *Product) (*Product, error)
	DeleteProduct(id int64) error
	CountProducts() (int, error)
}

type ProductUseCase interface {
	ListProducts(filter ProductFilter) ([]Product, error)
	GetProduct(id int64) (*Product, []Review, error)
	CreateProduct(product *Product) (*Product, error)
	UpdateProduct(product *Product) (*Product, error)
	DeleteProduct(id int64) error
}
