package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidCart        = errors.New("cart is empty or references unknown products")
	ErrInvalidTransition  = errors.New("order status does not allow this transition")
	ErrNotPurchased       = errors.New("you can only review items you have ordered")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrProductReferenced  = errors.New("product is referenced by existing orders")
)

// NotFoundError identifies a lookup of a resource that does not exist. The
// resource is addressed either by ID or, when Key is set, by a natural key
// such as an email or a product name.
type NotFoundError struct {
	Resource string
	ID       int64
	Key      string
}

func (e *NotFoundError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("%s %q not found", e.Resource, e.Key)
	}
	return fmt.Sprintf("%s with id %d not found", e.Resource, e.ID)
}

func NewNotFoundError(resource string, id int64) error {
	return &NotFoundError{Resource: resource, ID: id}
}

func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// InsufficientStockError names the first under-stocked product that made an
// order approval fail. No stock is mutated when it is returned.
type InsufficientStockError struct {
	ProductName string
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("not enough stock for %s", e.ProductName)
}
