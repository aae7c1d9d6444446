package extras

import (
	"context"
	"errors"
)

var (
	ErrServiceNotFound = errors.New("extras: service not found")
	ErrNegativePrice   = errors.New("extras: price must be non-negative")
)

type ServiceID string

// Service is a flat-priced add-on. It is priced per unit, independent of dates, and never discounted.
type Service struct {
	ID     ServiceID
	Name   string
	Price  int64
	Active bool
}

type Repository interface {
	ByID(ctx context.Context, id ServiceID) (*Service, error)
	List(ctx context.Context) ([]*Service, error)
}

func (s *Service) Validate() error {
	if s.Price < 0 {
		return ErrNegativePrice
	}
	return nil
}

// LineTotal is price × quantity; non-positive quantities contribute nothing.
func (s *Service) LineTotal(quantity int) int64 {
	if quantity <= 0 {
		return 0
	}
	return s.Price * int64(quantity)
}
