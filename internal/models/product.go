package models

import "time"

// Product is catalog entity. Price is integer CLP.
type Product struct {
	ID           uint64
	Name         string
	Slug         string
	Description  string
	Price        int64
	Stock        int64
	ImageURL     string
	CategoryName string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
