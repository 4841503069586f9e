// Package utils provides shared helpers used across the application.
//
// Go Learning Note — "pkg/" Directory Convention:
// Code under pkg/ is intended to be importable by external projects (unlike
// internal/ which is compiler-enforced private). It's a community convention,
// not a language feature.
package utils

import (
	"github.com/google/uuid"
)

const (
	CarIDPrefix    = "car-"
	RentalIDPrefix = "rental-"
)

// GenerateID creates a new UUID v4 string.
func GenerateID() string {
	return uuid.New().String()
}

// NewCarID returns a fresh car identifier such as "car-3f0c…".
func NewCarID() string {
	return CarIDPrefix + GenerateID()
}

// NewRentalID returns a fresh rental identifier such as "rental-9a1e…".
func NewRentalID() string {
	return RentalIDPrefix + GenerateID()
}
