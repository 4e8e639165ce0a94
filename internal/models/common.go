// internal/models/common.go
package models

import (
	"time"
)

// Base model with common fields
type BaseModel struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Enums
type ProductStatus string

const (
	ProductStatusRequest    ProductStatus = "REQUEST"
	ProductStatusRegistered ProductStatus = "REGISTERED"
)

type BiddingStatus string

const (
	BiddingStatusProcess  BiddingStatus = "PROCESS"
	BiddingStatusComplete BiddingStatus = "COMPLETE"
)

type SalesStatus string

const (
	SalesStatusInspection SalesStatus = "INSPECTION"
	SalesStatusProcess    SalesStatus = "PROCESS"
	SalesStatusComplete   SalesStatus = "COMPLETE"
)

type DrawStatus string

const (
	DrawStatusReady   DrawStatus = "READY"
	DrawStatusProcess DrawStatus = "PROCESS"
	DrawStatusEnd     DrawStatus = "END"
)
