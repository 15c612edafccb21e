package model

import (
	"time"
)

// Base 基础模型
type Base struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SlugDefault slug未生成时的占位值
const SlugDefault = "no-slug"
