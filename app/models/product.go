package models

import "time"

// Product is one article of the SOUTOURA_KS catalogue.
//
// Images, Sizes and Colors are stored as JSON text in a single column each,
// so the model works the same on SQLite, Postgres and MySQL.
type Product struct {
	ID           uint      `gorm:"primaryKey;autoIncrement"            json:"id"`
	Name         string    `gorm:"size:255;not null;index"             json:"name"`
	Description  string    `gorm:"type:text"                           json:"description"`
	Price        float64   `gorm:"not null"                            json:"price"`
	Category     string    `gorm:"size:100;index"                      json:"category"`
	SousCategory string    `gorm:"size:100;column:sous_category;index" json:"sous_category"`
	Stock        int       `gorm:"not null;default:0"                  json:"stock"`
	Images       []string  `gorm:"serializer:json"                     json:"images"`
	Sizes        []string  `gorm:"serializer:json"                     json:"sizes"`
	Colors       []string  `gorm:"serializer:json"                     json:"colors"`
	CreatedAt    time.Time `gorm:"autoCreateTime"                      json:"created_at"`
}
