package seeders

import (
	"gorm.io/gorm"

	"github.com/soutoura/soutoura/app/models"
)

func init() {
	Register("products", SeedProducts)
}

// SeedProducts loads a small demo catalogue. It is idempotent: an already
// seeded database is left alone.
func SeedProducts(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Product{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	products := []models.Product{
		{
			Name:         "Robe Wax Élégance",
			Description:  "Robe longue en tissu wax, coupe cintrée, idéale pour les cérémonies.",
			Price:        25000,
			Category:     "femme",
			SousCategory: "robes",
			Stock:        8,
			Images:       []string{"https://cdn.soutoura.sn/products/robe-wax-elegance.jpg"},
			Sizes:        []string{"S", "M", "L", "XL"},
			Colors:       []string{"rouge", "bleu", "jaune"},
		},
		{
			Name:         "Grand Boubou Brodé",
			Description:  "Boubou trois pièces en bazin riche avec broderies artisanales.",
			Price:        45000,
			Category:     "homme",
			SousCategory: "boubous",
			Stock:        5,
			Images:       []string{"https://cdn.soutoura.sn/products/grand-boubou-brode.jpg"},
			Sizes:        []string{"M", "L", "XL", "XXL"},
			Colors:       []string{"blanc", "bleu ciel"},
		},
		{
			Name:         "Sac Tissé Artisanal",
			Description:  "Sac à main tissé à la main par des artisanes de Thiès.",
			Price:        12000,
			Category:     "femme",
			SousCategory: "accessoires",
			Stock:        15,
			Images:       []string{"https://cdn.soutoura.sn/products/sac-tisse.jpg"},
			Sizes:        []string{},
			Colors:       []string{"naturel", "noir"},
		},
		{
			Name:         "Ensemble Enfant Pagne",
			Description:  "Ensemble deux pièces en pagne pour enfant, confortable et coloré.",
			Price:        9000,
			Category:     "enfant",
			SousCategory: "ensembles",
			Stock:        12,
			Images:       []string{"https://cdn.soutoura.sn/products/ensemble-enfant.jpg"},
			Sizes:        []string{"2A", "4A", "6A", "8A"},
			Colors:       []string{"multicolore"},
		},
	}

	return db.Create(&products).Error
}
