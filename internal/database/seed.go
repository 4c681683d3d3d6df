package database

import (
	"fmt"

	"stockroom/internal/models"
	"stockroom/internal/repositories"

	"github.com/sirupsen/logrus"
)

// DefaultCategories are created by SeedCategories on an empty store.
var DefaultCategories = []models.Category{
	{Name: "Motherboard", Description: "Computer motherboards"},
	{Name: "CPU", Description: "Central processing units"},
	{Name: "GPU", Description: "Graphics processing units"},
	{Name: "RAM", Description: "Memory modules"},
	{Name: "HDD", Description: "Hard disk drives"},
	{Name: "SSD", Description: "Solid state drives"},
	{Name: "Monitor", Description: "Computer monitors"},
	{Name: "Keyboard", Description: "Computer keyboards"},
	{Name: "Mouse", Description: "Computer mice"},
}

// SeedCategories populates the category repository when it holds no categories yet.
// It returns the number of categories created.
func SeedCategories(repo repositories.CategoryRepository, log *logrus.Logger) (int, error) {
	existing, err := repo.GetAll()
	if err != nil {
		return 0, err
	}
	if len(existing) > 0 {
		log.WithField("count", len(existing)).Debug("categories present, skipping seed")
		return 0, nil
	}

	for _, c := range DefaultCategories {
		c := c
		if err := repo.Create(&c); err != nil {
			return 0, fmt.Errorf("failed to seed category %s: %w", c.Name, err)
		}
		log.WithFields(logrus.Fields{"category": c.Name, "id": c.ID}).Info("seeded category")
	}
	return len(DefaultCategories), nil
}
