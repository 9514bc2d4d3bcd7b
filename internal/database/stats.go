package database

import (
	"github.com/Tonkata28/imotiko-website/internal/models"
)

// Stats aggregates counts and averages over the current listing set.
// Every figure is scoped to available properties.
type Stats struct {
	TotalProperties int64    `json:"total_properties"`
	ForSale         int64    `json:"for_sale"`
	ForRent         int64    `json:"for_rent"`
	FeaturedCount   int64    `json:"featured_count"`
	AvgPriceSale    float64  `json:"avg_price_sale"`
	AvgPriceRent    float64  `json:"avg_price_rent"`
	Cities          []string `json:"cities"`
}

// GetStats computes the public listing statistics. Averages over empty
// sets come back as 0, never null.
func (gdb *GormDB) GetStats() (*Stats, error) {
	stats := &Stats{}

	available := availableScope(gdb.db.Model(&models.Property{}))
	if err := available.Count(&stats.TotalProperties).Error; err != nil {
		return nil, err
	}

	counts := []struct {
		dest  *int64
		where string
		arg   interface{}
	}{
		{&stats.ForSale, "transaction_type = ?", models.TransactionSale},
		{&stats.ForRent, "transaction_type = ?", models.TransactionRent},
		{&stats.FeaturedCount, "is_featured = ?", true},
	}
	for _, c := range counts {
		err := availableScope(gdb.db.Model(&models.Property{})).
			Where(c.where, c.arg).
			Count(c.dest).Error
		if err != nil {
			return nil, err
		}
	}

	var err error
	if stats.AvgPriceSale, err = gdb.avgPrice(models.TransactionSale); err != nil {
		return nil, err
	}
	if stats.AvgPriceRent, err = gdb.avgPrice(models.TransactionRent); err != nil {
		return nil, err
	}

	// Ordered by name so the list is stable across responses
	stats.Cities = []string{}
	err = availableScope(gdb.db.Model(&models.Property{})).
		Distinct("city").
		Order("city ASC").
		Pluck("city", &stats.Cities).Error
	if err != nil {
		return nil, err
	}

	return stats, nil
}

func (gdb *GormDB) avgPrice(transaction models.TransactionType) (float64, error) {
	var avg float64
	err := availableScope(gdb.db.Model(&models.Property{})).
		Where("transaction_type = ?", transaction).
		Select("COALESCE(AVG(price), 0)").
		Scan(&avg).Error
	return avg, err
}
