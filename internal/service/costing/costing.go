// Package costing holds the two costing primitives: weighted-average
// consumable unit costs and straight-line monthly depreciation. Both are
// pure functions over fully-materialized slices; neither touches storage.
package costing

import (
	"strconv"
	"time"

	"github.com/linsamsir/pro-erp/internal/domain/models"
)

// Defaults are the unit costs used when no stock history exists for a
// consumable type. They come from config, not literals, so a fresh ledger
// still produces sane job costings.
type Defaults struct {
	CitricAcid float64
	Chemical   float64
}

// UnitCosts is the per-sub-unit cost of each consumable type.
type UnitCosts struct {
	CitricAcid float64
	Chemical   float64
}

// For returns the unit cost for the given consumable type.
func (u UnitCosts) For(t models.ConsumableType) float64 {
	switch t {
	case models.ConsumableChemical:
		return u.Chemical
	default:
		return u.CitricAcid
	}
}

// ComputeUnitCosts pools the full purchase history of each consumable type
// into one weighted average: total spend divided by total usable sub-units
// (quantity * yield per bulk unit). There is no time window and no outlier
// rejection; a single oddly priced purchase permanently shifts the average.
// A type with no usable history gets its default.
func ComputeUnitCosts(logs []models.StockLog, defaults Defaults) UnitCosts {
	var citricCost, citricYield float64
	var chemicalCost, chemicalYield float64

	for _, log := range logs {
		if log.DeletedAt != nil {
			continue
		}
		yield := log.Quantity * log.YieldPerUnit
		switch log.Type {
		case models.ConsumableChemical:
			chemicalCost += log.TotalCost
			chemicalYield += yield
		case models.ConsumableCitricAcid:
			citricCost += log.TotalCost
			citricYield += yield
		}
	}

	costs := UnitCosts{CitricAcid: defaults.CitricAcid, Chemical: defaults.Chemical}
	if citricYield > 0 {
		costs.CitricAcid = citricCost / citricYield
	}
	if chemicalYield > 0 {
		costs.Chemical = chemicalCost / chemicalYield
	}
	return costs
}

// MonthlyDepreciation sums cost/lifespanMonths over every asset whose
// depreciation window contains the reference month. The window is the
// half-open month interval [purchase, purchase+lifespan): an asset bought
// in the reference month is included, one whose lifespan ended exactly at
// the reference month is not. Retired assets never contribute.
func MonthlyDepreciation(assets []models.Asset, reference time.Time) float64 {
	refMonths := reference.Year()*12 + int(reference.Month()) - 1

	var total float64
	for _, asset := range assets {
		if asset.DeletedAt != nil || asset.Status == models.AssetRetired {
			continue
		}
		if asset.LifespanMonths <= 0 || asset.Cost == 0 {
			continue
		}
		year, month, ok := parseYearMonth(asset.PurchaseDate)
		if !ok {
			continue
		}
		purchaseMonths := year*12 + month - 1
		elapsed := refMonths - purchaseMonths
		if elapsed < 0 || elapsed >= asset.LifespanMonths {
			continue
		}
		total += asset.Cost / float64(asset.LifespanMonths)
	}
	return total
}

// parseYearMonth extracts year and month from the "YYYY-MM" prefix of an
// ISO date string. Malformed dates report ok=false and the caller treats
// the asset as outside every window rather than failing.
func parseYearMonth(date string) (year, month int, ok bool) {
	if len(date) < 7 || date[4] != '-' {
		return 0, 0, false
	}
	year, err := strconv.Atoi(date[:4])
	if err != nil {
		return 0, 0, false
	}
	month, err = strconv.Atoi(date[5:7])
	if err != nil || month < 1 || month > 12 {
		return 0, 0, false
	}
	return year, month, true
}
