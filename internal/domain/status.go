package domain

// StockStatus classifies current stock against predicted demand.
type StockStatus string

const (
	StatusSufficient  StockStatus = "Sufficient"
	StatusUnderstock  StockStatus = "Understock"
	StatusOverstocked StockStatus = "Overstocked"
)

// overstockMinDemand guards near-zero-demand items from being flagged as
// overstocked: a large pile of something nobody buys is not actionable.
const overstockMinDemand = 5

// ClassifyStock compares on-hand stock with predicted demand over the
// reporting period. Understock when stock does not cover demand,
// Overstocked when the surplus exceeds twice the demand (and demand is
// meaningful), Sufficient otherwise.
func ClassifyStock(currentStock, predictedDemand int) StockStatus {
	deficit := currentStock - predictedDemand

	switch {
	case deficit < 0:
		return StatusUnderstock
	case deficit > 2*predictedDemand && predictedDemand > overstockMinDemand:
		return StatusOverstocked
	default:
		return StatusSufficient
	}
}
