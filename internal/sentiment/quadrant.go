package sentiment

// QuadrantLabel names one cell of the price/sentiment positioning map.
type QuadrantLabel string

const (
	QuadrantStandard         QuadrantLabel = "Standard"
	QuadrantValueLeader      QuadrantLabel = "Value Leader"
	QuadrantPremiumKing      QuadrantLabel = "Premium King"
	QuadrantBudgetEconomy    QuadrantLabel = "Budget / Economy"
	QuadrantDangerZone       QuadrantLabel = "Danger Zone"
	QuadrantInsufficientData QuadrantLabel = "Insufficient Data"
)

// DefaultDeadband is how far both axes may drift from market average before
// a hotel stops reading as Standard.
const DefaultDeadband = 5.0

const axisLimit = 50.0

// QuadrantResult carries the plotted coordinates alongside the label. X is
// the price axis, Y the sentiment axis; both are deltas from 100 clamped to
// [-50, 50] so one outlier cannot push the chart off its scale.
type QuadrantResult struct {
	X     float64
	Y     float64
	Label QuadrantLabel
}

// QuadrantClassifier turns composite indices into map coordinates and a
// positioning label.
type QuadrantClassifier struct {
	Deadband float64
}

func NewQuadrantClassifier(deadband float64) *QuadrantClassifier {
	if deadband <= 0 {
		deadband = DefaultDeadband
	}
	return &QuadrantClassifier{Deadband: deadband}
}

// Classify maps indices to a quadrant. Either index missing means the hotel
// cannot be plotted and yields Insufficient Data at the origin. Points on
// the deadband edge still count as Standard.
func (q *QuadrantClassifier) Classify(idx CompositeIndices) QuadrantResult {
	if idx.PriceIndex == nil || idx.SentimentIndex == nil {
		return QuadrantResult{Label: QuadrantInsufficientData}
	}

	x := clampAxis(*idx.PriceIndex - 100)
	y := clampAxis(*idx.SentimentIndex - 100)

	var label QuadrantLabel
	switch {
	case abs(x) <= q.Deadband && abs(y) <= q.Deadband:
		label = QuadrantStandard
	case x < 0 && y >= 0:
		label = QuadrantValueLeader
	case x >= 0 && y >= 0:
		label = QuadrantPremiumKing
	case x < 0 && y < 0:
		label = QuadrantBudgetEconomy
	default: // x >= 0 && y < 0
		label = QuadrantDangerZone
	}

	return QuadrantResult{X: x, Y: y, Label: label}
}

func clampAxis(v float64) float64 {
	if v > axisLimit {
		return axisLimit
	}
	if v < -axisLimit {
		return -axisLimit
	}
	return v
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
