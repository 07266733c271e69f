package sentiment

import "ratewatch/internal/domain"

// CompositeIndices positions one hotel against its market. Both indices are
// centered at 100 (exactly market average); a nil index means the market or
// the hotel lacked the data to compute it.
type CompositeIndices struct {
	PropertyID     int64
	PriceIndex     *float64 // ARI: price as a percentage of market average price
	SentimentIndex *float64 // resolved rating as a percentage of market average rating
}

// Calculator derives composite indices from resolved pillar ratings and raw
// prices. The market is always target plus competitors; passing any hotel of
// the set as target yields that hotel's own position.
type Calculator struct {
	res *Resolver
}

func NewCalculator(res *Resolver) *Calculator {
	if res == nil {
		res = NewResolver(nil)
	}
	return &Calculator{res: res}
}

// Composite computes the target's price and sentiment indices against the
// blended market. Either index stays nil when the target has no value, no
// market hotel has one, or the market average is zero.
func (c *Calculator) Composite(target domain.PropertySweep, competitors []domain.PropertySweep) CompositeIndices {
	out := CompositeIndices{PropertyID: target.Hotel.ID}

	market := make([]domain.PropertySweep, 0, len(competitors)+1)
	market = append(market, target)
	market = append(market, competitors...)

	if target.Hotel.Price != nil {
		if avg, ok := marketAveragePrice(market); ok && avg > 0 {
			v := *target.Hotel.Price / avg * 100
			out.PriceIndex = &v
		}
	}

	if tr := c.res.AverageRating(target); tr != nil {
		if avg, ok := c.marketAverageRating(market); ok && avg > 0 {
			v := *tr / avg * 100
			out.SentimentIndex = &v
		}
	}

	return out
}

// marketAveragePrice is the mean over hotels that carry a price at all.
func marketAveragePrice(market []domain.PropertySweep) (float64, bool) {
	var sum float64
	var n int
	for _, s := range market {
		if s.Hotel.Price == nil {
			continue
		}
		sum += *s.Hotel.Price
		n++
	}
	if n == 0 {
		return 0, false
	}
	return sum / float64(n), true
}

// marketAverageRating is the mean over hotels whose pillar average is
// defined; hotels with no usable sentiment data drop out of the blend.
func (c *Calculator) marketAverageRating(market []domain.PropertySweep) (float64, bool) {
	var sum float64
	var n int
	for _, s := range market {
		if avg := c.res.AverageRating(s); avg != nil {
			sum += *avg
			n++
		}
	}
	if n == 0 {
		return 0, false
	}
	return sum / float64(n), true
}
