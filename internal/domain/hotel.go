package domain

type HotelRole string

const (
	RoleTarget     HotelRole = "target"
	RoleCompetitor HotelRole = "competitor"
)

type Hotel struct {
	ID          int64
	Name        string
	Role        HotelRole
	Price       *float64 // current nightly rate; upstream normalizes currency
	Currency    *string
	GuestRating *float64 // source-reported overall score, 0-5
	RawJSON     []byte   // full rate-shopper property payload
}
