package types

// KlineType is the provider granularity code for candlestick history.
// The values follow the iTick kType parameter; daily bars ("8") are the
// default everywhere in this service.
type KlineType string

const (
	KlineTypeOneMinute      KlineType = "1"
	KlineTypeFiveMinutes    KlineType = "2"
	KlineTypeFifteenMinutes KlineType = "3"
	KlineTypeThirtyMinutes  KlineType = "4"
	KlineTypeOneHour        KlineType = "5"
	KlineTypeDay            KlineType = "8"
	KlineTypeWeek           KlineType = "9"
	KlineTypeMonth          KlineType = "10"
)

// DefaultKlineLimit is the number of bars fetched when the caller does not
// specify one. 100 daily bars is enough for every indicator window except
// the 200-day moving average, which then reports absent.
const DefaultKlineLimit = 100

// KlineQuery describes a candlestick history request.
type KlineQuery struct {
	Region string    `validate:"required"`
	Symbol string    `validate:"required"`
	KType  KlineType `validate:"required"`
	Limit  int       `validate:"required,min=1"`
}

// NewKlineQuery builds a query with the service defaults applied.
func NewKlineQuery(region, symbol string) KlineQuery {
	return KlineQuery{
		Region: region,
		Symbol: symbol,
		KType:  KlineTypeDay,
		Limit:  DefaultKlineLimit,
	}
}
