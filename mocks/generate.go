package mocks

//go:generate mockgen -destination=./mock_market.go -package=mocks github.com/tickerlens/tickerlens/internal/market DataProvider,SearchProvider
//go:generate mockgen -destination=./mock_analyst.go -package=mocks github.com/tickerlens/tickerlens/internal/ai Analyst
