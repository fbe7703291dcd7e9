package repository

// Metrics records analytics outcomes.
type Metrics interface {
	RecordForecast(method string)
	RecordRisk(tier string, anomalies int)
	RecordQuote(capped bool)
	RecordRejection(operation, kind string)
	RecordLatency(op string, seconds float64)
}
