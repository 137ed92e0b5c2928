package hyperstats

// Snapshot is a point-in-time report of a collector.
// Mean and Median are zero when Empty is set.
type Snapshot struct {
	Estimator string  `codec:"estimator" json:"estimator" msgpack:"estimator"`
	Count     int64   `codec:"count"     json:"count"     msgpack:"count"`
	Sum       float64 `codec:"sum"       json:"sum"       msgpack:"sum"`
	Mean      float64 `codec:"mean"      json:"mean"      msgpack:"mean"`
	Median    float64 `codec:"median"    json:"median"    msgpack:"median"`
	Empty     bool    `codec:"empty"     json:"empty"     msgpack:"empty"`
}
