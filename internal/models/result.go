package models

// Match is a confirmed driver/address pairing with its suitability score.
type Match struct {
	Driver       string  `json:"driver"  yaml:"driver"`
	Address      string  `json:"address" yaml:"address"`
	Score        float64 `json:"score"   yaml:"score"`
	DriverIndex  int     `json:"-"       yaml:"-"` // DriverIndex is the driver's position in the input list.
	AddressIndex int     `json:"-"       yaml:"-"` // AddressIndex is the address's position in the input list.
}

// Result is the outcome of a single assignment run.
type Result struct {
	TotalScore        float64   `json:"totalScore"        yaml:"totalScore"`
	Matches           []Match   `json:"matches"           yaml:"matches"`
	LeftoverDrivers   []Driver  `json:"leftoverDrivers"   yaml:"leftoverDrivers"`
	LeftoverAddresses []Address `json:"leftoverAddresses" yaml:"leftoverAddresses"`
}
