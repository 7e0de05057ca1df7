// Package assignment pairs drivers with destination addresses one to one.
package assignment

import (
	"github.com/UnknownOlympus/dispatch/internal/models"
)

// Strategy assigns drivers to addresses. Implementations must not mutate their inputs
// and must return the same result for the same input order.
type Strategy interface {
	Assign(drivers []models.Driver, addresses []models.Address) models.Result
}

// Scorer rates a single driver/address pairing. Higher is better.
type Scorer func(driver models.Driver, address models.Address) float64

// candidate is a scored pairing referencing positions in the input lists.
type candidate struct {
	driver  int
	address int
	score   float64
}

func (c candidate) match(drivers []models.Driver, addresses []models.Address) models.Match {
	return models.Match{
		Driver:       drivers[c.driver].Name,
		Address:      addresses[c.address].Full,
		Score:        c.score,
		DriverIndex:  c.driver,
		AddressIndex: c.address,
	}
}

// newResult collects matches and leftovers, summing the total in match order.
func newResult(matches []models.Match, drivers []models.Driver, addresses []models.Address) models.Result {
	result := models.Result{
		Matches:           matches,
		LeftoverDrivers:   make([]models.Driver, 0, len(drivers)),
		LeftoverAddresses: make([]models.Address, 0, len(addresses)),
	}
	for _, m := range matches {
		result.TotalScore += m.Score
	}
	result.LeftoverDrivers = append(result.LeftoverDrivers, drivers...)
	result.LeftoverAddresses = append(result.LeftoverAddresses, addresses...)

	return result
}
