package common

import (
	"bts/src/config"
	"bts/src/models"
	"bts/src/types"

	"gorm.io/gorm"
)

const (
	DefaultChildDiscount   = 0.25
	DefaultSeniorDiscount  = 0.15
	DefaultStudentDiscount = 0.10
)

func defaultFareRule(route *models.Route) models.FareRule {
	return models.FareRule{
		RouteID:         route.ID,
		BasePrice:       route.DistanceKm * route.PricePerKm,
		ChildDiscount:   DefaultChildDiscount,
		SeniorDiscount:  DefaultSeniorDiscount,
		StudentDiscount: DefaultStudentDiscount,
		DynamicPricing:  false,
	}
}

// GetOrCreateFareRule returns the route's fare rule, synthesizing and
// persisting the default one on first use. Idempotent: the unique index on
// route_id guarantees at most one rule per route.
func (e *Engine) GetOrCreateFareRule(tx *gorm.DB, route *models.Route) (*models.FareRule, error) {
	var rule models.FareRule
	if err := tx.
		Where(&models.FareRule{RouteID: route.ID}).
		Attrs(defaultFareRule(route)).
		FirstOrCreate(&rule).
		Error; err != nil {
		return nil, err
	}
	return &rule, nil
}

// Discount reads the fraction for a passenger category off the rule. Adults
// never get one.
func Discount(rule *models.FareRule, category types.PassengerCategory) float64 {
	switch category {
	case types.CATEGORY_CHILD:
		return rule.ChildDiscount
	case types.CATEGORY_SENIOR:
		return rule.SeniorDiscount
	case types.CATEGORY_STUDENT:
		return rule.StudentDiscount
	}
	return 0
}

// CalculatePrice is distance * rate * (1 - discount). A route with
// non-positive distance or rate yields a non-positive price; that is the route
// owner's data problem, not ours.
func CalculatePrice(route *models.Route, rule *models.FareRule, category types.PassengerCategory) float64 {
	return route.DistanceKm * route.PricePerKm * (1 - Discount(rule, category))
}

// CalculateBaggageFee prices registered baggage: free under the cap's half,
// otherwise a flat percentage of the ticket price. Weight above the configured
// cap cannot travel.
func (e *Engine) CalculateBaggageFee(ticketPrice, weightKg float64) (float64, error) {
	if weightKg <= 0 {
		return 0, nil
	}
	maxKg := e.settings.Float(config.KeyMaxBaggageWeightKg, 20)
	if weightKg > maxKg {
		return 0, types.PreconditionError{Op: "baggage", Msg: "baggage exceeds the maximum allowed weight"}
	}
	if weightKg <= maxKg/2 {
		return 0, nil
	}
	pct := e.settings.Float(config.KeyBaggageFeePercentage, 10)
	return ticketPrice * pct / 100, nil
}
