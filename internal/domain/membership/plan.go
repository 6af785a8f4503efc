package membership

import (
	"time"

	"github.com/BruksfildServices01/ironpeak-gym/internal/httperr"
	"github.com/BruksfildServices01/ironpeak-gym/internal/models"
)

// Monthly plan prices in whole currency units.
var planPrices = map[models.Plan]float64{
	models.PlanStarter: 29,
	models.PlanPro:     59,
	models.PlanElite:   99,
}

func PlanPrice(p models.Plan) (float64, error) {
	price, ok := planPrices[p]
	if !ok {
		return 0, httperr.ErrBusiness("invalid_plan")
	}
	return price, nil
}

// ParsePlan accepts only the exact enum spelling.
func ParsePlan(raw string) (models.Plan, error) {
	p := models.Plan(raw)
	if !p.Valid() {
		return "", httperr.ErrBusiness("invalid_plan")
	}
	return p, nil
}

// PeriodEnd is the expiry of a membership that starts (or renews) at from.
func PeriodEnd(from time.Time) time.Time {
	return from.AddDate(0, 1, 0)
}
