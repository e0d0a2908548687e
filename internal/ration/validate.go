package ration

import (
	"fmt"

	"kibble-ration/internal/model"
)

// MaxSplittingCount bounds the number of feedings per day.
const MaxSplittingCount = 48

func validateSplittingCount(n int) error {
	if n < 1 {
		return invalid("splittingCount", n, "must be at least 1")
	}
	if n > MaxSplittingCount {
		return invalid("splittingCount", n, fmt.Sprintf("must be at most %d", MaxSplittingCount))
	}
	return nil
}

func validateSplitting(field string, weight float64) error {
	if !model.IsFinite(weight) || weight <= 0 {
		return invalid(field, weight, "must be a positive number")
	}
	return nil
}

func validateQuantity(field string, quantity float64) error {
	if !model.IsFinite(quantity) || quantity <= 0 {
		return invalid(field, quantity, "must be a positive number")
	}
	return nil
}

func validateDistribution(field string, distribution float64) error {
	if !model.IsFinite(distribution) || distribution < 0 || distribution > model.MaxDistribution {
		return invalid(field, distribution, "must be between 0 and 100")
	}
	return nil
}

func validateDailyQuantity(index int, q model.DailyQuantity) error {
	if err := validateQuantity(fmt.Sprintf("dailyQuantities.%d.quantity", index), q.Quantity); err != nil {
		return err
	}
	return validateDistribution(fmt.Sprintf("dailyQuantities.%d.distribution", index), q.Distribution)
}

// Validate checks a whole configuration, e.g. one decoded from storage.
func Validate(cfg model.RationConfig) error {
	if err := validateSplittingCount(cfg.SplittingCount); err != nil {
		return err
	}
	if len(cfg.Splittings) != cfg.SplittingCount {
		return invalid("splittings", len(cfg.Splittings),
			fmt.Sprintf("length must equal splittingCount %d", cfg.SplittingCount))
	}
	for i, s := range cfg.Splittings {
		if err := validateSplitting(fmt.Sprintf("splittings.%d", i), s); err != nil {
			return err
		}
	}
	if len(cfg.DailyQuantities) == 0 {
		return invalid("dailyQuantities", 0, "must contain at least one entry")
	}
	for i, q := range cfg.DailyQuantities {
		if err := validateDailyQuantity(i, q); err != nil {
			return err
		}
	}
	return nil
}
