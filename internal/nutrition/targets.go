// Package nutrition derives daily calorie and macronutrient targets from a
// user's biometrics and aggregates logged meals into daily totals.
package nutrition

import "math"

// activityMultipliers maps activity level strings to their TDEE multiplier.
// This is the single source of truth for valid activity levels and is also
// used for input validation on profile updates.
var activityMultipliers = map[string]float64{
	"sedentary": 1.2,
	"light":     1.375,
	"moderate":  1.55,
	"very":      1.725,
}

// defaultActivityMultiplier is applied when the profile has no recognized
// activity level.
const defaultActivityMultiplier = 1.2

// Macro split of the adjusted calorie target: 30% protein, 40% carbs, 30% fat.
const (
	proteinShare = 0.30
	carbsShare   = 0.40
	fatShare     = 0.30

	kcalPerGramProtein = 4
	kcalPerGramCarbs   = 4
	kcalPerGramFat     = 9
)

// Profile carries the biometric inputs needed to compute targets. Pointer
// fields are optional; any missing required field triggers the fallback.
type Profile struct {
	Age           *int
	Gender        *string // "male" or "female"
	HeightCM      *float64
	WeightKG      *float64
	ActivityLevel string
	Goal          string // "weight-loss", "muscle", "fit", "flexibility"
}

// Targets is a daily calorie and macronutrient budget in whole units.
type Targets struct {
	Calories int `json:"calories"`
	ProteinG int `json:"protein_g"`
	CarbsG   int `json:"carbs_g"`
	FatG     int `json:"fat_g"`
}

// DefaultTargets is returned when the profile is missing required biometrics.
// This is a documented product default, not an error condition.
var DefaultTargets = Targets{Calories: 2000, ProteinG: 120, CarbsG: 250, FatG: 65}

// ComputeTargets derives the daily calorie budget via Mifflin-St Jeor BMR
// scaled by activity level, adjusts it for the user's goal, and splits the
// result into macro grams. Returns DefaultTargets when weight, height, age
// or gender is missing.
func ComputeTargets(p Profile) Targets {
	if p.WeightKG == nil || p.HeightCM == nil || p.Age == nil || p.Gender == nil {
		return DefaultTargets
	}

	// BMR via Mifflin-St Jeor: different constant for male vs female
	bmr := 10**p.WeightKG + 6.25**p.HeightCM - 5*float64(*p.Age)
	if *p.Gender == "male" {
		bmr += 5
	} else {
		bmr -= 161
	}

	mult, found := activityMultipliers[p.ActivityLevel]
	if !found {
		mult = defaultActivityMultiplier
	}
	tdee := bmr * mult

	switch p.Goal {
	case "weight-loss":
		tdee -= 500
	case "muscle":
		tdee += 300
	}

	return Targets{
		Calories: int(math.Round(tdee)),
		ProteinG: int(math.Round(tdee * proteinShare / kcalPerGramProtein)),
		CarbsG:   int(math.Round(tdee * carbsShare / kcalPerGramCarbs)),
		FatG:     int(math.Round(tdee * fatShare / kcalPerGramFat)),
	}
}
