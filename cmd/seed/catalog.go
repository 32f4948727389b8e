package main

import "math/rand"

// catalogItem describes one product in the synthetic pharmacy catalog.
type catalogItem struct {
	Name                 string
	Category             string
	Price                float64
	ShelfLifeDays        int
	Seasonal             string
	RequiresPrescription bool
}

// catalog mirrors the demo dataset the system was built around: a mix of
// OTC and prescription items with distinct seasonal demand profiles.
var catalog = []catalogItem{
	{"Dolo 650 (Paracetamol)", "Fever", 30, 365, "Viral", false},
	{"Crocin Advance", "Fever", 20, 365, "Viral", false},
	{"Digene Gel (Mint)", "Digestive", 120, 300, "None", false},
	{"Pudin Hara Pearls", "Digestive", 25, 250, "Summer", false},
	{"Vicks VapoRub", "Cold/Flu", 45, 500, "Winter", false},
	{"Benadryl Cough Syrup", "Cold/Flu", 110, 365, "Winter", false},
	{"Otrivin Nasal Spray", "Cold/Flu", 95, 365, "Winter", false},
	{"Volini Spray", "Pain Relief", 160, 400, "None", false},
	{"Electral Powder (ORS)", "Hydration", 22, 500, "Summer", false},
	{"Betadine Ointment", "First Aid", 135, 400, "None", false},
	{"Augmentin 625 Duo", "Antibiotic", 200, 180, "None", true},
	{"Azithral 500", "Antibiotic", 130, 180, "Winter", true},
	{"Thyronorm 50mcg", "Thyroid", 180, 200, "None", true},
	{"Telma 40 (BP)", "Cardio", 210, 365, "None", true},
	{"Glycomet 500 (Diabetes)", "Diabetes", 55, 365, "None", true},
}

// seasonalMultiplier scales demand by month for a seasonality profile.
func seasonalMultiplier(rng *rand.Rand, month int, seasonal string) float64 {
	between := func(lo, hi float64) float64 {
		return lo + rng.Float64()*(hi-lo)
	}

	switch seasonal {
	case "Winter":
		if month == 11 || month == 12 || month == 1 || month == 2 {
			return between(1.8, 2.8)
		}
		return between(0.5, 0.8)
	case "Summer":
		if month >= 4 && month <= 6 {
			return between(1.8, 2.5)
		}
		return between(0.6, 0.9)
	case "Viral":
		switch month {
		case 7, 8, 9, 11, 12, 1:
			return between(1.5, 2.2)
		}
		return 0.8
	default:
		return 1.0
	}
}

// pickQuantity draws a sale quantity with the long-tailed distribution of
// real pharmacy baskets: mostly singles, occasionally a strip of five.
func pickQuantity(rng *rand.Rand) int {
	roll := rng.Intn(100)
	switch {
	case roll < 70:
		return 1
	case roll < 90:
		return 2
	case roll < 95:
		return 3
	default:
		return 5
	}
}
