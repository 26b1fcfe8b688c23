package services

// SolarSigns lists the western zodiac signs in the order the horoscope
// refresh walks them.
var SolarSigns = []string{
	"capricorn", "aquarius", "pisces", "aries", "taurus", "gemini",
	"cancer", "leo", "virgo", "libra", "scorpio", "sagittarius",
}

// CyclicalSigns is indexed by (year-4) mod 12, so year 4 maps to Rat.
var CyclicalSigns = []string{
	"Rat", "Ox", "Tiger", "Rabbit", "Dragon", "Snake",
	"Horse", "Sheep", "Monkey", "Rooster", "Dog", "Pig",
}

// SolarZodiac classifies a birth day and month. Ranges are inclusive on both
// ends; anything not matched earlier is sagittarius.
func SolarZodiac(day int, month int) string {
	switch {
	case (month == 12 && day >= 22) || (month == 1 && day <= 19):
		return "capricorn"
	case (month == 1 && day >= 20) || (month == 2 && day <= 18):
		return "aquarius"
	case (month == 2 && day >= 19) || (month == 3 && day <= 20):
		return "pisces"
	case (month == 3 && day >= 21) || (month == 4 && day <= 19):
		return "aries"
	case (month == 4 && day >= 20) || (month == 5 && day <= 20):
		return "taurus"
	case (month == 5 && day >= 21) || (month == 6 && day <= 20):
		return "gemini"
	case (month == 6 && day >= 21) || (month == 7 && day <= 22):
		return "cancer"
	case (month == 7 && day >= 23) || (month == 8 && day <= 22):
		return "leo"
	case (month == 8 && day >= 23) || (month == 9 && day <= 22):
		return "virgo"
	case (month == 9 && day >= 23) || (month == 10 && day <= 22):
		return "libra"
	case (month == 10 && day >= 23) || (month == 11 && day <= 21):
		return "scorpio"
	default:
		return "sagittarius"
	}
}

func CyclicalYearSign(year int) string {
	index := (year - 4) % len(CyclicalSigns)
	if index < 0 {
		index += len(CyclicalSigns)
	}
	return CyclicalSigns[index]
}

func IsSolarSign(sign string) bool {
	for _, candidate := range SolarSigns {
		if candidate == sign {
			return true
		}
	}
	return false
}
