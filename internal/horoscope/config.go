package horoscope

import "time"

const DefaultBaseURL = "https://horoscope-astrology.p.rapidapi.com"

type Config struct {
	APIKey  string        `split_words:"true"`
	BaseURL string        `split_words:"true" default:"https://horoscope-astrology.p.rapidapi.com"`
	Timeout time.Duration `default:"15s"`
	// RefreshSchedule is a cron spec; empty disables the scheduled refresh.
	RefreshSchedule string `split_words:"true"`
}
