package models

// Profile carries the derived dietary data shown on the current-user
// endpoint. A user without a stored profile gets the zero value.
type Profile struct {
	UserID             string
	DailyRateKcal      int
	NotAllowedProducts []string
}
