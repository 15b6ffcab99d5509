package models

import "math"

const feetPerMeter = 3.28084

// MetersToFeet converts a depth reading to feet
func MetersToFeet(m float64) float64 {
	return m * feetPerMeter
}

// FeetToMeters converts a depth reading to meters
func FeetToMeters(ft float64) float64 {
	return ft / feetPerMeter
}

// CelsiusToFahrenheit converts a temperature reading to Fahrenheit
func CelsiusToFahrenheit(c float64) float64 {
	return c*9.0/5.0 + 32.0
}

// FahrenheitToCelsius converts a temperature reading to Celsius
func FahrenheitToCelsius(f float64) float64 {
	return (f - 32.0) * 5.0 / 9.0
}

// Round1 rounds to one decimal place, the precision used for every
// depth and temperature field regardless of unit system
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}
