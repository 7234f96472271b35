package scoring

import "math"

// Headshot kills pay a 30% bonus over a normal kill.
const headshotBonus = 1.3

// Points calculates fantasy points for one played map.
// kills, deaths, assists - raw box score.
// hsPct - headshot percentage, 0..100.
// winBonus - bonus computed by WinBonus, 0 for a loss or tie.
func Points(kills, deaths, assists, hsPct int, winBonus float64) float64 {
	hsKills := math.Round(float64(kills) * float64(hsPct) / 100)
	normalKills := float64(kills) - hsKills

	total := normalKills*2 +
		hsKills*2*headshotBonus -
		float64(deaths) +
		float64(assists)*0.5 +
		winBonus
	return Round2(total)
}

// WinBonus is 1.5 points per round of score difference for a won map,
// nothing otherwise.
func WinBonus(won bool, teamScore, enemyScore int) float64 {
	if !won {
		return 0
	}
	return math.Abs(float64(teamScore-enemyScore)) * 1.5
}

// Round2 rounds to 2 decimal places, the precision of every displayed
// points and price value.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
