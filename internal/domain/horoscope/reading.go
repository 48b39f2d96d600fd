package horoscope

import (
	"fmt"
	"strings"
)

type houseTheme struct {
	focus   string
	message string
}

var houseThemes = [12]houseTheme{
	{"Self & Health", "Heightened emotions and intuition. Prioritize yourself."},
	{"Finances", "Focus on resources. Plan finances but avoid impulse buys."},
	{"Communication", "Social energy is high. Great for short trips and chats."},
	{"Home", "Domestic peace is priority. Recharge at home."},
	{"Romance", "Creativity flows. Romance is highlighted."},
	{"Wellness", "Detail-oriented day. Focus on health routines."},
	{"Partnerships", "Relationships take center stage. Collaborate."},
	{"Transformation", "Deep emotions surface. Good for research."},
	{"Wisdom", "Seek higher knowledge or spiritual growth."},
	{"Career", "You are visible today. Put your best foot forward."},
	{"Gains", "Networking rewards you. Connect with friends."},
	{"Solitude", "Time for meditation and letting go."},
}

var categoryAdvice = map[string]string{
	"personal":   "Trust your gut.",
	"health":     "Listen to your body.",
	"profession": "Stay focused.",
	"emotions":   "Feel deeply.",
	"travel":     "Expect delays.",
	"luck":       "Fortune favors the bold.",
}

// MoonHouse counts the Moon's sign from the reader's sign, 1-12.
func MoonHouse(userSign, moonSign int) int {
	return (moonSign-userSign+12)%12 + 1
}

// DailyScore rates the day from the Moon's distance to the reader's sign:
// trines lift it, squares and the seventh lower it.
func DailyScore(userSign, moonSign int) int {
	score := 75
	switch (moonSign - userSign + 12) % 12 {
	case 0, 4, 8:
		score += 15
	case 3, 6, 9:
		score -= 10
	}
	return min(max(score, 40), 99)
}

// Ordinal renders 1st, 2nd, 3rd, 4th ... 11th, 12th.
func Ordinal(n int) string {
	suffix := "th"
	if v := n % 100; v < 11 || v > 13 {
		switch n % 10 {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}
	return fmt.Sprintf("%d%s", n, suffix)
}

func prediction(moonSign string, house int, category string) string {
	theme := houseThemes[(house-1)%12]
	text := fmt.Sprintf("Moon in %s activates your %s house of %s. %s", moonSign, Ordinal(house), theme.focus, theme.message)
	if advice, ok := categoryAdvice[strings.ToLower(strings.TrimSpace(category))]; ok {
		text += " " + advice
	}
	return text
}
