package matchmaking

import "github.com/yanqian/kundli/internal/domain/zodiac"

// Request carries two birth moments. Times and the shared timezone are
// optional.
type Request struct {
	BoyDate  string `json:"boyDate"`
	GirlDate string `json:"girlDate"`
	BoyTime  string `json:"boyTime,omitempty"`
	GirlTime string `json:"girlTime,omitempty"`
	Timezone string `json:"timezone,omitempty"`
}

// Koota is one scored compatibility factor.
type Koota struct {
	Name  string  `json:"name"`
	Score float64 `json:"score"`
	Max   float64 `json:"max"`
}

// Result is the Ashta-Koota verdict.
type Result struct {
	TotalScore float64   `json:"totalScore"`
	MaxScore   float64   `json:"maxScore"`
	Details    []Koota   `json:"details"`
	Verdict    string    `json:"verdict"`
	Boy        *MoonSign `json:"boy,omitempty"`
	Girl       *MoonSign `json:"girl,omitempty"`
}

// MoonSign summarises the natal Moon used for scoring.
type MoonSign struct {
	Longitude float64          `json:"longitude"`
	Rashi     zodiac.Rashi     `json:"rashi"`
	Nakshatra zodiac.Nakshatra `json:"nakshatra"`
}
