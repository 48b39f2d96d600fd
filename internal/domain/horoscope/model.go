package horoscope

// Request selects the sign, day and optional focus of a daily horoscope.
type Request struct {
	Sign     string `form:"sign" json:"sign"`
	Date     string `form:"date" json:"date"`
	Category string `form:"category" json:"category"`
}

// Response is the daily transit reading for one sign.
type Response struct {
	Sign           string `json:"sign"`
	Date           string `json:"date"`
	Prediction     string `json:"horoscopeData"`
	LuckyColor     string `json:"luckyColor"`
	LuckyNumbers   string `json:"luckyNumbers"`
	LuckyAlphabets string `json:"luckyAlphabets"`
	CosmicTip      string `json:"cosmicTip"`
	SingleTip      string `json:"singleTip"`
	CoupleTip      string `json:"coupleTip"`
	LuckyScore     int    `json:"luckyScore"`
	MoonSign       string `json:"moonSign"`
	SunSign        string `json:"sunSign"`
	MoonHouse      int    `json:"moonHouse"`
	Source         string `json:"source"`
}
