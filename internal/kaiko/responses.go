package kaiko

// instrumentsResponse is the reference-data API's rates listing.
type instrumentsResponse struct {
	Data []instrumentRecord `json:"data"`
}

type instrumentRecord struct {
	Ticker        string   `json:"ticker"`
	Brand         string   `json:"brand"`
	Type          string   `json:"type"`
	ShortName     string   `json:"short_name"`
	Dissemination string   `json:"dissemination"`
	LaunchDate    string   `json:"launch_date"`
	InceptionDate string   `json:"inception_date"`
	Quote         assetRef `json:"quote"`
	Base          assetRef `json:"base"`
}

type assetRef struct {
	ShortName string `json:"short_name"`
}

// exchangesResponse is the reference-data API's exchange listing.
type exchangesResponse struct {
	Result string          `json:"result"`
	Data   []exchangeEntry `json:"data"`
}

type exchangeEntry struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// ratesPriceResponse is the market API's per-ticker rate price page. With
// page_size=1 and sort=desc the first interval is the most recent one.
type ratesPriceResponse struct {
	Data []rateInterval `json:"data"`
}

type rateInterval struct {
	Time       string         `json:"time"`
	Parameters rateParameters `json:"parameters"`
}

type rateParameters struct {
	Exchanges  []string `json:"exchanges"`
	CalcWindow int      `json:"calc_window"`
}
