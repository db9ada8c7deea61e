package yahoo

// chartResponse is the subset of the Yahoo Finance v8 chart payload used for daily closes
type chartResponse struct {
	Chart struct {
		Result []struct {
			Meta struct {
				Currency  string `json:"currency"`
				Symbol    string `json:"symbol"`
				Gmtoffset int64  `json:"gmtoffset"`
			} `json:"meta"`
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Close []*float64 `json:"close"` // null on days without a close
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}
