package models

const (
	FieldStartDate       = "Start Date"
	FieldStartTime       = "Start Time"
	FieldPortfolioName   = "Portfolio name"
	FieldCampaignType    = "Campaign Type"
	FieldCampaignName    = "Campaign Name"
	FieldCountry         = "Country"
	FieldStatus          = "Status"
	FieldCurrency        = "Currency"
	FieldBudget          = "Budget"
	FieldTargetingType   = "Targeting Type"
	FieldBiddingStrategy = "Bidding strategy"
	FieldImpressions     = "Impressions"
	FieldClicks          = "Clicks"
	FieldCTR             = "Click-Thru Rate (CTR)"
	FieldSpend           = "Spend"
	FieldCPC             = "Cost Per Click (CPC)"
	FieldOrders          = "14 Day Total Orders (#)"
	FieldACOS            = "Total Advertising Cost of Sales (ACOS)"
	FieldROAS            = "Total Return on Advertising Spend (ROAS)"
	FieldSales           = "14 Day Total Sales"
)

var Fields = []string{
	FieldStartDate, FieldStartTime, FieldPortfolioName, FieldCampaignType,
	FieldCampaignName, FieldCountry, FieldStatus, FieldCurrency, FieldBudget,
	FieldTargetingType, FieldBiddingStrategy, FieldImpressions, FieldClicks,
	FieldCTR, FieldSpend, FieldCPC, FieldOrders, FieldACOS, FieldROAS, FieldSales,
}

// RawRecord is one untrusted row keyed by header. A missing key is an absent value.
type RawRecord map[string]string

type NormalizedRecord struct {
	StartDate       string  `json:"Start Date"`
	StartTime       string  `json:"Start Time"`
	PortfolioName   string  `json:"Portfolio name"`
	CampaignType    string  `json:"Campaign Type"`
	CampaignName    string  `json:"Campaign Name"`
	Country         string  `json:"Country"`
	Status          string  `json:"Status"`
	Currency        string  `json:"Currency"`
	Budget          float64 `json:"Budget"`
	TargetingType   string  `json:"Targeting Type"`
	BiddingStrategy string  `json:"Bidding strategy"`
	Impressions     int     `json:"Impressions"`
	Clicks          int     `json:"Clicks"`
	CTR             float64 `json:"Click-Thru Rate (CTR)"`
	Spend           float64 `json:"Spend"`
	CPC             float64 `json:"Cost Per Click (CPC)"`
	Orders          int     `json:"14 Day Total Orders (#)"`
	ACOS            float64 `json:"Total Advertising Cost of Sales (ACOS)"`
	ROAS            float64 `json:"Total Return on Advertising Spend (ROAS)"`
	Sales           float64 `json:"14 Day Total Sales"`
}

type HourBucket struct {
	Hour        int
	Impressions int
	Clicks      int
	Spend       float64
	Orders      int
	Sales       float64
}

type HourlyMetric struct {
	Hour        int     `json:"hour"`
	Impressions int     `json:"impressions"`
	Clicks      int     `json:"clicks"`
	Spend       float64 `json:"spend"`
	Orders      int     `json:"orders"`
	Sales       float64 `json:"sales"`
	CTR         float64 `json:"ctr"`
	CPC         float64 `json:"cpc"`
	ROAS        float64 `json:"roas"`
}

type AnalysisResult struct {
	Success  bool   `json:"success"`
	Analysis string `json:"analysis,omitempty"`
	Error    string `json:"error,omitempty"`
}
