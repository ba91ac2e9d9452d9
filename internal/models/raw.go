package models

import "strconv"

// Raw renders the record back into export form. Rates are written as
// percentages so a second normalization yields the same values.
func (n NormalizedRecord) Raw() RawRecord {
	return RawRecord{
		FieldStartDate:       n.StartDate,
		FieldStartTime:       n.StartTime,
		FieldPortfolioName:   n.PortfolioName,
		FieldCampaignType:    n.CampaignType,
		FieldCampaignName:    n.CampaignName,
		FieldCountry:         n.Country,
		FieldStatus:          n.Status,
		FieldCurrency:        n.Currency,
		FieldBudget:          ftoa(n.Budget),
		FieldTargetingType:   n.TargetingType,
		FieldBiddingStrategy: n.BiddingStrategy,
		FieldImpressions:     strconv.Itoa(n.Impressions),
		FieldClicks:          strconv.Itoa(n.Clicks),
		FieldCTR:             ftoa(n.CTR*100) + "%",
		FieldSpend:           ftoa(n.Spend),
		FieldCPC:             ftoa(n.CPC),
		FieldOrders:          strconv.Itoa(n.Orders),
		FieldACOS:            ftoa(n.ACOS*100) + "%",
		FieldROAS:            ftoa(n.ROAS),
		FieldSales:           ftoa(n.Sales),
	}
}

func ftoa(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) }
