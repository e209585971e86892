package models

// ListParams carries the raw, untrusted query-string parameters of a sales
// listing request. Every field is optional.
type ListParams struct {
	Search    string `form:"search" json:"search,omitempty"`
	Region    string `form:"region" json:"region,omitempty"`
	Gender    string `form:"gender" json:"gender,omitempty"`
	AgeMin    string `form:"ageMin" json:"ageMin,omitempty"`
	AgeMax    string `form:"ageMax" json:"ageMax,omitempty"`
	Category  string `form:"category" json:"category,omitempty"`
	Tags      string `form:"tags" json:"tags,omitempty"`
	Payment   string `form:"payment" json:"payment,omitempty"`
	StartDate string `form:"startDate" json:"startDate,omitempty"`
	EndDate   string `form:"endDate" json:"endDate,omitempty"`
	SortBy    string `form:"sortBy" json:"sortBy,omitempty"`
	SortOrder string `form:"sortOrder" json:"sortOrder,omitempty"`
	Page      string `form:"page" json:"page,omitempty"`
	Limit     string `form:"limit" json:"limit,omitempty"`
}

// Values returns the non-empty parameters keyed by their query-string names.
func (p ListParams) Values() map[string]string {
	all := map[string]string{
		"search":    p.Search,
		"region":    p.Region,
		"gender":    p.Gender,
		"ageMin":    p.AgeMin,
		"ageMax":    p.AgeMax,
		"category":  p.Category,
		"tags":      p.Tags,
		"payment":   p.Payment,
		"startDate": p.StartDate,
		"endDate":   p.EndDate,
		"sortBy":    p.SortBy,
		"sortOrder": p.SortOrder,
		"page":      p.Page,
		"limit":     p.Limit,
	}
	out := make(map[string]string, len(all))
	for k, v := range all {
		if v != "" {
			out[k] = v
		}
	}
	return out
}

// PageSummary holds sums over the records of a single page.
type PageSummary struct {
	TotalUnits    int     `json:"totalUnits"`
	TotalAmount   float64 `json:"totalAmount"`
	TotalDiscount float64 `json:"totalDiscount"`
}

// Page is the envelope returned by a sales listing.
type Page struct {
	Page       int         `json:"page"`
	Limit      int         `json:"limit"`
	TotalItems int64       `json:"totalItems"`
	TotalPages int64       `json:"totalPages"`
	Data       []Sale      `json:"data"`
	Summary    PageSummary `json:"summary"`
}

// Catalog lists the distinct values of every filterable field.
type Catalog struct {
	Regions        []string `json:"regions"`
	Genders        []string `json:"genders"`
	Categories     []string `json:"categories"`
	Tags           []string `json:"tags"`
	PaymentMethods []string `json:"paymentMethods"`
}
