package models

// BranchFees is the published yearly fee of a branch in rupees. Total is the
// figure quoted by the admission office and is not recomputed from the parts.
type BranchFees struct {
	Tuition     int `json:"tuition_fee"`
	Development int `json:"development_fee"`
	Library     int `json:"library_fee"`
	Laboratory  int `json:"laboratory_fee"`
	Examination int `json:"examination_fee"`
	Sports      int `json:"sports_fee"`
	Total       int `json:"total"`
}

// Branch is an undergraduate branch open for admission.
type Branch struct {
	Code             string     `json:"code"`
	Name             string     `json:"name"`
	Intake           int        `json:"intake"`
	Description      string     `json:"description"`
	CETPercentile    string     `json:"mht_cet_percentile,omitempty"`
	Fees             BranchFees `json:"-"`
	CoordinatorEmail string     `json:"-"`
}
