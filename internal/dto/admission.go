package dto

import "github.com/noah-isme/smartedu-api/internal/models"

// AdmissionContact is how applicants reach the college.
type AdmissionContact struct {
	Website string `json:"website"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
}

// HostelInfo summarises the hostel facility.
type HostelInfo struct {
	Capacity     string `json:"capacity"`
	AnnualFee    int    `json:"annual_fee"`
	MessFee      int    `json:"mess_fee"`
	CombinedFee  int    `json:"combined_fee"`
	Transport    bool   `json:"transport_available"`
	TransportFee int    `json:"transport_fee"`
}

// PlacementInfo carries the latest placement figures in LPA.
type PlacementInfo struct {
	AveragePackage float64  `json:"average_package"`
	HighestPackage float64  `json:"highest_package"`
	TopRecruiters  []string `json:"top_recruiters"`
}

// AdmissionInfo is the GET /admission/info payload.
type AdmissionInfo struct {
	CollegeName       string           `json:"college_name"`
	Established       int              `json:"established_year"`
	Affiliation       string           `json:"affiliation"`
	Approval          string           `json:"approval"`
	Address           string           `json:"address"`
	Contact           AdmissionContact `json:"contact"`
	Eligibility       string           `json:"eligibility"`
	EntranceExams     []string         `json:"entrance_exams"`
	Branches          []models.Branch  `json:"branches"`
	RequiredDocuments []string         `json:"required_documents"`
	Hostel            HostelInfo       `json:"hostel"`
	Placement         PlacementInfo    `json:"placement"`
	Scholarships      []string         `json:"scholarships"`
}

// CategoryConcession is the tuition payable by one admission category.
type CategoryConcession struct {
	Category   string `json:"category"`
	TuitionFee int    `json:"tuition_fee"`
	Concession int    `json:"concession"`
}

// BranchFeeStructure pairs a branch with its published fees.
type BranchFeeStructure struct {
	Code   string `json:"code"`
	Branch string `json:"branch"`
	models.BranchFees
}

// HostelFees lists the yearly hostel charges.
type HostelFees struct {
	AnnualHostel   int `json:"annual_hostel"`
	MessFee        int `json:"mess_fee"`
	CombinedFee    int `json:"combined_fee"`
	CautionDeposit int `json:"caution_deposit"`
}

// AdmissionFees is the GET /admission/fees payload.
type AdmissionFees struct {
	FeeStructure        []BranchFeeStructure `json:"fee_structure"`
	CategoryConcessions []CategoryConcession `json:"category_concessions"`
	HostelFees          HostelFees           `json:"hostel_fees"`
}

// BranchCoordinator is the contact for branch specific admission queries.
type BranchCoordinator struct {
	Code  string `json:"code"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email"`
}

// AdmissionOffice is where walk-in applicants go.
type AdmissionOffice struct {
	Phone        string `json:"phone"`
	Email        string `json:"email"`
	Address      string `json:"address"`
	WorkingHours string `json:"working_hours"`
}

// AdmissionContacts is the GET /admission/contacts payload.
type AdmissionContacts struct {
	Office       AdmissionOffice     `json:"admission_office"`
	Website      string              `json:"website"`
	Coordinators []BranchCoordinator `json:"branch_coordinators"`
}

// FeeCalculationQuery is bound from the GET /admission/fees/calculate query string.
type FeeCalculationQuery struct {
	Branch           string `form:"branch"`
	IncludeHostel    bool   `form:"include_hostel"`
	IncludeTransport bool   `form:"include_transport"`
}

// FeeCalculation is the yearly total for a branch and the chosen facilities.
type FeeCalculation struct {
	Branch        string            `json:"branch"`
	BaseFees      int               `json:"base_fees"`
	HostelFees    int               `json:"hostel_fees"`
	TransportFees int               `json:"transport_fees"`
	Breakdown     models.BranchFees `json:"breakdown"`
	TotalFees     int               `json:"total_fees"`
}
