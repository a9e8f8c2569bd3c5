package service

import (
	"strings"

	"github.com/noah-isme/smartedu-api/internal/dto"
	"github.com/noah-isme/smartedu-api/internal/models"
	appErrors "github.com/noah-isme/smartedu-api/pkg/errors"
)

const defaultAdmissionBranch = "CSE"

// AdmissionService answers the public admission endpoints from the college profile.
type AdmissionService struct {
	profile CollegeProfile
}

// NewAdmissionService constructs an AdmissionService over profile.
func NewAdmissionService(profile CollegeProfile) *AdmissionService {
	return &AdmissionService{profile: profile}
}

// Info returns the admission overview.
func (s *AdmissionService) Info() dto.AdmissionInfo {
	p := s.profile
	return dto.AdmissionInfo{
		CollegeName:       p.Name,
		Established:       p.Established,
		Affiliation:       p.Affiliation,
		Approval:          p.Approval,
		Address:           p.Address,
		Contact:           dto.AdmissionContact{Website: p.Website, Email: p.Email, Phone: p.Phone},
		Eligibility:       p.UGEligibility,
		EntranceExams:     p.AdmissionExams,
		Branches:          p.Branches,
		RequiredDocuments: p.RequiredDocList,
		Hostel: dto.HostelInfo{
			Capacity:     p.HostelCapacity,
			AnnualFee:    p.HostelAnnualFee,
			MessFee:      p.MessFee,
			CombinedFee:  p.HostelFee,
			Transport:    p.TransportFee > 0,
			TransportFee: p.TransportFee,
		},
		Placement: dto.PlacementInfo{
			AveragePackage: p.AveragePackage,
			HighestPackage: p.HighestPackage,
			TopRecruiters:  p.Recruiters,
		},
		Scholarships: p.Scholarships,
	}
}

// Fees returns the per-branch fee structure and the category concessions.
// Concessions are measured against the open category tuition.
func (s *AdmissionService) Fees() dto.AdmissionFees {
	p := s.profile
	structure := make([]dto.BranchFeeStructure, 0, len(p.Branches))
	for _, b := range p.Branches {
		structure = append(structure, dto.BranchFeeStructure{Code: b.Code, Branch: b.Name, BranchFees: b.Fees})
	}
	concession := func(category string, tuition int) dto.CategoryConcession {
		return dto.CategoryConcession{Category: category, TuitionFee: tuition, Concession: p.Fees.Open - tuition}
	}
	return dto.AdmissionFees{
		FeeStructure: structure,
		CategoryConcessions: []dto.CategoryConcession{
			concession("open", p.Fees.Open),
			concession("obc_ebc_sebc", p.Fees.OBC),
			concession("nt_sbc_tfws_girls", p.Fees.Reserved),
			concession("sc_st", p.Fees.SCST),
		},
		HostelFees: dto.HostelFees{
			AnnualHostel:   p.HostelAnnualFee,
			MessFee:        p.MessFee,
			CombinedFee:    p.HostelFee,
			CautionDeposit: p.Fees.Caution,
		},
	}
}

// Contacts returns the admission office and the branches that publish a coordinator.
func (s *AdmissionService) Contacts() dto.AdmissionContacts {
	p := s.profile
	coordinators := make([]dto.BranchCoordinator, 0, len(p.Branches))
	for _, b := range p.Branches {
		if b.CoordinatorEmail == "" {
			continue
		}
		coordinators = append(coordinators, dto.BranchCoordinator{
			Code:  b.Code,
			Name:  "Head of Department, " + b.Name,
			Phone: p.Phone,
			Email: b.CoordinatorEmail,
		})
	}
	return dto.AdmissionContacts{
		Office: dto.AdmissionOffice{
			Phone:        p.Phone,
			Email:        p.Email,
			Address:      p.Address,
			WorkingHours: p.OfficeHours,
		},
		Website:      p.Website,
		Coordinators: coordinators,
	}
}

// Calculate totals the yearly fee of a branch plus the optional hostel and
// transport charges. An empty branch means CSE.
func (s *AdmissionService) Calculate(query dto.FeeCalculationQuery) (*dto.FeeCalculation, error) {
	code := strings.TrimSpace(query.Branch)
	if code == "" {
		code = defaultAdmissionBranch
	}
	branch, ok := s.branch(code)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown branch "+code)
	}
	calc := &dto.FeeCalculation{
		Branch:    branch.Code,
		BaseFees:  branch.Fees.Total,
		Breakdown: branch.Fees,
	}
	if query.IncludeHostel {
		calc.HostelFees = s.profile.HostelFee
	}
	if query.IncludeTransport {
		calc.TransportFees = s.profile.TransportFee
	}
	calc.TotalFees = calc.BaseFees + calc.HostelFees + calc.TransportFees
	return calc, nil
}

func (s *AdmissionService) branch(code string) (models.Branch, bool) {
	for _, b := range s.profile.Branches {
		if strings.EqualFold(b.Code, code) {
			return b, true
		}
	}
	return models.Branch{}, false
}
