package service

import (
	"fmt"
	"strings"

	"github.com/noah-isme/smartedu-api/internal/models"
)

// Course is an offered programme with its sanctioned intake.
type Course struct {
	Name   string
	Intake int
}

// FeeStructure lists the yearly tuition per admission category in rupees.
type FeeStructure struct {
	Open     int
	OBC      int
	Reserved int
	SCST     int
	Caution  int
}

// CollegeProfile holds the static facts the chatbot answers from.
type CollegeProfile struct {
	Name            string
	Established     int
	Affiliation     string
	Approval        string
	Address         string
	Website         string
	Email           string
	Phone           string
	UGCourses       []Course
	PGCourses       []Course
	TotalUGIntake   int
	UGEligibility   string
	AdmissionExams  []string
	CutoffCSE       string
	CutoffAI        string
	Fees            FeeStructure
	HostelCapacity  string
	HostelFee       int
	AveragePackage  float64
	HighestPackage  float64
	Recruiters      []string
	Scholarships    []string
	RequiredDocList []string
	Branches        []models.Branch
	HostelAnnualFee int
	MessFee         int
	TransportFee    int
	OfficeHours     string
}

// College is the profile of SKN Sinhgad College of Engineering.
var College = CollegeProfile{
	Name:        "SKN Sinhgad College of Engineering (SKNSCOE), Korti, Pandharpur",
	Established: 2010,
	Affiliation: "Punyashlok Ahilyadevi Holkar Solapur University",
	Approval:    "AICTE, New Delhi",
	Address:     "Gat No. 664, Korti, Pandharpur, Solapur, Maharashtra 413304",
	Website:     "https://www.sinhgad.edu/sinhgad-engineering-institutes/sknscoe-pandharpur/",
	Email:       "principal.sknsce@sinhgad.edu",
	Phone:       "+91-9822053108",
	UGCourses: []Course{
		{"B.E. in Computer Science and Engineering", 120},
		{"B.E. in Artificial Intelligence and Data Science", 60},
		{"B.E. in Electrical Engineering", 60},
		{"B.E. in Civil Engineering", 60},
		{"B.E. in Electronics and Telecommunication Engineering", 60},
		{"B.E. in Mechanical Engineering", 90},
	},
	PGCourses: []Course{
		{"M.E. in Computer Science and Engineering", 18},
		{"M.E. in Electronics", 18},
		{"M.E. in Structural Engineering", 18},
		{"M.E. in Design Engineering", 18},
	},
	TotalUGIntake:  450,
	UGEligibility:  "Passed 10+2 with Physics, Chemistry, Mathematics; minimum 45% marks (40% for reserved).",
	AdmissionExams: []string{"MHT-CET", "JEE Main"},
	CutoffCSE:      "84.48",
	CutoffAI:       "82.76",
	Fees:           FeeStructure{Open: 96000, OBC: 54261, Reserved: 12522, SCST: 0, Caution: 2000},
	HostelCapacity: "2,400 (1,600 boys, 800 girls)",
	HostelFee:      36000,
	AveragePackage: 3.2,
	HighestPackage: 8.0,
	Recruiters:     []string{"TCS", "Infosys", "Wipro", "Capgemini", "Tech Mahindra", "Cognizant"},
	Scholarships:   []string{"EBC", "TFWS", "Government of India Post-Matric for SC/ST", "Minority Scholarships"},
	RequiredDocList: []string{
		"10th & 12th Marksheets", "Entrance Exam Scorecard", "CAP Allotment Letter",
		"Caste Certificate (if applicable)", "Domicile Certificate", "Aadhaar Card",
		"Passport-size Photos", "Medical Fitness Certificate", "Income Certificate",
	},
	Branches: []models.Branch{
		{
			Code:             "CSE",
			Name:             "Computer Science and Engineering",
			Intake:           120,
			CETPercentile:    "84.48",
			Description:      "Cutting-edge curriculum in software development, AI/ML, and computer systems",
			Fees:             branchFees(96000, 122000),
			CoordinatorEmail: "hod.cs@sinhgad.edu",
		},
		{
			Code:             "AI_DS",
			Name:             "Artificial Intelligence and Data Science",
			Intake:           60,
			CETPercentile:    "82.76",
			Description:      "Focus on AI algorithms, machine learning, and big data analytics",
			Fees:             branchFees(96000, 122000),
			CoordinatorEmail: "hod.aids@sinhgad.edu",
		},
		{
			Code:             "EE",
			Name:             "Electrical Engineering",
			Intake:           60,
			Description:      "Power systems, electrical machines, and control systems",
			Fees:             branchFees(90000, 118000),
			CoordinatorEmail: "hod.ee@sinhgad.edu",
		},
		{
			Code:          "CE",
			Name:          "Civil Engineering",
			Intake:        60,
			CETPercentile: "73.20",
			Description:   "Structural engineering, construction management, and infrastructure",
			Fees:          branchFees(85000, 108000),
		},
		{
			Code:          "ENTC",
			Name:          "Electronics and Telecommunication Engineering",
			Intake:        60,
			CETPercentile: "76.33",
			Description:   "Communication systems, signal processing, and embedded systems",
			Fees:          branchFees(90000, 118000),
		},
		{
			Code:          "MECH",
			Name:          "Mechanical Engineering",
			Intake:        90,
			CETPercentile: "72.38",
			Description:   "Thermodynamics, manufacturing processes, and machine design",
			Fees:          branchFees(85000, 108000),
		},
	},
	HostelAnnualFee: 18000,
	MessFee:         24000,
	TransportFee:    5000,
	OfficeHours:     "Monday to Saturday, 9:00 AM - 5:00 PM",
}

// branchFees fills the fixed components shared by every branch.
func branchFees(tuition, total int) models.BranchFees {
	return models.BranchFees{
		Tuition:     tuition,
		Development: 10000,
		Library:     2000,
		Laboratory:  3000,
		Examination: 2000,
		Sports:      1000,
		Total:       total,
	}
}

var (
	rule50 = strings.Repeat("=", 50)
	rule60 = strings.Repeat("=", 60)
)

// CollegeInfo renders the static information intents.
type CollegeInfo struct {
	profile CollegeProfile
}

// NewCollegeInfo builds a renderer over profile.
func NewCollegeInfo(profile CollegeProfile) *CollegeInfo {
	return &CollegeInfo{profile: profile}
}

// Handles reports whether intent is answered from static facts.
func (ci *CollegeInfo) Handles(intent models.Intent) bool {
	switch intent {
	case models.IntentAdmission, models.IntentCutoff, models.IntentCollegeInfo, models.IntentHostel,
		models.IntentTransport, models.IntentPlacement, models.IntentScholarship, models.IntentDocuments,
		models.IntentGuidance:
		return true
	}
	return false
}

// Render returns the reply text for intent. msg selects admission subtopics.
func (ci *CollegeInfo) Render(intent models.Intent, msg string) string {
	p := ci.profile
	msg = strings.ToLower(msg)
	var b strings.Builder

	switch intent {
	case models.IntentAdmission:
		switch {
		case containsAny(msg, "eligibility", "criteria", "qualification"):
			fmt.Fprintf(&b, "📋 **Admission Eligibility**\n%s\n\n", rule60)
			fmt.Fprintf(&b, "✅ **UG (B.Tech):** %s\n\n", p.UGEligibility)
			b.WriteString("✅ **PG (M.Tech):** B.E./B.Tech in relevant discipline with minimum 50% (45% for reserved).\n\n")
			fmt.Fprintf(&b, "✅ **Entrance Exams:** %s\n\n", strings.Join(p.AdmissionExams, ", "))
			fmt.Fprintf(&b, "📝 **Total UG Intake:** %d seats\n", p.TotalUGIntake)
		case containsAny(msg, "cutoff", "merit", "rank"):
			fmt.Fprintf(&b, "📊 **Cutoff Information (2025)**\n%s\n\n", rule60)
			fmt.Fprintf(&b, "🎓 **Computer Science:** MHT-CET: %s%%, JEE: 201,109\n", p.CutoffCSE)
			fmt.Fprintf(&b, "🤖 **AI & Data Science:** MHT-CET: %s%%\n", p.CutoffAI)
			b.WriteString("📡 **ENTC:** MHT-CET: 76.33%\n")
			b.WriteString("⚙️ **Mechanical:** MHT-CET: 72.38%\n")
			b.WriteString("🏗️ **Civil:** MHT-CET: 73.20%\n\n")
			b.WriteString("💡 80% seats via CAP, 20% via Institute Quota\n")
		case containsAny(msg, "seat", "intake", "capacity"):
			fmt.Fprintf(&b, "📚 **Courses & Intake**\n%s\n\n", rule60)
			b.WriteString("**Undergraduate (B.Tech):**\n")
			for _, c := range p.UGCourses {
				fmt.Fprintf(&b, "  • %s - %d seats\n", c.Name, c.Intake)
			}
			b.WriteString("\n**Postgraduate (M.Tech):**\n")
			for _, c := range p.PGCourses {
				fmt.Fprintf(&b, "  • %s - %d seats\n", c.Name, c.Intake)
			}
			fmt.Fprintf(&b, "\n📊 Total UG: %d seats\n", p.TotalUGIntake)
		default:
			fmt.Fprintf(&b, "🎓 **Admission Process**\n%s\n\n", rule60)
			fmt.Fprintf(&b, "📍 **College:** %s\n", p.Name)
			fmt.Fprintf(&b, "📝 **Intake:** %d UG seats\n", p.TotalUGIntake)
			fmt.Fprintf(&b, "🎯 **Entrance Exams:** %s\n", strings.Join(p.AdmissionExams, ", "))
			b.WriteString("✅ **Seats:** 80% CAP, 20% Institute Quota\n\n")
			fmt.Fprintf(&b, "📞 **Contact:** %s\n", p.Phone)
			fmt.Fprintf(&b, "🌐 **Website:** %s\n", p.Website)
		}
	case models.IntentCutoff:
		fmt.Fprintf(&b, "📊 **Cutoff Information (2025)**\n%s\n\n", rule60)
		fmt.Fprintf(&b, "🎓 **Computer Science:** MHT-CET: %s%%, JEE: 201,109 rank\n", p.CutoffCSE)
		fmt.Fprintf(&b, "🤖 **AI & Data Science:** MHT-CET: %s%%\n", p.CutoffAI)
		b.WriteString("📡 **ENTC:** MHT-CET: 76.33%\n")
		b.WriteString("⚙️ **Mechanical:** MHT-CET: 72.38%\n")
		b.WriteString("🏗️ **Civil:** MHT-CET: 73.20%\n\n")
		b.WriteString("💡 **Seat Distribution:** 80% CAP, 20% Institute Quota\n")
	case models.IntentCollegeInfo:
		fmt.Fprintf(&b, "🏛️ **College Information**\n%s\n\n", rule60)
		fmt.Fprintf(&b, "📚 **Name:** %s\n", p.Name)
		fmt.Fprintf(&b, "📅 **Established:** %d\n", p.Established)
		fmt.Fprintf(&b, "✅ **Approval:** %s\n", p.Approval)
		fmt.Fprintf(&b, "🎓 **Affiliation:** %s\n", p.Affiliation)
		fmt.Fprintf(&b, "📍 **Address:** %s\n", p.Address)
		fmt.Fprintf(&b, "📞 **Phone:** %s\n", p.Phone)
		fmt.Fprintf(&b, "✉️ **Email:** %s\n", p.Email)
		fmt.Fprintf(&b, "🌐 **Website:** %s\n", p.Website)
	case models.IntentHostel:
		fmt.Fprintf(&b, "🛏️ **Hostel Information**\n%s\n\n", rule60)
		fmt.Fprintf(&b, "🏠 **Total Capacity:** %s\n", p.HostelCapacity)
		fmt.Fprintf(&b, "💵 **Annual Fee:** ₹%s (including mess)\n", groupThousands(int64(p.HostelFee)))
		b.WriteString("🪑 **Room Type:** 3-4 students per room with bed, table, chair, cupboard\n")
		b.WriteString("✨ **Facilities:** 24x7 Security, Wi-Fi, RO Water, Laundry, Recreation, Hot Water, Medical Aid\n\n")
		b.WriteString("📋 **Allocation:** First-Come-First-Serve\n")
		b.WriteString("🚫 **Ragging Policy:** Zero Tolerance\n")
	case models.IntentTransport:
		fmt.Fprintf(&b, "🚌 **Transport Facility**\n%s\n\n", rule60)
		b.WriteString("✅ **Available:** Yes\n")
		b.WriteString("📍 **Routes:** Pandharpur, Mangalwedha, Sangola, and nearby villages\n")
		b.WriteString("📝 **Note:** Students can register during admission or at admin office\n")
	case models.IntentPlacement:
		fmt.Fprintf(&b, "💼 **Placement Information**\n%s\n\n", rule60)
		fmt.Fprintf(&b, "📊 **Average Package:** ₹%s LPA\n", formatPackage(p.AveragePackage))
		fmt.Fprintf(&b, "🏆 **Highest Package:** ₹%s LPA\n", formatPackage(p.HighestPackage))
		fmt.Fprintf(&b, "🏢 **Major Recruiters:** %s\n\n", strings.Join(p.Recruiters, ", "))
		b.WriteString("📚 **Training:** Soft Skills, Aptitude, Technical Interview Prep, Resume Building\n")
		b.WriteString("🎯 **Internships:** Available for 3rd & 4th year students\n")
	case models.IntentScholarship:
		fmt.Fprintf(&b, "🎓 **Scholarship Information**\n%s\n\n", rule60)
		for _, s := range p.Scholarships {
			fmt.Fprintf(&b, "• %s\n", s)
		}
		b.WriteString("\n💰 **SC/ST:** Full tuition fee waiver under government scheme\n")
		b.WriteString("💵 **Fee Structure:**\n")
		fmt.Fprintf(&b, "   Open: ₹%s\n", groupThousands(int64(p.Fees.Open)))
		fmt.Fprintf(&b, "   OBC/EBC: ₹%s\n", groupThousands(int64(p.Fees.OBC)))
		fmt.Fprintf(&b, "   TFWS/NT: ₹%s\n", groupThousands(int64(p.Fees.Reserved)))
		fmt.Fprintf(&b, "   SC/ST: ₹%s\n", groupThousands(int64(p.Fees.SCST)))
	case models.IntentDocuments:
		fmt.Fprintf(&b, "📋 **Documents Required**\n%s\n\n", rule60)
		for i, doc := range p.RequiredDocList {
			fmt.Fprintf(&b, "%d. %s\n", i+1, doc)
		}
	case models.IntentGuidance:
		fmt.Fprintf(&b, "💡 **Student Guidance**\n%s\n\n", rule60)
		b.WriteString("🤖 **For AI Career:** Choose Computer Science (CSE) or AI & Data Science\n")
		b.WriteString("🎯 **Best Placements:** Computer Science Engineering\n")
		b.WriteString("🔄 **Branch Change:** Allowed after 1st year based on merit and seat availability\n")
		b.WriteString("📊 **Placement Rates:** CSE > AI/DS > ENTC > MECH > CIVIL\n\n")
		b.WriteString("💡 **Tips:**\n")
		b.WriteString("   • Choose based on interest and career goals\n")
		b.WriteString("   • Consider placement trends and emerging technologies\n")
		b.WriteString("   • Mechanical and Civil have good core industry prospects\n")
	default:
		return "How can I help you with college information?"
	}

	b.WriteString(rule60)
	return b.String()
}

func containsAny(msg string, words ...string) bool {
	for _, w := range words {
		if strings.Contains(msg, w) {
			return true
		}
	}
	return false
}

// formatPackage prints a package figure with at least one decimal, so 8 reads "8.0".
func formatPackage(v float64) string {
	s := fmt.Sprintf("%g", v)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
