package generator

// Career levels span entry level (1) through C-suite (8). Salary bands and
// titles are tuned to the 2025 US market.

type careerLevel int

const (
	minCareerLevel careerLevel = 1
	maxCareerLevel careerLevel = 8
)

type salaryBand struct {
	min int
	max int
}

var salaryBands = map[careerLevel]salaryBand{
	1: {35000, 55000},
	2: {45000, 70000},
	3: {60000, 90000},
	4: {80000, 120000},
	5: {100000, 150000},
	6: {130000, 200000},
	7: {180000, 300000},
	8: {250000, 500000},
}

// careerTitles maps industry -> level -> representative job titles. Unlisted
// industries fall back to "general".
var careerTitles = map[string]map[careerLevel][]string{
	"technology": {
		1: {"Software Engineer I", "Junior Developer", "QA Tester"},
		2: {"Software Engineer II", "Frontend Developer", "Data Analyst"},
		3: {"Software Engineer III", "Full Stack Developer", "DevOps Engineer"},
		4: {"Senior Software Engineer", "Technical Lead", "Security Engineer"},
		5: {"Engineering Manager", "Principal Engineer", "Team Lead"},
		6: {"Senior Engineering Manager", "Director of Engineering", "Principal Architect"},
		7: {"VP of Engineering", "Senior Director of Technology", "Chief Architect"},
		8: {"Chief Technology Officer", "VP of Product", "Chief Data Officer"},
	},
	"financial_services": {
		1: {"Financial Analyst I", "Banking Associate", "Credit Analyst"},
		2: {"Financial Analyst II", "Investment Advisor", "Portfolio Analyst"},
		3: {"Senior Financial Analyst", "Relationship Manager", "Risk Analyst"},
		4: {"Finance Manager", "Portfolio Manager", "Branch Manager"},
		5: {"Senior Finance Manager", "Investment Director", "Risk Manager"},
		6: {"Finance Director", "VP of Investments", "Managing Director"},
		7: {"VP of Finance", "Senior Managing Director", "Chief Investment Officer"},
		8: {"Chief Financial Officer", "President", "Chief Executive Officer"},
	},
	"healthcare": {
		1: {"Medical Assistant", "Healthcare Aide", "Lab Technician"},
		2: {"Registered Nurse", "Physical Therapist", "Medical Technologist"},
		3: {"Senior Nurse", "Nurse Practitioner", "Clinical Specialist"},
		4: {"Charge Nurse", "Clinical Manager", "Department Supervisor"},
		5: {"Nursing Manager", "Clinical Director", "Program Manager"},
		6: {"Director of Nursing", "Medical Director", "VP of Patient Care"},
		7: {"VP of Clinical Operations", "Chief Medical Officer", "Senior VP Healthcare"},
		8: {"Chief Executive Officer", "President", "System CEO"},
	},
	"manufacturing": {
		1: {"Production Worker", "Quality Inspector", "Machine Operator"},
		2: {"Process Technician", "Quality Analyst", "Maintenance Technician"},
		3: {"Team Lead", "Process Engineer", "Shift Supervisor"},
		4: {"Production Supervisor", "Manufacturing Engineer", "Quality Manager"},
		5: {"Production Manager", "Plant Manager", "Engineering Manager"},
		6: {"VP of Manufacturing", "General Manager", "Operations Director"},
		7: {"Senior VP of Operations", "Chief Operations Officer", "Division President"},
		8: {"Chief Executive Officer", "President", "Chief Operating Officer"},
	},
	"retail": {
		1: {"Sales Associate", "Cashier", "Stock Associate"},
		2: {"Senior Sales Associate", "Shift Lead", "Sales Specialist"},
		3: {"Team Lead", "Assistant Manager", "Merchandiser"},
		4: {"Store Manager", "Department Manager", "Buyer"},
		5: {"District Manager", "Regional Manager", "Operations Manager"},
		6: {"Regional Director", "VP of Operations", "General Manager"},
		7: {"Senior VP of Retail", "Chief Merchandising Officer", "Division President"},
		8: {"Chief Executive Officer", "President", "Chief Operating Officer"},
	},
	"general": {
		1: {"Customer Service Rep", "Administrative Assistant", "Support Specialist"},
		2: {"Administrative Coordinator", "Specialist", "Associate"},
		3: {"Team Lead", "Operations Specialist", "Senior Associate"},
		4: {"Supervisor", "Operations Manager", "Team Manager"},
		5: {"Manager", "Department Manager", "Program Manager"},
		6: {"Senior Manager", "Director", "Regional Manager"},
		7: {"Vice President", "Executive Director", "Senior VP"},
		8: {"President", "Chief Executive Officer", "Managing Director"},
	},
}

func titlesFor(industry string, level careerLevel) []string {
	if titles, ok := careerTitles[industry]; ok {
		return titles[level]
	}
	return careerTitles["general"][level]
}

// industryMultipliers scales company revenue by sector profitability.
var industryMultipliers = map[string]float64{
	"technology":            1.4,
	"financial_services":    1.3,
	"pharmaceuticals":       1.3,
	"aerospace":             1.3,
	"energy":                1.2,
	"telecommunications":    1.1,
	"media":                 1.1,
	"real_estate":           1.0,
	"healthcare":            1.0,
	"professional_services": 0.9,
	"automotive":            0.9,
	"general":               0.9,
	"government":            0.9,
	"manufacturing":         0.8,
	"construction":          0.8,
	"transportation":        0.8,
	"education":             0.8,
	"retail":                0.7,
	"hospitality":           0.6,
	"agriculture":           0.5,
	"non_profit":            0.3,
}

var industries = []string{
	"technology", "financial_services", "pharmaceuticals", "aerospace",
	"energy", "telecommunications", "media", "real_estate", "healthcare",
	"professional_services", "automotive", "general", "government",
	"manufacturing", "construction", "transportation", "education",
	"retail", "hospitality", "agriculture", "non_profit",
}

type sizeCategory struct {
	name         string
	minEmployees int
	maxEmployees int
	minRevenue   int64
	maxRevenue   int64
	label        string
}

var sizeCategories = []sizeCategory{
	{"Startup", 1, 10, 0, 1_000_000, "$0-1M"},
	{"Small", 11, 50, 1_000_000, 10_000_000, "$1M-10M"},
	{"Medium", 51, 250, 10_000_000, 100_000_000, "$10M-100M"},
	{"Large", 251, 1000, 100_000_000, 1_000_000_000, "$100M-1B"},
	{"Enterprise", 1001, 10000, 1_000_000_000, 10_000_000_000, "$1B-10B"},
	{"Mega Corp", 10001, 500000, 10_000_000_000, 500_000_000_000, "$10B+"},
}

var employmentStatuses = []string{
	"Full-time", "Part-time", "Contract", "Freelance", "Self-employed",
}

var educationLevels = []string{
	"High School", "Some College", "Associate Degree",
	"Bachelor's Degree", "Master's Degree", "Doctoral Degree",
}

var maritalStatuses = []string{
	"Single", "Married", "Divorced", "Widowed", "Separated",
}

var businessTypes = []string{
	"Corporation", "LLC", "Partnership", "Sole Proprietorship",
	"S Corporation", "B Corporation", "Non-Profit", "Cooperative",
}

var legalSuffixes = []string{"Inc.", "LLC", "Corp.", "Ltd.", "Co.", "LP"}

var creditRatings = []string{
	"AAA", "AA+", "AA", "AA-", "A+", "A", "A-",
	"BBB+", "BBB", "BBB-", "BB+", "BB", "BB-", "B+", "B", "B-",
	"CCC", "CC", "C", "D",
}
