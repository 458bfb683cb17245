package generator

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/pkg/errors"

	"github.com/ChrisAdan/earth/pkg/models"
)

// CompanyGenerator synthesizes company profiles. Revenue is drawn from the
// band of the company's size category and scaled by the industry's
// profitability multiplier.
type CompanyGenerator struct {
	cfg   Config
	faker *gofakeit.Faker
}

func NewCompanyGenerator(cfg Config) *CompanyGenerator {
	return &CompanyGenerator{cfg: cfg, faker: newFaker(cfg)}
}

func (g *CompanyGenerator) EntityType() string {
	return "company"
}

func (g *CompanyGenerator) RequiredFields() []string {
	return []string{
		"company_id", "company_name", "industry",
		"employee_count", "annual_revenue",
	}
}

func (g *CompanyGenerator) GenerateBatch(ctx context.Context, count int) ([]models.Record, error) {
	if count <= 0 {
		return nil, errors.Errorf("batch count must be positive, got %d", count)
	}
	records := make([]models.Record, 0, count)
	for i := 0; i < count; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		records = append(records, g.generate())
	}
	return records, nil
}

func (g *CompanyGenerator) generate() models.Record {
	f := g.faker

	name := f.Company()
	suffix := f.RandomString(legalSuffixes)
	size := sizeCategories[f.IntRange(0, len(sizeCategories)-1)]
	industry := f.RandomString(industries)

	employees := f.IntRange(size.minEmployees, size.maxEmployees)
	baseRevenue := size.minRevenue + int64(f.Float64Range(0, float64(size.maxRevenue-size.minRevenue)))
	revenue := int64(float64(baseRevenue) * industryMultipliers[industry])

	yearsInBusiness := f.IntRange(1, 80)
	foundedYear := time.Now().Year() - yearsInBusiness

	domain := strings.ToLower(strings.ReplaceAll(name, " ", "")) + ".com"

	return models.Record{
		"company_id":        f.UUID(),
		"company_name":      name,
		"legal_name":        fmt.Sprintf("%s %s", name, suffix),
		"industry":          industry,
		"business_type":     f.RandomString(businessTypes),
		"company_size":      size.name,
		"employee_count":    employees,
		"revenue_range":     size.label,
		"annual_revenue":    revenue,
		"founded_year":      foundedYear,
		"years_in_business": yearsInBusiness,
		"growth_stage":      growthStageFor(yearsInBusiness),
		"credit_rating":     f.RandomString(creditRatings),
		"website":           "https://www." + domain,
		"email":             "contact@" + domain,
		"city":              f.City(),
		"state":             f.StateAbr(),
		"country":           "United States",
		"country_code":      "US",
		"created_at":        time.Now().UTC(),
		"created_by":        "earth_generator",
	}
}

func growthStageFor(yearsInBusiness int) string {
	switch {
	case yearsInBusiness <= 3:
		return "Startup"
	case yearsInBusiness <= 10:
		return "Growth"
	case yearsInBusiness <= 40:
		return "Mature"
	default:
		return "Decline"
	}
}
