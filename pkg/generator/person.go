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

const (
	minAge = 18
	maxAge = 85
)

var emailDomains = []string{"gmail.com", "yahoo.com", "hotmail.com", "aol.com", "msn.com"}

// PersonGenerator synthesizes person profiles: demographics, contact and
// address data, and a career (level, title, income) consistent with a
// randomly assigned industry.
type PersonGenerator struct {
	cfg   Config
	faker *gofakeit.Faker
}

func NewPersonGenerator(cfg Config) *PersonGenerator {
	return &PersonGenerator{cfg: cfg, faker: newFaker(cfg)}
}

func newFaker(cfg Config) *gofakeit.Faker {
	if cfg.Seed != nil {
		return gofakeit.New(uint64(*cfg.Seed))
	}
	return gofakeit.New(0)
}

func (g *PersonGenerator) EntityType() string {
	return "person"
}

func (g *PersonGenerator) RequiredFields() []string {
	return []string{
		"person_id", "first_name", "last_name", "email",
		"age", "job_title", "annual_income",
	}
}

func (g *PersonGenerator) GenerateBatch(ctx context.Context, count int) ([]models.Record, error) {
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

func (g *PersonGenerator) generate() models.Record {
	f := g.faker

	firstName := f.FirstName()
	lastName := f.LastName()
	age := f.IntRange(minAge, maxAge)
	birthYear := time.Now().Year() - age
	dateOfBirth := time.Date(birthYear, time.Month(f.IntRange(1, 12)), f.IntRange(1, 28), 0, 0, 0, 0, time.UTC)

	industry := f.RandomString(industries)
	level := careerLevel(f.IntRange(int(minCareerLevel), int(maxCareerLevel)))
	band := salaryBands[level]
	income := f.IntRange(band.min, band.max)

	email := strings.ToLower(fmt.Sprintf("%s.%s%d@%s",
		firstName, lastName, f.IntRange(1, 999), f.RandomString(emailDomains)))

	return models.Record{
		"person_id":         f.UUID(),
		"first_name":        firstName,
		"last_name":         lastName,
		"full_name":         firstName + " " + lastName,
		"gender":            f.Gender(),
		"date_of_birth":     dateOfBirth,
		"age":               age,
		"email":             email,
		"phone_number":      f.Phone(),
		"street_address":    f.Street(),
		"city":              f.City(),
		"state":             f.StateAbr(),
		"zip_code":          f.Zip(),
		"job_title":         f.RandomString(titlesFor(industry, level)),
		"career_level":      fmt.Sprintf("CL-%d", level),
		"industry":          industry,
		"employment_status": f.RandomString(employmentStatuses),
		"annual_income":     income,
		"education_level":   f.RandomString(educationLevels),
		"marital_status":    f.RandomString(maritalStatuses),
		"country":           "United States",
		"country_code":      "US",
		"created_at":        time.Now().UTC(),
		"created_by":        "earth_generator",
	}
}
