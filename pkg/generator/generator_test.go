package generator_test

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ChrisAdan/earth/pkg/generator"
)

func seeded(seed int64) generator.Config {
	cfg := generator.DefaultConfig()
	cfg.Seed = &seed
	return cfg
}

func TestNew(t *testing.T) {
	t.Run("KnownEntities", func(t *testing.T) {
		for _, entityType := range generator.ListEntities() {
			t.Run(entityType, func(t *testing.T) {
				gen, err := generator.New(entityType, generator.DefaultConfig())
				assert.NoError(t, err)
				assert.Equal(t, entityType, gen.EntityType())
				assert.NotEmpty(t, gen.RequiredFields())
			})
		}
	})

	t.Run("UnknownEntity", func(t *testing.T) {
		_, err := generator.New("spaceship", generator.DefaultConfig())
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "person")
	})
}

func TestGenerateBatch(t *testing.T) {
	t.Run("RejectsNonPositiveCount", func(t *testing.T) {
		for _, entityType := range generator.ListEntities() {
			gen, err := generator.New(entityType, generator.DefaultConfig())
			assert.NoError(t, err)
			_, err = gen.GenerateBatch(context.Background(), 0)
			assert.Error(t, err)
		}
	})

	t.Run("HonorsCancelledContext", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		gen, err := generator.New("person", generator.DefaultConfig())
		assert.NoError(t, err)
		_, err = gen.GenerateBatch(ctx, 10)
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("RequiredFieldsPresent", func(t *testing.T) {
		for _, entityType := range generator.ListEntities() {
			t.Run(entityType, func(t *testing.T) {
				gen, err := generator.New(entityType, seeded(7))
				assert.NoError(t, err)
				records, err := gen.GenerateBatch(context.Background(), 20)
				assert.NoError(t, err)
				assert.Len(t, records, 20)
				for _, record := range records {
					for _, field := range gen.RequiredFields() {
						assert.Contains(t, record, field)
						assert.NotNil(t, record[field])
					}
				}
			})
		}
	})
}

func TestPersonGenerator(t *testing.T) {
	gen := generator.NewPersonGenerator(seeded(42))
	records, err := gen.GenerateBatch(context.Background(), 100)
	assert.NoError(t, err)

	t.Run("AgeWithinAdultRange", func(t *testing.T) {
		for _, r := range records {
			age := r["age"].(int)
			assert.GreaterOrEqual(t, age, 18)
			assert.LessOrEqual(t, age, 85)
		}
	})

	t.Run("IncomeMatchesCareerLevelBand", func(t *testing.T) {
		for _, r := range records {
			income := r["annual_income"].(int)
			assert.GreaterOrEqual(t, income, 35000)
			assert.LessOrEqual(t, income, 500000)
			level := r["career_level"].(string)
			assert.True(t, strings.HasPrefix(level, "CL-"), "unexpected career level %s", level)
		}
	})

	t.Run("EmailDerivedFromName", func(t *testing.T) {
		for _, r := range records {
			email := r["email"].(string)
			assert.Contains(t, email, "@")
			assert.Equal(t, strings.ToLower(email), email)
			assert.True(t, strings.HasPrefix(email,
				strings.ToLower(fmt.Sprintf("%s.%s", r["first_name"], r["last_name"]))))
		}
	})

	t.Run("UniqueIdentifiers", func(t *testing.T) {
		seen := make(map[interface{}]struct{})
		for _, r := range records {
			_, dup := seen[r["person_id"]]
			assert.False(t, dup)
			seen[r["person_id"]] = struct{}{}
		}
	})

	t.Run("SameSeedSameRecords", func(t *testing.T) {
		first, err := generator.NewPersonGenerator(seeded(99)).GenerateBatch(context.Background(), 10)
		assert.NoError(t, err)
		second, err := generator.NewPersonGenerator(seeded(99)).GenerateBatch(context.Background(), 10)
		assert.NoError(t, err)
		for i := range first {
			assert.Equal(t, first[i]["first_name"], second[i]["first_name"])
			assert.Equal(t, first[i]["email"], second[i]["email"])
			assert.Equal(t, first[i]["annual_income"], second[i]["annual_income"])
		}
	})
}

func TestCompanyGenerator(t *testing.T) {
	gen := generator.NewCompanyGenerator(seeded(42))
	records, err := gen.GenerateBatch(context.Background(), 100)
	assert.NoError(t, err)

	t.Run("EmployeeCountMatchesSizeCategory", func(t *testing.T) {
		for _, r := range records {
			employees := r["employee_count"].(int)
			assert.GreaterOrEqual(t, employees, 1)
			assert.LessOrEqual(t, employees, 500000)
		}
	})

	t.Run("RevenueNonNegative", func(t *testing.T) {
		for _, r := range records {
			assert.GreaterOrEqual(t, r["annual_revenue"].(int64), int64(0))
		}
	})

	t.Run("GrowthStageConsistentWithAge", func(t *testing.T) {
		for _, r := range records {
			years := r["years_in_business"].(int)
			stage := r["growth_stage"].(string)
			switch {
			case years <= 3:
				assert.Equal(t, "Startup", stage)
			case years <= 10:
				assert.Equal(t, "Growth", stage)
			case years <= 40:
				assert.Equal(t, "Mature", stage)
			default:
				assert.Equal(t, "Decline", stage)
			}
		}
	})

	t.Run("ContactDetailsDerivedFromName", func(t *testing.T) {
		for _, r := range records {
			website := r["website"].(string)
			email := r["email"].(string)
			assert.True(t, strings.HasPrefix(website, "https://www."))
			assert.True(t, strings.HasPrefix(email, "contact@"))
		}
	})

	t.Run("SameSeedSameRecords", func(t *testing.T) {
		first, err := generator.NewCompanyGenerator(seeded(99)).GenerateBatch(context.Background(), 10)
		assert.NoError(t, err)
		second, err := generator.NewCompanyGenerator(seeded(99)).GenerateBatch(context.Background(), 10)
		assert.NoError(t, err)
		for i := range first {
			assert.Equal(t, first[i]["company_name"], second[i]["company_name"])
			assert.Equal(t, first[i]["annual_revenue"], second[i]["annual_revenue"])
		}
	})
}
