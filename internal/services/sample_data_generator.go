package services

import (
	"fmt"
	"math/rand"
	"time"

	"budgetbook/internal/models"
	"budgetbook/internal/repositories"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
)

// Per-category spend bands in whole currency units. Unknown directory entries
// fall back to the default band.
var amountBands = map[string][2]int64{
	"food":      {3000, 25000},
	"traffic":   {1250, 5000},
	"residence": {50000, 700000},
	"clothes":   {10000, 80000},
	"leisure":   {5000, 60000},
	"etc":       {1000, 30000},
}

var defaultAmountBand = [2]int64{1000, 50000}

// sampleDataGenerator seeds plausible spending records for development use
type sampleDataGenerator struct {
	expenditureRepo repositories.ExpenditureRepositoryInterface
	categoryRepo    repositories.CategoryRepositoryInterface
	rng             *rand.Rand
}

// NewSampleDataGenerator creates a new sample data generator
func NewSampleDataGenerator(
	expenditureRepo repositories.ExpenditureRepositoryInterface,
	categoryRepo repositories.CategoryRepositoryInterface,
) SampleDataGeneratorInterface {
	source := rand.NewSource(time.Now().UnixNano())
	return &sampleDataGenerator{
		expenditureRepo: expenditureRepo,
		categoryRepo:    categoryRepo,
		rng:             rand.New(source),
	}
}

// GenerateExpenditures creates count records for one owner spread uniformly
// over the inclusive date window. Returns the number actually persisted.
func (g *sampleDataGenerator) GenerateExpenditures(userID uuid.UUID, startDate, endDate time.Time, count int) (int, error) {
	if count <= 0 {
		return 0, nil
	}
	if startDate.After(endDate) {
		return 0, fmt.Errorf("start date %s is after end date %s",
			startDate.Format(DateLayout), endDate.Format(DateLayout))
	}

	categories, err := g.categoryRepo.List()
	if err != nil {
		return 0, fmt.Errorf("failed to load category directory: %w", err)
	}
	if len(categories) == 0 {
		return 0, fmt.Errorf("category directory is empty")
	}

	days := int(endDate.Sub(startDate).Hours()/24) + 1

	created := 0
	for i := 0; i < count; i++ {
		category := categories[g.rng.Intn(len(categories))]

		expenditure := &models.Expenditure{
			UserID:      userID,
			CategoryID:  category.ID,
			Amount:      g.generateAmount(category.Name),
			Memo:        g.generateMemo(),
			ExpenseDate: startDate.AddDate(0, 0, g.rng.Intn(days)),
			// Roughly one record in ten is excluded from totals, mirroring
			// refunds and reimbursed purchases
			IncludeInSum: g.rng.Intn(10) != 0,
		}

		if err := g.expenditureRepo.Create(expenditure); err != nil {
			return created, fmt.Errorf("failed to persist sample expenditure: %w", err)
		}
		created++
	}

	return created, nil
}

func (g *sampleDataGenerator) generateAmount(categoryName string) int64 {
	band, ok := amountBands[categoryName]
	if !ok {
		band = defaultAmountBand
	}
	return band[0] + g.rng.Int63n(band[1]-band[0]+1)
}

func (g *sampleDataGenerator) generateMemo() string {
	// A third of real records carry no memo at all
	if g.rng.Intn(3) == 0 {
		return ""
	}
	memo := gofakeit.ProductName()
	if len(memo) > models.MaxMemoLength {
		memo = memo[:models.MaxMemoLength]
	}
	return memo
}
