package app

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ipryshchepa/FTG12-sub001/internal/models"
	"github.com/ipryshchepa/FTG12-sub001/internal/repositories"
	"github.com/ipryshchepa/FTG12-sub001/internal/utils"
)

// SentinelBookID marks that seeding has already run.
const SentinelBookID = "bbbbbbbb-bbbb-4bbb-8bbb-bbbbbbbbbbb1"

// Repositories groups the stores the seeder writes to.
type Repositories struct {
	Books           repositories.BookRepository
	Loans           repositories.LoanRepository
	Ratings         repositories.RatingRepository
	ReadingStatuses repositories.ReadingStatusRepository
}

type seedBook struct {
	id        string
	title     string
	author    string
	year      int
	pages     int
	ownership models.OwnershipStatus
	score     int
	status    models.ReadingStatusType
	loanedTo  string
	loanDays  int
}

var seedBooks = []seedBook{
	{SentinelBookID, "A Wizard of Earthsea", "Ursula K. Le Guin", 1968, 183, models.OwnershipOwn, 9, models.ReadingCompleted, "", 0},
	{"bbbbbbbb-bbbb-4bbb-8bbb-bbbbbbbbbbb2", "The Left Hand of Darkness", "Ursula K. Le Guin", 1969, 304, models.OwnershipOwn, 8, models.ReadingCompleted, "Jordan", 45},
	{"bbbbbbbb-bbbb-4bbb-8bbb-bbbbbbbbbbb3", "Piranesi", "Susanna Clarke", 2020, 272, models.OwnershipOwn, 0, models.ReadingBacklog, "Casey", 3},
	{"bbbbbbbb-bbbb-4bbb-8bbb-bbbbbbbbbbb4", "The Name of the Rose", "Umberto Eco", 1980, 512, models.OwnershipSoldOrGaveAway, 6, models.ReadingAbandoned, "", 0},
	{"bbbbbbbb-bbbb-4bbb-8bbb-bbbbbbbbbbb5", "Station Eleven", "Emily St. John Mandel", 2014, 333, models.OwnershipWantToBuy, 0, "", "", 0},
}

// SeedAllTestData inserts a small demo library. It is idempotent: nothing is
// written when the sentinel book already exists.
func SeedAllTestData(ctx context.Context, repos Repositories) error {
	existing, err := repos.Books.GetByID(ctx, uuid.MustParse(SentinelBookID))
	if err != nil {
		return fmt.Errorf("failed to check for sentinel book: %w", err)
	}
	if existing != nil {
		utils.Logger.Info("Seed data already present; skipping seeding.")
		return nil
	}

	now := time.Now().UTC()
	for _, sb := range seedBooks {
		if err := seedOne(ctx, repos, sb, now); err != nil {
			return fmt.Errorf("seed %q: %w", sb.title, err)
		}
	}
	utils.Logger.WithField("books", len(seedBooks)).Info("Seeding completed successfully.")
	return nil
}

func seedOne(ctx context.Context, repos Repositories, sb seedBook, now time.Time) error {
	b := &models.Book{
		ID:              uuid.MustParse(sb.id),
		Title:           sb.title,
		Author:          sb.author,
		PublishedYear:   utils.Ptr(sb.year),
		PageCount:       utils.Ptr(sb.pages),
		OwnershipStatus: sb.ownership,
	}
	if err := repos.Books.Create(ctx, b); err != nil {
		return err
	}
	if sb.score > 0 {
		if err := repos.Ratings.Upsert(ctx, &models.Rating{BookID: b.ID, Score: sb.score}); err != nil {
			return err
		}
	}
	if sb.status != "" {
		if err := repos.ReadingStatuses.Upsert(ctx, &models.ReadingStatus{BookID: b.ID, Status: sb.status}); err != nil {
			return err
		}
	}
	if sb.loanedTo != "" {
		loan := &models.Loan{
			ID:         uuid.New(),
			BookID:     b.ID,
			BorrowedTo: sb.loanedTo,
			LoanDate:   now.AddDate(0, 0, -sb.loanDays),
		}
		if err := repos.Loans.Create(ctx, loan); err != nil {
			return err
		}
	}
	return nil
}
