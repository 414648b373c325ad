package repository

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/campusdesk/support-api/internal/models"
)

func TestFAQKeywordsRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	repo := NewFAQRepository(db)
	ctx := context.Background()

	faq := models.FAQ{
		ID:       uuid.NewString(),
		Category: "payment_refund",
		Question: "How do refunds work?",
		Answer:   "Refunds take 14 days.",
		Keywords: []string{"Refund", " payment ", ""},
		Active:   true,
	}
	require.NoError(t, repo.Create(ctx, &faq))

	fetched, err := repo.GetByID(ctx, faq.ID)
	require.NoError(t, err)
	// Keywords come back lower-cased and trimmed, empty entries dropped.
	require.Equal(t, []string{"refund", "payment"}, fetched.Keywords)
}

func TestFAQInactiveRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	repo := NewFAQRepository(db)
	ctx := context.Background()

	faq := models.FAQ{
		ID:       uuid.NewString(),
		Category: "payment_refund",
		Question: "Retired question?",
		Answer:   "Retired answer.",
		Active:   false,
	}
	require.NoError(t, repo.Create(ctx, &faq))

	fetched, err := repo.GetByID(ctx, faq.ID)
	require.NoError(t, err)
	require.False(t, fetched.Active)
}

func TestFAQListFiltersAndOrdering(t *testing.T) {
	db := setupTestDB(t)
	repo := NewFAQRepository(db)
	ctx := context.Background()

	seed := func(category string, active bool) models.FAQ {
		faq := models.FAQ{
			ID:       uuid.NewString(),
			Category: category,
			Question: "Question for " + category,
			Answer:   "Answer.",
			Active:   active,
		}
		require.NoError(t, repo.Create(ctx, &faq))
		return faq
	}

	seed("payment_refund", true)
	seed("payment_refund", false)
	seed("activity_points", true)

	all, err := repo.List(ctx, FAQFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	// Category ascending puts activity_points first.
	require.Equal(t, "activity_points", all[0].Category)

	active, err := repo.List(ctx, FAQFilter{ActiveOnly: true})
	require.NoError(t, err)
	require.Len(t, active, 2)

	payment, err := repo.List(ctx, FAQFilter{Category: "payment_refund", ActiveOnly: true})
	require.NoError(t, err)
	require.Len(t, payment, 1)
}

func TestFAQUpdateEncodedKeywords(t *testing.T) {
	db := setupTestDB(t)
	repo := NewFAQRepository(db)
	ctx := context.Background()

	faq := models.FAQ{
		ID:       uuid.NewString(),
		Category: "payment_refund",
		Question: "How do refunds work?",
		Answer:   "Refunds take 14 days.",
		Keywords: []string{"refund"},
		Active:   true,
	}
	require.NoError(t, repo.Create(ctx, &faq))

	// Map updates bypass the model hooks, so keywords arrive pre-encoded.
	updated, err := repo.Update(ctx, faq.ID, map[string]interface{}{
		"keywords": models.EncodeKeywords([]string{"refund", "invoice"}),
		"active":   false,
	})
	require.NoError(t, err)
	require.Equal(t, []string{"refund", "invoice"}, updated.Keywords)
	require.False(t, updated.Active)

	_, err = repo.Update(ctx, uuid.NewString(), map[string]interface{}{"active": true})
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestFAQDelete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewFAQRepository(db)
	ctx := context.Background()

	faq := models.FAQ{
		ID:       uuid.NewString(),
		Category: "other",
		Question: "Temporary question?",
		Answer:   "Temporary answer.",
		Active:   true,
	}
	require.NoError(t, repo.Create(ctx, &faq))

	require.NoError(t, repo.Delete(ctx, faq.ID))
	require.ErrorIs(t, repo.Delete(ctx, faq.ID), gorm.ErrRecordNotFound)
}
