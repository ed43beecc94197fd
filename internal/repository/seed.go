package repository

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type seedTask struct {
	title                string
	description          string
	taskType             string
	reward               int
	requiresVerification bool
}

type seedShopItem struct {
	title       string
	description string
	price       int
	category    string
	tags        []string
	imageURL    string
}

var seedTasks = []seedTask{
	{"Watch 30s Video Ad", "Watch a short advertisement", "VIDEO", 10, false},
	{"Install Partner App", "Download and open our partner app", "CPA", 500, true},
	{"Complete Survey", "Share your opinion in 5 minutes", "SURVEY", 50, false},
	{"Sign up for Newsletter", "Subscribe to partner newsletter", "CPA", 100, true},
	{"Watch Premium Ad", "Watch 60-second premium content", "VIDEO", 20, false},
	{"Install Game App", "Install and reach level 5", "CPA", 1000, true},
	{"Quick Poll", "3-question quick poll", "SURVEY", 25, false},
	{"Trial Signup", "Sign up for free trial (no CC)", "CPA", 750, true},
}

var seedShopItems = []seedShopItem{
	{"$5 Amazon Gift Card", "Instant digital delivery", 1250, "Gift Cards", []string{"amazon", "digital"}, "https://images.unsplash.com/photo-1523474253046-8cd2748b5fd2?w=400"},
	{"$10 Amazon Gift Card", "Instant digital delivery", 2500, "Gift Cards", []string{"amazon", "digital"}, "https://images.unsplash.com/photo-1523474253046-8cd2748b5fd2?w=400"},
	{"$5 Starbucks eGift", "Coffee on us!", 1250, "Gift Cards", []string{"food", "digital"}, "https://images.unsplash.com/photo-1511920170033-f8396924c348?w=400"},
	{"$10 iTunes Card", "Music, apps, and more", 2500, "Gift Cards", []string{"apple", "digital"}, "https://images.unsplash.com/photo-1611162617213-7d7a39e9b1d7?w=400"},
	{"Netflix 1 Month", "Stream unlimited movies", 2500, "Subscriptions", []string{"streaming"}, "https://images.unsplash.com/photo-1574375927938-d5a98e8ffe85?w=400"},
	{"Spotify Premium 1 Month", "30 days ad-free music", 2000, "Subscriptions", []string{"music", "streaming"}, "https://images.unsplash.com/photo-1614680376593-902f74cf0d41?w=400"},
	{"$25 Visa Gift Card", "Use anywhere Visa is accepted", 6250, "Gift Cards", []string{"visa"}, "https://images.unsplash.com/photo-1563013544-824ae1b704d3?w=400"},
	{"Xbox Game Pass 1 Month", "Access 100+ games", 2500, "Gaming", []string{"gaming", "subscription"}, "https://images.unsplash.com/photo-1622297845775-5ff3fef71d13?w=400"},
}

// Seed inserts the starter task and shop catalogs when the tables are empty.
func (r *Repository) Seed(ctx context.Context) error {
	return r.Transaction(ctx, func(tx *sqlx.Tx) error {
		taskCount, err := r.countWithTx(ctx, tx, "tasks")
		if err != nil {
			return err
		}

		if taskCount == 0 {
			builder := squirrel.
				Insert("tasks").
				Columns("title", "description", "type", "reward_amount", "requires_verification", "is_active")

			for _, t := range seedTasks {
				builder = builder.Values(t.title, t.description, t.taskType, t.reward, t.requiresVerification, true)
			}

			query, args, err := builder.PlaceholderFormat(squirrel.Dollar).ToSql()
			if err != nil {
				return fmt.Errorf("failed to build tasks seed query: %w", err)
			}

			_, err = tx.ExecContext(ctx, query, args...)
			if err != nil {
				return fmt.Errorf("failed to seed tasks: %w", err)
			}
		}

		itemCount, err := r.countWithTx(ctx, tx, "shop_items")
		if err != nil {
			return err
		}

		if itemCount == 0 {
			builder := squirrel.
				Insert("shop_items").
				Columns("title", "description", "price", "category", "tags", "image_url", "stock_quantity", "is_active")

			for _, item := range seedShopItems {
				builder = builder.Values(item.title, item.description, item.price, item.category,
					pq.StringArray(item.tags), item.imageURL, -1, true)
			}

			query, args, err := builder.PlaceholderFormat(squirrel.Dollar).ToSql()
			if err != nil {
				return fmt.Errorf("failed to build shop items seed query: %w", err)
			}

			_, err = tx.ExecContext(ctx, query, args...)
			if err != nil {
				return fmt.Errorf("failed to seed shop items: %w", err)
			}
		}

		return nil
	})
}

func (r *Repository) countWithTx(ctx context.Context, tx *sqlx.Tx, table string) (int, error) {
	query, args, err := squirrel.
		Select("COUNT(*)").
		From(table).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, err
	}

	var count int
	err = tx.GetContext(ctx, &count, query, args...)
	if err != nil {
		return 0, err
	}

	return count, nil
}
