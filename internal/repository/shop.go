package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"gigspace/internal/model"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type ShopItem struct {
	ID            int64          `db:"id"`
	Title         string         `db:"title"`
	Description   string         `db:"description"`
	Price         int            `db:"price"`
	Category      string         `db:"category"`
	Tags          pq.StringArray `db:"tags"`
	ImageURL      string         `db:"image_url"`
	StockQuantity int            `db:"stock_quantity"`
	IsActive      bool           `db:"is_active"`
	CreatedAt     time.Time      `db:"created_at"`
}

func (s *ShopItem) toModel() *model.ShopItem {
	return &model.ShopItem{
		ID:            s.ID,
		Title:         s.Title,
		Description:   s.Description,
		Price:         s.Price,
		Category:      s.Category,
		Tags:          s.Tags,
		ImageURL:      s.ImageURL,
		StockQuantity: s.StockQuantity,
		IsActive:      s.IsActive,
		CreatedAt:     s.CreatedAt,
	}
}

func (r *Repository) GetActiveShopItems(ctx context.Context) ([]*model.ShopItem, error) {
	var items []ShopItem

	query, args, err := squirrel.
		Select("*").
		From("shop_items").
		Where(squirrel.Eq{"is_active": true}).
		OrderBy("id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	err = r.db.SelectContext(ctx, &items, query, args...)
	if err != nil {
		return nil, err
	}

	itemList := make([]*model.ShopItem, len(items))
	for i := range items {
		itemList[i] = items[i].toModel()
	}

	return itemList, nil
}

func (r *Repository) GetShopItemByID(ctx context.Context, itemID int64) (*model.ShopItem, error) {
	var item ShopItem

	query, args, err := squirrel.
		Select("*").
		From("shop_items").
		Where(squirrel.Eq{"id": itemID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	err = r.db.GetContext(ctx, &item, query, args...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return item.toModel(), nil
}

// PurchaseItem debits the buyer, records the purchase and the ledger row in
// one transaction. The buyer row is locked first so concurrent purchases
// cannot overspend the same balance.
func (r *Repository) PurchaseItem(ctx context.Context, userID int64, item *model.ShopItem, quantity int) (int, error) {
	totalPrice := item.Price * quantity

	var newBalance int
	err := r.Transaction(ctx, func(tx *sqlx.Tx) error {
		user, err := r.getUserWithTx(ctx, tx, userID)
		if err != nil {
			return err
		}

		if user.Balance < totalPrice {
			return ErrInsufficientBalance
		}

		insertQuery, insertArgs, err := squirrel.
			Insert("purchases").
			SetMap(map[string]interface{}{
				"user_id":     userID,
				"item_id":     item.ID,
				"quantity":    quantity,
				"total_price": totalPrice,
				"status":      "completed",
				"created_at":  time.Now().UTC(),
			}).
			PlaceholderFormat(squirrel.Dollar).
			ToSql()
		if err != nil {
			return err
		}

		_, err = tx.ExecContext(ctx, insertQuery, insertArgs...)
		if err != nil {
			return fmt.Errorf("failed to record purchase: %w", err)
		}

		newBalance, err = r.creditWithTx(ctx, tx, userID, -totalPrice, model.TransactionSpend,
			fmt.Sprintf("Purchased: %s", item.Title))
		return err
	})
	if err != nil {
		return 0, err
	}

	return newBalance, nil
}
