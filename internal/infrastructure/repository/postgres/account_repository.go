package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/pickem-league/internal/domain/account"
	"github.com/riskibarqy/pickem-league/internal/platform/id"
	qb "github.com/riskibarqy/pickem-league/internal/platform/querybuilder"
)

type AccountRepository struct {
	db    *sqlx.DB
	idGen id.Generator
}

func NewAccountRepository(db *sqlx.DB, idGen id.Generator) *AccountRepository {
	return &AccountRepository{db: db, idGen: idGen}
}

func (r *AccountRepository) GetByUsername(ctx context.Context, username string) (account.Account, bool, error) {
	query, args, err := qb.Select("*").From("accounts").
		Where(qb.Expr("LOWER(username) = LOWER(?)", username)).
		Limit(1).
		ToSQL()
	if err != nil {
		return account.Account{}, false, fmt.Errorf("build select account query: %w", err)
	}

	var row accountTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return account.Account{}, false, nil
		}
		return account.Account{}, false, fmt.Errorf("select account by username: %w", err)
	}

	return mapAccountRow(row), true, nil
}

// Upsert registers or refreshes an account keyed by username. A stored
// public id is never replaced once assigned.
func (r *AccountRepository) Upsert(ctx context.Context, item account.Account) (account.Account, error) {
	publicID := item.PublicID
	if publicID == "" {
		generated, err := r.idGen.NewID()
		if err != nil {
			return account.Account{}, fmt.Errorf("generate account public id: %w", err)
		}
		publicID = generated
	}

	insertModel := accountInsertModel{
		PublicID:  publicID,
		Username:  item.Username,
		Email:     item.Email,
		FirstName: item.FirstName,
		LastName:  item.LastName,
	}
	query, args, err := qb.InsertModel("accounts", insertModel, `ON CONFLICT (username)
DO UPDATE SET
    email = EXCLUDED.email,
    first_name = EXCLUDED.first_name,
    last_name = EXCLUDED.last_name,
    updated_at = NOW()
RETURNING id, public_id`)
	if err != nil {
		return account.Account{}, fmt.Errorf("build upsert account query: %w", err)
	}

	if err := r.db.QueryRowxContext(ctx, query, args...).Scan(&item.ID, &item.PublicID); err != nil {
		return account.Account{}, fmt.Errorf("upsert account: %w", err)
	}

	return item, nil
}

func mapAccountRow(row accountTableModel) account.Account {
	return account.Account{
		ID:        row.ID,
		PublicID:  row.PublicID,
		Username:  row.Username,
		Email:     row.Email,
		FirstName: row.FirstName,
		LastName:  row.LastName,
	}
}
