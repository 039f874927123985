package memory

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/riskibarqy/pickem-league/internal/domain/account"
)

type AccountRepository struct {
	mu       sync.RWMutex
	accounts []account.Account
	nextID   int64
}

func NewAccountRepository() *AccountRepository {
	return &AccountRepository{nextID: 1}
}

func (r *AccountRepository) GetByUsername(_ context.Context, username string) (account.Account, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, item := range r.accounts {
		if strings.EqualFold(item.Username, username) {
			return item, true, nil
		}
	}

	return account.Account{}, false, nil
}

func (r *AccountRepository) Upsert(_ context.Context, item account.Account) (account.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for idx := range r.accounts {
		if strings.EqualFold(r.accounts[idx].Username, item.Username) {
			item.ID = r.accounts[idx].ID
			if strings.TrimSpace(item.PublicID) == "" {
				item.PublicID = r.accounts[idx].PublicID
			}
			r.accounts[idx] = item
			return item, nil
		}
	}

	item.ID = r.nextID
	r.nextID++
	if strings.TrimSpace(item.PublicID) == "" {
		item.PublicID = fmt.Sprintf("acct-%d", item.ID)
	}
	r.accounts = append(r.accounts, item)

	return item, nil
}
