package memory

import (
	"slices"
	"sync"

	"github.com/sheikh-saqib/payments-ledger-engine/internal/ledger"
	"github.com/sheikh-saqib/payments-ledger-engine/internal/models"
)

// MemoryAccountStore is an in-memory implementation of ledger.AccountStore.
// It is safe for concurrent use; the accounts it hands out are not, callers
// serialise access per client.
type MemoryAccountStore struct {
	mu       sync.Mutex
	accounts map[models.ClientID]*ledger.Account
	clients  []models.ClientID // sorted ascending
}

func NewMemoryAccountStore() *MemoryAccountStore {
	return &MemoryAccountStore{
		accounts: make(map[models.ClientID]*ledger.Account),
	}
}

func (m *MemoryAccountStore) GetAccount(client models.ClientID) (*ledger.Account, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	acct, ok := m.accounts[client]
	return acct, ok
}

// SaveAccount stores account under its client id. Saving the same client
// again replaces the previous account.
func (m *MemoryAccountStore) SaveAccount(account *ledger.Account) {
	m.mu.Lock()
	defer m.mu.Unlock()

	client := account.Client()
	if _, exists := m.accounts[client]; !exists {
		i, _ := slices.BinarySearch(m.clients, client)
		m.clients = slices.Insert(m.clients, i, client)
	}
	m.accounts[client] = account
}

// ClientIDs returns a copy of the known client ids in ascending order.
func (m *MemoryAccountStore) ClientIDs() []models.ClientID {
	m.mu.Lock()
	defer m.mu.Unlock()

	return slices.Clone(m.clients)
}

func (m *MemoryAccountStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.accounts)
}

// Compile-time check: ensure MemoryAccountStore implements AccountStore
var _ ledger.AccountStore = (*MemoryAccountStore)(nil)
