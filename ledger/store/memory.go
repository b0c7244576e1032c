// Package store provides Store implementations.
package store

import (
	"context"
	"sort"
	"sync"

	"github.com/beaverschoice/paperledger/ledger"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

type Memory struct {
	mu           sync.RWMutex
	transactions []ledger.Transaction
	nextID       ledger.TransactionID
}

func NewMemory() *Memory {
	return &Memory{nextID: 1}
}

// Append adds a single transaction. Append-only.
func (m *Memory) Append(_ context.Context, tx ledger.Transaction) (ledger.TransactionID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.appendLocked(tx), nil
}

// AppendBatch adds multiple transactions atomically.
func (m *Memory) AppendBatch(_ context.Context, txs []ledger.Transaction) ([]ledger.TransactionID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	ids := make([]ledger.TransactionID, len(txs))
	for i, tx := range txs {
		ids[i] = m.appendLocked(tx)
	}
	return ids, nil
}

func (m *Memory) appendLocked(tx ledger.Transaction) ledger.TransactionID {
	tx.ID = m.nextID
	m.nextID++

	// Keep the slice ordered by (OccurredAt, ID) so loads are a filter,
	// not a sort. Ids increase with append order, so inserting after all
	// entries on or before the same date preserves the ordering.
	i := sort.Search(len(m.transactions), func(i int) bool {
		return m.transactions[i].OccurredAt.After(tx.OccurredAt)
	})

	m.transactions = append(m.transactions, ledger.Transaction{})
	copy(m.transactions[i+1:], m.transactions[i:])
	m.transactions[i] = tx
	return tx.ID
}

func (m *Memory) LoadThrough(_ context.Context, asOf ledger.Date) ([]ledger.Transaction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var result []ledger.Transaction
	for _, tx := range m.transactions {
		if tx.OccurredAt.BeforeOrEqual(asOf) {
			result = append(result, tx)
		}
	}
	return result, nil
}

func (m *Memory) LoadItemThrough(_ context.Context, itemName string, asOf ledger.Date) ([]ledger.Transaction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var result []ledger.Transaction
	for _, tx := range m.transactions {
		if tx.ItemName == itemName && tx.OccurredAt.BeforeOrEqual(asOf) {
			result = append(result, tx)
		}
	}
	return result, nil
}

func (m *Memory) Count(_ context.Context) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return int64(len(m.transactions)), nil
}
