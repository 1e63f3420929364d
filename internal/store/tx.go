package store

import (
	"context"
	"sync"

	"gorm.io/gorm"

	"ecommerce-service/internal/apperr"
)

type txState int

const (
	txActive txState = iota
	txCommitted
	txRolledBack
)

// Tx is a single-use unit of work. The embedded Store exposes the same
// entity stores bound to the open transaction; writes staged through
// them are visible only inside it until Commit. A Tx must not be shared
// across goroutines.
type Tx struct {
	*Store

	db    *gorm.DB
	mu    sync.Mutex
	state txState
}

// Begin opens a transaction against the storage backend.
func (s *Store) Begin(ctx context.Context) (*Tx, error) {
	gtx := s.db.WithContext(ctx).Begin()
	if gtx.Error != nil {
		return nil, translate(gtx.Error)
	}
	t := &Tx{db: gtx, state: txActive}
	t.Store = newStore(gtx, t)
	return t, nil
}

func (t *Tx) handle(ctx context.Context) (*gorm.DB, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state != txActive {
		return nil, apperr.ErrTransactionDone
	}
	return t.db.WithContext(ctx), nil
}

// finishWrite rolls the transaction back as soon as any staged write
// fails, then propagates the originating error. A failure mid
// transaction must never leave it dangling Active.
func (t *Tx) finishWrite(err error) error {
	if err == nil {
		return nil
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state == txActive {
		t.db.Rollback()
		t.state = txRolledBack
	}
	return err
}

// Commit durably applies the staged writes. On failure the transaction
// is rolled back and the originating error propagated.
func (t *Tx) Commit() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state != txActive {
		return apperr.ErrTransactionDone
	}
	if err := t.db.Commit().Error; err != nil {
		t.db.Rollback()
		t.state = txRolledBack
		return translate(err)
	}
	t.state = txCommitted
	return nil
}

// Rollback discards the staged writes.
func (t *Tx) Rollback() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state != txActive {
		return apperr.ErrTransactionDone
	}
	if err := t.db.Rollback().Error; err != nil {
		t.state = txRolledBack
		return translate(err)
	}
	t.state = txRolledBack
	return nil
}

// WithinTx runs fn inside a transaction with guaranteed cleanup:
// rollback on error and on panic, commit otherwise. fn must not call
// Commit or Rollback itself.
func (s *Store) WithinTx(ctx context.Context, fn func(tx *Tx) error) error {
	tx, err := s.Begin(ctx)
	if err != nil {
		return err
	}

	defer func() {
		if r := recover(); r != nil {
			_ = tx.Rollback()
			panic(r)
		}
	}()

	if err := fn(tx); err != nil {
		// A failed staged write has already rolled back; Rollback then
		// reports ErrTransactionDone, which is fine to ignore here.
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}
