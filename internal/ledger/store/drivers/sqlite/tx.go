package sqlite

import (
	"database/sql"

	"github.com/kumbara-app/kumbara/internal/ledger/store"
)

type sqliteTx struct {
	tx *sql.Tx
}

func newTx(tx *sql.Tx) store.Tx {
	return &sqliteTx{tx: tx}
}

func (t *sqliteTx) Users() store.Users               { return &usersRepo{q: t.tx} }
func (t *sqliteTx) Accounts() store.Accounts         { return &accountsRepo{q: t.tx} }
func (t *sqliteTx) Transactions() store.Transactions { return &transactionsRepo{q: t.tx} }
func (t *sqliteTx) Cards() store.Cards               { return &cardsRepo{q: t.tx} }

func (t *sqliteTx) Commit() error   { return t.tx.Commit() }
func (t *sqliteTx) Rollback() error { return t.tx.Rollback() }
