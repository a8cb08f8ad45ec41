package db

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock
}

func TestRunInTx_Commits(t *testing.T) {
	mock := newMock(t)
	mock.ExpectBegin()
	mock.ExpectCommit()

	var inner pgx.Tx
	err := RunInTx(context.Background(), mock, func(ctx context.Context, tx pgx.Tx) error {
		inner = TxFromContext(ctx)
		return nil
	})
	require.NoError(t, err)
	assert.NotNil(t, inner)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunInTx_RollsBackOnError(t *testing.T) {
	mock := newMock(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	errFn := errors.New("constraint violated")
	err := RunInTx(context.Background(), mock, func(ctx context.Context, tx pgx.Tx) error {
		return errFn
	})
	assert.ErrorIs(t, err, errFn)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunInTx_BeginError(t *testing.T) {
	mock := newMock(t)
	mock.ExpectBegin().WillReturnError(errors.New("too many connections"))

	called := false
	err := RunInTx(context.Background(), mock, func(ctx context.Context, tx pgx.Tx) error {
		called = true
		return nil
	})
	assert.ErrorContains(t, err, "begin transaction")
	assert.False(t, called)
}

func TestRunInTx_JoinsOuterTransaction(t *testing.T) {
	mock := newMock(t)
	mock.ExpectBegin()

	outer, err := mock.Begin(context.Background())
	require.NoError(t, err)
	ctx := WithTx(context.Background(), outer)

	err = RunInTx(ctx, mock, func(ctx context.Context, tx pgx.Tx) error {
		assert.Equal(t, outer, tx)
		return nil
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTxFromContext_Empty(t *testing.T) {
	assert.Nil(t, TxFromContext(context.Background()))
}
