package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rokfinancial/broker-portal/internal/logger"
)

func TestTransaction_AllOperationsSucceed(t *testing.T) {
	var calls []string
	txn := NewTransaction(logger.NewTestLogger(t))
	txn.AddOperation("one", func(context.Context) error { calls = append(calls, "one"); return nil })
	txn.AddCompensation("undo-one", func(context.Context) error { calls = append(calls, "undo-one"); return nil })
	txn.AddOperation("two", func(context.Context) error { calls = append(calls, "two"); return nil })

	require.NoError(t, txn.Execute(context.Background()))
	assert.Equal(t, []string{"one", "two"}, calls)
}

func TestTransaction_RollsBackCompletedOperationsInReverse(t *testing.T) {
	var calls []string
	boom := errors.New("boom")

	txn := NewTransaction(logger.NewTestLogger(t))
	txn.AddOperation("one", func(context.Context) error { calls = append(calls, "one"); return nil })
	txn.AddCompensation("undo-one", func(context.Context) error { calls = append(calls, "undo-one"); return nil })
	txn.AddOperation("two", func(context.Context) error { calls = append(calls, "two"); return nil })
	txn.AddCompensation("undo-two", func(context.Context) error { calls = append(calls, "undo-two"); return nil })
	txn.AddOperation("three", func(context.Context) error { return boom })

	err := txn.Execute(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "operation 'three' failed")
	assert.Equal(t, []string{"one", "two", "undo-two", "undo-one"}, calls)
}

func TestTransaction_CompensationFailureDoesNotStopRollback(t *testing.T) {
	var undone bool

	txn := NewTransaction(logger.NewTestLogger(t))
	txn.AddOperation("one", func(context.Context) error { return nil })
	txn.AddCompensation("undo-one", func(context.Context) error { undone = true; return nil })
	txn.AddOperation("two", func(context.Context) error { return nil })
	txn.AddCompensation("undo-two", func(context.Context) error { return errors.New("cannot undo") })
	txn.AddOperation("three", func(context.Context) error { return errors.New("fail") })

	require.Error(t, txn.Execute(context.Background()))
	assert.True(t, undone)
}
