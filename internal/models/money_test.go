package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestCartSubtotal(t *testing.T) {
	lines := []*CartLine{
		{MedicineID: primitive.NewObjectID(), Price: MoneyFromInt(50), Quantity: 2},
		{MedicineID: primitive.NewObjectID(), Price: MoneyFromInt(120), Quantity: 1},
	}
	got := CartSubtotal(lines)
	assert.True(t, got.Equal(MoneyFromInt(220).Decimal), "want 220, got %s", got)

	assert.True(t, CartSubtotal(nil).IsZero())
}

func TestMoneyFromString(t *testing.T) {
	m, err := MoneyFromString("149.50")
	require.NoError(t, err)
	assert.Equal(t, int64(14950), m.MinorUnits())

	_, err = MoneyFromString("not money")
	assert.Error(t, err)
}

func TestMoneyArithmetic(t *testing.T) {
	a := MoneyFromInt(220)
	b := a.Sub(MoneyFromInt(22))
	assert.True(t, b.Equal(MoneyFromInt(198).Decimal))
	assert.True(t, a.PercentOf(10).Equal(MoneyFromInt(22).Decimal))
	assert.True(t, MoneyFromInt(50).MulInt(3).Equal(MoneyFromInt(150).Decimal))
	assert.True(t, MoneyFromInt(1).LessThan(MoneyFromInt(2)))
	assert.True(t, MoneyFromInt(2).GreaterThan(MoneyFromInt(1)))
}

func TestMoneyBSONRoundTrip(t *testing.T) {
	in, err := MoneyFromString("99.99")
	require.NoError(t, err)

	typ, data, err := in.MarshalBSONValue()
	require.NoError(t, err)

	var out Money
	require.NoError(t, out.UnmarshalBSONValue(typ, data))
	assert.True(t, out.Equal(in.Decimal), "want %s, got %s", in, out)
}
