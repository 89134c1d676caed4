package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActionTypes(t *testing.T) {
	tests := []struct {
		action Action
		typ    string
		key    string
	}{
		{AddProduct{Key: redCase}, TypeAdd, redCase},
		{UpdateProduct{Key: redCase}, TypeUpdate, redCase},
		{RemoveProduct{Key: redCase}, TypeRemove, redCase},
		{EmptyCart{}, TypeEmpty, ""},
		{ChangeCurrency{Currency: "EUR"}, TypeSetCurrency, ""},
	}
	for _, tt := range tests {
		t.Run(tt.typ, func(t *testing.T) {
			assert.Equal(t, tt.typ, tt.action.Type())
			assert.Equal(t, tt.key, tt.action.TargetKey())
		})
	}
}

func TestReduce_Sequence(t *testing.T) {
	actions := []Action{
		AddProduct{Key: redCase, Entry: caseEntry(1), Currency: "USD"},
		AddProduct{Key: redCase, Entry: caseEntry(9)},
		UpdateProduct{Key: "b/", Entry: Entry{ID: "b", Quantity: 2}},
		RemoveProduct{Key: "b/"},
		ChangeCurrency{Currency: "EUR"},
		ChangeCurrency{Currency: "USD"},
	}

	var s *State
	for _, a := range actions {
		var err error
		s, err = Reduce(s, a)
		require.NoError(t, err, a.Type())
	}

	e, ok := s.Entry(redCase)
	require.True(t, ok)
	assert.Equal(t, int64(10), e.Quantity)
	assert.Equal(t, "700", Total(s).String())

	s, err := Reduce(s, EmptyCart{})
	require.NoError(t, err)
	assert.True(t, IsEmpty(s))
	assert.Equal(t, "USD", s.Currency())
}

func TestReduce_PropagatesErrors(t *testing.T) {
	s0 := New()
	s, err := Reduce(s0, AddProduct{Key: redCase, Entry: caseEntry(0)})
	assert.True(t, IsInvalidQuantity(err))
	assert.Same(t, s0, s)
}

func TestReduce_NilAction(t *testing.T) {
	_, err := Reduce(New(), nil)
	assert.Equal(t, CodeUnknownAction, CodeOf(err))
}
