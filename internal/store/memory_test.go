package store

import (
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajitpratap0/legacyloop/internal/models"
)

// decimalEqual lets cmp compare decimals by value rather than representation.
var decimalEqual = cmp.Comparer(func(a, b decimal.Decimal) bool { return a.Equal(b) })

// countingInvalidator records how often the store cleared dependent caches.
type countingInvalidator struct{ calls int }

func (c *countingInvalidator) InvalidateAll() { c.calls++ }

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func TestMemoryStore_Scenario(t *testing.T) {
	s := NewMemoryStore(nil)

	a1, err := s.Add("Test Co", dec(1000), models.AssetTypeEquities, "", "")
	require.NoError(t, err)
	assert.Equal(t, 1, a1.ID)

	a2, err := s.Add("Test Co 2", dec(2000), models.AssetTypeBonds, "", "")
	require.NoError(t, err)
	assert.Equal(t, 2, a2.ID)

	_, err = s.Delete(1)
	require.NoError(t, err)

	a3, err := s.Add("Test Co 3", dec(500), models.AssetTypeBonds, "", "")
	require.NoError(t, err)
	assert.Equal(t, 3, a3.ID)

	assert.True(t, dec(2500).Equal(s.TotalValue()), "total = %s", s.TotalValue())
	assert.Equal(t, 1, s.DistinctTypeCount())
}

func TestMemoryStore_IDsStrictlyIncreasing(t *testing.T) {
	s := NewMemoryStore(nil)
	last := 0
	for i := 0; i < 50; i++ {
		a, err := s.Add("asset", dec(int64(i)), models.AssetTypeCash, "", "")
		require.NoError(t, err)
		assert.Greater(t, a.ID, last)
		last = a.ID
	}
}

func TestMemoryStore_DeletedMaxIDNotReused(t *testing.T) {
	s := NewMemoryStore(nil)
	_, err := s.Add("A", dec(1), models.AssetTypeCash, "", "")
	require.NoError(t, err)
	b, err := s.Add("B", dec(1), models.AssetTypeCash, "", "")
	require.NoError(t, err)

	_, err = s.Delete(b.ID)
	require.NoError(t, err)

	c, err := s.Add("C", dec(1), models.AssetTypeCash, "", "")
	require.NoError(t, err)
	assert.Equal(t, 3, c.ID, "id %d was deleted and must not be reassigned", b.ID)
}

func TestMemoryStore_SeededIDsContinue(t *testing.T) {
	seed := []models.Asset{
		{ID: 3, Name: "X", Value: dec(1), Type: models.AssetTypeBonds},
		{ID: 7, Name: "Y", Value: dec(2), Type: models.AssetTypeBonds},
	}
	s := NewMemoryStore(nil, seed...)
	a, err := s.Add("Z", dec(3), models.AssetTypeBonds, "", "")
	require.NoError(t, err)
	assert.Equal(t, 8, a.ID)

	seed[0].Name = "changed"
	got, err := s.Get(3)
	require.NoError(t, err)
	assert.Equal(t, "X", got.Name, "store must copy its seed")
}

func TestMemoryStore_AddValidation(t *testing.T) {
	inv := &countingInvalidator{}
	s := NewMemoryStore(inv)

	tests := []struct {
		name  string
		asset string
		value decimal.Decimal
		typ   models.AssetType
	}{
		{"empty name", "", dec(1), models.AssetTypeBonds},
		{"blank name", "   ", dec(1), models.AssetTypeBonds},
		{"negative value", "A", dec(-1), models.AssetTypeBonds},
		{"unknown type", "A", dec(1), models.AssetType("Tulips")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Add(tt.asset, tt.value, tt.typ, "", "")
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrValidation), "got %v", err)
		})
	}
	assert.Equal(t, 0, s.Len())
	assert.Equal(t, 0, inv.calls, "rejected mutations must not invalidate")
	assert.Equal(t, uint64(0), s.Revision())

	a, err := s.Add("Zero", decimal.Zero, models.AssetTypeCash, "", "")
	require.NoError(t, err)
	assert.Equal(t, 1, a.ID, "zero value is allowed and failed adds consume no ids")
}

func TestMemoryStore_UpdatePartial(t *testing.T) {
	s := NewMemoryStore(nil)
	orig, err := s.Add("Apple Inc", dec(250000), models.AssetTypeEquities, "AAPL", "phones")
	require.NoError(t, err)

	v := dec(300000)
	updated, err := s.Update(orig.ID, models.AssetPatch{Value: &v})
	require.NoError(t, err)

	got, err := s.Get(orig.ID)
	require.NoError(t, err)
	assert.Equal(t, updated, got)
	assert.True(t, v.Equal(got.Value))
	assert.Equal(t, "Apple Inc", got.Name)
	assert.Equal(t, models.AssetTypeEquities, got.Type)
	assert.Equal(t, "AAPL", got.Symbol)
	assert.Equal(t, "phones", got.Description)
	assert.Equal(t, orig.ID, got.ID)
}

func TestMemoryStore_UpdateNotFound(t *testing.T) {
	inv := &countingInvalidator{}
	s := NewMemoryStore(inv)
	name := "X"
	_, err := s.Update(999, models.AssetPatch{Name: &name})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.Equal(t, 0, s.Len())
	assert.Equal(t, 0, inv.calls)
}

func TestMemoryStore_UpdateRejectedLeavesStateUnchanged(t *testing.T) {
	s := NewMemoryStore(nil)
	orig, err := s.Add("A", dec(10), models.AssetTypeBonds, "", "")
	require.NoError(t, err)
	rev := s.Revision()

	name := "renamed"
	neg := dec(-5)
	_, err = s.Update(orig.ID, models.AssetPatch{Name: &name, Value: &neg})
	require.ErrorIs(t, err, ErrValidation)

	got, err := s.Get(orig.ID)
	require.NoError(t, err)
	assert.Equal(t, "A", got.Name, "no partial update on rejection")
	assert.Equal(t, rev, s.Revision())
}

func TestMemoryStore_DeletePreservesOrder(t *testing.T) {
	s := NewMemoryStore(nil)
	for _, n := range []string{"a", "b", "c", "d"} {
		_, err := s.Add(n, dec(1), models.AssetTypeCash, "", "")
		require.NoError(t, err)
	}
	removed, err := s.Delete(2)
	require.NoError(t, err)
	assert.Equal(t, "b", removed.Name)

	var names []string
	for _, a := range s.List() {
		names = append(names, a.Name)
	}
	if diff := cmp.Diff([]string{"a", "c", "d"}, names); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}

	_, err = s.Delete(2)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_ListReturnsCopy(t *testing.T) {
	s := NewMemoryStore(nil)
	_, err := s.Add("A", dec(1), models.AssetTypeCash, "", "")
	require.NoError(t, err)

	list := s.List()
	list[0].Name = "mutated"
	got, err := s.Get(1)
	require.NoError(t, err)
	assert.Equal(t, "A", got.Name)
}

func TestMemoryStore_GetByNameFirstMatch(t *testing.T) {
	s := NewMemoryStore(nil)
	first, err := s.Add("Dup", dec(1), models.AssetTypeCash, "", "")
	require.NoError(t, err)
	_, err = s.Add("Dup", dec(2), models.AssetTypeBonds, "", "")
	require.NoError(t, err)

	got, err := s.GetByName("Dup")
	require.NoError(t, err)
	assert.Equal(t, first.ID, got.ID)

	_, err = s.GetByName("missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_EveryMutationInvalidates(t *testing.T) {
	inv := &countingInvalidator{}
	s := NewMemoryStore(inv)

	a, err := s.Add("A", dec(1), models.AssetTypeCash, "", "")
	require.NoError(t, err)
	assert.Equal(t, 1, inv.calls)

	sym := "AAA"
	_, err = s.Update(a.ID, models.AssetPatch{Symbol: &sym})
	require.NoError(t, err)
	assert.Equal(t, 2, inv.calls)

	_, err = s.Delete(a.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, inv.calls)
	assert.Equal(t, uint64(3), s.Revision())
}

func TestMemoryStore_TotalValueNoDrift(t *testing.T) {
	s := NewMemoryStore(nil)
	r := rand.New(rand.NewPCG(1, 2))
	running := decimal.Zero

	for i := 0; i < 200; i++ {
		switch op := r.IntN(3); {
		case op == 0 || s.Len() == 0:
			v := decimal.New(r.Int64N(1_000_000), -2)
			_, err := s.Add("a", v, models.AssetTypeCash, "", "")
			require.NoError(t, err)
			running = running.Add(v)
		case op == 1:
			list := s.List()
			target := list[r.IntN(len(list))]
			v := decimal.New(r.Int64N(1_000_000), -2)
			_, err := s.Update(target.ID, models.AssetPatch{Value: &v})
			require.NoError(t, err)
			running = running.Sub(target.Value).Add(v)
		default:
			list := s.List()
			target := list[r.IntN(len(list))]
			_, err := s.Delete(target.ID)
			require.NoError(t, err)
			running = running.Sub(target.Value)
		}

		fromScratch := decimal.Zero
		for _, a := range s.List() {
			fromScratch = fromScratch.Add(a.Value)
		}
		require.True(t, fromScratch.Equal(s.TotalValue()))
		require.True(t, running.Equal(s.TotalValue()))
	}
}

func TestMemoryStore_Summary(t *testing.T) {
	seed := []models.Asset{
		{ID: 1, Name: "A", Value: dec(100), Type: models.AssetTypeEquities},
		{ID: 2, Name: "B", Value: dec(50), Type: models.AssetTypeEquities},
		{ID: 3, Name: "C", Value: dec(25), Type: models.AssetTypeBonds},
	}
	s := NewMemoryStore(nil, seed...)
	want := models.PortfolioSummary{TotalValue: dec(175), AssetClasses: 2, Holdings: 3}
	if diff := cmp.Diff(want, s.Summary(), decimalEqual); diff != "" {
		t.Errorf("summary mismatch (-want +got):\n%s", diff)
	}

	empty := NewMemoryStore(nil)
	assert.True(t, empty.TotalValue().IsZero())
	assert.Equal(t, 0, empty.DistinctTypeCount())
}
