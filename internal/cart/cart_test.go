package cart

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitrinelabs/vitrine/internal/domain"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func product(id, price string) domain.Product {
	return domain.Product{
		ID:    id,
		Name:  "Product " + id,
		Price: dec(price),
	}
}

func TestAddCreatesLineWithSnapshotPrice(t *testing.T) {
	c := New()
	p := product("a", "50")

	c.Add(p, "")

	line, ok := c.Line("a", "")
	require.True(t, ok)
	assert.Equal(t, 1, line.Quantity)
	assert.True(t, line.UnitPrice.Equal(dec("50")))
	assert.Equal(t, "Product a", line.Name)
}

func TestAddTwiceIncrementsSingleLine(t *testing.T) {
	c := New()
	p := product("a", "50")

	c.Add(p, "")
	c.Add(p, "")

	require.Len(t, c.Lines(), 1)
	assert.Equal(t, 2, c.TotalItems())
	assert.True(t, c.TotalPrice().Equal(dec("100")))
}

func TestAddDistinctVariantsCreatesDistinctLines(t *testing.T) {
	c := New()
	p := product("a", "199.90")

	c.Add(p, "38")
	c.Add(p, "39")

	require.Len(t, c.Lines(), 2)
	assert.Equal(t, 2, c.TotalItems())
	assert.True(t, c.Contains("a", "38"))
	assert.True(t, c.Contains("a", "39"))
	assert.False(t, c.Contains("a", "40"))
}

func TestAddClampsAtMaxQuantity(t *testing.T) {
	c := New()
	p := product("a", "10")

	c.Add(p, "")
	c.UpdateQuantity("a", "", domain.MaxLineQuantity)

	// Incrementing a full line is a no-op on the quantity, not an error.
	c.Add(p, "")

	line, _ := c.Line("a", "")
	assert.Equal(t, domain.MaxLineQuantity, line.Quantity)
}

func TestUpdateQuantityClamps(t *testing.T) {
	tests := []struct {
		name  string
		input int
		want  int
	}{
		{name: "above max clamps to 99", input: 150, want: 99},
		{name: "negative clamps to 1", input: -5, want: 1},
		{name: "zero clamps to 1, line survives", input: 0, want: 1},
		{name: "in range is stored as-is", input: 42, want: 42},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New()
			c.Add(product("a", "10"), "")

			c.UpdateQuantity("a", "", tt.input)

			line, ok := c.Line("a", "")
			require.True(t, ok, "line must never be removed by UpdateQuantity")
			assert.Equal(t, tt.want, line.Quantity)
		})
	}
}

func TestUpdateQuantityMissingLineIsNoop(t *testing.T) {
	c := New()
	c.Add(product("a", "10"), "")

	c.UpdateQuantity("ghost", "", 5)
	c.UpdateQuantity("a", "wrong-variant", 5)

	assert.Equal(t, 1, c.TotalItems())
}

func TestRemoveRestoresPreAddState(t *testing.T) {
	c := New()
	c.Add(product("a", "50"), "")

	itemsBefore := c.TotalItems()
	linesBefore := c.Lines()

	c.Add(product("b", "75"), "")
	c.Remove("b", "")

	assert.Equal(t, itemsBefore, c.TotalItems())
	assert.Equal(t, linesBefore, c.Lines())
}

func TestRemoveMissingLineIsNoop(t *testing.T) {
	c := New()
	c.Add(product("a", "50"), "")

	c.Remove("ghost", "")
	c.Remove("a", "38")

	assert.Equal(t, 1, c.TotalItems())
}

func TestClearEmptiesEverything(t *testing.T) {
	c := New()
	c.Add(product("a", "50"), "")
	c.Add(product("b", "75"), "38")

	c.Clear()

	assert.Zero(t, c.TotalItems())
	assert.Empty(t, c.Lines())
	assert.True(t, c.TotalPrice().IsZero())
}

func TestLinesPreserveInsertionOrder(t *testing.T) {
	c := New()
	c.Add(product("b", "10"), "")
	c.Add(product("a", "20"), "")
	c.Add(product("c", "30"), "")
	c.Remove("a", "")
	c.Add(product("a", "20"), "")

	lines := c.Lines()
	require.Len(t, lines, 3)
	assert.Equal(t, "b", lines[0].ProductID)
	assert.Equal(t, "c", lines[1].ProductID)
	assert.Equal(t, "a", lines[2].ProductID)
}

func TestSnapshotPriceIgnoresLaterCatalogChanges(t *testing.T) {
	c := New()
	p := product("a", "100")
	c.Add(p, "")

	// A later add with a changed catalog price only increments the
	// existing line; the original snapshot stays authoritative.
	p.Price = dec("500")
	c.Add(p, "")

	line, _ := c.Line("a", "")
	assert.Equal(t, 2, line.Quantity)
	assert.True(t, line.UnitPrice.Equal(dec("100")))
	assert.True(t, c.TotalPrice().Equal(dec("200")))
}

func TestTotalsConsistency(t *testing.T) {
	c := New()
	c.Add(product("a", "19.90"), "")
	c.Add(product("a", "19.90"), "")
	c.Add(product("b", "120"), "40")
	c.UpdateQuantity("b", "40", 3)
	c.Add(product("c", "5.55"), "")
	c.Remove("c", "")

	// Totals must equal the recomputation from the enumerated lines.
	wantItems := 0
	wantPrice := decimal.Zero
	for _, line := range c.Lines() {
		wantItems += line.Quantity
		wantPrice = wantPrice.Add(line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}

	assert.Equal(t, wantItems, c.TotalItems())
	assert.True(t, c.TotalPrice().Equal(wantPrice))
}

func TestSubscribeFiresOnEveryMutation(t *testing.T) {
	c := New()
	var fired int
	c.Subscribe(func() { fired++ })

	c.Add(product("a", "10"), "")
	c.Add(product("a", "10"), "")
	c.UpdateQuantity("a", "", 5)
	// No-op mutations on missing lines must not notify.
	c.UpdateQuantity("ghost", "", 5)
	c.Remove("ghost", "")
	c.Remove("a", "")
	c.Clear()

	assert.Equal(t, 5, fired)
}

func TestRestore(t *testing.T) {
	lines := []domain.CartLine{
		{ProductID: "a", Quantity: 2, UnitPrice: dec("10")},
		{ProductID: "b", Variant: "38", Quantity: 150, UnitPrice: dec("20")},
		{ProductID: "a", Quantity: 1, UnitPrice: dec("10")},
	}

	c := Restore(lines)

	restored := c.Lines()
	require.Len(t, restored, 2)
	assert.Equal(t, "a", restored[0].ProductID)
	assert.Equal(t, 3, restored[0].Quantity)
	assert.Equal(t, 99, restored[1].Quantity, "persisted quantities are re-clamped")
}
