package menu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLookup(t *testing.T) *Lookup {
	t.Helper()
	return NewLookup(DefaultSnapshot())
}

func TestLookupOneExactMatch(t *testing.T) {
	lk := newTestLookup(t)

	it := lk.LookupOne("latte")
	require.NotNil(t, it)
	assert.Equal(t, "Latte", it.Name)

	it = lk.LookupOne("The Latte")
	require.NotNil(t, it)
	assert.Equal(t, "Latte", it.Name)
}

func TestLookupOnePluralVariant(t *testing.T) {
	lk := newTestLookup(t)

	it := lk.LookupOne("bagels")
	require.NotNil(t, it)
	assert.Equal(t, "Bagel", it.Name)
}

func TestLookupOneRefusesAmbiguousQuery(t *testing.T) {
	lk := newTestLookup(t)

	// Several menu items contain "orange juice"; without a distinguishing
	// word there is no single right answer.
	assert.Nil(t, lk.LookupOne("orange juice"))

	it := lk.LookupOne("orange juice small")
	require.NotNil(t, it)
	assert.Equal(t, "Orange Juice Small", it.Name)
}

func TestLookupOneCompactedSpelling(t *testing.T) {
	lk := newTestLookup(t)

	it := lk.LookupOne("coldbrew")
	require.NotNil(t, it)
	assert.Equal(t, "Cold Brew", it.Name)
}

func TestLookupAllOrangeJuice(t *testing.T) {
	lk := newTestLookup(t)

	matches := lk.LookupAll("orange juice")
	require.Len(t, matches, 3)

	// Shortest names first, ties alphabetical.
	assert.Equal(t, "Orange Juice Large", matches[0].Name)
	assert.Equal(t, "Orange Juice Small", matches[1].Name)
	assert.Equal(t, "Fresh Squeezed Orange Juice", matches[2].Name)
}

func TestLookupAllSynonym(t *testing.T) {
	lk := newTestLookup(t)

	matches := lk.LookupAll("oj")
	require.Len(t, matches, 3)
	for _, m := range matches {
		assert.Contains(t, m.Name, "Orange Juice")
	}
}

func TestLookupAllNoMatch(t *testing.T) {
	lk := newTestLookup(t)
	assert.Empty(t, lk.LookupAll("pizza"))
}

func TestExactDoesNotFallBackToContainment(t *testing.T) {
	lk := newTestLookup(t)

	// A phrase that merely contains a menu item name is not an exact match.
	assert.Nil(t, lk.Exact("everything bagel with cream cheese"))

	it := lk.Exact("bacon egg and cheese")
	require.NotNil(t, it)
	assert.Equal(t, "Bacon Egg and Cheese", it.Name)
}

func TestInferCategory(t *testing.T) {
	lk := newTestLookup(t)

	cat, ok := lk.InferCategory("something to drink")
	require.True(t, ok)
	assert.Equal(t, "coffee", cat)

	_, ok = lk.InferCategory("surprise me")
	assert.False(t, ok)
}

func TestSuggestLimitsResults(t *testing.T) {
	lk := newTestLookup(t)

	suggestion := lk.Suggest("coffee", 2)
	assert.NotEmpty(t, suggestion)
	assert.Contains(t, suggestion, " or ")
}
