package suggest

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"destpick/internal/domain"
)

func cities(names ...string) []domain.Destination {
	out := make([]domain.Destination, len(names))
	for i, n := range names {
		out[i] = domain.Destination{ID: fmt.Sprint(i + 1), Name: n, Slug: slugOf(n)}
	}
	return out
}

// slugOf is good enough for fixtures; real slugs come from the catalog.
func slugOf(name string) string {
	b := []rune{}
	for _, r := range name {
		switch {
		case r >= 'A' && r <= 'Z':
			b = append(b, r+'a'-'A')
		case r == ' ':
			b = append(b, '-')
		default:
			b = append(b, r)
		}
	}
	return string(b)
}

func TestFilterSubstringIgnoringCase(t *testing.T) {
	catalog := cities("Paris", "Rome", "Madrid")

	got := Filter("ar", catalog)
	require.Len(t, got, 1)
	assert.Equal(t, "Paris", got[0].Name)

	got = Filter("PAR", catalog)
	require.Len(t, got, 1)
	assert.Equal(t, "Paris", got[0].Name)

	assert.Equal(t, []string{"Rome", "Madrid"}, names(Filter("m", catalog)))
}

func TestFilterBlankQueryMatchesNothing(t *testing.T) {
	catalog := cities("Paris", "Rome")

	assert.Empty(t, Filter("", catalog))
	assert.Empty(t, Filter("   ", catalog))
	assert.Empty(t, Filter("\t", catalog))
}

func TestFilterMatchesUntrimmedQuery(t *testing.T) {
	catalog := cities("New York", "Newcastle")

	assert.Equal(t, []string{"New York"}, names(Filter("new ", catalog)))
	assert.Equal(t, []string{"New York", "Newcastle"}, names(Filter("new", catalog)))
}

func TestFilterCapsAtMaxSuggestions(t *testing.T) {
	var all []string
	for i := 0; i < 20; i++ {
		all = append(all, fmt.Sprintf("Port %02d", i))
	}
	catalog := cities(all...)

	got := Filter("port", catalog)
	require.Len(t, got, MaxSuggestions)
	assert.Equal(t, "Port 00", got[0].Name)
	assert.Equal(t, "Port 07", got[MaxSuggestions-1].Name)
}

func TestFilterIsPureAndKeepsCatalogOrder(t *testing.T) {
	catalog := cities("Lisbon", "Lima", "Lyon", "Oslo")
	snapshot := append([]domain.Destination(nil), catalog...)

	first := Filter("l", catalog)
	second := Filter("l", catalog)

	assert.Equal(t, first, second)
	assert.Equal(t, snapshot, catalog, "catalog must not be modified")
	assert.Equal(t, []string{"Lisbon", "Lima", "Lyon", "Oslo"}, names(first))
}

func TestFilterEmptyCatalog(t *testing.T) {
	assert.Empty(t, Filter("paris", nil))
}

func names(ds []domain.Destination) []string {
	out := make([]string, len(ds))
	for i, d := range ds {
		out[i] = d.Name
	}
	return out
}
