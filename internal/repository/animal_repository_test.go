package repository

import (
	"testing"

	"petmatch-be/internal/entities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func seedSearchFixture(t *testing.T, repo AnimalRepository) (luna, max *entities.Animal) {
	t.Helper()

	luna, err := repo.Create("Luna", strPtr("Siamese cat, gentle and affectionate"), nil, strPtr("Gato"), strPtr("Fêmea"), nil)
	require.NoError(t, err)
	max, err = repo.Create("Max", strPtr("Labrador, very playful"), nil, strPtr("Cachorro"), strPtr("Macho"), nil)
	require.NoError(t, err)
	return luna, max
}

func names(animals []*entities.Animal) []string {
	out := make([]string, len(animals))
	for i, a := range animals {
		out[i] = a.Name
	}
	return out
}

func TestSearchFreeTextMatchesNameCaseInsensitively(t *testing.T) {
	repo := NewAnimalRepository(newTestDB(t))
	seedSearchFixture(t, repo)

	results, err := repo.Search("lu", "", "")
	require.NoError(t, err)
	assert.Equal(t, []string{"Luna"}, names(results))
}

func TestSearchFreeTextMatchesDescription(t *testing.T) {
	repo := NewAnimalRepository(newTestDB(t))
	seedSearchFixture(t, repo)

	results, err := repo.Search("playful", "", "")
	require.NoError(t, err)
	assert.Equal(t, []string{"Max"}, names(results))
}

func TestSearchSpeciesExactCaseInsensitive(t *testing.T) {
	repo := NewAnimalRepository(newTestDB(t))
	seedSearchFixture(t, repo)

	results, err := repo.Search("", "gato", "")
	require.NoError(t, err)
	assert.Equal(t, []string{"Luna"}, names(results))
}

func TestSearchAllSentinelsAreIgnored(t *testing.T) {
	repo := NewAnimalRepository(newTestDB(t))
	seedSearchFixture(t, repo)

	for _, sentinel := range []string{"", "all", "todos", "All"} {
		results, err := repo.Search("", sentinel, sentinel)
		require.NoError(t, err)
		assert.Len(t, results, 2, "sentinel %q should not filter", sentinel)
	}
}

func TestSearchCombinesCriteriaWithAnd(t *testing.T) {
	repo := NewAnimalRepository(newTestDB(t))
	seedSearchFixture(t, repo)

	// "a" matches both names, sex narrows it to Max
	results, err := repo.Search("a", "", "macho")
	require.NoError(t, err)
	assert.Equal(t, []string{"Max"}, names(results))
}

func TestSearchOrdersByDescendingID(t *testing.T) {
	repo := NewAnimalRepository(newTestDB(t))
	first, err := repo.Create("First", nil, nil, nil, nil, nil)
	require.NoError(t, err)
	second, err := repo.Create("Second", nil, nil, nil, nil, nil)
	require.NoError(t, err)
	third, err := repo.Create("Third", nil, nil, nil, nil, nil)
	require.NoError(t, err)

	results, err := repo.Search("", "", "")
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, []int64{third.ID, second.ID, first.ID},
		[]int64{results[0].ID, results[1].ID, results[2].ID})
}

func TestSearchNoMatchesIsEmptyNotError(t *testing.T) {
	repo := NewAnimalRepository(newTestDB(t))
	seedSearchFixture(t, repo)

	results, err := repo.Search("zzz", "", "")
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestFindByIDUnknown(t *testing.T) {
	repo := NewAnimalRepository(newTestDB(t))

	_, err := repo.FindByID(12345)
	assert.ErrorIs(t, err, ErrAnimalNotFound)
}

func TestCreateKeepsNullableFieldsNull(t *testing.T) {
	repo := NewAnimalRepository(newTestDB(t))

	animal, err := repo.Create("Rex", nil, nil, nil, nil, nil)
	require.NoError(t, err)
	assert.Nil(t, animal.Description)
	assert.Nil(t, animal.ImagePath)
	assert.Nil(t, animal.Species)
	assert.Nil(t, animal.Sex)
	assert.Nil(t, animal.OwnerID)
}
