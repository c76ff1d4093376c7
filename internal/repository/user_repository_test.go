package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAndFindUser(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))

	user, err := repo.Create("Luna Silva", "luna@example.com", "hash")
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.Equal(t, "Luna Silva", user.Name)

	found, err := repo.FindByEmail("luna@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)
	assert.Equal(t, "hash", found.PasswordHash)
}

func TestDuplicateEmailIsConflict(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)

	_, err := repo.Create("First", "dup@example.com", "hash1")
	require.NoError(t, err)

	_, err = repo.Create("Second", "dup@example.com", "hash2")
	assert.ErrorIs(t, err, ErrEmailTaken)

	// No duplicate row was created
	var count int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM users WHERE email = ?`, "dup@example.com").Scan(&count))
	assert.Equal(t, 1, count)
}

func TestFindUnknownEmail(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))

	_, err := repo.FindByEmail("ghost@example.com")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUpdateNameAndPassword(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))

	_, err := repo.Create("Old Name", "user@example.com", "old-hash")
	require.NoError(t, err)

	require.NoError(t, repo.UpdateName("user@example.com", "New Name"))
	require.NoError(t, repo.UpdatePassword("user@example.com", "new-hash"))

	user, err := repo.FindByEmail("user@example.com")
	require.NoError(t, err)
	assert.Equal(t, "New Name", user.Name)
	assert.Equal(t, "new-hash", user.PasswordHash)
}

func TestDeleteWithAnimalsCascades(t *testing.T) {
	db := newTestDB(t)
	users := NewUserRepository(db)
	animals := NewAnimalRepository(db)

	owner, err := users.Create("Owner", "owner@example.com", "hash")
	require.NoError(t, err)
	other, err := users.Create("Other", "other@example.com", "hash")
	require.NoError(t, err)

	mine1, err := animals.Create("Rex", nil, nil, nil, nil, &owner.ID)
	require.NoError(t, err)
	mine2, err := animals.Create("Mia", nil, nil, nil, nil, &owner.ID)
	require.NoError(t, err)
	theirs, err := animals.Create("Bob", nil, nil, nil, nil, &other.ID)
	require.NoError(t, err)

	deletedIDs, err := users.DeleteWithAnimals("owner@example.com")
	require.NoError(t, err)
	assert.ElementsMatch(t, []int64{mine1.ID, mine2.ID}, deletedIDs)

	// Owner and their animals are gone, the other user's animal survives
	_, err = users.FindByEmail("owner@example.com")
	assert.ErrorIs(t, err, ErrUserNotFound)
	_, err = animals.FindByID(mine1.ID)
	assert.ErrorIs(t, err, ErrAnimalNotFound)
	_, err = animals.FindByID(mine2.ID)
	assert.ErrorIs(t, err, ErrAnimalNotFound)
	_, err = animals.FindByID(theirs.ID)
	assert.NoError(t, err)
}

func TestDeleteUnknownUser(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))

	_, err := repo.DeleteWithAnimals("ghost@example.com")
	assert.ErrorIs(t, err, ErrUserNotFound)
}
