package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nurcahyapriantoro/PlatformAgriblock-sub002/internal/logger"
	"github.com/nurcahyapriantoro/PlatformAgriblock-sub002/models"
)

func newTestRepository(t *testing.T) IdentityRepository {
	t.Helper()
	return NewIdentityRepository(NewMemoryKV(), logger.Nop())
}

func testIdentity() models.Identity {
	return models.Identity{
		ID:                  "4f6a2c9e-0001-7000-8000-000000000001",
		Email:               "Farmer@Example.COM",
		Name:                "Farmer",
		Role:                models.RoleFarmer,
		PasswordHash:        "aa:bb",
		PublicKey:           "02ABCDEF",
		EncryptedPrivateKey: "aa:bb:cc",
		AuthMethods:         []string{models.AuthMethodPassword},
	}
}

func TestCreate_SetsVersionTimestampsAndNormalizesEmail(t *testing.T) {
	// Arrange
	repo := newTestRepository(t)
	ctx := context.Background()

	// Act
	created, err := repo.Create(ctx, testIdentity())

	// Assert
	require.NoError(t, err)
	assert.EqualValues(t, 1, created.Version)
	assert.Equal(t, "farmer@example.com", created.Email)
	assert.False(t, created.CreatedAt.IsZero())
	assert.False(t, created.UpdatedAt.IsZero())
}

func TestCreate_DuplicateEmail(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	_, err := repo.Create(ctx, testIdentity())
	require.NoError(t, err)

	second := testIdentity()
	second.ID = "4f6a2c9e-0001-7000-8000-000000000002"
	second.Email = "FARMER@example.com" // same address, different case
	second.PublicKey = "03aaaaaa"

	_, err = repo.Create(ctx, second)
	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
}

func TestCreate_DuplicateWallet(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	_, err := repo.Create(ctx, testIdentity())
	require.NoError(t, err)

	second := testIdentity()
	second.ID = "4f6a2c9e-0001-7000-8000-000000000002"
	second.Email = "other@example.com"
	second.PublicKey = "02abcdef" // same key, different case

	_, err = repo.Create(ctx, second)
	assert.ErrorIs(t, err, ErrWalletAlreadyBound)
}

func TestGetByID_NotFound(t *testing.T) {
	repo := newTestRepository(t)

	_, err := repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrIdentityNotFound)
}

func TestGetByEmailAndWallet_CaseInsensitive(t *testing.T) {
	// Arrange
	repo := newTestRepository(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, testIdentity())
	require.NoError(t, err)

	// Act & Assert
	byEmail, err := repo.GetByEmail(ctx, "fArMeR@eXaMpLe.CoM")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byEmail.ID)

	byWallet, err := repo.GetByWallet(ctx, "02abcdef")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byWallet.ID)
}

func TestSave_BumpsVersion(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, testIdentity())
	require.NoError(t, err)

	created.Name = "Renamed"
	saved, err := repo.Save(ctx, created)

	require.NoError(t, err)
	assert.EqualValues(t, 2, saved.Version)
	assert.Equal(t, "Renamed", saved.Name)

	loaded, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, loaded.Version)
}

// TestSave_VersionConflict verifies the optimistic guard: a writer holding
// a stale version cannot overwrite a newer record.
func TestSave_VersionConflict(t *testing.T) {
	// Arrange
	repo := newTestRepository(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, testIdentity())
	require.NoError(t, err)

	stale := created

	created.Name = "First writer"
	_, err = repo.Save(ctx, created)
	require.NoError(t, err)

	// Act
	stale.Name = "Second writer"
	_, err = repo.Save(ctx, stale)

	// Assert
	require.ErrorIs(t, err, ErrVersionConflict)

	loaded, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "First writer", loaded.Name)
}

func TestSave_RetiresStaleEmailIndex(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, testIdentity())
	require.NoError(t, err)

	created.Email = "new-address@example.com"
	_, err = repo.Save(ctx, created)
	require.NoError(t, err)

	_, err = repo.GetByEmail(ctx, "farmer@example.com")
	assert.ErrorIs(t, err, ErrIdentityNotFound)

	found, err := repo.GetByEmail(ctx, "new-address@example.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)
}

// TestSave_RetiresStaleWalletIndex covers the re-key path of password
// reset: the wallet index must follow the fresh public key.
func TestSave_RetiresStaleWalletIndex(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, testIdentity())
	require.NoError(t, err)

	created.PublicKey = "03ffffff"
	_, err = repo.Save(ctx, created)
	require.NoError(t, err)

	_, err = repo.GetByWallet(ctx, "02abcdef")
	assert.ErrorIs(t, err, ErrIdentityNotFound)

	found, err := repo.GetByWallet(ctx, "03FFFFFF")
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)
}

func TestSave_UnknownIdentity(t *testing.T) {
	repo := newTestRepository(t)

	_, err := repo.Save(context.Background(), testIdentity())
	assert.ErrorIs(t, err, ErrIdentityNotFound)
}
