package session_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/thelab-panel/internal/domain/entity"
	"github.com/tu-usuario/thelab-panel/internal/session"
)

const (
	testSecret = "test-secret-key-for-unit-tests"
	testIssuer = "thelab-panel-test"
)

func testProfile() entity.UserProfile {
	// Los claims serializan fechas con precisión de segundos.
	created := time.Date(2024, 3, 10, 9, 30, 0, 0, time.UTC)
	return entity.UserProfile{
		ID:        7,
		FullName:  "SYS Admin",
		Role:      entity.RoleSysadmin,
		CreatedAt: created,
		UpdatedAt: created.Add(48 * time.Hour),
	}
}

// La sesión sobrevive a un "reinicio de proceso": mismo storage, Store nuevo.
func TestStore_PersisteYRehidrata(t *testing.T) {
	codec := session.NewCodec(testSecret, testIssuer, time.Hour)
	storage := session.NewMapStorage()
	profile := testProfile()

	require.NoError(t, session.New(codec, storage).Login(profile))

	// Solo se guarda el perfil, bajo la clave fija.
	raw, ok := storage.Read(session.StorageKey)
	require.True(t, ok, "debe existir la entrada %q", session.StorageKey)
	require.NotEmpty(t, raw)

	rehydrated := session.New(codec, storage).Current()
	require.NotNil(t, rehydrated, "la sesión debe rehidratarse tras el reinicio")
	assert.Equal(t, profile.ID, rehydrated.ID)
	assert.Equal(t, profile.FullName, rehydrated.FullName)
	assert.Equal(t, profile.Role, rehydrated.Role)
	// Las fechas vuelven como time.Time reales, no strings.
	assert.True(t, profile.CreatedAt.Equal(rehydrated.CreatedAt),
		"createdAt debe restaurarse como fecha: %v vs %v", profile.CreatedAt, rehydrated.CreatedAt)
	assert.True(t, profile.UpdatedAt.Equal(rehydrated.UpdatedAt),
		"updatedAt debe restaurarse como fecha: %v vs %v", profile.UpdatedAt, rehydrated.UpdatedAt)
}

// Logout elimina la entrada durable; la rehidratación posterior no ve sesión.
func TestStore_LogoutLimpia(t *testing.T) {
	codec := session.NewCodec(testSecret, testIssuer, time.Hour)
	storage := session.NewMapStorage()
	store := session.New(codec, storage)

	require.NoError(t, store.Login(testProfile()))
	store.Logout()

	_, ok := storage.Read(session.StorageKey)
	assert.False(t, ok, "la entrada debe borrarse en logout")
	assert.Nil(t, session.New(codec, storage).Current())
}

// Storage vacío = sin sesión (primer arranque).
func TestStore_SinEntradaEsSinSesion(t *testing.T) {
	codec := session.NewCodec(testSecret, testIssuer, time.Hour)
	assert.Nil(t, session.New(codec, session.NewMapStorage()).Current())
}

// Un token manipulado o firmado con otro secret no produce sesión.
func TestStore_TokenInvalidoSeIgnora(t *testing.T) {
	storage := session.NewMapStorage()
	otherCodec := session.NewCodec("otro-secret-distinto", testIssuer, time.Hour)
	require.NoError(t, session.New(otherCodec, storage).Login(testProfile()))

	codec := session.NewCodec(testSecret, testIssuer, time.Hour)
	assert.Nil(t, session.New(codec, storage).Current(),
		"una firma ajena debe tratarse como sesión ausente")

	storage.Write(session.StorageKey, "no-es-un-jwt")
	assert.Nil(t, session.New(codec, storage).Current())
}

// Una sesión expirada equivale a estar deslogueado.
func TestStore_SesionExpirada(t *testing.T) {
	codec := session.NewCodec(testSecret, testIssuer, -time.Minute)
	storage := session.NewMapStorage()
	require.NoError(t, session.New(codec, storage).Login(testProfile()))

	assert.Nil(t, session.New(codec, storage).Current())
}
