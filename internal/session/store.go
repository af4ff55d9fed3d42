package session

import (
	"sync"

	"github.com/tu-usuario/thelab-panel/internal/domain/entity"
)

// StorageKey clave fija bajo la que se persiste la sesión serializada. Es la
// única entrada durable del panel y guarda solo el perfil del usuario.
const StorageKey = "thelab-user"

// Storage almacenamiento clave→valor durable del lado del cliente. En
// producción es la cookie jar de la petición; en tests, un map en memoria.
type Storage interface {
	Read(key string) (string, bool)
	Write(key, value string)
	Delete(key string)
}

// Store contenedor de estado de la sesión actual. No hace llamadas de red; la
// persistencia es un efecto adjunto a Login/Logout y la rehidratación ocurre
// al leer. Se inyecta donde se necesita en lugar de vivir como global.
type Store struct {
	codec   *Codec
	storage Storage
}

// New construye el store sobre el storage inyectado.
func New(codec *Codec, storage Storage) *Store {
	return &Store{codec: codec, storage: storage}
}

// Login fija el usuario actual y lo persiste bajo StorageKey.
func (s *Store) Login(profile entity.UserProfile) error {
	token, err := s.codec.Encode(profile)
	if err != nil {
		return err
	}
	s.storage.Write(StorageKey, token)
	return nil
}

// Logout limpia la sesión.
func (s *Store) Logout() {
	s.storage.Delete(StorageKey)
}

// Current rehidrata el perfil desde el storage. Ausente, corrupto o expirado
// equivale a no tener sesión.
func (s *Store) Current() *entity.UserProfile {
	raw, ok := s.storage.Read(StorageKey)
	if !ok || raw == "" {
		return nil
	}
	profile, err := s.codec.Decode(raw)
	if err != nil {
		return nil
	}
	return profile
}

// MapStorage Storage en memoria, seguro para concurrencia. Sirve para tests y
// simula el "reinicio de proceso": el map sobrevive mientras el Store se
// reconstruye encima.
type MapStorage struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMapStorage crea el storage vacío.
func NewMapStorage() *MapStorage {
	return &MapStorage{values: make(map[string]string)}
}

func (m *MapStorage) Read(key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return v, ok
}

func (m *MapStorage) Write(key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
}

func (m *MapStorage) Delete(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
}
