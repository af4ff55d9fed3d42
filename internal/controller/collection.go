package controller

import "sync"

// Collection cache en memoria de la última lista confirmada por el backend.
// Es propiedad exclusiva de su controlador: los fetch la reemplazan completa y
// los handlers de mutaciones son los únicos que reconcilian elementos.
//
// Cada fetch reserva un número de secuencia monotónico con Begin; ReplaceAll
// descarta respuestas cuya secuencia ya quedó atrás, de modo que un list lento
// no puede pisar una reconciliación posterior.
type Collection[T any] struct {
	mu         sync.RWMutex
	id         func(T) int64
	items      []T
	loaded     bool
	nextSeq    uint64
	appliedSeq uint64
}

// NewCollection construye la colección vacía; id extrae la identidad de un elemento.
func NewCollection[T any](id func(T) int64) *Collection[T] {
	return &Collection[T]{id: id}
}

// Begin reserva la secuencia para un fetch que arranca ahora.
func (c *Collection[T]) Begin() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.nextSeq++
	return c.nextSeq
}

// ReplaceAll instala la lista si seq sigue vigente; devuelve false (y no toca
// nada) si una mutación o un fetch posterior ya avanzó la colección.
func (c *Collection[T]) ReplaceAll(seq uint64, items []T) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if seq <= c.appliedSeq {
		return false
	}
	c.appliedSeq = seq
	c.items = append([]T(nil), items...)
	c.loaded = true
	return true
}

// Prepend inserta al frente el elemento confirmado por un create.
func (c *Collection[T]) Prepend(item T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = append([]T{item}, c.items...)
	c.invalidatePending()
}

// Reconcile reemplaza en sitio el elemento con la misma identidad, preservando
// el orden y el resto de elementos. Devuelve false si no estaba.
func (c *Collection[T]) Reconcile(item T) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	target := c.id(item)
	for i := range c.items {
		if c.id(c.items[i]) == target {
			c.items[i] = item
			c.invalidatePending()
			return true
		}
	}
	return false
}

// Remove saca el elemento tras un delete confirmado.
func (c *Collection[T]) Remove(id int64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.items {
		if c.id(c.items[i]) == id {
			c.items = append(c.items[:i], c.items[i+1:]...)
			c.invalidatePending()
			return true
		}
	}
	return false
}

// invalidatePending marca como obsoleto cualquier fetch que hubiera comenzado
// antes de esta mutación. Se llama con el lock tomado.
func (c *Collection[T]) invalidatePending() {
	c.appliedSeq = c.nextSeq
}

// Items devuelve una copia de la lista actual.
func (c *Collection[T]) Items() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]T(nil), c.items...)
}

// Len número de elementos.
func (c *Collection[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Loaded distingue "todavía sin datos" de "lista vacía": el estado de carga es
// independiente de la colección, así la página previa puede seguir visible
// mientras un fetch está en vuelo.
func (c *Collection[T]) Loaded() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loaded
}
