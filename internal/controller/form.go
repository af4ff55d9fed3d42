package controller

import (
	"sync"
	"sync/atomic"

	"github.com/tu-usuario/thelab-panel/internal/client"
	"github.com/tu-usuario/thelab-panel/internal/domain/entity"
)

// SubmitGate garantiza a lo sumo un envío en vuelo: TryBegin rechaza mientras
// otro no haya terminado. No encola; el trigger rechazado simplemente no envía.
type SubmitGate struct {
	busy atomic.Bool
}

// TryBegin intenta reservar el envío.
func (g *SubmitGate) TryBegin() bool { return g.busy.CompareAndSwap(false, true) }

// End libera la puerta al resolverse el envío (éxito o fallo).
func (g *SubmitGate) End() { g.busy.Store(false) }

// FormState ciclo de vida de un formulario: Idle (borrador limpio) → Dirty
// (el usuario tecleó) → Submitting (petición en vuelo) → Idle en éxito o de
// vuelta a Dirty en fallo, con el borrador intacto para corregir y reintentar.
type FormState int

const (
	FormIdle FormState = iota
	FormDirty
	FormSubmitting
)

// FormMode unión etiquetada que deja explícito de quién es el dato del
// formulario: creación desde plantilla en blanco o edición de una entidad
// concreta identificada por su ID.
type FormMode struct {
	editing bool
	id      int64
}

// CreatingMode formulario de alta.
func CreatingMode() FormMode { return FormMode{} }

// EditingMode formulario de edición de la entidad id.
func EditingMode(id int64) FormMode { return FormMode{editing: true, id: id} }

// Editing devuelve (id, true) en modo edición.
func (m FormMode) Editing() (int64, bool) { return m.id, m.editing }

// ProductForm controlador de formulario de un solo producto (alta o edición).
// A lo sumo un envío en vuelo por instancia: mientras está en Submitting los
// triggers adicionales se rechazan, no se encolan.
type ProductForm struct {
	mu    sync.Mutex
	mode  FormMode
	draft ProductDraft
	state FormState
}

// NewProductCreateForm formulario de alta con la plantilla en blanco.
func NewProductCreateForm() *ProductForm {
	return &ProductForm{mode: CreatingMode(), draft: BlankProductDraft()}
}

// NewProductEditForm formulario de edición con snapshot de la entidad.
func NewProductEditForm(p entity.Product) *ProductForm {
	return &ProductForm{mode: EditingMode(p.ID), draft: ProductDraftFrom(p)}
}

// Rebind vuelve a tomar snapshot cuando cambia la identidad de la entidad
// subyacente; si es la misma entidad el borrador en curso se respeta.
func (f *ProductForm) Rebind(p entity.Product) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if id, ok := f.mode.Editing(); ok && id == p.ID && f.state != FormIdle {
		return
	}
	f.mode = EditingMode(p.ID)
	f.draft = ProductDraftFrom(p)
	f.state = FormIdle
}

// SetDraft captura lo tecleado; ignorado mientras hay un envío en vuelo.
func (f *ProductForm) SetDraft(d ProductDraft) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state == FormSubmitting {
		return
	}
	f.draft = d
	f.state = FormDirty
}

// Draft copia del borrador actual.
func (f *ProductForm) Draft() ProductDraft {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.draft
}

// Mode modo actual del formulario.
func (f *ProductForm) Mode() FormMode {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.mode
}

// State estado actual.
func (f *ProductForm) State() FormState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// BeginSubmit intenta pasar a Submitting. Rechaza (false) si ya hay un envío
// en vuelo o si el borrador no pasa la validación de nombre requerido; en ese
// caso no se hace petición, no se muestra error y el borrador queda intacto.
func (f *ProductForm) BeginSubmit() (ProductDraft, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state == FormSubmitting {
		return ProductDraft{}, false
	}
	if _, ok := f.draft.CreateInput(); !ok {
		return ProductDraft{}, false
	}
	f.state = FormSubmitting
	return f.draft, true
}

// Succeed cierra el envío con el registro confirmado: en edición el borrador
// se re-sincroniza con el servidor; en alta vuelve a la plantilla en blanco.
func (f *ProductForm) Succeed(confirmed entity.Product) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.mode.Editing(); ok {
		f.mode = EditingMode(confirmed.ID)
		f.draft = ProductDraftFrom(confirmed)
	} else {
		f.draft = BlankProductDraft()
	}
	f.state = FormIdle
}

// Fail conserva el borrador tal cual para corregir y reintentar.
func (f *ProductForm) Fail() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.state = FormDirty
}

// QuickAddForm controlador del alta rápida por lotes: N filas de borrador que
// se validan de forma independiente al enviar.
type QuickAddForm struct {
	mu    sync.Mutex
	rows  []ProductDraft
	state FormState
}

// NewQuickAddForm arranca con una sola fila en blanco.
func NewQuickAddForm() *QuickAddForm {
	return &QuickAddForm{rows: []ProductDraft{BlankProductDraft()}}
}

// Rows copia de las filas actuales.
func (f *QuickAddForm) Rows() []ProductDraft {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]ProductDraft(nil), f.rows...)
}

// SetRows reemplaza las filas con lo capturado; ignorado durante un envío.
// Sin filas equivale a la plantilla de una fila en blanco.
func (f *QuickAddForm) SetRows(rows []ProductDraft) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state == FormSubmitting {
		return
	}
	if len(rows) == 0 {
		rows = []ProductDraft{BlankProductDraft()}
	}
	f.rows = append([]ProductDraft(nil), rows...)
	f.state = FormDirty
}

// State estado actual.
func (f *QuickAddForm) State() FormState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// BeginSubmit normaliza el lote descartando en silencio las filas sin nombre.
// Si el lote queda vacío o ya hay un envío en vuelo no se envía nada (false) y
// las filas quedan como estaban.
func (f *QuickAddForm) BeginSubmit() ([]client.CreateProductInput, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state == FormSubmitting {
		return nil, false
	}
	batch := NormalizeBatch(f.rows)
	if len(batch) == 0 {
		return nil, false
	}
	f.state = FormSubmitting
	return batch, true
}

// Succeed éxito del lote completo: reset a una única fila en blanco.
func (f *QuickAddForm) Succeed() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rows = []ProductDraft{BlankProductDraft()}
	f.state = FormIdle
}

// Fail conserva todas las filas originales para corregir.
func (f *QuickAddForm) Fail() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.state = FormDirty
}
