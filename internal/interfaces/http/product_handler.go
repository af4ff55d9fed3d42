package http

import (
	"errors"
	"strconv"
	"sync"

	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/thelab-panel/internal/client"
	"github.com/tu-usuario/thelab-panel/internal/controller"
	"github.com/tu-usuario/thelab-panel/internal/domain"
	"github.com/tu-usuario/thelab-panel/internal/domain/entity"
	"github.com/tu-usuario/thelab-panel/pkg/logger"
)

// ProductHandler pantallas de inventario: lista con filtros, alta rápida por
// lotes, detalle con edición y borrado. Es el dueño exclusivo de su colección
// y de los formularios; los handlers de mutación son los únicos que
// reconcilian elementos en ella.
type ProductHandler struct {
	products *client.Products
	col      *controller.Collection[entity.Product]
	quickAdd *controller.QuickAddForm

	mu        sync.Mutex
	editForms map[int64]*controller.ProductForm

	log *logger.Logger
}

// NewProductHandler construye el handler.
func NewProductHandler(products *client.Products, log *logger.Logger) *ProductHandler {
	return &ProductHandler{
		products:  products,
		col:       controller.NewCollection(func(p entity.Product) int64 { return p.ID }),
		quickAdd:  controller.NewQuickAddForm(),
		editForms: make(map[int64]*controller.ProductForm),
		log:       log,
	}
}

// List GET /products. Refresca la colección con secuencia (un list lento no
// pisa una mutación) y pinta la conjunción de los dos filtros de la query.
func (h *ProductHandler) List(c *fiber.Ctx) error {
	filter := controller.ProductFilter{
		Search: c.Query("q"),
		Stock:  controller.ParseStockFilter(c.Query("stock")),
	}

	seq := h.col.Begin()
	var loadErr string
	items, err := h.products.List(c.Context())
	if err != nil {
		// La página anterior de datos sigue visible junto al error.
		h.log.Warn().Err(err).Msg("refrescar inventario")
		loadErr = err.Error()
	} else {
		h.col.ReplaceAll(seq, items)
	}

	return h.renderList(c, filter, loadErr)
}

// QuickAdd POST /products. Alta rápida por lotes: cada fila se valida por
// separado, las vacías se descartan en silencio y un lote vacío no envía nada.
func (h *ProductHandler) QuickAdd(c *fiber.Ctx) error {
	h.quickAdd.SetRows(parseQuickAddRows(c))

	batch, ok := h.quickAdd.BeginSubmit()
	if !ok {
		// Nada que enviar (o ya hay un envío en vuelo): no-op silencioso.
		return c.Redirect("/products", fiber.StatusFound)
	}

	var submitErr error
	for _, in := range batch {
		created, err := h.products.Create(c.Context(), in)
		if err != nil {
			submitErr = err
			break
		}
		h.col.Prepend(*created)
	}

	if submitErr != nil {
		// Las filas originales se conservan para corregir y reintentar.
		h.quickAdd.Fail()
		h.log.Warn().Err(submitErr).Msg("alta rápida de productos")
		return h.renderList(c, controller.ProductFilter{Stock: controller.StockAll}, submitErr.Error())
	}

	h.quickAdd.Succeed()
	SetFlash(c, "Producto creado")
	return c.Redirect("/products", fiber.StatusFound)
}

// Detail GET /products/:id. Un 404 del backend pinta el estado explícito de
// "no encontrado", no un error.
func (h *ProductHandler) Detail(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Redirect("/products", fiber.StatusFound)
	}

	product, err := h.products.Get(c.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return render(c.Status(fiber.StatusNotFound), "products/detail", fiber.Map{
				"NotFound": true,
				"ID":       id,
			})
		}
		h.log.Warn().Err(err).Int64("id", id).Msg("cargar producto")
		return render(c, "products/detail", fiber.Map{
			"Error": err.Error(),
			"ID":    id,
		})
	}

	form := h.editForm(*product)
	return render(c, "products/detail", fiber.Map{
		"Product": product,
		"Draft":   form.Draft(),
		"ID":      id,
	})
}

// Update POST /products/:id. El fallo preserva el borrador tal cual para
// corregir; el éxito reconcilia solo ese elemento en la colección.
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Redirect("/products", fiber.StatusFound)
	}

	product, err := h.products.Get(c.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return render(c.Status(fiber.StatusNotFound), "products/detail", fiber.Map{
				"NotFound": true,
				"ID":       id,
			})
		}
		return render(c, "products/detail", fiber.Map{"Error": err.Error(), "ID": id})
	}

	form := h.editForm(*product)
	form.SetDraft(parseProductDraft(c))

	draft, ok := form.BeginSubmit()
	if !ok {
		// Validación fallida o envío en vuelo: no-op silencioso.
		return c.Redirect("/products/"+strconv.FormatInt(id, 10), fiber.StatusFound)
	}

	in, _ := draft.UpdateInput()
	updated, err := h.products.Update(c.Context(), id, in)
	if err != nil {
		form.Fail()
		h.log.Warn().Err(err).Int64("id", id).Msg("actualizar producto")
		return render(c, "products/detail", fiber.Map{
			"Product": product,
			"Draft":   form.Draft(),
			"Error":   err.Error(),
			"ID":      id,
		})
	}

	form.Succeed(*updated)
	h.col.Reconcile(*updated)
	SetFlash(c, "Producto actualizado")
	return c.Redirect("/products/"+strconv.FormatInt(id, 10), fiber.StatusFound)
}

// Delete POST /products/:id/delete. Operación destructiva: exige la
// confirmación explícita del formulario antes de emitir la petición.
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Redirect("/products", fiber.StatusFound)
	}
	if c.FormValue("confirm") != "1" {
		SetFlash(c, "Confirma la eliminación antes de continuar")
		return c.Redirect("/products/"+strconv.FormatInt(id, 10), fiber.StatusFound)
	}

	if err := h.products.Delete(c.Context(), id); err != nil {
		h.log.Warn().Err(err).Int64("id", id).Msg("eliminar producto")
		SetFlash(c, err.Error())
		return c.Redirect("/products/"+strconv.FormatInt(id, 10), fiber.StatusFound)
	}

	h.col.Remove(id)
	h.dropEditForm(id)
	SetFlash(c, "Producto eliminado")
	return c.Redirect("/products", fiber.StatusFound)
}

func (h *ProductHandler) renderList(c *fiber.Ctx, filter controller.ProductFilter, loadErr string) error {
	all := h.col.Items()
	return render(c, "products/index", fiber.Map{
		"Products": filter.Apply(all),
		"Total":    len(all),
		"Loaded":   h.col.Loaded(),
		"Search":   filter.Search,
		"Stock":    string(filter.Stock),
		"Filtered": filter.Active(),
		"Rows":     h.quickAdd.Rows(),
		"Error":    loadErr,
	})
}

// editForm entrega el formulario de edición del producto, re-tomando snapshot
// solo si cambió la identidad subyacente.
func (h *ProductHandler) editForm(p entity.Product) *controller.ProductForm {
	h.mu.Lock()
	defer h.mu.Unlock()
	form, ok := h.editForms[p.ID]
	if !ok {
		form = controller.NewProductEditForm(p)
		h.editForms[p.ID] = form
		return form
	}
	form.Rebind(p)
	return form
}

func (h *ProductHandler) dropEditForm(id int64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.editForms, id)
}

func parseID(c *fiber.Ctx) (int64, error) {
	return strconv.ParseInt(c.Params("id"), 10, 64)
}

// parseProductDraft borrador del formulario de edición, crudo (la coerción
// ocurre al normalizar).
func parseProductDraft(c *fiber.Ctx) controller.ProductDraft {
	return controller.ProductDraft{
		Name:        c.FormValue("name"),
		SKU:         c.FormValue("sku"),
		Quantity:    c.FormValue("quantity"),
		Location:    c.FormValue("location"),
		Description: c.FormValue("description"),
		Barcodes:    c.FormValue("barcodes"),
	}
}

// parseQuickAddRows filas paralelas del alta rápida (name[], sku[], ...).
func parseQuickAddRows(c *fiber.Ctx) []controller.ProductDraft {
	names := formValues(c, "name[]")
	skus := formValues(c, "sku[]")
	quantities := formValues(c, "quantity[]")
	locations := formValues(c, "location[]")
	descriptions := formValues(c, "description[]")
	barcodes := formValues(c, "barcodes[]")

	rows := make([]controller.ProductDraft, 0, len(names))
	for i := range names {
		rows = append(rows, controller.ProductDraft{
			Name:        names[i],
			SKU:         at(skus, i),
			Quantity:    at(quantities, i),
			Location:    at(locations, i),
			Description: at(descriptions, i),
			Barcodes:    at(barcodes, i),
		})
	}
	return rows
}

func formValues(c *fiber.Ctx, key string) []string {
	form, err := c.MultipartForm()
	if err == nil && form != nil {
		if vs, ok := form.Value[key]; ok {
			return vs
		}
	}
	// application/x-www-form-urlencoded
	args := c.Request().PostArgs()
	var out []string
	for _, v := range args.PeekMulti(key) {
		out = append(out, string(v))
	}
	return out
}

func at(values []string, i int) string {
	if i < len(values) {
		return values[i]
	}
	return ""
}
