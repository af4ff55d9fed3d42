package controller_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/thelab-panel/internal/controller"
	"github.com/tu-usuario/thelab-panel/internal/domain/entity"
)

func sampleProducts() []entity.Product {
	return []entity.Product{
		{ID: 1, Name: "Cola", SKU: "C1", Quantity: 5},
		{ID: 2, Name: "Water", SKU: "W1", Quantity: 0},
	}
}

// Los dos predicados componen por conjunción.
func TestProductFilter_ComposicionBusquedaYStock(t *testing.T) {
	f := controller.ProductFilter{Search: "co", Stock: controller.StockInStock}
	result := f.Apply(sampleProducts())
	require.Len(t, result, 1)
	assert.Equal(t, "Cola", result[0].Name)

	f = controller.ProductFilter{Search: "", Stock: controller.StockOutOfStock}
	result = f.Apply(sampleProducts())
	require.Len(t, result, 1)
	assert.Equal(t, "Water", result[0].Name)
}

// La búsqueda es case-insensitive y también cubre el SKU.
func TestProductFilter_BusquedaPorNombreYSKU(t *testing.T) {
	f := controller.ProductFilter{Search: "  W1 ", Stock: controller.StockAll}
	result := f.Apply(sampleProducts())
	require.Len(t, result, 1)
	assert.Equal(t, "Water", result[0].Name)

	f = controller.ProductFilter{Search: "COLA"}
	result = f.Apply(sampleProducts())
	require.Len(t, result, 1)
	assert.Equal(t, "Cola", result[0].Name)
}

// Sin filtros activos pasa todo, en el mismo orden.
func TestProductFilter_SinFiltros(t *testing.T) {
	f := controller.ProductFilter{Stock: controller.StockAll}
	assert.Equal(t, sampleProducts(), f.Apply(sampleProducts()))
	assert.False(t, f.Active())

	assert.True(t, controller.ProductFilter{Search: "x"}.Active())
	assert.True(t, controller.ProductFilter{Stock: controller.StockInStock}.Active())
}

// Un valor de stock desconocido en la query cae en "all".
func TestParseStockFilter(t *testing.T) {
	assert.Equal(t, controller.StockInStock, controller.ParseStockFilter("in-stock"))
	assert.Equal(t, controller.StockOutOfStock, controller.ParseStockFilter("out-of-stock"))
	assert.Equal(t, controller.StockAll, controller.ParseStockFilter(""))
	assert.Equal(t, controller.StockAll, controller.ParseStockFilter("cualquier-cosa"))
}
