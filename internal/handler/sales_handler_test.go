package handler

import (
	"net/http"
	"testing"

	"farm-service/internal/model"
	"farm-service/pkg/database"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedSalesFixtures(t *testing.T) (model.Customer, model.Crop) {
	t.Helper()
	db := database.GetDB()

	customer := model.Customer{Name: "ตลาดสดเมืองใหม่"}
	require.NoError(t, db.Create(&customer).Error)
	crop := model.Crop{Name: "มะเขือเทศ", Status: model.CropHarvestReady, PlantingDate: "2025-01-01"}
	require.NoError(t, db.Create(&crop).Error)
	return customer, crop
}

func TestSaveSalesOrderRecomputesTotal(t *testing.T) {
	setupTest(t)
	customer, crop := seedSalesFixtures(t)

	c, rec := newContext(t, http.MethodPost, "/api/sales-orders", map[string]any{
		"customerId": customer.ID,
		"orderDate":  "2025-06-20",
		"items": []map[string]any{
			{"itemId": "line-1", "cropId": crop.ID, "quantity": 10, "unitPrice": 25},
			{"itemId": "line-2", "cropId": crop.ID, "quantity": 2, "unitPrice": 100},
		},
		// The client-sent total is ignored.
		"totalAmount": 1,
	})
	require.NoError(t, SaveSalesOrder(c))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	order := decodeBody[model.SalesOrder](t, rec)
	assert.Equal(t, 450.0, order.TotalAmount)
	assert.Equal(t, model.OrderQuote, order.Status, "status defaults to Quote")
}

func TestSaveSalesOrderNeedsItems(t *testing.T) {
	setupTest(t)
	customer, _ := seedSalesFixtures(t)

	c, rec := newContext(t, http.MethodPost, "/api/sales-orders", map[string]any{
		"customerId": customer.ID,
		"orderDate":  "2025-06-20",
		"items":      []map[string]any{},
	})
	require.NoError(t, SaveSalesOrder(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSaveSalesOrderMissingCustomer(t *testing.T) {
	setupTest(t)
	_, crop := seedSalesFixtures(t)

	c, rec := newContext(t, http.MethodPost, "/api/sales-orders", map[string]any{
		"customerId": 999,
		"orderDate":  "2025-06-20",
		"items": []map[string]any{
			{"itemId": "line-1", "cropId": crop.ID, "quantity": 1, "unitPrice": 10},
		},
	})
	require.NoError(t, SaveSalesOrder(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSaveSalesOrderRejectsUnknownStatus(t *testing.T) {
	setupTest(t)
	customer, crop := seedSalesFixtures(t)

	c, rec := newContext(t, http.MethodPost, "/api/sales-orders", map[string]any{
		"customerId": customer.ID,
		"orderDate":  "2025-06-20",
		"status":     "Teleported",
		"items": []map[string]any{
			{"itemId": "line-1", "cropId": crop.ID, "quantity": 1, "unitPrice": 10},
		},
	})
	require.NoError(t, SaveSalesOrder(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeleteCustomerBlockedByOrders(t *testing.T) {
	setupTest(t)
	customer, crop := seedSalesFixtures(t)
	db := database.GetDB()

	order := model.SalesOrder{
		CustomerID: customer.ID,
		OrderDate:  "2025-06-20",
		Status:     model.OrderConfirmed,
		Items:      []model.OrderItem{{ItemID: "line-1", CropID: crop.ID, Quantity: 1, UnitPrice: 10}},
	}
	require.NoError(t, db.Create(&order).Error)

	c, rec := newContext(t, http.MethodDelete, "/", nil)
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, DeleteCustomer(c))
	assert.Equal(t, http.StatusConflict, rec.Code)
}
