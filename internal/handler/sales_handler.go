package handler

import (
	"net/http"

	"farm-service/internal/model"
	"farm-service/internal/store"
	"farm-service/pkg/database"
	"farm-service/pkg/logger"
	"farm-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// ListCustomers handles retrieving all customers
func ListCustomers(c echo.Context) error {
	log := logger.FromContext(c)

	var customers []model.Customer
	if result := database.GetDB().Order("name").Find(&customers); result.Error != nil {
		log.Error("Failed to list customers", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to retrieve customers"})
	}

	return c.JSON(http.StatusOK, customers)
}

// SaveCustomer handles creating or updating a customer
func SaveCustomer(c echo.Context) error {
	log := logger.FromContext(c)

	var customer model.Customer
	if err := c.Bind(&customer); err != nil {
		log.Error("Invalid customer data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	if customer.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}

	if err := store.Upsert(database.GetDB(), &customer); err != nil {
		log.Error("Failed to save customer", zap.String("name", customer.Name), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to save customer: " + err.Error()})
	}

	prometheus.RecordEntityOperation("customers", "save")
	log.Info("Customer saved", zap.Uint("customer_id", customer.ID))
	return c.JSON(http.StatusOK, customer)
}

// DeleteCustomer handles deleting a customer. A customer with orders
// on file cannot be removed.
func DeleteCustomer(c echo.Context) error {
	log := logger.FromContext(c)

	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid customer id"})
	}

	db := database.GetDB()

	orderRefs, err := store.CountWhere[model.SalesOrder](db, "customer_id = ?", id)
	if err != nil {
		log.Error("Failed to check order references", zap.Uint("customer_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to delete customer"})
	}
	if orderRefs > 0 {
		log.Warn("Customer delete blocked by orders",
			zap.Uint("customer_id", id),
			zap.Int64("orders", orderRefs))
		return c.JSON(http.StatusConflict, echo.Map{"error": "cannot delete a customer that has sales orders"})
	}

	if err := store.DeleteByID[model.Customer](db, id); err != nil {
		if err == store.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Customer not found"})
		}
		log.Error("Failed to delete customer", zap.Uint("customer_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to delete customer"})
	}

	prometheus.RecordEntityOperation("customers", "delete")
	log.Info("Customer deleted", zap.Uint("customer_id", id))
	return c.JSON(http.StatusOK, echo.Map{"message": "Customer deleted successfully"})
}

// ListSalesOrders handles retrieving all sales orders
func ListSalesOrders(c echo.Context) error {
	log := logger.FromContext(c)

	var orders []model.SalesOrder
	if result := database.GetDB().Order("order_date desc").Find(&orders); result.Error != nil {
		log.Error("Failed to list sales orders", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to retrieve sales orders"})
	}

	return c.JSON(http.StatusOK, orders)
}

// SaveSalesOrder handles creating or updating a sales order. The
// total is always recomputed from the order lines.
func SaveSalesOrder(c echo.Context) error {
	log := logger.FromContext(c)

	var order model.SalesOrder
	if err := c.Bind(&order); err != nil {
		log.Error("Invalid sales order data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	if order.CustomerID == 0 || order.OrderDate == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "customerId and orderDate are required"})
	}
	if len(order.Items) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "an order needs at least one item"})
	}
	if order.Status == "" {
		order.Status = model.OrderQuote
	}
	switch order.Status {
	case model.OrderQuote, model.OrderConfirmed, model.OrderShipped, model.OrderCompleted, model.OrderCancelled:
	default:
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown order status"})
	}

	db := database.GetDB()
	if _, err := store.FindByID[model.Customer](db, order.CustomerID); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "referenced customer does not exist"})
	}

	total := 0.0
	for _, item := range order.Items {
		if item.Quantity <= 0 || item.UnitPrice < 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "order items need a positive quantity and a non-negative unit price"})
		}
		if _, err := store.FindByID[model.Crop](db, item.CropID); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "order item references a crop that does not exist"})
		}
		total += item.Quantity * item.UnitPrice
	}
	order.TotalAmount = total

	if err := store.Upsert(db, &order); err != nil {
		log.Error("Failed to save sales order", zap.Uint("customer_id", order.CustomerID), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to save sales order: " + err.Error()})
	}

	prometheus.RecordEntityOperation("sales_orders", "save")
	log.Info("Sales order saved",
		zap.Uint("order_id", order.ID),
		zap.Uint("customer_id", order.CustomerID),
		zap.Float64("total", order.TotalAmount))
	return c.JSON(http.StatusOK, order)
}

// DeleteSalesOrder handles deleting a sales order
func DeleteSalesOrder(c echo.Context) error {
	log := logger.FromContext(c)

	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid order id"})
	}

	if err := store.DeleteByID[model.SalesOrder](database.GetDB(), id); err != nil {
		if err == store.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Sales order not found"})
		}
		log.Error("Failed to delete sales order", zap.Uint("order_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to delete sales order"})
	}

	prometheus.RecordEntityOperation("sales_orders", "delete")
	log.Info("Sales order deleted", zap.Uint("order_id", id))
	return c.JSON(http.StatusOK, echo.Map{"message": "Sales order deleted successfully"})
}
