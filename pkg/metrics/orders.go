package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	OrdersCreated = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "orders_created_total",
		Help: "Total number of orders created",
	})

	OrdersDeleted = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "orders_deleted_total",
		Help: "Total number of orders deleted together with their items",
	})

	OrderItemsCreated = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "order_items_created_total",
		Help: "Total number of order items created",
	})

	// Sum of total_amount over created orders
	OrderSalesAmount = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "order_sales_amount_total",
		Help: "Sum of total_amount of created orders",
	})

	OrderStatusChanges = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "order_status_changes_total",
		Help: "Order status updates by resulting status",
	}, []string{"status"})
)

func Init(reg prometheus.Registerer) {
	reg.MustRegister(
		OrdersCreated,
		OrdersDeleted,
		OrderItemsCreated,
		OrderSalesAmount,
		OrderStatusChanges,
	)
}
