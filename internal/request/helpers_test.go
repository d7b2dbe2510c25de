package request

import (
	"github.com/blkpark/postgrest/internal/catalog"
)

// newTestCatalog builds a small commerce schema:
//
//	customers <- orders -> addresses (two FKs: billing and shipping)
//	orders <- items
//	orders <-> products through the order_products link table
//	standalone has no relations at all
func newTestCatalog() *catalog.Catalog {
	customers := catalog.Table{Schema: "public", Name: "customers", Insertable: true}
	orders := catalog.Table{Schema: "public", Name: "orders", Insertable: true}
	items := catalog.Table{Schema: "public", Name: "items", Insertable: true}
	addresses := catalog.Table{Schema: "public", Name: "addresses", Insertable: true}
	products := catalog.Table{Schema: "public", Name: "products", Insertable: true}
	orderProducts := catalog.Table{Schema: "public", Name: "order_products", Insertable: true}
	standalone := catalog.Table{Schema: "public", Name: "standalone", Insertable: true}
	tables := []catalog.Table{customers, orders, items, addresses, products, orderProducts, standalone}

	customersID := catalog.Column{Table: customers, Name: "id", Position: 1}
	ordersID := catalog.Column{Table: orders, Name: "id", Position: 1}
	addressesID := catalog.Column{Table: addresses, Name: "id", Position: 1}
	productsID := catalog.Column{Table: products, Name: "id", Position: 1}

	fk := func(constraint string, target catalog.Column) *catalog.ForeignKey {
		return &catalog.ForeignKey{Constraint: constraint, Column: target}
	}

	columns := []catalog.Column{
		customersID,
		{Table: customers, Name: "name", Position: 2},
		ordersID,
		{Table: orders, Name: "customer_id", Position: 2, ForeignKey: fk("orders_customer_id_fkey", customersID)},
		{Table: orders, Name: "billing_address_id", Position: 3, ForeignKey: fk("orders_billing_address_id_fkey", addressesID)},
		{Table: orders, Name: "shipping_address_id", Position: 4, ForeignKey: fk("orders_shipping_address_id_fkey", addressesID)},
		{Table: orders, Name: "status", Position: 5},
		{Table: items, Name: "id", Position: 1},
		{Table: items, Name: "order_id", Position: 2, ForeignKey: fk("items_order_id_fkey", ordersID)},
		addressesID,
		productsID,
		{Table: orderProducts, Name: "order_id", Position: 1, ForeignKey: fk("op_order_id_fkey", ordersID)},
		{Table: orderProducts, Name: "product_id", Position: 2, ForeignKey: fk("op_product_id_fkey", productsID)},
		{Table: standalone, Name: "id", Position: 1},
	}

	pks := []catalog.PrimaryKey{
		{Table: customers, Name: "id"},
		{Table: orders, Name: "id"},
		{Table: items, Name: "id"},
		{Table: addresses, Name: "id"},
		{Table: products, Name: "id"},
		{Table: orderProducts, Name: "order_id"},
		{Table: orderProducts, Name: "product_id"},
		{Table: standalone, Name: "id"},
	}

	relations := catalog.BuildRelations(tables, columns, pks)
	return catalog.New(tables, columns, relations, pks, nil)
}

func ordersTable(cat *catalog.Catalog) catalog.Table {
	t, _ := cat.FindTable("public", "orders")
	return t
}
