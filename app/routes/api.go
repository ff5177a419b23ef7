// Package routes mounts the public API onto the router.
package routes

import (
	"github.com/soutoura/soutoura/app/controllers"
	"github.com/soutoura/soutoura/pkg/router"
)

// RegisterAPI wires every /api route to its controller.
func RegisterAPI(r *router.Router) {
	auth := controllers.NewAuthController()
	products := controllers.NewProductController()
	orders := controllers.NewOrderController()
	uploads := controllers.NewUploadController()

	api := r.Group("/api")

	api.Post("/auth/login", "auth.login", auth.Login)

	api.Get("/products", "products.index", products.Index)
	api.Post("/products", "products.store", products.Store)
	api.Get("/products/{id}", "products.show", products.Show)
	api.Put("/products/{id}", "products.update", products.Update)
	api.Delete("/products/{id}", "products.destroy", products.Destroy)

	api.Get("/orders", "orders.index", orders.Index)
	api.Post("/orders", "orders.store", orders.Store)
	api.Get("/orders/{id}", "orders.show", orders.Show)
	api.Patch("/orders/{id}", "orders.update_status", orders.UpdateStatus)

	api.Post("/uploads", "uploads.store", uploads.Store)
}
