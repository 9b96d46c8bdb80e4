package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pantry-api/internal/application/inventory"
	"github.com/jhoicas/pantry-api/internal/application/shopping"
)

// RouterDeps holds the use cases the router wires into handlers.
type RouterDeps struct {
	RecordPurchase    *inventory.RecordPurchaseUseCase
	RecordConsumption *inventory.RecordConsumptionUseCase
	Query             *inventory.QueryUseCase
	Profile           *inventory.ReassignProfileUseCase
	Reconcile         *inventory.ReconcileUseCase
	Lists             *shopping.ListUseCase
	Generate          *shopping.GenerateUseCase
}

// Router registers the API routes.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Purchases
	purchases := api.Group("/purchases")
	purchaseHandler := NewPurchaseHandler(deps.RecordPurchase)
	purchases.Post("/", purchaseHandler.Record)

	// Inventory
	inv := api.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.Query, deps.RecordConsumption, deps.Profile)
	inv.Get("/", inventoryHandler.List)
	inv.Get("/low", inventoryHandler.ListLow)
	inv.Get("/:id/velocity", inventoryHandler.GetVelocity)
	inv.Post("/:id/consume", inventoryHandler.RecordConsumption)
	inv.Put("/:id/profile", inventoryHandler.ReassignProfile)

	// Reconciliation
	recon := api.Group("/reconciliation")
	reconcileHandler := NewReconcileHandler(deps.Reconcile)
	recon.Get("/stale", reconcileHandler.ListStale)
	recon.Post("/:productID/resolve", reconcileHandler.Resolve)

	// Shopping lists
	lists := api.Group("/shopping-lists")
	listHandler := NewShoppingListHandler(deps.Lists, deps.Generate)
	lists.Get("/", listHandler.List)
	lists.Post("/", listHandler.Create)
	lists.Get("/:id", listHandler.Get)
	lists.Delete("/:id", listHandler.Delete)
	lists.Post("/:id/generate", listHandler.Generate)
	lists.Post("/:id/items", listHandler.AddItem)
	lists.Patch("/:id/items/:itemID", listHandler.UpdateItem)
	lists.Delete("/:id/items/:itemID", listHandler.DeleteItem)
}
