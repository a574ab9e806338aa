package routes

import (
	"net/http"

	controllers "github.com/MateAKD/Carta_Menu_Backend/controllers"

	"github.com/gorilla/mux"
)

// PublicMenuRoutes registers the read surface. GET /menu enforces its own
// token check when admin=true is requested.
func PublicMenuRoutes(router *mux.Router) {
	router.HandleFunc("/menu", controllers.GetMenu).Methods(http.MethodGet)
	router.HandleFunc("/categories", controllers.GetCategories).Methods(http.MethodGet)
}

// MenuProtectedRoutes registers the admin write surface for menu items.
func MenuProtectedRoutes(router *mux.Router) {
	router.HandleFunc("/menu", controllers.SyncMenu).Methods(http.MethodPost)
	router.HandleFunc("/menu/{category_id}", controllers.SyncSection).Methods(http.MethodPut)
	router.HandleFunc("/menu/{category_id}/{item_id}/visibility", controllers.UpdateItemVisibility).Methods(http.MethodPatch)
	router.HandleFunc("/menu/{category_id}/{item_id}", controllers.SoftDeleteItem).Methods(http.MethodDelete)
}
