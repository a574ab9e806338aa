package routes

import (
	"net/http"

	controllers "github.com/MateAKD/Carta_Menu_Backend/controllers"

	"github.com/gorilla/mux"
)

// CategoryProtectedRoutes registers category metadata mutations. Create is
// POST-only; PUT merges fields and never creates.
func CategoryProtectedRoutes(router *mux.Router) {
	router.HandleFunc("/categories", controllers.CreateCategory).Methods(http.MethodPost)
	router.HandleFunc("/categories/{category_id}", controllers.UpdateCategory).Methods(http.MethodPut)
	router.HandleFunc("/categories/{category_id}", controllers.DeleteCategory).Methods(http.MethodDelete)
}
