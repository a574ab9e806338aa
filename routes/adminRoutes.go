package routes

import (
	"net/http"

	controllers "github.com/MateAKD/Carta_Menu_Backend/controllers"

	"github.com/gorilla/mux"
)

// AdminProtectedRoutes registers the hierarchy, garbage-collection and
// diagnostics surface.
func AdminProtectedRoutes(router *mux.Router) {
	router.HandleFunc("/admin/subcategories", controllers.GetSubcategories).Methods(http.MethodGet)
	router.HandleFunc("/admin/subcategories", controllers.AttachSubcategory).Methods(http.MethodPost)
	router.HandleFunc("/admin/subcategories/{category_id}", controllers.DetachSubcategory).Methods(http.MethodDelete)

	router.HandleFunc("/admin/cleanup-deleted", controllers.CleanupDeleted).Methods(http.MethodPost)
	router.HandleFunc("/admin/cleanup-deleted", controllers.CleanupCandidates).Methods(http.MethodGet)

	router.HandleFunc("/admin/diagnostics", controllers.GetDiagnostics).Methods(http.MethodGet)
	router.HandleFunc("/admin/diagnostics/remediate", controllers.RemediateDuplicates).Methods(http.MethodPost)
}
