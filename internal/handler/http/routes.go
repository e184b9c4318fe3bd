package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/imonsheikh/a11-b10-restaurant-management-server/internal/utils"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID, h.withLogging, h.metrics.Middleware, cors.Handler(h.cors))
	if h.requestTimeout > 0 {
		router.Use(middleware.Timeout(h.requestTimeout))
	}

	// the exposition handler compresses on its own
	router.Get("/metrics", h.metrics.Handler().ServeHTTP)

	router.Group(func(r chi.Router) {
		r.Use(withGZip)

		// routes without authorization
		r.Get("/", h.root)
		r.Post("/jwt", h.issueToken)
		r.Get("/logout", h.logout)

		r.Post("/add-food", h.createFood)
		r.Get("/all-foods", h.searchFoods)
		r.Get("/food/{id}", h.getFood)
		r.Put("/update-food/{id}", h.upsertFood)
		r.Get("/foods", h.topFoods)

		r.Post("/add-food-purchase", h.purchase)

		// routes with authorization
		r.Group(func(r chi.Router) {
			r.Use(h.auth)

			r.Delete("/order/{id}", h.deleteOrder)

			r.With(h.ownership).Get("/foods/{email}", h.foodsByOwner)
			r.With(h.ownership).Get("/orders/{email}", h.ordersByEmail)
		})
	})

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		utils.WriteMessage(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
	})
	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
