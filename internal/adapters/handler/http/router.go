package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func NewHandler(wizardHandler *WizardHandler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("welcome"))
		})

		r.Route("/wizards", func(r chi.Router) {
			r.Post("/", wizardHandler.CreateWizard)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", wizardHandler.GetWizard)
				r.Delete("/", wizardHandler.DeleteWizard)
				r.Patch("/draft", wizardHandler.ApplyPatch)
				r.Post("/draft/batch", wizardHandler.ApplyBatch)
				r.Post("/reset", wizardHandler.Reset)
				r.Post("/advance", wizardHandler.Advance)
				r.Post("/retreat", wizardHandler.Retreat)
				r.Post("/recovery", wizardHandler.Recover)
				r.Delete("/recovery", wizardHandler.DiscardRecovery)
				r.Post("/submitted", wizardHandler.Submitted)
			})
		})
	})

	return r
}
