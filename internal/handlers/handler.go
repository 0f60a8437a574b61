package handlers

import (
	"sync"

	"brandTracker/internal/invite"
	"brandTracker/internal/models/brand"
	"brandTracker/internal/repository"
	"brandTracker/internal/views"

	"github.com/go-chi/chi/v5"
)

// Deps - зависимости Handler.
type Deps struct {
	Tasks     TaskService
	Brands    BrandService
	Snapshots repository.SnapshotRepository
	Tokens    TokenStore
	Invites   InviteWorkflow
	Engine    *views.Engine
}

type Handler struct {
	tasks     TaskService
	brands    BrandService
	snapshots repository.SnapshotRepository
	tokens    TokenStore
	invites   InviteWorkflow
	engine    *views.Engine

	formsMu sync.Mutex
	// один диалог приглашения на бренд; закрытая форма заменяется при следующей отправке
	forms map[brand.ID]*invite.Form
}

func New(d Deps) *Handler {
	return &Handler{
		tasks:     d.Tasks,
		brands:    d.Brands,
		snapshots: d.Snapshots,
		tokens:    d.Tokens,
		invites:   d.Invites,
		engine:    d.Engine,
		forms:     make(map[brand.ID]*invite.Form),
	}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/health", h.HealthCheck)

	r.Route("/session/token", func(r chi.Router) {
		r.Get("/", h.GetSession)     // GET /session/token
		r.Put("/", h.PutToken)       // PUT /session/token
		r.Delete("/", h.DeleteToken) // DELETE /session/token
	})

	r.Route("/views", func(r chi.Router) {
		r.Get("/tasks/stats", h.TaskStats) // GET /views/tasks/stats

		r.Route("/brands", func(r chi.Router) {
			r.Get("/", h.BrandListing) // GET /views/brands

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.BrandDetail)          // GET /views/brands/{id}
				r.Get("/history", h.BrandHistory)  // GET /views/brands/{id}/history
				r.Post("/invite", h.InviteToBrand) // POST /views/brands/{id}/invite
			})
		})
	})

	r.Route("/tasks", func(r chi.Router) {
		r.Get("/", h.ListTasks)   // GET /tasks
		r.Post("/", h.CreateTask) // POST /tasks

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.GetTask)                // GET /tasks/{id}
			r.Put("/", h.UpdateTask)             // PUT /tasks/{id}
			r.Delete("/", h.DeleteTask)          // DELETE /tasks/{id}
			r.Put("/approval", h.UpdateApproval) // PUT /tasks/{id}/approval
			r.Get("/history", h.TaskHistory)     // GET /tasks/{id}/history

			r.Route("/comments", func(r chi.Router) {
				r.Get("/", h.ListComments)                // GET /tasks/{id}/comments
				r.Post("/", h.AddComment)                 // POST /tasks/{id}/comments
				r.Delete("/{commentId}", h.DeleteComment) // DELETE /tasks/{id}/comments/{commentId}
			})
		})
	})

	r.Route("/brands", func(r chi.Router) {
		r.Get("/", h.ListBrands)   // GET /brands
		r.Post("/", h.CreateBrand) // POST /brands

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.GetBrand)       // GET /brands/{id}
			r.Put("/", h.UpdateBrand)    // PUT /brands/{id}
			r.Delete("/", h.DeleteBrand) // DELETE /brands/{id}
		})
	})
}

func (h *Handler) form(id brand.ID) *invite.Form {
	h.formsMu.Lock()
	defer h.formsMu.Unlock()

	f, ok := h.forms[id]
	if !ok || !f.IsOpen() {
		f = invite.NewForm()
		h.forms[id] = f
	}
	return f
}
