package api

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes mounts the REST and WebSocket endpoints on r.
func RegisterRoutes(r chi.Router, users *UserHandler, tasks *TaskHandler, ws *WSHandler) {
	r.Get("/health", Health)

	r.Route("/users", func(r chi.Router) {
		r.Post("/", users.CreateUser)
		r.Get("/{id}", users.GetUser)
		r.Patch("/{id}", users.UpdateUser)
	})

	r.Route("/tasks", func(r chi.Router) {
		r.Post("/", tasks.CreateTask)
		r.Get("/", tasks.ListTasks)
		r.Get("/{id}", tasks.GetTask)
		r.Patch("/{id}", tasks.UpdateTask)
	})

	if ws != nil {
		r.Get("/ws", ws.PublicRoom)
		r.Get("/ws/users/{user_id}", ws.UserRoom)
	}
}
