// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package api provides the JSON handlers of the newsdesk admin API.
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/olegiv/newsdesk/internal/service"
)

// Handler holds shared dependencies for all API handlers.
type Handler struct {
	admins   *service.AdminService
	articles *contentHandler[service.Article]
	carousel *contentHandler[service.CarouselItem]
	logger   *slog.Logger
}

// NewHandler creates a new API handler.
func NewHandler(admins *service.AdminService, articles *service.ArticleService, carousel *service.CarouselService, logger *slog.Logger) *Handler {
	return &Handler{
		admins: admins,
		articles: &contentHandler[service.Article]{
			svc:    articles,
			logger: logger,
			text: contentText{
				itemKey:      "article",
				listKey:      "articles",
				created:      "Article added successfully",
				updated:      "Article updated successfully",
				deleted:      "Article deleted successfully",
				itemOnCreate: false,
			},
		},
		carousel: &contentHandler[service.CarouselItem]{
			svc:    carousel,
			logger: logger,
			text: contentText{
				itemKey:      "carousel",
				listKey:      "carousel",
				created:      "Carousel item added successfully",
				updated:      "Carousel item updated successfully",
				deleted:      "Carousel item deleted successfully",
				itemOnCreate: true,
			},
		},
		logger: logger,
	}
}

// Routes registers the admin API on r.
func (h *Handler) Routes(r chi.Router) {
	r.Post("/admin/login", h.Login)

	r.Route("/admin/dashboard", func(r chi.Router) {
		r.Post("/add-article", h.articles.create)
		r.Get("/all-articles", h.articles.list)
		r.Get("/article/{id}", h.articles.get)
		r.Put("/update-article/{id}", h.articles.update)
		r.Delete("/delete-article/{id}", h.articles.remove)

		r.Get("/carousel", h.carousel.list)
		r.Post("/carousel", h.carousel.create)
		r.Get("/carousel/{id}", h.carousel.get)
		r.Put("/carousel/{id}", h.carousel.update)
		r.Delete("/carousel/{id}", h.carousel.remove)
	})
}

// Message is the body of responses that only carry a message.
type Message struct {
	Message string `json:"message"`
}

// WriteJSON writes a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}

// WriteMessage writes {"message": msg}.
func WriteMessage(w http.ResponseWriter, statusCode int, msg string) {
	WriteJSON(w, statusCode, Message{Message: msg})
}

// WriteServiceError translates a service error into a status code and a
// message body. Unexpected errors are logged and reported generically.
func WriteServiceError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	var (
		verr *service.ValidationError
		nerr *service.NotFoundError
	)

	switch {
	case errors.As(err, &verr):
		WriteMessage(w, http.StatusBadRequest, verr.Message)
	case errors.Is(err, service.ErrValidation):
		WriteMessage(w, http.StatusBadRequest, "Invalid request")
	case errors.As(err, &nerr):
		WriteMessage(w, http.StatusNotFound, nerr.Error())
	case errors.Is(err, service.ErrNotFound):
		WriteMessage(w, http.StatusNotFound, "Not found")
	case errors.Is(err, service.ErrInvalidCredentials):
		WriteMessage(w, http.StatusBadRequest, "Invalid credentials")
	default:
		logger.Error("request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", middleware.GetReqID(r.Context()),
			"error", err)
		WriteMessage(w, http.StatusInternalServerError, "Server error")
	}
}
