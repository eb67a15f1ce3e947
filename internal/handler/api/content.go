// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/newsdesk/internal/service"
)

// contentText holds the response keys and messages of one content kind.
type contentText struct {
	itemKey string
	listKey string
	created string
	updated string
	deleted string
	// itemOnCreate includes the created record in the create response.
	itemOnCreate bool
}

// contentHandler serves the CRUD routes of one content kind.
type contentHandler[T any] struct {
	svc    *service.ContentService[T]
	text   contentText
	logger *slog.Logger
}

func (h *contentHandler[T]) list(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.List(r.Context())
	if err != nil {
		WriteServiceError(w, r, h.logger, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{h.text.listKey: items})
}

func (h *contentHandler[T]) get(w http.ResponseWriter, r *http.Request) {
	item, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		WriteServiceError(w, r, h.logger, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{h.text.itemKey: item})
}

func (h *contentHandler[T]) create(w http.ResponseWriter, r *http.Request) {
	req, err := readRequest(w, r)
	if err != nil {
		writeBodyError(w, err)
		return
	}
	defer req.close()

	item, err := h.svc.Create(r.Context(), req.fields, req.upload)
	if err != nil {
		WriteServiceError(w, r, h.logger, err)
		return
	}

	resp := map[string]any{"message": h.text.created}
	if h.text.itemOnCreate {
		resp[h.text.itemKey] = item
	}
	WriteJSON(w, http.StatusOK, resp)
}

func (h *contentHandler[T]) update(w http.ResponseWriter, r *http.Request) {
	req, err := readRequest(w, r)
	if err != nil {
		writeBodyError(w, err)
		return
	}
	defer req.close()

	item, err := h.svc.Update(r.Context(), chi.URLParam(r, "id"), req.fields, req.upload)
	if err != nil {
		WriteServiceError(w, r, h.logger, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{
		"message":      h.text.updated,
		h.text.itemKey: item,
	})
}

func (h *contentHandler[T]) remove(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		WriteServiceError(w, r, h.logger, err)
		return
	}
	WriteMessage(w, http.StatusOK, h.text.deleted)
}
