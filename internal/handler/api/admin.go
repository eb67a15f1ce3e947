// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"errors"
	"net/http"

	"github.com/olegiv/newsdesk/internal/service"
)

// LoginResponse is returned by a successful login.
type LoginResponse struct {
	Message string `json:"message"`
	Role    string `json:"role"`
	Name    string `json:"name"`
}

// Login handles POST /admin/login.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	fields, err := readFields(w, r)
	if err != nil {
		writeBodyError(w, err)
		return
	}

	res, err := h.admins.Login(r.Context(), fields["name"], fields["password"])
	if err != nil {
		var nerr *service.NotFoundError
		if errors.As(err, &nerr) {
			// Unknown admins are a client error on this route
			WriteMessage(w, http.StatusBadRequest, nerr.Error())
			return
		}
		WriteServiceError(w, r, h.logger, err)
		return
	}

	WriteJSON(w, http.StatusOK, LoginResponse{
		Message: "Login successful",
		Role:    res.Role,
		Name:    res.Name,
	})
}
