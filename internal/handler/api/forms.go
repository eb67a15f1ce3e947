// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"

	"github.com/olegiv/newsdesk/internal/service"
)

const (
	// uploadField is the multipart field carrying the image.
	uploadField = "image"

	// maxMemory is the part of a multipart form kept in memory; larger
	// files are spooled to disk by net/http.
	maxMemory = 1 << 20

	maxBodySize = service.MaxUploadSize + maxMemory
)

var (
	errFileTooLarge = errors.New("file too large")
	errBadBody      = errors.New("invalid request body")
)

// request is a parsed create/update/login body.
type request struct {
	fields service.Fields
	upload *service.Upload

	file multipart.File
	form *multipart.Form
}

// close releases the uploaded file and any temporary files of the form.
func (req *request) close() {
	if req.file != nil {
		_ = req.file.Close()
	}
	if req.form != nil {
		_ = req.form.RemoveAll()
	}
}

// readRequest parses a multipart, urlencoded or JSON body. Only multipart
// bodies can carry an upload. Unknown content types yield no fields.
func readRequest(w http.ResponseWriter, r *http.Request) (*request, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
	req := &request{fields: service.Fields{}}

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mediaType {
	case "multipart/form-data":
		if err := r.ParseMultipartForm(maxMemory); err != nil {
			return nil, bodyError(err)
		}
		req.form = r.MultipartForm
		for name, values := range r.MultipartForm.Value {
			if len(values) > 0 {
				req.fields[name] = values[0]
			}
		}
		if files := r.MultipartForm.File[uploadField]; len(files) > 0 {
			if err := req.attach(files[0]); err != nil {
				req.close()
				return nil, err
			}
		}

	case "application/x-www-form-urlencoded":
		if err := r.ParseForm(); err != nil {
			return nil, bodyError(err)
		}
		for name := range r.PostForm {
			req.fields[name] = r.PostForm.Get(name)
		}

	case "application/json":
		if err := decodeJSONFields(r.Body, req.fields); err != nil {
			return nil, err
		}
	}

	return req, nil
}

func (req *request) attach(fh *multipart.FileHeader) error {
	if fh.Size > service.MaxUploadSize {
		return errFileTooLarge
	}
	f, err := fh.Open()
	if err != nil {
		return fmt.Errorf("opening upload: %w", err)
	}
	req.file = f
	req.upload = &service.Upload{Filename: fh.Filename, Reader: f}
	return nil
}

// decodeJSONFields reads a flat JSON object. Scalars are kept in their
// string form; nested values are rejected.
func decodeJSONFields(body io.Reader, fields service.Fields) error {
	var raw map[string]any
	if err := json.NewDecoder(body).Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return bodyError(err)
	}

	for name, v := range raw {
		switch val := v.(type) {
		case nil:
			fields[name] = ""
		case string:
			fields[name] = val
		case float64, bool:
			fields[name] = fmt.Sprint(val)
		default:
			return fmt.Errorf("%w: field %q must be a string", errBadBody, name)
		}
	}
	return nil
}

func bodyError(err error) error {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return errFileTooLarge
	}
	return fmt.Errorf("%w: %w", errBadBody, err)
}

// readFields parses a body that must not carry an upload.
func readFields(w http.ResponseWriter, r *http.Request) (service.Fields, error) {
	req, err := readRequest(w, r)
	if err != nil {
		return nil, err
	}
	req.close()
	return req.fields, nil
}

// writeBodyError reports a body that could not be parsed.
func writeBodyError(w http.ResponseWriter, err error) {
	if errors.Is(err, errFileTooLarge) {
		WriteMessage(w, http.StatusBadRequest, "File too large")
		return
	}
	WriteMessage(w, http.StatusBadRequest, "Invalid request body")
}
