// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// ErrorBody is the JSON body of every failed admin API response.
type ErrorBody struct {
	Error string `json:"error"`
}

// WriteJSON marshals data and writes it with the given status code and an
// "application/json" content type. It returns the number of body bytes
// written.
//
// If marshaling fails nothing but a plain 500 is written and the wrapped
// error is returned.
func WriteJSON(w http.ResponseWriter, data any, statusCode int) (int, error) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		http.Error(w, "error writing data to JSON", http.StatusInternalServerError)
		return 0, fmt.Errorf("error writing data to JSON: %w", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	return w.Write(jsonData)
}

// WriteError writes err as an [ErrorBody].
//
//	WriteError(w, service.ErrPassInProgress, http.StatusConflict)
func WriteError(w http.ResponseWriter, err error, statusCode int) (int, error) {
	return WriteJSON(w, ErrorBody{Error: err.Error()}, statusCode)
}
