package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/streetsweeper/internal/reference"
)

// StatesHandler exposes the state table.
type StatesHandler struct {
	Tables *reference.Tables
}

// StateInfo is one state or territory.
type StateInfo struct {
	Code string `json:"code"`
	Name string `json:"name"`
	FIPS string `json:"fips"`
}

// GetState handles GET /api/states/{code}. The path value may be a code or a
// full name.
func (h *StatesHandler) GetState(w http.ResponseWriter, r *http.Request) {
	value := mux.Vars(r)["code"]

	code, ok := h.Tables.StateCode(value)
	if !ok {
		writeError(w, http.StatusNotFound, CodeNotFound, "unknown state "+value)
		return
	}
	name, _ := h.Tables.StateName(code)
	fips, _ := h.Tables.StateFIPS(code)

	writeData(w, http.StatusOK, StateInfo{Code: code, Name: name, FIPS: fips})
}

// Health handles GET /healthz.
func Health(w http.ResponseWriter, r *http.Request) {
	writeData(w, http.StatusOK, map[string]string{"status": "ok"})
}
