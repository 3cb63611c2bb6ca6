package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"ecorent-backend/internal/service"

	"github.com/gorilla/mux"
)

type ClientHandler struct {
	clients service.ClientService
	rentals service.RentalService
}

func NewClientHandler(clients service.ClientService, rentals service.RentalService) *ClientHandler {
	return &ClientHandler{clients: clients, rentals: rentals}
}

type clientRequest struct {
	Name  string `json:"name"`
	DNI   string `json:"dni"`
	Phone string `json:"phone"`
	Email string `json:"email"`
}

func (h *ClientHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req clientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, r, "invalid request body")
		return
	}

	client, err := h.clients.Register(r.Context(), req.Name, req.DNI, req.Phone, req.Email)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toClientResponse(client))
}

func (h *ClientHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeBadRequest(w, r, "invalid client id")
		return
	}

	var req clientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, r, "invalid request body")
		return
	}

	client, err := h.clients.Update(r.Context(), id, req.Name, req.Phone, req.Email)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toClientResponse(client))
}

func (h *ClientHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeBadRequest(w, r, "invalid client id")
		return
	}

	if err := h.clients.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ClientHandler) Get(w http.ResponseWriter, r *http.Request) {
	dni := mux.Vars(r)["dni"]
	client, err := h.clients.FindByDNI(r.Context(), dni)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toClientResponse(client))
}

func (h *ClientHandler) List(w http.ResponseWriter, r *http.Request) {
	clients, err := h.clients.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	out := make([]clientResponse, 0, len(clients))
	for i := range clients {
		out = append(out, toClientResponse(&clients[i]))
	}
	writeJSON(w, http.StatusOK, out)
}

// RentalHistory serves a client's rentals, most recent start date first,
// with the equipment name joined in.
func (h *ClientHandler) RentalHistory(w http.ResponseWriter, r *http.Request) {
	dni := mux.Vars(r)["dni"]
	rentals, err := h.rentals.ListByClient(r.Context(), dni)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toRentalResponses(rentals))
}

func pathID(r *http.Request, name string) (int64, error) {
	return strconv.ParseInt(mux.Vars(r)[name], 10, 64)
}
