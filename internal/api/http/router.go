// Package http exposes the rental engine as a REST API. Paths mirror the
// frontend contract: /api/clients, /api/equipments, /api/rentals,
// /api/rentals/{id}/payments, /api/reports.
package http

import (
	"net/http"

	"github.com/gorilla/mux"
)

type Handlers struct {
	Client    *ClientHandler
	Equipment *EquipmentHandler
	Rental    *RentalHandler
	Payment   *PaymentHandler
	Report    *ReportHandler
}

func NewRouter(h Handlers) *mux.Router {
	r := mux.NewRouter()
	r.Use(RequestID, RequestLogging)

	api := r.PathPrefix("/api").Subrouter()

	api.HandleFunc("/clients", h.Client.Create).Methods(http.MethodPost)
	api.HandleFunc("/clients", h.Client.List).Methods(http.MethodGet)
	api.HandleFunc("/clients/{id:[0-9]+}", h.Client.Update).Methods(http.MethodPut)
	api.HandleFunc("/clients/{id:[0-9]+}", h.Client.Delete).Methods(http.MethodDelete)
	api.HandleFunc("/clients/{dni}", h.Client.Get).Methods(http.MethodGet)
	api.HandleFunc("/clients/{dni}/rentals", h.Client.RentalHistory).Methods(http.MethodGet)

	api.HandleFunc("/equipments", h.Equipment.Create).Methods(http.MethodPost)
	api.HandleFunc("/equipments", h.Equipment.List).Methods(http.MethodGet)
	api.HandleFunc("/equipments/{id:[0-9]+}", h.Equipment.Update).Methods(http.MethodPut)
	api.HandleFunc("/equipments/{id:[0-9]+}", h.Equipment.Delete).Methods(http.MethodDelete)
	api.HandleFunc("/equipments/{id:[0-9]+}/status", h.Equipment.ChangeStatus).Methods(http.MethodPut)

	api.HandleFunc("/rentals", h.Rental.Create).Methods(http.MethodPost)
	api.HandleFunc("/rentals/{id:[0-9]+}/return", h.Rental.Return).Methods(http.MethodPut)
	api.HandleFunc("/rentals/{id:[0-9]+}/cancel", h.Rental.Cancel).Methods(http.MethodPut)
	api.HandleFunc("/rentals/{rentalId:[0-9]+}/payments", h.Payment.Create).Methods(http.MethodPost)
	api.HandleFunc("/rentals/{rentalId:[0-9]+}/payments", h.Payment.List).Methods(http.MethodGet)

	api.HandleFunc("/reports/income", h.Report.Income).Methods(http.MethodGet)
	api.HandleFunc("/reports/top-equipments", h.Report.TopEquipments).Methods(http.MethodGet)
	api.HandleFunc("/reports/top-clients", h.Report.TopClients).Methods(http.MethodGet)

	return r
}
