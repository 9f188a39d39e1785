package handlers

import (
	"log"
	"net/http"

	"inkwell-server/db"
	"inkwell-server/shared"
)

// Visitor endpoints are open - the consent banner fires before any session
// exists, and the public counters back the landing page.

func CreateVisitorHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("Received request for CreateVisitorHandler")

	var req shared.CreateVisitorRequest
	if !readJson(w, r, &req) {
		return
	}

	visitor := &db.Visitor{
		City:    req.City,
		Country: req.Country,
	}
	if err := db.CreateVisitor(r.Context(), visitor); err != nil {
		serverError(w, r, "Error recording visitor", err)
		return
	}

	count, err := db.CountVisitors(r.Context())
	if err != nil {
		serverError(w, r, "Error counting visitors", err)
		return
	}

	writeJsonStatus(w, http.StatusCreated, shared.CountResponse{Count: count})
}

func VisitorCountHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("Received request for VisitorCountHandler")

	count, err := db.CountVisitors(r.Context())
	if err != nil {
		serverError(w, r, "Error counting visitors", err)
		return
	}
	writeJson(w, shared.CountResponse{Count: count})
}

func UserCountHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("Received request for UserCountHandler")

	count, err := db.CountUsers(r.Context())
	if err != nil {
		serverError(w, r, "Error counting users", err)
		return
	}
	writeJson(w, shared.CountResponse{Count: count})
}
