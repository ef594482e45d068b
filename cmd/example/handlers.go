package main

import (
	"math/rand"
	"net/http"
	"time"

	"github.com/nicktill/tinyga/pkg/sdk/batch"
	"github.com/nicktill/tinyga/pkg/sdk/hit"
)

// setupHandlers configures all HTTP handlers
func setupHandlers(mux *http.ServeMux, b *batch.Batcher) {
	mux.HandleFunc("/api/users", handleUsers())
	mux.HandleFunc("/api/orders", handleOrders(b))
	mux.HandleFunc("/health", handleHealth())
}

// handleUsers handles /api/users endpoint
func handleUsers() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(time.Duration(50+rand.Intn(50)) * time.Millisecond)

		// Rare errors show up as exception hits via the middleware
		if rand.Float32() < 0.05 {
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"users": [{"id": 1, "name": "Alice"}, {"id": 2, "name": "Bob"}]}`))
	}
}

// handleOrders records an ecommerce transaction for every order served
func handleOrders(b *batch.Batcher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orderID := "T" + time.Now().Format("150405.000")

		b.Add(hit.Transaction{ID: orderID, Affiliation: "example", Revenue: 24.98, Shipping: 4.99, Tax: 2.5, Currency: "USD"})
		b.Add(hit.Item{TransactionID: orderID, Name: "Widget", Price: hit.Ptr(9.99), Quantity: hit.Ptr(2), SKU: "W-1", Currency: "USD"})

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"order": "` + orderID + `", "total": 24.98}`))
	}
}

// handleHealth handles /health endpoint
func handleHealth() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status": "healthy"}`))
	}
}
