package main

import (
	"context"
	"log"
	"net/http"
	"time"
)

// startTrafficSimulator makes requests against the example app so hits flow
func startTrafficSimulator(ctx context.Context) {
	// Give server a moment to fully start
	time.Sleep(500 * time.Millisecond)

	ticker := time.NewTicker(3 * time.Second)
	defer ticker.Stop()

	endpoints := []string{"/api/users", "/api/orders", "/health"}
	log.Println("Traffic simulator started - making requests every 3 seconds")

	reqCount := 0
	for {
		select {
		case <-ctx.Done():
			log.Println("Traffic simulator stopped")
			return
		case <-ticker.C:
			reqCount++
			endpoint := endpoints[reqCount%len(endpoints)]

			go func(ep string, count int) {
				resp, err := http.Get("http://localhost" + listenAddr + ep)
				if err != nil {
					log.Printf("Traffic simulation failed for %s: %v", ep, err)
					return
				}
				defer resp.Body.Close()
				log.Printf("Request #%d: %s → %s", count, ep, resp.Status)
			}(endpoint, reqCount)
		}
	}
}
