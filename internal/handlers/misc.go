package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/AnshRaj112/esangrahan-backend/pkg/response"
)

const APIVersion = "1.0.0"

// Root handles GET /
func Root(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"message": "E-waste Backend API is running",
		"version": APIVersion,
	})
}

// CORSCheck handles GET /api/test-cors and echoes the request origin.
func CORSCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"message": "CORS is working correctly",
		"origin":  r.Header.Get("Origin"),
	})
}

func Health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

// NotFound answers every unmatched route, including unsupported methods on
// known paths.
func NotFound(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusNotFound, response.Envelope{Message: "Route " + r.URL.RequestURI() + " not found"})
}
