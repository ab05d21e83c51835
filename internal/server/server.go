package server

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"shiprates/internal/shipping"
)

type Server struct {
	resolver *shipping.Resolver
}

// New builds the HTTP handler around a rate resolver.
func New(resolver *shipping.Resolver) http.Handler {
	s := &Server{resolver: resolver}
	r := chi.NewRouter()
	// Observability: Request ID and basic logger
	r.Use(requestIDMiddleware)
	r.Use(middleware.Logger)
	r.Get("/healthz", s.handleHealth)
	r.Post("/shipping/calculate", s.handleCalculate)
	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

// Calculate response. Rates is always present, empty when nothing applies.
type RateJSON struct {
	Cost         float64 `json:"cost"`
	DeliveryDays int     `json:"deliveryDays"`
	ServiceCode  string  `json:"serviceCode"`
	ServiceName  string  `json:"serviceName"`
	CarrierLogo  string  `json:"carrierLogo"`
	CarrierID    int64   `json:"carrierId"`
}

type CalculateResponse struct {
	Success     bool       `json:"success"`
	Rates       []RateJSON `json:"rates"`
	TotalWeight float64    `json:"totalWeight"`
	ZoneFound   string     `json:"zoneFound,omitempty"`
	Error       string     `json:"error,omitempty"`
}

// handleCalculate quotes shipping for a cart and destination. The endpoint
// is called opportunistically while the buyer types an address, so malformed
// or incomplete payloads produce an empty rate list, not an error; only a
// failing store produces success=false.
func (s *Server) handleCalculate(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeErrorJSON(w, http.StatusBadRequest, "read_error", "read error")
		return
	}
	lines, dest := normalizeCalculateRequest(body)

	result, err := s.resolver.Resolve(r.Context(), lines, dest)
	if err != nil {
		log.Println("rate resolution error:", err)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(CalculateResponse{
			Success:     false,
			Rates:       []RateJSON{},
			TotalWeight: result.TotalWeightKg,
			Error:       "rates unavailable",
		})
		return
	}

	resp := CalculateResponse{
		Success:     true,
		Rates:       make([]RateJSON, 0, len(result.Quotes)),
		TotalWeight: result.TotalWeightKg,
		ZoneFound:   result.ZoneName,
	}
	for _, q := range result.Quotes {
		resp.Rates = append(resp.Rates, RateJSON{
			Cost:         q.Price,
			DeliveryDays: q.DeliveryDays,
			ServiceCode:  q.CarrierCode,
			ServiceName:  q.CarrierName,
			CarrierLogo:  q.LogoPath,
			CarrierID:    q.CarrierID,
		})
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// writeErrorJSON writes a standardized JSON error response:
// {"error": {"code": string, "message": string}}
func writeErrorJSON(w http.ResponseWriter, status int, code string, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}

// requestIDMiddleware ensures X-Request-ID is set on the response.
// If provided in the request header, it is propagated; otherwise a UUID is generated.
func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rid := strings.TrimSpace(r.Header.Get("X-Request-ID"))
		if rid == "" {
			rid = uuid.New().String()
		}
		w.Header().Set("X-Request-ID", rid)
		next.ServeHTTP(w, r)
	})
}
