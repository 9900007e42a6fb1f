package api

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/facegate/facegate/docs" // swagger documentation
)

func NewRouter(h *Handler, mw *Middleware) http.Handler {
	router := http.NewServeMux()

	router.HandleFunc("/api/health", h.Health)

	router.HandleFunc("POST /api/access/facial", h.FacialAccess)
	router.HandleFunc("POST /api/access/pin", h.PINAccess)

	router.HandleFunc("GET /api/areas", h.ListAreas)
	router.HandleFunc("GET /api/areas/{id}", h.GetArea)

	// administrative routes require an operator token
	router.Handle("GET /api/access", mw.Auth(http.HandlerFunc(h.ListAccesses)))
	router.Handle("GET /api/access/{id}", mw.Auth(http.HandlerFunc(h.GetAccess)))
	router.Handle("POST /api/employees", mw.Auth(http.HandlerFunc(h.CreateEmployee)))
	router.Handle("GET /api/employees", mw.Auth(http.HandlerFunc(h.ListEmployees)))
	router.Handle("GET /api/employees/{id}", mw.Auth(http.HandlerFunc(h.GetEmployee)))
	router.Handle("DELETE /api/employees/{id}", mw.Auth(http.HandlerFunc(h.DeleteEmployee)))
	router.Handle("POST /api/employees/{id}/face", mw.Auth(http.HandlerFunc(h.EnrollFace)))
	router.Handle("DELETE /api/employees/{id}/face", mw.Auth(http.HandlerFunc(h.UnenrollFace)))

	router.HandleFunc("/api/swagger/", httpSwagger.WrapHandler)

	handler := use(router, mw.Recover, mw.Cors, mw.WithIP, mw.WithDevice, mw.Log)

	return handler
}

func use(handler http.Handler, mws ...func(http.Handler) http.Handler) http.Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		handler = mws[i](handler)
	}

	return handler
}
