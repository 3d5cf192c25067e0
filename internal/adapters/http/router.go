package http

import (
	"net/http"
	"time"

	"recipeauth/internal/adapters/http/middleware"
	"recipeauth/internal/config"
)

type RouterDeps struct {
	Auth   *AuthHandler
	Tokens middleware.TokenVerifier
}

func NewRouter(cfg *config.Config, deps *RouterDeps) http.Handler {
	mux := http.NewServeMux()

	globalMw := middleware.New()
	globalMw.Use(middleware.CORS(cfg))
	globalMw.Use(middleware.CSRF(cfg))

	authMw := middleware.New()
	authMw.Use(middleware.JWT(deps.Tokens))

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	mux.HandleFunc("POST /api/auth/signup", deps.Auth.Signup)
	mux.HandleFunc("POST /api/auth/verify-code", deps.Auth.VerifyCode)
	mux.HandleFunc("POST /api/auth/resend-code", deps.Auth.ResendCode)
	mux.HandleFunc("POST /api/auth/signin", deps.Auth.SignIn)
	mux.HandleFunc("POST /api/auth/signout", deps.Auth.SignOut)

	mux.Handle("GET /api/auth/me", authMw.Then(http.HandlerFunc(deps.Auth.User)))

	return globalMw.Apply(mux)
}

func NewServer(handler http.Handler, addr string) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
}
