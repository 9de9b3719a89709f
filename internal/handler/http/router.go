package http

import (
	"log/slog"
	"os"

	"github.com/beginal/jeongsan-admin-sub000/internal/handler/http/middleware"
	"github.com/beginal/jeongsan-admin-sub000/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

type RouterConfig struct {
	JWTService        jwt.Service
	AuthHandler       AuthHandler
	UserHandler       UserHandler
	BranchHandler     BranchHandler
	RiderHandler      RiderHandler
	PromotionHandler  PromotionHandler
	SettlementHandler SettlementHandler
	AllowedOrigins    []string
	Environment       string
}

func NewRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "jeongsan-admin"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.Environment),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/refresh", cfg.AuthHandler.RefreshToken)
			r.Post("/logout", cfg.AuthHandler.Logout)
			r.Route("/oauth/callback", func(r chi.Router) {
				r.Get("/google", cfg.AuthHandler.OAuthCallbackGoogle)
			})

			r.Route("/login", func(r chi.Router) {
				r.Post("/", cfg.AuthHandler.Login)
				r.Route("/oauth", func(r chi.Router) {
					r.Get("/google", cfg.AuthHandler.LoginWithGoogle)
				})
			})
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(cfg.JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(cfg.JWTService.JWTAuth()))

			r.Route("/users", func(r chi.Router) {
				r.Get("/me", cfg.UserHandler.Me)
				r.Put("/me/password", cfg.UserHandler.ChangePassword)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/", cfg.UserHandler.Create)
				})
			})

			r.Route("/branches", func(r chi.Router) {
				r.Get("/", cfg.BranchHandler.List)
				r.Get("/{id}", cfg.BranchHandler.Get)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/", cfg.BranchHandler.Create)
					r.Put("/{id}", cfg.BranchHandler.Update)
					r.Delete("/{id}", cfg.BranchHandler.Delete)
				})
			})

			r.Route("/riders", func(r chi.Router) {
				r.Get("/", cfg.RiderHandler.List)
				r.Get("/{id}", cfg.RiderHandler.Get)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/", cfg.RiderHandler.Create)
					r.Put("/{id}", cfg.RiderHandler.Update)
					r.Delete("/{id}", cfg.RiderHandler.Delete)
				})
			})

			r.Route("/promotions", func(r chi.Router) {
				r.Get("/", cfg.PromotionHandler.List)
				r.Get("/{id}", cfg.PromotionHandler.Get)
				r.Get("/{id}/assignments", cfg.PromotionHandler.ListAssignments)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/", cfg.PromotionHandler.Create)
					r.Put("/{id}", cfg.PromotionHandler.Update)
					r.Delete("/{id}", cfg.PromotionHandler.Delete)
					r.Post("/{id}/assignments", cfg.PromotionHandler.Assign)
					r.Delete("/{id}/assignments/{assignmentID}", cfg.PromotionHandler.RemoveAssignment)
				})
			})

			r.Route("/settlements/weekly", func(r chi.Router) {
				r.Post("/", cfg.SettlementHandler.RunWeekly)
				r.Post("/export", cfg.SettlementHandler.ExportWeekly)
			})
		})
	})
	return r
}
