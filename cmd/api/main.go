package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/beginal/jeongsan-admin-sub000/internal/config"
	appHTTP "github.com/beginal/jeongsan-admin-sub000/internal/handler/http"
	"github.com/beginal/jeongsan-admin-sub000/internal/pkg/database"
	"github.com/beginal/jeongsan-admin-sub000/internal/pkg/jwt"
	"github.com/beginal/jeongsan-admin-sub000/internal/pkg/oauth"
	"github.com/beginal/jeongsan-admin-sub000/internal/pkg/xlsx"
	"github.com/beginal/jeongsan-admin-sub000/internal/repository/postgresql"
	serviceAuth "github.com/beginal/jeongsan-admin-sub000/internal/service/auth"
	branchService "github.com/beginal/jeongsan-admin-sub000/internal/service/branch"
	promotionService "github.com/beginal/jeongsan-admin-sub000/internal/service/promotion"
	riderService "github.com/beginal/jeongsan-admin-sub000/internal/service/rider"
	settlementService "github.com/beginal/jeongsan-admin-sub000/internal/service/settlement"
	userService "github.com/beginal/jeongsan-admin-sub000/internal/service/user"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	userRepo := postgresql.NewUserRepository(db)
	jwtRepo := postgresql.NewJWTRepository(db)
	branchRepo := postgresql.NewBranchRepository(db)
	riderRepo := postgresql.NewRiderRepository(db)
	promotionRepo := postgresql.NewPromotionRepository(db)
	dailySettlementRepo := postgresql.NewDailySettlementRepository(db)

	jwtSvc := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	googleSvc := oauth.NewGoogleService(cfg.OAuth2Google.ClientID, cfg.OAuth2Google.ClientSecret, cfg.OAuth2Google.RedirectURL, cfg.OAuth2Google.Scopes)

	authSvc := serviceAuth.NewAuthService(db, userRepo, jwtSvc, jwtRepo)
	userSvc := userService.NewUserService(userRepo)
	branchSvc := branchService.NewBranchService(branchRepo)
	riderSvc := riderService.NewRiderService(riderRepo, branchRepo)
	promotionSvc := promotionService.NewPromotionService(promotionRepo, branchRepo)
	settlementSvc := settlementService.NewSettlementService(
		logger,
		xlsx.NewParser(),
		dailySettlementRepo,
		branchRepo,
		riderRepo,
		promotionRepo,
		xlsx.NewExporter(),
	)

	authHandler := appHTTP.NewAuthHandler(jwtSvc, authSvc, googleSvc, cfg.App.FrontendURL)
	userHandler := appHTTP.NewUserHandler(userSvc)
	branchHandler := appHTTP.NewBranchHandler(branchSvc)
	riderHandler := appHTTP.NewRiderHandler(riderSvc)
	promotionHandler := appHTTP.NewPromotionHandler(promotionSvc)
	settlementHandler := appHTTP.NewSettlementHandler(settlementSvc)

	router := appHTTP.NewRouter(appHTTP.RouterConfig{
		JWTService:        jwtSvc,
		AuthHandler:       authHandler,
		UserHandler:       userHandler,
		BranchHandler:     branchHandler,
		RiderHandler:      riderHandler,
		PromotionHandler:  promotionHandler,
		SettlementHandler: settlementHandler,
		AllowedOrigins:    cfg.App.AllowedOrigins,
		Environment:       cfg.App.Env,
	})

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
