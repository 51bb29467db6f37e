package main

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/sebuszqo/HomeBudget/internal/auth"
	database "github.com/sebuszqo/HomeBudget/internal/db"
	"github.com/sebuszqo/HomeBudget/internal/finance/application"
	"github.com/sebuszqo/HomeBudget/internal/finance/infrastructure"
	"github.com/sebuszqo/HomeBudget/internal/finance/interfaces"
	"github.com/sebuszqo/HomeBudget/internal/household"
	"github.com/sebuszqo/HomeBudget/internal/notifier"
	"github.com/sebuszqo/HomeBudget/internal/user"
)

type Response struct {
	Message string `json:"message"`
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log.Printf("Started %s %s", r.Method, r.URL.Path)

		next.ServeHTTP(w, r)

		log.Printf("Completed %s in %v", r.URL.Path, time.Since(start))
	})
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string, errs ...[]string) {
	payload := map[string]interface{}{
		"status":  "error",
		"message": message,
		"code":    status,
	}
	if len(errs) > 0 && len(errs[0]) > 0 {
		payload["errors"] = errs[0]
	}
	respondJSON(w, status, payload)
}

type Server struct {
	router             *http.ServeMux
	authHandler        *auth.Handler
	authService        auth.Service
	userHandler        *user.Handler
	householdHandler   *household.Handler
	transactionHandler *interfaces.TransactionHandler
	categoryHandler    *interfaces.CategoryHandler
	wsHandler          *notifier.Handler
	dbService          *database.DBService
}

func notFoundHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusNotFound)
	json.NewEncoder(w).Encode(Response{Message: "Path not found"})
}

func checkConfiguration() error {
	err := godotenv.Load()
	if err != nil {
		log.Println("Error loading .env file, continuing with system environment variables")
	}

	if os.Getenv("JWT_SECRET") == "" {
		return errors.New("no JWT_SECRET Provided")
	}
	return nil
}

func (s *Server) handleReady(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, s.dbService.Health())
}

func (s *Server) RegisterRoutes() {
	// Public routes
	publicRoutes := http.NewServeMux()
	publicRoutes.Handle("POST /api/register", http.HandlerFunc(s.userHandler.HandleRegister))
	publicRoutes.Handle("POST /api/auth/login", http.HandlerFunc(s.authHandler.HandleLogin))
	publicRoutes.Handle("GET /api/ready", http.HandlerFunc(s.handleReady))

	// Protected routes (using JWT Access Token Middleware)
	protectedRoutes := http.NewServeMux()
	protect := s.authService.JWTAccessTokenMiddleware()

	protectedRoutes.Handle("GET /api/protected/profile", protect(http.HandlerFunc(s.userHandler.HandleGetUserProfile)))

	protectedRoutes.Handle("POST /api/protected/2fa/register", protect(http.HandlerFunc(s.authHandler.HandleRegisterTwoFactor)))
	protectedRoutes.Handle("POST /api/protected/2fa/verify-registration", protect(http.HandlerFunc(s.authHandler.HandleVerifyTwoFactorCode)))

	// TRANSACTIONS API
	protectedRoutes.Handle("POST /api/protected/transactions", protect(http.HandlerFunc(s.transactionHandler.CreateTransaction)))
	protectedRoutes.Handle("GET /api/protected/transactions", protect(http.HandlerFunc(s.transactionHandler.GetUserTransactions)))
	protectedRoutes.Handle("PUT /api/protected/transactions/{transactionID}", protect(http.HandlerFunc(s.transactionHandler.UpdateTransaction)))
	protectedRoutes.Handle("DELETE /api/protected/transactions/{transactionID}", protect(http.HandlerFunc(s.transactionHandler.DeleteTransaction)))

	// CATEGORIES API
	protectedRoutes.Handle("GET /api/protected/categories/predefined", protect(http.HandlerFunc(s.categoryHandler.GetPredefinedCategories)))
	protectedRoutes.Handle("GET /api/protected/categories", protect(http.HandlerFunc(s.categoryHandler.GetUserCategories)))

	// HOUSEHOLDS API
	protectedRoutes.Handle("POST /api/protected/households", protect(http.HandlerFunc(s.householdHandler.HandleCreateHousehold)))
	protectedRoutes.Handle("GET /api/protected/households/members", protect(http.HandlerFunc(s.householdHandler.HandleListMembers)))
	protectedRoutes.Handle("POST /api/protected/households/invitations", protect(http.HandlerFunc(s.householdHandler.HandleInvite)))
	protectedRoutes.Handle("POST /api/protected/households/invitations/{invitationID}/accept", protect(http.HandlerFunc(s.householdHandler.HandleAcceptInvitation)))

	// Push channel: long-lived websocket, registered per authenticated user.
	protectedRoutes.Handle("GET /api/protected/ws", protect(http.HandlerFunc(s.wsHandler.HandleConnection)))

	// Main router
	mainRouter := http.NewServeMux()
	mainRouter.Handle("/api/", publicRoutes)
	mainRouter.Handle("/api/protected/", protectedRoutes)
	mainRouter.Handle("/", http.HandlerFunc(notFoundHandler))

	s.router = mainRouter
}

func main() {
	if err := checkConfiguration(); err != nil {
		log.Fatalf("Missing configuration, update to start server")
	}

	dbService, err := database.NewDBService()
	if err != nil {
		log.Fatalf("Could not initialize database: %v", err)
	}
	defer dbService.Close()

	userRepo := user.NewUserRepository(dbService.DB)
	userService := user.NewUserService(userRepo)
	userHandler := user.NewHandler(userService)

	jwtManager := auth.NewJWTManager()
	authenticator := auth.Authenticator{}
	authService := auth.NewAuthService(userService, jwtManager, authenticator)
	authHandler := auth.NewHandler(authService)

	registry := notifier.NewRegistry()
	householdRepo := household.NewHouseholdRepository(dbService.DB)
	notifierService := notifier.NewService(registry, householdRepo)
	wsHandler := notifier.NewHandler(registry)

	householdService := household.NewHouseholdService(householdRepo, userService, notifierService)
	householdHandler := household.NewHandler(householdService, respondJSON, respondError)

	categoryRepo := infrastructure.NewCategoryRepository(dbService.DB)
	categoryService := application.NewCategoryService(categoryRepo)
	categoryHandler := interfaces.NewCategoryHandler(categoryService, respondJSON, respondError)

	transactionRepo := infrastructure.NewTransactionRepository(dbService.DB)
	transactionService := application.NewTransactionService(transactionRepo, categoryService, userService, notifierService)
	transactionHandler := interfaces.NewTransactionHandler(transactionService, respondJSON, respondError)

	server := &Server{
		authHandler:        authHandler,
		authService:        authService,
		userHandler:        userHandler,
		householdHandler:   householdHandler,
		transactionHandler: transactionHandler,
		categoryHandler:    categoryHandler,
		wsHandler:          wsHandler,
		dbService:          dbService,
	}
	server.RegisterRoutes()

	handler := loggingMiddleware(server.router)
	addr := os.Getenv("HTTP_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	log.Printf("Server starting on %s...", addr)
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
