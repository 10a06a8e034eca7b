package main

import (
	"log"
	"net/http"
	"os"

	"github.com/besmartkids/backend/internal/attempts"
	"github.com/besmartkids/backend/internal/auth"
	"github.com/besmartkids/backend/internal/database"
	"github.com/besmartkids/backend/internal/generator"
	"github.com/besmartkids/backend/internal/importer"
	"github.com/besmartkids/backend/internal/materials"
	"github.com/besmartkids/backend/internal/middleware"
	"github.com/besmartkids/backend/internal/questions"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}

	// Initialize database
	db, err := database.Connect()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize handlers
	authHandler := auth.NewHandler(db)

	questionStore := questions.NewStore(db)
	questionService := questions.NewService(questionStore)
	questionHandler := questions.NewHandler(questionService)

	importHandler := importer.NewHandler(importer.NewService(questionStore))

	materialStore := materials.NewStore(db)
	materialHandler := materials.NewHandler(materialStore)

	attemptHandler := attempts.NewHandler(attempts.NewService(attempts.NewStore(db)))

	drafter := generator.NewDrafter()
	drafterHandler := generator.NewHandler(drafter, questionService)

	// Setup router
	r := mux.NewRouter()
	api := r.PathPrefix("/api/v1").Subrouter()

	// Public routes
	api.HandleFunc("/auth/register", authHandler.Register).Methods("POST")
	api.HandleFunc("/auth/login", authHandler.Login).Methods("POST")

	// Protected routes (any logged-in user)
	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.AuthMiddleware)
	protected.HandleFunc("/auth/me", authHandler.GetCurrentUser).Methods("GET")
	protected.HandleFunc("/materials", materialHandler.List).Methods("GET")
	protected.HandleFunc("/materials/{id}", materialHandler.Get).Methods("GET")
	protected.HandleFunc("/materials/{id}/quiz", questionHandler.GetQuiz).Methods("GET")
	protected.HandleFunc("/materials/{id}/attempts", attemptHandler.SubmitAttempt).Methods("POST")
	protected.HandleFunc("/materials/{id}/attempts", attemptHandler.ListAttempts).Methods("GET")

	// Admin routes (CMS)
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.AuthMiddleware, middleware.RequireAdmin)
	admin.HandleFunc("/materials", materialHandler.Create).Methods("POST")
	admin.HandleFunc("/materials/{id}", materialHandler.Update).Methods("PUT")
	admin.HandleFunc("/materials/{id}", materialHandler.Delete).Methods("DELETE")
	admin.HandleFunc("/materials/{id}/questions", questionHandler.ListByMaterial).Methods("GET")
	admin.HandleFunc("/questions", questionHandler.CreateQuestion).Methods("POST")
	admin.HandleFunc("/questions/import", importHandler.Import).Methods("POST")
	admin.HandleFunc("/questions/{id}", questionHandler.GetQuestion).Methods("GET")
	admin.HandleFunc("/questions/{id}", questionHandler.UpdateQuestion).Methods("PUT")
	admin.HandleFunc("/questions/{id}", questionHandler.DeleteQuestion).Methods("DELETE")
	admin.HandleFunc("/questions/{id}/explanation/draft", drafterHandler.DraftExplanation).Methods("POST")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// CORS
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	handler := c.Handler(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on :%s", port)
	if err := http.ListenAndServe(":"+port, handler); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
