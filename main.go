package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"uptask-project/backend/handlers"
	"uptask-project/backend/logging"
	"uptask-project/backend/middleware"
	"uptask-project/backend/models"
	"uptask-project/backend/services"
	"uptask-project/backend/utils"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		w.Header().Set("Access-Control-Max-Age", "86400")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// ensureIndexes creates the unique email index and the TTL index that
// garbage-collects verification tokens 10 minutes after creation.
func ensureIndexes(ctx context.Context, users, tokens *mongo.Collection) error {
	_, err := users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create email index: %v", err)
	}

	_, err = tokens.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "createdAt", Value: 1}},
		Options: options.Index().SetExpireAfterSeconds(int32(models.TokenTTL.Seconds())),
	})
	if err != nil {
		return fmt.Errorf("failed to create token TTL index: %v", err)
	}

	return nil
}

func main() {
	logging.InitLogger()
	logging.Logger.Info("Event ID: SERVICE_START, Description: Starting UpTask backend...")

	if err := godotenv.Load(".env"); err != nil {
		logging.Logger.Warnf("Event ID: ENV_LOAD_WARNING, Description: No .env file loaded: %v", err)
	}

	if err := utils.InitJWTSecret(); err != nil {
		logging.Logger.Fatalf("Event ID: CONFIG_ERROR, Description: %v", err)
	}

	mongoURI := os.Getenv("MONGO_URI")
	mongoDBName := os.Getenv("MONGO_DB_NAME")
	if mongoURI == "" || mongoDBName == "" {
		logging.Logger.Fatalf("Event ID: CONFIG_ERROR, Description: MONGO_URI and MONGO_DB_NAME must be set.")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		logging.Logger.Fatalf("Event ID: DB_CONNECTION_FAILED, Description: Database connection for MongoDB failed: %v", err)
	}
	defer client.Disconnect(ctx)

	if err := client.Ping(ctx, nil); err != nil {
		logging.Logger.Fatalf("Event ID: DB_PING_FAILED, Description: MongoDB connection ping error: %v", err)
	}
	logging.Logger.Infof("Event ID: DB_CONNECTED, Description: Successfully connected to MongoDB at %s.", mongoURI)

	db := client.Database(mongoDBName)
	userCollection := db.Collection("users")
	tokenCollection := db.Collection("tokens")
	projectCollection := db.Collection("projects")
	taskCollection := db.Collection("tasks")
	noteCollection := db.Collection("notes")

	if err := ensureIndexes(ctx, userCollection, tokenCollection); err != nil {
		logging.Logger.Fatalf("Event ID: DB_INDEX_FAILED, Description: %v", err)
	}

	blackList := map[string]bool{}
	if blackListFile := os.Getenv("PASSWORD_BLACKLIST_FILE"); blackListFile != "" {
		blackList, err = services.LoadBlackList(blackListFile)
		if err != nil {
			logging.Logger.Fatalf("Event ID: CONFIG_ERROR, Description: Failed to load password blacklist: %v", err)
		}
	}

	emailService := services.NewEmailService()
	authService := services.NewAuthService(userCollection, tokenCollection, emailService, blackList)
	projectService := services.NewProjectService(projectCollection, taskCollection, noteCollection, userCollection)
	taskService := services.NewTaskService(taskCollection, projectCollection, noteCollection)
	noteService := services.NewNoteService(noteCollection, taskCollection)

	authHandler := handlers.NewAuthHandler(authService)
	projectHandler := handlers.NewProjectHandler(projectService)
	teamHandler := handlers.NewTeamHandler(projectService)
	taskHandler := handlers.NewTaskHandler(taskService)
	noteHandler := handlers.NewNoteHandler(noteService)

	authenticate := middleware.Authenticate(authService)

	r := mux.NewRouter()
	api := r.PathPrefix("/api").Subrouter()

	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/create-account", authHandler.CreateAccount).Methods(http.MethodPost)
	auth.HandleFunc("/confirm-account", authHandler.ConfirmAccount).Methods(http.MethodPost)
	auth.HandleFunc("/login", authHandler.Login).Methods(http.MethodPost)
	auth.HandleFunc("/request-code", authHandler.RequestConfirmationCode).Methods(http.MethodPost)
	auth.HandleFunc("/forgot-password", authHandler.ForgotPassword).Methods(http.MethodPost)
	auth.HandleFunc("/validate-token", authHandler.ValidateToken).Methods(http.MethodPost)
	auth.HandleFunc("/update-password/{token}", authHandler.UpdatePasswordWithToken).Methods(http.MethodPost)
	auth.Handle("/user", authenticate(http.HandlerFunc(authHandler.CurrentUser))).Methods(http.MethodGet)

	projects := api.PathPrefix("/projects").Subrouter()
	projects.Use(authenticate)
	projects.HandleFunc("", projectHandler.CreateProject).Methods(http.MethodPost)
	projects.HandleFunc("", projectHandler.GetProjects).Methods(http.MethodGet)

	projectScoped := projects.PathPrefix("/{projectId}").Subrouter()
	projectScoped.Use(middleware.ResolveProject(projectService))
	projectScoped.HandleFunc("", projectHandler.GetProjectByID).Methods(http.MethodGet)
	projectScoped.HandleFunc("", projectHandler.UpdateProject).Methods(http.MethodPut)
	projectScoped.HandleFunc("", projectHandler.DeleteProject).Methods(http.MethodDelete)

	team := projectScoped.PathPrefix("/team").Subrouter()
	team.HandleFunc("/find", teamHandler.FindMemberByEmail).Methods(http.MethodPost)
	team.HandleFunc("", teamHandler.GetProjectTeam).Methods(http.MethodGet)
	team.HandleFunc("", teamHandler.AddTeamMember).Methods(http.MethodPost)
	team.HandleFunc("/{userId}", teamHandler.RemoveTeamMember).Methods(http.MethodDelete)

	tasks := projectScoped.PathPrefix("/tasks").Subrouter()
	tasks.HandleFunc("", taskHandler.CreateTask).Methods(http.MethodPost)
	tasks.HandleFunc("", taskHandler.GetProjectTasks).Methods(http.MethodGet)

	taskScoped := tasks.PathPrefix("/{taskId}").Subrouter()
	taskScoped.Use(middleware.ResolveTask(taskService))
	taskScoped.HandleFunc("", taskHandler.GetTaskByID).Methods(http.MethodGet)
	taskScoped.HandleFunc("", taskHandler.UpdateTask).Methods(http.MethodPut)
	taskScoped.HandleFunc("", taskHandler.DeleteTask).Methods(http.MethodDelete)
	taskScoped.HandleFunc("/status", taskHandler.ChangeTaskStatus).Methods(http.MethodPost)

	notes := taskScoped.PathPrefix("/notes").Subrouter()
	notes.HandleFunc("", noteHandler.CreateNote).Methods(http.MethodPost)
	notes.HandleFunc("", noteHandler.GetTaskNotes).Methods(http.MethodGet)
	notes.HandleFunc("/{noteId}", noteHandler.DeleteNote).Methods(http.MethodDelete)

	corsRouter := enableCORS(r)

	serverPort := os.Getenv("SERVER_PORT")
	if serverPort == "" {
		serverPort = "4000"
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", serverPort),
		Handler:      corsRouter,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	logging.Logger.Infof("Event ID: SERVER_START_INFO, Description: Server running on http://localhost:%s", serverPort)
	if err := srv.ListenAndServe(); err != nil {
		logging.Logger.Fatalf("Event ID: SERVER_FATAL_ERROR, Description: Server failed to start: %v", err)
	}
}
