package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"kanban-project/board-service/handlers"
	"kanban-project/board-service/logging"
	"kanban-project/board-service/repositories"
	"kanban-project/board-service/services"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/sony/gobreaker"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

type stores struct {
	projects repositories.ProjectStore
	columns  repositories.ColumnStore
	tasks    repositories.TaskStore
	comments repositories.CommentStore
}

// buildStores selects the storage backend. The default is in-memory: board
// state lives for the lifetime of the process, as the board has always
// behaved. Setting STORAGE_BACKEND=mongo swaps in the MongoDB stores
// without touching any service code.
func buildStores() stores {
	if os.Getenv("STORAGE_BACKEND") != "mongo" {
		logging.Logger.Info("Event ID: STORAGE_SELECTED, Description: Using in-memory storage, state is process-local")
		return stores{
			projects: repositories.NewMemoryProjectStore(),
			columns:  repositories.NewMemoryColumnStore(),
			tasks:    repositories.NewMemoryTaskStore(),
			comments: repositories.NewMemoryCommentStore(),
		}
	}

	mongoURI := os.Getenv("MONGO_URI")
	mongoDBName := os.Getenv("MONGO_DB_NAME")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		logging.Logger.Fatalf("Event ID: DB_CONNECTION_FAILED, Description: Database connection for MongoDB failed: %v", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		logging.Logger.Fatalf("Event ID: DB_PING_FAILED, Description: MongoDB connection ping error: %v", err)
	}
	logging.Logger.Infof("Event ID: DB_CONNECTED, Description: Successfully connected to MongoDB at %s.", mongoURI)

	db := client.Database(mongoDBName)
	return stores{
		projects: repositories.NewMongoProjectStore(db),
		columns:  repositories.NewMongoColumnStore(db),
		tasks:    repositories.NewMongoTaskStore(db),
		comments: repositories.NewMongoCommentStore(db),
	}
}

func buildUserClient() *services.UserClient {
	usersURL := os.Getenv("USERS_SERVICE_URL")
	if usersURL == "" {
		return nil
	}

	usersBreaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "UsersServiceCB",
		MaxRequests: 1,
		Timeout:     2 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Logger.Infof("Event ID: CIRCUIT_BREAKER_STATE_CHANGE, Description: Circuit Breaker '%s' changed from '%s' to '%s'", name, from.String(), to.String())
		},
	})

	httpClient := &http.Client{Timeout: 5 * time.Second}
	return services.NewUserClient(usersURL, httpClient, usersBreaker)
}

func main() {
	logging.InitLogger()

	logging.Logger.Info("Event ID: SERVICE_START, Description: Starting Board Service...")
	if err := godotenv.Load(".env"); err != nil {
		logging.Logger.Warnf("Event ID: ENV_LOAD_WARNING, Description: No .env file loaded: %v", err)
	}

	st := buildStores()

	projectService := services.NewProjectService(st.projects)
	taskService := services.NewTaskService(st.tasks, st.columns, st.comments)
	columnService := services.NewColumnService(st.columns, taskService)
	commentService := services.NewCommentService(st.comments, st.tasks)
	boardService := services.NewBoardService(projectService, columnService, taskService, commentService, buildUserClient())

	projectHandler := handlers.NewProjectHandler(boardService)
	taskHandler := handlers.NewTaskHandler(boardService)
	commentHandler := handlers.NewCommentHandler(boardService)

	r := mux.NewRouter()
	api := r.PathPrefix("/api").Subrouter()
	api.Use(handlers.AuthMiddleware)

	api.HandleFunc("/projects", projectHandler.CreateProject).Methods(http.MethodPost)
	api.HandleFunc("/projects", projectHandler.GetProjects).Methods(http.MethodGet)
	api.HandleFunc("/projects/{projectID}", projectHandler.GetProject).Methods(http.MethodGet)
	api.HandleFunc("/projects/{projectID}", projectHandler.UpdateProject).Methods(http.MethodPut)
	api.HandleFunc("/projects/{projectID}", projectHandler.DeleteProject).Methods(http.MethodDelete)
	api.HandleFunc("/projects/{projectID}/members", projectHandler.AddMember).Methods(http.MethodPost)
	api.HandleFunc("/projects/{projectID}/members/{userID}", projectHandler.RemoveMember).Methods(http.MethodDelete)

	api.HandleFunc("/projects/{projectID}/columns", projectHandler.CreateColumn).Methods(http.MethodPost)
	api.HandleFunc("/projects/{projectID}/columns", projectHandler.GetColumns).Methods(http.MethodGet)
	api.HandleFunc("/columns/{columnID}", projectHandler.DeleteColumn).Methods(http.MethodDelete)
	api.HandleFunc("/columns/{columnID}/tasks", taskHandler.GetTasksByColumn).Methods(http.MethodGet)

	api.HandleFunc("/projects/{projectID}/tasks", taskHandler.CreateTask).Methods(http.MethodPost)
	api.HandleFunc("/projects/{projectID}/tasks", taskHandler.GetTasksByProject).Methods(http.MethodGet)
	api.HandleFunc("/tasks/{taskID}", taskHandler.GetTask).Methods(http.MethodGet)
	api.HandleFunc("/tasks/{taskID}", taskHandler.UpdateTask).Methods(http.MethodPut)
	api.HandleFunc("/tasks/{taskID}", taskHandler.DeleteTask).Methods(http.MethodDelete)
	api.HandleFunc("/tasks/{taskID}/move", taskHandler.MoveTask).Methods(http.MethodPost)
	api.HandleFunc("/tasks/{taskID}/assign", taskHandler.AssignTask).Methods(http.MethodPost)

	api.HandleFunc("/tasks/{taskID}/comments", commentHandler.AddComment).Methods(http.MethodPost)
	api.HandleFunc("/tasks/{taskID}/comments", commentHandler.GetComments).Methods(http.MethodGet)
	api.HandleFunc("/comments/{commentID}", commentHandler.DeleteComment).Methods(http.MethodDelete)

	corsRouter := enableCORS(r)

	serverPort := os.Getenv("SERVER_PORT")
	if serverPort == "" {
		serverPort = "8084"
	}

	serverAddress := fmt.Sprintf(":%s", serverPort)
	logging.Logger.Infof("Event ID: SERVER_START_INFO, Description: Server running on http://localhost%s", serverAddress)

	if err := http.ListenAndServe(serverAddress, corsRouter); err != nil {
		logging.Logger.Fatalf("Event ID: SERVER_FATAL_ERROR, Description: Server failed to start: %v", err)
	}
}
