package http

import (
	"net/http"

	"nutritrack-backend/internal/delivery/http/handler"
	"nutritrack-backend/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router            *mux.Router
	authHandler       *handler.AuthHandler
	profileHandler    *handler.ProfileHandler
	invitationHandler *handler.InvitationHandler
	planHandler       *handler.PlanHandler
	mealHandler       *handler.MealHandler
	progressHandler   *handler.ProgressHandler
	rewardHandler     *handler.RewardHandler
	chatHandler       *handler.ChatHandler
	authMiddleware    *middleware.AuthMiddleware
	corsMiddleware    *middleware.CORSMiddleware
}

func NewRouter(
	authHandler *handler.AuthHandler,
	profileHandler *handler.ProfileHandler,
	invitationHandler *handler.InvitationHandler,
	planHandler *handler.PlanHandler,
	mealHandler *handler.MealHandler,
	progressHandler *handler.ProgressHandler,
	rewardHandler *handler.RewardHandler,
	chatHandler *handler.ChatHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:            mux.NewRouter(),
		authHandler:       authHandler,
		profileHandler:    profileHandler,
		invitationHandler: invitationHandler,
		planHandler:       planHandler,
		mealHandler:       mealHandler,
		progressHandler:   progressHandler,
		rewardHandler:     rewardHandler,
		chatHandler:       chatHandler,
		authMiddleware:    authMiddleware,
		corsMiddleware:    corsMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Auth routes (public)
	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/register/patient", r.authHandler.RegisterPatient).Methods(http.MethodPost)
	auth.HandleFunc("/register/nutritionist", r.authHandler.RegisterNutritionist).Methods(http.MethodPost)
	auth.HandleFunc("/login", r.authHandler.Login).Methods(http.MethodPost)
	auth.HandleFunc("/refresh-token", r.authHandler.RefreshToken).Methods(http.MethodPost)

	// Auth routes (protected)
	authProtected := api.PathPrefix("/auth").Subrouter()
	authProtected.Use(r.authMiddleware.Authenticate)
	authProtected.HandleFunc("/logout", r.authHandler.Logout).Methods(http.MethodPost)
	authProtected.HandleFunc("/me", r.authHandler.GetCurrentUser).Methods(http.MethodGet)

	// Profile routes (any authenticated user)
	protected := api.PathPrefix("").Subrouter()
	protected.Use(r.authMiddleware.Authenticate)
	protected.HandleFunc("/profile", r.profileHandler.GetMyProfile).Methods(http.MethodGet)
	protected.HandleFunc("/profile", r.profileHandler.UpdateProfile).Methods(http.MethodPut)
	protected.HandleFunc("/profile/avatar", r.profileHandler.UploadAvatar).Methods(http.MethodPost)
	protected.HandleFunc("/invitations", r.invitationHandler.ListInvitations).Methods(http.MethodGet)
	protected.HandleFunc("/plans", r.planHandler.ListPlans).Methods(http.MethodGet)
	protected.HandleFunc("/plans/{id}", r.planHandler.GetPlan).Methods(http.MethodGet)
	protected.HandleFunc("/chat/messages", r.chatHandler.SendMessage).Methods(http.MethodPost)
	protected.HandleFunc("/chat/conversations/{id}", r.chatHandler.GetConversation).Methods(http.MethodGet)

	// Nutritionist routes
	nutritionist := api.PathPrefix("").Subrouter()
	nutritionist.Use(r.authMiddleware.Authenticate)
	nutritionist.Use(middleware.RequireNutritionist)
	nutritionist.HandleFunc("/invitations", r.invitationHandler.SendInvitation).Methods(http.MethodPost)
	nutritionist.HandleFunc("/patients", r.profileHandler.ListPatients).Methods(http.MethodGet)
	nutritionist.HandleFunc("/patients/{id}", r.profileHandler.GetPatientProfile).Methods(http.MethodGet)
	nutritionist.HandleFunc("/patients/{id}/validations", r.mealHandler.ListPatientValidations).Methods(http.MethodGet)
	nutritionist.HandleFunc("/patients/{id}/progress", r.progressHandler.GetPatientProgress).Methods(http.MethodGet)
	nutritionist.HandleFunc("/plans", r.planHandler.CreatePlan).Methods(http.MethodPost)

	// Patient routes
	patient := api.PathPrefix("").Subrouter()
	patient.Use(r.authMiddleware.Authenticate)
	patient.Use(middleware.RequirePatient)
	patient.HandleFunc("/nutritionist", r.profileHandler.GetMyNutritionist).Methods(http.MethodGet)
	patient.HandleFunc("/invitations/accept", r.invitationHandler.AcceptInvitation).Methods(http.MethodPost)
	patient.HandleFunc("/invitations/reject", r.invitationHandler.RejectInvitation).Methods(http.MethodPost)
	patient.HandleFunc("/meals/validate", r.mealHandler.ValidateMeal).Methods(http.MethodPost)
	patient.HandleFunc("/meals/validations", r.mealHandler.ListMyValidations).Methods(http.MethodGet)
	patient.HandleFunc("/progress", r.progressHandler.GetMyProgress).Methods(http.MethodGet)
	patient.HandleFunc("/rewards", r.rewardHandler.GetRewards).Methods(http.MethodGet)

	// Add CORS middleware
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
