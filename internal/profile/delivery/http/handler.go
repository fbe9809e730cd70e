package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/tair/smartskin/internal/catalog/domain"
	profile "github.com/tair/smartskin/internal/profile/domain"
	"github.com/tair/smartskin/internal/profile/usecase/command"
	"github.com/tair/smartskin/internal/profile/usecase/query"
	"github.com/tair/smartskin/internal/recommend"
	"github.com/tair/smartskin/internal/routine"
	"github.com/tair/smartskin/pkg/auth"
	"github.com/tair/smartskin/pkg/logger"
	"github.com/tair/smartskin/pkg/middleware"
)

// Handlers groups the profile use cases.
type Handlers struct {
	Register          *command.RegisterUserHandler
	Login             *command.LoginUserHandler
	UpdateProfile     *command.UpdateProfileHandler
	UpdatePreferences *command.UpdatePreferencesHandler
	SaveRoutine       *command.SaveRoutineHandler
	SaveFeedback      *command.SaveFeedbackHandler
	RecordView        *command.RecordViewHandler
	RequestReset      *command.RequestResetHandler
	ResetPassword     *command.ResetPasswordHandler

	GetProfile   *query.GetProfileHandler
	VerifyReset  *query.VerifyResetHandler
	ListFeedback *query.ListFeedbackHandler
	ListHistory  *query.ListHistoryHandler
	ListRoutines *query.ListRoutinesHandler
}

// NewHandlers wires every use case against one repository.
func NewHandlers(repo profile.Repository, tokens *auth.TokenManager, products profile.ProductLookup, publisher profile.FeedbackPublisher) *Handlers {
	return &Handlers{
		Register:          command.NewRegisterUserHandler(repo, tokens),
		Login:             command.NewLoginUserHandler(repo, tokens),
		UpdateProfile:     command.NewUpdateProfileHandler(repo),
		UpdatePreferences: command.NewUpdatePreferencesHandler(repo),
		SaveRoutine:       command.NewSaveRoutineHandler(repo),
		SaveFeedback:      command.NewSaveFeedbackHandler(repo, products, publisher),
		RecordView:        command.NewRecordViewHandler(repo, products),
		RequestReset:      command.NewRequestResetHandler(repo),
		ResetPassword:     command.NewResetPasswordHandler(repo),
		GetProfile:        query.NewGetProfileHandler(repo),
		VerifyReset:       query.NewVerifyResetHandler(repo),
		ListFeedback:      query.NewListFeedbackHandler(repo),
		ListHistory:       query.NewListHistoryHandler(repo),
		ListRoutines:      query.NewListRoutinesHandler(repo),
	}
}

// ProfileHandler handles HTTP requests for accounts and profile data
type ProfileHandler struct {
	h       *Handlers
	tokens  *auth.TokenManager
	metrics *middleware.HTTPMetrics
}

func NewProfileHandler(h *Handlers, tokens *auth.TokenManager, metrics *middleware.HTTPMetrics) *ProfileHandler {
	return &ProfileHandler{h: h, tokens: tokens, metrics: metrics}
}

// RegisterRoutes registers all profile routes
func (h *ProfileHandler) RegisterRoutes(router *mux.Router) {
	route := func(path, method string, fn http.HandlerFunc) {
		router.HandleFunc(path, h.metrics.Wrap(path, fn)).Methods(method)
	}
	authed := h.tokens.Middleware

	// Public routes
	route("/auth/register", http.MethodPost, h.Register)
	route("/auth/login", http.MethodPost, h.Login)
	route("/auth/reset/request", http.MethodPost, h.RequestReset)
	route("/auth/reset/verify", http.MethodGet, h.VerifyReset)
	route("/auth/reset", http.MethodPost, h.ResetPassword)

	// Authenticated user routes
	route("/users/me", http.MethodGet, authed(h.GetProfile))
	route("/users/me", http.MethodPut, authed(h.UpdateProfile))
	route("/users/me/preferences", http.MethodPut, authed(h.UpdatePreferences))
	route("/users/me/routines", http.MethodGet, authed(h.ListRoutines))
	route("/users/me/routines", http.MethodPost, authed(h.SaveRoutine))
	route("/users/me/feedback", http.MethodGet, authed(h.ListFeedback))
	route("/users/me/feedback", http.MethodPost, authed(h.SaveFeedback))
	route("/users/me/history", http.MethodGet, authed(h.ListHistory))
	route("/users/me/history", http.MethodPost, authed(h.RecordView))
}

// Register handles POST /auth/register
func (h *ProfileHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Name     string `json:"name"`
	}
	if !decode(w, r, &req) {
		return
	}

	result, err := h.h.Register.Handle(r.Context(), command.RegisterUserCommand{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
	})
	if err != nil {
		respondDomainError(r.Context(), w, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "User registered successfully",
		"token":   result.Token,
		"user":    result.User,
	})
}

// Login handles POST /auth/login
func (h *ProfileHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if !decode(w, r, &req) {
		return
	}

	result, err := h.h.Login.Handle(r.Context(), command.LoginUserCommand{Email: req.Email, Password: req.Password})
	if err != nil {
		respondDomainError(r.Context(), w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Login successful",
		"token":   result.Token,
		"user":    result.User,
	})
}

// RequestReset handles POST /auth/reset/request. The response is the same
// whether or not the email is registered, apart from the token itself.
func (h *ProfileHandler) RequestReset(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if !decode(w, r, &req) {
		return
	}

	result, err := h.h.RequestReset.Handle(r.Context(), req.Email)
	if err != nil {
		respondDomainError(r.Context(), w, err)
		return
	}

	body := map[string]interface{}{
		"message": "If an account with that email exists, a password reset link has been sent.",
	}
	// No mail delivery exists yet, so the token goes back to the caller.
	if result.Token != "" {
		body["token"] = result.Token
		body["expires_at"] = result.ExpiresAt
	}
	respondJSON(w, http.StatusOK, body)
}

// VerifyReset handles GET /auth/reset/verify?token=
func (h *ProfileHandler) VerifyReset(w http.ResponseWriter, r *http.Request) {
	email, err := h.h.VerifyReset.Handle(r.Context(), r.URL.Query().Get("token"))
	if err != nil {
		respondDomainError(r.Context(), w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"valid": true, "email": email})
}

// ResetPassword handles POST /auth/reset
func (h *ProfileHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Token    string `json:"token"`
		Password string `json:"password"`
	}
	if !decode(w, r, &req) {
		return
	}

	err := h.h.ResetPassword.Handle(r.Context(), command.ResetPasswordCommand{Token: req.Token, NewPassword: req.Password})
	if err != nil {
		respondDomainError(r.Context(), w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Password has been reset successfully"})
}

// GetProfile handles GET /users/me
func (h *ProfileHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())
	user, err := h.h.GetProfile.Handle(r.Context(), userID)
	if err != nil {
		respondDomainError(r.Context(), w, err)
		return
	}
	respondJSON(w, http.StatusOK, user)
}

// UpdateProfile handles PUT /users/me
func (h *ProfileHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())
	var req struct {
		Name     string `json:"name"`
		Password string `json:"password"`
	}
	if !decode(w, r, &req) {
		return
	}

	user, err := h.h.UpdateProfile.Handle(r.Context(), command.UpdateProfileCommand{
		UserID:   userID,
		Name:     req.Name,
		Password: req.Password,
	})
	if err != nil {
		respondDomainError(r.Context(), w, err)
		return
	}
	respondJSON(w, http.StatusOK, user)
}

// UpdatePreferences handles PUT /users/me/preferences. An unknown skin type
// or climate is stored as the default.
func (h *ProfileHandler) UpdatePreferences(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())
	var req struct {
		recommend.Request
		Climate string `json:"climate"`
	}
	if !decode(w, r, &req) {
		return
	}
	if err := req.Request.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	prefs, known := req.Request.Preferences()
	if !known {
		logger.Warn(r.Context()).Str("skin_type", req.SkinType).Msg("Unknown skin type, storing default")
	}
	climate, known := routine.ParseClimate(req.Climate)
	if !known {
		logger.Warn(r.Context()).Str("climate", req.Climate).Msg("Unknown climate, storing default")
	}

	user, err := h.h.UpdatePreferences.Handle(r.Context(), command.UpdatePreferencesCommand{
		UserID: userID,
		Preferences: profile.Preferences{
			SkinType:             string(prefs.SkinType),
			SkinConcerns:         prefs.SkinConcerns,
			Allergies:            prefs.Allergies,
			PreferredIngredients: prefs.PreferredIngredients,
			PreferredCategories:  prefs.PreferredCategories,
			Climate:              climate,
		},
	})
	if err != nil {
		respondDomainError(r.Context(), w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message":     "Preferences updated successfully",
		"preferences": user.Preferences,
	})
}

// ListRoutines handles GET /users/me/routines
func (h *ProfileHandler) ListRoutines(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())
	routines, err := h.h.ListRoutines.Handle(r.Context(), userID)
	if err != nil {
		respondDomainError(r.Context(), w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"routines": routines})
}

// SaveRoutine handles POST /users/me/routines
func (h *ProfileHandler) SaveRoutine(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())
	var req struct {
		Name     string          `json:"name"`
		Products json.RawMessage `json:"products"`
		Steps    json.RawMessage `json:"steps"`
	}
	if !decode(w, r, &req) {
		return
	}

	saved, err := h.h.SaveRoutine.Handle(r.Context(), command.SaveRoutineCommand{
		UserID:   userID,
		Name:     req.Name,
		Products: req.Products,
		Steps:    req.Steps,
	})
	if err != nil {
		respondDomainError(r.Context(), w, err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"message":    "Routine saved successfully",
		"routine_id": saved.ID,
	})
}

// ListFeedback handles GET /users/me/feedback
func (h *ProfileHandler) ListFeedback(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())
	feedback, err := h.h.ListFeedback.Handle(r.Context(), userID)
	if err != nil {
		respondDomainError(r.Context(), w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"feedback": feedback})
}

// SaveFeedback handles POST /users/me/feedback
func (h *ProfileHandler) SaveFeedback(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())
	var req struct {
		ProductID   *int   `json:"product_id"`
		ProductName string `json:"product_name"`
		Category    string `json:"category"`
		Rating      int    `json:"rating"`
		Review      string `json:"review"`
		Liked       *bool  `json:"liked"`
		Used        bool   `json:"used"`
	}
	if !decode(w, r, &req) {
		return
	}
	if req.ProductID == nil {
		respondError(w, http.StatusBadRequest, "product_id is required")
		return
	}

	_, err := h.h.SaveFeedback.Handle(r.Context(), command.SaveFeedbackCommand{
		UserID:      userID,
		ProductID:   *req.ProductID,
		ProductName: req.ProductName,
		Category:    req.Category,
		Rating:      req.Rating,
		Review:      req.Review,
		Liked:       req.Liked,
		Used:        req.Used,
	})
	if err != nil {
		respondDomainError(r.Context(), w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Feedback saved successfully"})
}

// ListHistory handles GET /users/me/history?limit=
func (h *ProfileHandler) ListHistory(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	history, err := h.h.ListHistory.Handle(r.Context(), query.ListHistoryQuery{UserID: userID, Limit: limit})
	if err != nil {
		respondDomainError(r.Context(), w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"product_history": history})
}

// RecordView handles POST /users/me/history
func (h *ProfileHandler) RecordView(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())
	var req struct {
		ProductID   *int   `json:"product_id"`
		ProductName string `json:"product_name"`
		Category    string `json:"category"`
	}
	if !decode(w, r, &req) {
		return
	}
	if req.ProductID == nil {
		respondError(w, http.StatusBadRequest, "product_id is required")
		return
	}

	view, err := h.h.RecordView.Handle(r.Context(), command.RecordViewCommand{
		UserID:      userID,
		ProductID:   *req.ProductID,
		ProductName: req.ProductName,
		Category:    req.Category,
	})
	if err != nil {
		respondDomainError(r.Context(), w, err)
		return
	}
	respondJSON(w, http.StatusOK, view)
}

// ProductLookup adapts a catalog snapshot to the profile use cases.
func ProductLookup(c *domain.Catalog) profile.ProductLookup {
	if c == nil {
		return nil
	}
	return c
}

func decode(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}

func respondDomainError(ctx context.Context, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, profile.ErrInvalidInput):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, profile.ErrUserExists):
		respondError(w, http.StatusBadRequest, "User already exists")
	case errors.Is(err, profile.ErrInvalidCredentials):
		respondError(w, http.StatusUnauthorized, "Invalid email or password")
	case errors.Is(err, profile.ErrInvalidResetToken):
		respondError(w, http.StatusBadRequest, "Invalid or expired reset token")
	case errors.Is(err, profile.ErrUserNotFound):
		respondError(w, http.StatusNotFound, "User not found")
	default:
		logger.Error(ctx).Err(err).Msg("Profile request failed")
		respondError(w, http.StatusInternalServerError, "Internal server error")
	}
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError sends an error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
