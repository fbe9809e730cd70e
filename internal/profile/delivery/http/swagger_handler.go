package http

// Register godoc
// @Summary Register a new user
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body object{email=string,password=string,name=string} true "Registration data"
// @Success 201 {object} object{token=string,user=object}
// @Failure 400 {object} object{error=string}
// @Router /auth/register [post]
func (h *ProfileHandler) RegisterDoc() {}

// Login godoc
// @Summary User login
// @Description Authenticate and get a JWT token
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body object{email=string,password=string} true "Login credentials"
// @Success 200 {object} object{token=string,user=object}
// @Failure 401 {object} object{error=string}
// @Router /auth/login [post]
func (h *ProfileHandler) LoginDoc() {}

// RequestReset godoc
// @Summary Request a password reset token
// @Description Unknown emails get the same response
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body object{email=string} true "Account email"
// @Success 200 {object} object{message=string,token=string,expires_at=string}
// @Router /auth/reset/request [post]
func (h *ProfileHandler) RequestResetDoc() {}

// VerifyReset godoc
// @Summary Verify a password reset token
// @Tags Auth
// @Produce json
// @Param token query string true "Reset token"
// @Success 200 {object} object{valid=bool,email=string}
// @Failure 400 {object} object{error=string}
// @Router /auth/reset/verify [get]
func (h *ProfileHandler) VerifyResetDoc() {}

// ResetPassword godoc
// @Summary Reset the password
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body object{token=string,password=string} true "Token and new password"
// @Success 200 {object} object{message=string}
// @Failure 400 {object} object{error=string}
// @Router /auth/reset [post]
func (h *ProfileHandler) ResetPasswordDoc() {}

// GetProfile godoc
// @Summary Get current user profile
// @Tags Users
// @Security BearerAuth
// @Produce json
// @Success 200 {object} object{id=int,email=string,name=string,preferences=object}
// @Failure 401 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Router /users/me [get]
func (h *ProfileHandler) GetProfileDoc() {}

// UpdateProfile godoc
// @Summary Update current user profile
// @Tags Users
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body object{name=string,email=string} true "Update data"
// @Success 200 {object} object{id=int,email=string,name=string}
// @Failure 400 {object} object{error=string}
// @Router /users/me [put]
func (h *ProfileHandler) UpdateProfileDoc() {}

// UpdatePreferences godoc
// @Summary Update stored skin preferences
// @Tags Users
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body object{skin_type=string,skin_concerns=[]string,allergies=[]string,preferred_ingredients=[]string,preferred_categories=[]string,climate=string} true "Preferences"
// @Success 200 {object} object{message=string,preferences=object}
// @Failure 400 {object} object{error=string}
// @Router /users/me/preferences [put]
func (h *ProfileHandler) UpdatePreferencesDoc() {}

// ListRoutines godoc
// @Summary List saved routines
// @Tags Users
// @Security BearerAuth
// @Produce json
// @Success 200 {object} object{routines=[]object}
// @Router /users/me/routines [get]
func (h *ProfileHandler) ListRoutinesDoc() {}

// SaveRoutine godoc
// @Summary Save a routine
// @Tags Users
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body object{name=string,steps=object,products=object} true "Routine"
// @Success 201 {object} object{id=string,name=string,created_at=string}
// @Router /users/me/routines [post]
func (h *ProfileHandler) SaveRoutineDoc() {}

// ListFeedback godoc
// @Summary List product feedback
// @Tags Users
// @Security BearerAuth
// @Produce json
// @Success 200 {object} object{feedback=[]object}
// @Router /users/me/feedback [get]
func (h *ProfileHandler) ListFeedbackDoc() {}

// SaveFeedback godoc
// @Summary Save product feedback
// @Description One record per product; saving again replaces it
// @Tags Users
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body object{product_id=int,liked=bool,rating=int,review=string,used=bool} true "Feedback"
// @Success 200 {object} object{message=string}
// @Failure 400 {object} object{error=string}
// @Router /users/me/feedback [post]
func (h *ProfileHandler) SaveFeedbackDoc() {}

// ListHistory godoc
// @Summary List recently viewed products
// @Tags Users
// @Security BearerAuth
// @Produce json
// @Param limit query int false "At most 20"
// @Success 200 {object} object{product_history=[]object}
// @Router /users/me/history [get]
func (h *ProfileHandler) ListHistoryDoc() {}

// RecordView godoc
// @Summary Record a product view
// @Tags Users
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body object{product_id=int,product_name=string,category=string} true "Viewed product"
// @Success 200 {object} object{product_id=int,product_name=string,category=string,last_viewed=string}
// @Router /users/me/history [post]
func (h *ProfileHandler) RecordViewDoc() {}
