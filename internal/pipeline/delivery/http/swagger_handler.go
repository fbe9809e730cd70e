package http

import (
	"net/http"

	"github.com/gorilla/mux"
)

// RegisterSwaggerDocs registers Swagger documentation routes
// @Summary Swagger documentation
// @Description Swagger API documentation
// @Tags Swagger
// @Success 200 {string} string "Swagger UI"
// @Router /swagger/ [get]
func RegisterSwaggerDocs(router *mux.Router, swaggerHandler http.Handler) {
	router.PathPrefix("/swagger/").Handler(swaggerHandler)
}

// GetMetadata godoc
// @Summary Recommender metadata
// @Description Skin types, catalog categories, concerns and common ingredients
// @Tags Recommender
// @Produce json
// @Success 200 {object} object{skin_types=[]string,categories=[]string,skin_concerns=[]string,common_ingredients=[]string}
// @Router /api/recommender/metadata [get]
func (h *PipelineHandler) GetMetadataDoc() {}

// Recommend godoc
// @Summary Recommend products
// @Description Rank up to 8 catalog products for the given preferences. Products containing an allergy substring are never returned.
// @Tags Recommender
// @Accept json
// @Produce json
// @Param request body object{skin_type=string,skin_concerns=[]string,preferred_ingredients=[]string,allergies=[]string,preferred_categories=[]string} true "Preferences"
// @Success 200 {object} object{recommendations=[]object,count=int,degraded=bool}
// @Failure 400 {object} object{error=string}
// @Router /api/recommender/recommendations [post]
func (h *PipelineHandler) RecommendDoc() {}

// Personalized godoc
// @Summary Personalised recommendations
// @Description Recommendations from the stored preferences, feedback and view history of the current user
// @Tags Recommender
// @Security BearerAuth
// @Produce json
// @Success 200 {object} object{recommendations=[]object,count=int,cached=bool}
// @Failure 401 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Router /api/recommender/personalized [get]
func (h *PipelineHandler) PersonalizedDoc() {}

// AnalyzeIngredients godoc
// @Summary Predict suitability from ingredient text
// @Tags Analyzer
// @Accept json
// @Produce json
// @Param request body object{ingredients=string} true "Ingredient list"
// @Success 200 {object} object{suitability_scores=object,best_for=string,best_score=number,stand_in=bool}
// @Failure 400 {object} object{error=string}
// @Failure 500 {object} object{error=string}
// @Router /api/analyzer/ingredients [post]
func (h *PipelineHandler) AnalyzeIngredientsDoc() {}

// AnalyzeImage godoc
// @Summary Predict suitability from a product photo
// @Description Extracts the ingredient list with OCR and scores it. Rate limited per client.
// @Tags Analyzer
// @Accept json
// @Produce json
// @Param request body object{image=string} true "Base64 image or data URL"
// @Success 200 {object} object{extracted_text=string,suitability_scores=object,best_for=string,best_score=number,stand_in=bool}
// @Failure 400 {object} object{error=string}
// @Failure 422 {object} object{error=string}
// @Failure 429 {object} object{error=string,message=string,retry_after=number}
// @Failure 503 {object} object{error=string}
// @Router /api/analyzer/analyze [post]
func (h *PipelineHandler) AnalyzeImageDoc() {}

// ComposeRoutine godoc
// @Summary Compose a skincare routine
// @Tags Routine
// @Accept json
// @Produce json
// @Param request body object{skin_type=string,skin_concerns=[]string,allergies=[]string,climate=string,include_products=bool} true "Routine input"
// @Success 200 {object} object{morning=[]object,evening=[]object,weekly=[]object}
// @Failure 400 {object} object{error=string}
// @Router /api/routine [post]
func (h *PipelineHandler) ComposeRoutineDoc() {}

// HealthCheck godoc
// @Summary Health check
// @Description Database connectivity and degraded-mode flags
// @Tags Health
// @Produce json
// @Success 200 {object} object{status=string,database=string,degraded=object}
// @Failure 503 {object} object{status=string,database=string,degraded=object}
// @Router /health [get]
func (h *PipelineHandler) HealthCheckDoc() {}
