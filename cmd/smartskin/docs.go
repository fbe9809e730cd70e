package main

// @title SmartSkin API
// @version 1.0
// @description Skincare product recommendations, routine composition and ingredient suitability analysis with full observability (Prometheus, Jaeger)

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @tag.name Recommender
// @tag.description Product recommendations

// @tag.name Analyzer
// @tag.description Ingredient suitability prediction

// @tag.name Routine
// @tag.description Skincare routine composition

// @tag.name Auth
// @tag.description Authentication endpoints

// @tag.name Users
// @tag.description Profile, preferences, feedback and history

// @tag.name Health
// @tag.description Health check endpoints
