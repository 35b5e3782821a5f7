package router

import (
	"log"

	"frutaria/controllers"
	"frutaria/middleware"

	"github.com/gin-gonic/gin"
)

// Initialize wires all routes and middlewares.
func Initialize(r *gin.Engine) {
	r.Use(gin.Recovery())
	r.Use(middleware.CORSMiddleware())

	// Catálogo (public)
	r.GET("/", Logger(), controllers.Products)
	r.GET("/products", Logger(), controllers.Products)
	r.GET("/search", Logger(), controllers.Search)

	// Cadastro e login (public)
	r.GET("/signup", Logger(), controllers.SignupForm)
	r.POST("/signup", Logger(), controllers.Signup)
	r.GET("/login", Logger(), controllers.LoginForm)
	r.POST("/login", Logger(), controllers.Login)

	// Recuperação de senha (public)
	r.GET("/forgot", Logger(), controllers.ForgotForm)
	r.POST("/forgot", Logger(), controllers.ForgotPassword)
	r.GET("/reset/:token", Logger(), controllers.ResetForm)
	r.POST("/reset/:token", Logger(), controllers.ResetPassword)

	// Authenticated routes (token required)
	auth := r.Group("")
	auth.Use(controllers.AuthRequired())
	auth.GET("/logout", Logger(), controllers.Logout)

	// Example protected endpoint (useful for smoke tests)
	auth.GET("/me", Logger(), controllers.Me)

	log.Printf("Routes initialized")
}
