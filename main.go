package main

import (
	"log"

	"github.com/atefe-jelve/Social-project/db"
	"github.com/atefe-jelve/Social-project/routes"

	"github.com/gin-gonic/gin"
)

// @title Social-project API
// @version 1.0
// @description Blog backend: posts, threaded comments and likes
// @host localhost:8080
// @BasePath /
// @SecurityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Enter the JWT with the Bearer prefix: Bearer <JWT>
func main() {
	gin.SetMode(gin.ReleaseMode)

	db.InitDB()

	r := routes.SetupRouter()

	if err := r.Run(":8080"); err != nil {
		log.Fatal("Error starting the server:", err)
	}
}
