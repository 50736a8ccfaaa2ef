package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/stockmesh/backend/internal/interfaces/http/middleware"
)

// SwaggerPath serves the documentation UI and the generated spec
// (doc.json). The spec itself is registered by importing the docs package.
const SwaggerPath = "/swagger/*any"

// RegisterDocs mounts the API documentation behind SwaggerProtection
func RegisterDocs(engine *gin.Engine, cfg middleware.SwaggerConfig) {
	engine.GET(SwaggerPath,
		middleware.SwaggerProtection(cfg),
		ginSwagger.WrapHandler(swaggerFiles.Handler),
	)
}
