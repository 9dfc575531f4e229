package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/userboard/userboard/internal/interface/http"
)

// UserModule wires the user CRUD handlers into routes.
// All routes are registered under the given RouterGroup (usually /api):
// POST /user/create, GET /user/list, GET /user/profile/:id,
// PUT /user/update/:id, DELETE /user/delete/:id

type UserModule struct {
	Handler *handlers.UserHandler
}

func NewUserModule(h *handlers.UserHandler) *UserModule {
	return &UserModule{Handler: h}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	user := rg.Group("/user")
	{
		user.POST("/create", m.Handler.Create)
		user.GET("/list", m.Handler.List)
		user.GET("/profile/:id", m.Handler.FindByID)
		user.PUT("/update/:id", m.Handler.Update)
		user.DELETE("/delete/:id", m.Handler.Delete)
	}
}
