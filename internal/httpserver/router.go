package httpserver

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"clickdeck/internal/handler"
)

type Router struct {
	Engine *gin.Engine
}

func NewRouter(
	authHandler *handler.AuthHandler,
	spaceHandler *handler.SpaceHandler,
	folderHandler *handler.FolderHandler,
	listHandler *handler.ListHandler,
	taskHandler *handler.TaskHandler,
	workspaceHandler *handler.WorkspaceHandler,
	analyticsHandler *handler.AnalyticsHandler,
) *Router {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(TraceMiddleware())
	r.Use(MetricsMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.String(200, "Server is running!")
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.POST("/login", authHandler.Login)

	r.GET("/team-info", workspaceHandler.TeamInfo)
	r.GET("/workspace-members/:teamId", workspaceHandler.Members)
	r.GET("/workspace-analytics", analyticsHandler.WorkspaceAnalytics)

	// The :id segment holds the parent id on collection reads (team,
	// space, folder respectively) and the resource's own id on writes.
	r.GET("/spaces/:id", spaceHandler.GetSpaces)
	r.POST("/create-space", spaceHandler.CreateSpace)
	r.PUT("/spaces/:id", spaceHandler.UpdateSpace)
	r.DELETE("/spaces/:id", spaceHandler.DeleteSpace)

	r.GET("/folders/:id", folderHandler.GetFolders)
	r.POST("/create-folder", folderHandler.CreateFolder)
	r.PUT("/folders/:id", folderHandler.UpdateFolder)
	r.DELETE("/folders/:id", folderHandler.DeleteFolder)

	r.GET("/lists/:id", listHandler.GetLists)
	r.POST("/create-list", listHandler.CreateList)
	r.PUT("/lists/:id", listHandler.UpdateList)
	r.DELETE("/lists/:id", listHandler.DeleteList)

	r.GET("/lists/:id/tasks", taskHandler.ListTasks)
	r.POST("/lists/:id/tasks", taskHandler.CreateTaskInList)
	r.POST("/create-task", taskHandler.CreateTask)
	r.GET("/tasks/:taskId", taskHandler.GetTask)
	r.PUT("/tasks/:taskId", taskHandler.UpdateTask)
	r.DELETE("/tasks/:taskId", taskHandler.DeleteTask)

	return &Router{Engine: r}
}

func (r *Router) Run(port string) error {
	return r.Engine.Run(port)
}
