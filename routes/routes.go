package routes

import (
	"agenticads/controllers"

	"github.com/gin-gonic/gin"
)

func HealthRouteHandler(ctx *gin.Context) {
	controllers.Health(ctx)
}

func GetSessionRouteHandler(ctx *gin.Context) {
	controllers.GetSession(ctx)
}

func SetViewRouteHandler(ctx *gin.Context) {
	controllers.SetView(ctx)
}

func AdminLoginRouteHandler(ctx *gin.Context) {
	controllers.AdminLogin(ctx)
}

func AdminLogoutRouteHandler(ctx *gin.Context) {
	controllers.AdminLogout(ctx)
}

func GenerateRouteHandler(ctx *gin.Context) {
	controllers.Generate(ctx)
}

func GenerationStatusRouteHandler(ctx *gin.Context) {
	controllers.GenerationStatus(ctx)
}

func GetDataRouteHandler(ctx *gin.Context) {
	controllers.GetData(ctx)
}

func RefreshDataRouteHandler(ctx *gin.Context) {
	controllers.RefreshData(ctx)
}

func FeedbackActionRouteHandler(ctx *gin.Context) {
	controllers.FeedbackAction(ctx)
}

func SubmitFeedbackRouteHandler(ctx *gin.Context) {
	controllers.SubmitFeedback(ctx)
}

func DashboardStatsRouteHandler(ctx *gin.Context) {
	controllers.DashboardStats(ctx)
}

func DashboardChartsRouteHandler(ctx *gin.Context) {
	controllers.DashboardCharts(ctx)
}
