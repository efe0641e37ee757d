package controller

import (
	"fusion_backend/internal/service"
	"fusion_backend/internal/util"
	"net/http"

	"github.com/gin-gonic/gin"
)

type GenerationController struct {
	GenerationService *service.GenerationService
}

func NewGenerationController(generationService *service.GenerationService) *GenerationController {
	return &GenerationController{GenerationService: generationService}
}

// @Summary 生成每日谜题
// @Description 由定时任务触发，需要共享密钥（Bearer 或 secret 参数）
// @Tags 生成
// @Produce json
// @Param secret query string false "共享密钥"
// @Success 200 {object} util.Response{data=model.Puzzle}
// @Failure 401 {object} util.Response
// @Failure 500 {object} util.Response
// @Router /cron/generate [get]
func (c *GenerationController) Generate(ctx *gin.Context) {
	puzzle, err := c.GenerationService.Generate(ctx.Request.Context())
	if err != nil {
		util.Error(ctx, http.StatusInternalServerError, err.Error())
		return
	}
	util.Success(ctx, puzzle)
}
