package controller

import (
	"errors"
	"fusion_backend/internal/model"
	"fusion_backend/internal/service"
	"fusion_backend/internal/util"
	"strconv"

	"github.com/gin-gonic/gin"
)

type StatsController struct {
	StatsService   *service.StatsService
	HistoryService *service.HistoryService
}

func NewStatsController(statsService *service.StatsService, historyService *service.HistoryService) *StatsController {
	return &StatsController{StatsService: statsService, HistoryService: historyService}
}

type statsResponse struct {
	Date         string              `json:"date"`
	Distribution map[int]int64       `json:"distribution"`
	Total        int64               `json:"total"`
	Buckets      []model.StatsBucket `json:"buckets"`
}

func newStatsResponse(stats *model.AttemptStats) statsResponse {
	return statsResponse{
		Date:         stats.Date,
		Distribution: stats.Distribution,
		Total:        stats.Total,
		Buckets:      stats.Buckets(),
	}
}

// @Summary 今日通关次数分布
// @Tags 统计
// @Produce json
// @Success 200 {object} util.Response{data=statsResponse}
// @Failure 404 {object} util.Response
// @Router /stats [get]
func (c *StatsController) GetCurrentStats(ctx *gin.Context) {
	stats, err := c.StatsService.ReadCurrent(ctx.Request.Context())
	if errors.Is(err, util.ErrNoActivePuzzle) {
		util.NotFound(ctx, err.Error())
		return
	}
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, newStatsResponse(stats))
}

// @Summary 指定日期的通关次数分布
// @Tags 统计
// @Produce json
// @Param date path string true "日期 YYYY-MM-DD"
// @Success 200 {object} util.Response{data=statsResponse}
// @Failure 400 {object} util.Response
// @Router /stats/{date} [get]
func (c *StatsController) GetStatsByDate(ctx *gin.Context) {
	stats, err := c.StatsService.Read(ctx.Request.Context(), ctx.Param("date"))
	if errors.Is(err, util.ErrInvalidDate) {
		util.BadRequest(ctx, err.Error())
		return
	}
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, newStatsResponse(stats))
}

// @Summary 往期谜题
// @Tags 统计
// @Produce json
// @Param limit query int false "条数，默认 30，最多 100"
// @Success 200 {object} util.Response{data=[]model.HistoryItem}
// @Router /history [get]
func (c *StatsController) GetHistory(ctx *gin.Context) {
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "0"))

	items, err := c.HistoryService.List(ctx.Request.Context(), limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, items)
}
