package controller

import (
	"errors"
	"fusion_backend/internal/model"
	"fusion_backend/internal/repository"
	"fusion_backend/internal/service"
	"fusion_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type PuzzleController struct {
	PuzzleRepo   *repository.PuzzleRepository
	GuessService *service.GuessService
}

func NewPuzzleController(puzzleRepo *repository.PuzzleRepository, guessService *service.GuessService) *PuzzleController {
	return &PuzzleController{PuzzleRepo: puzzleRepo, GuessService: guessService}
}

// @Summary 获取今日谜题
// @Description 只返回图片地址和日期，不包含答案
// @Tags 谜题
// @Produce json
// @Success 200 {object} util.Response{data=model.PublicPuzzle}
// @Failure 404 {object} util.Response
// @Router /puzzle [get]
func (c *PuzzleController) GetPuzzle(ctx *gin.Context) {
	puzzle, err := c.PuzzleRepo.GetCurrent(ctx.Request.Context())
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	if puzzle == nil {
		util.NotFound(ctx, util.ErrNoActivePuzzle.Error())
		return
	}
	util.Success(ctx, puzzle.PublicView())
}

type championGuessRequest struct {
	Guess      string       `json:"guess" binding:"required,max=100"`
	FoundSlots []model.Slot `json:"foundSlots"`
}

// @Summary 猜角色
// @Tags 谜题
// @Accept json
// @Produce json
// @Param body body championGuessRequest true "猜测内容和已找到的位置"
// @Success 200 {object} util.Response{data=model.GuessResult}
// @Router /guess/champion [post]
func (c *PuzzleController) SubmitChampionGuess(ctx *gin.Context) {
	var req championGuessRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	for _, slot := range req.FoundSlots {
		if !slot.Valid() {
			util.BadRequest(ctx, "foundSlots may only contain A or B")
			return
		}
	}

	result := c.GuessService.SubmitChampionGuess(ctx.Request.Context(), req.Guess, req.FoundSlots)
	util.Success(ctx, result)
}

type themeGuessRequest struct {
	Guess    string `json:"guess" binding:"required,max=100"`
	Attempts int    `json:"attempts" binding:"min=0"`
}

// @Summary 猜主题
// @Description 猜中时按 attempts 计入当日统计
// @Tags 谜题
// @Accept json
// @Produce json
// @Param body body themeGuessRequest true "猜测内容和尝试次数"
// @Success 200 {object} util.Response{data=model.GuessResult}
// @Router /guess/theme [post]
func (c *PuzzleController) SubmitThemeGuess(ctx *gin.Context) {
	var req themeGuessRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result := c.GuessService.SubmitThemeGuess(ctx.Request.Context(), req.Guess, req.Attempts)
	util.Success(ctx, result)
}

type sessionGuessRequest struct {
	Session model.GuessSession `json:"session"`
	Guess   string             `json:"guess" binding:"required,max=100"`
}

type sessionGuessResponse struct {
	Result  model.GuessResult  `json:"result"`
	Session model.GuessSession `json:"session"`
}

// @Summary 按会话提交猜测
// @Description 服务端推进会话状态并返回新会话
// @Tags 谜题
// @Accept json
// @Produce json
// @Param body body sessionGuessRequest true "会话和猜测"
// @Success 200 {object} util.Response{data=sessionGuessResponse}
// @Router /guess [post]
func (c *PuzzleController) SubmitGuess(ctx *gin.Context) {
	var req sessionGuessRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, session := c.GuessService.Submit(ctx.Request.Context(), req.Session, req.Guess)
	util.Success(ctx, sessionGuessResponse{Result: result, Session: session})
}

type giveUpRequest struct {
	Session model.GuessSession `json:"session"`
}

type giveUpResponse struct {
	Solution *model.Solution   `json:"solution"`
	Session  model.GuessSession `json:"session"`
}

// @Summary 放弃并查看答案
// @Description 放弃的会话不计入统计
// @Tags 谜题
// @Accept json
// @Produce json
// @Param body body giveUpRequest false "当前会话"
// @Success 200 {object} util.Response{data=giveUpResponse}
// @Failure 404 {object} util.Response
// @Router /giveup [post]
func (c *PuzzleController) GiveUp(ctx *gin.Context) {
	var req giveUpRequest
	if ctx.Request.ContentLength != 0 {
		if err := ctx.ShouldBindJSON(&req); err != nil {
			util.BadRequest(ctx, err.Error())
			return
		}
	}

	solution, session, err := c.GuessService.GiveUp(ctx.Request.Context(), req.Session)
	if errors.Is(err, util.ErrNoActivePuzzle) {
		util.NotFound(ctx, err.Error())
		return
	}
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, giveUpResponse{Solution: solution, Session: session})
}

// @Summary 查看答案
// @Tags 谜题
// @Produce json
// @Success 200 {object} util.Response{data=model.Solution}
// @Failure 404 {object} util.Response
// @Router /solution [get]
func (c *PuzzleController) GetSolution(ctx *gin.Context) {
	solution, err := c.GuessService.Solution(ctx.Request.Context())
	if err != nil {
		util.NotFound(ctx, err.Error())
		return
	}
	util.Success(ctx, solution)
}

// @Summary 主题列表
// @Description 供前端自动补全使用
// @Tags 谜题
// @Produce json
// @Success 200 {object} util.Response
// @Router /themes [get]
func (c *PuzzleController) GetThemes(ctx *gin.Context) {
	util.Success(ctx, model.Themes)
}
