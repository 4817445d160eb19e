package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/example/playmart/internal/middleware"
	"github.com/example/playmart/internal/notify"
	"github.com/example/playmart/internal/rewards"
)

// RewardsHandler exposes the gamification hub: progress, daily quiz,
// spin wheel, flash sales and the notification feed.
type RewardsHandler struct {
	svc  *rewards.Service
	feed *notify.Feed
}

// NewRewardsHandler constructs a RewardsHandler.
func NewRewardsHandler(svc *rewards.Service, feed *notify.Feed) *RewardsHandler {
	return &RewardsHandler{svc: svc, feed: feed}
}

// GetProgress returns the user's reward record with the derived level.
func (h *RewardsHandler) GetProgress(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	p := h.svc.Progress(userID)
	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"progress": p,
			"level":    p.Level(),
		},
	})
}

// GetQuiz returns the user's current quiz state.
func (h *RewardsHandler) GetQuiz(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	return c.JSON(fiber.Map{"success": true, "data": h.svc.Quiz(userID)})
}

// StartQuiz opens today's quiz session.
func (h *RewardsHandler) StartQuiz(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	state, err := h.svc.StartQuiz(userID)
	if err != nil {
		return rewardsError(err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": state})
}

type answerRequest struct {
	Answer int `json:"answer"`
}

// SelectAnswer records the chosen option for the current question.
func (h *RewardsHandler) SelectAnswer(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var req answerRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	state, err := h.svc.SelectAnswer(userID, req.Answer)
	if err != nil {
		return rewardsError(err)
	}

	return c.JSON(fiber.Map{"success": true, "data": state})
}

// AdvanceQuiz moves to the next question or completes the session.
func (h *RewardsHandler) AdvanceQuiz(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	state, err := h.svc.Advance(userID)
	if err != nil {
		return rewardsError(err)
	}

	return c.JSON(fiber.Map{"success": true, "data": state})
}

// Spin draws a weighted-random reward from the wheel.
func (h *RewardsHandler) Spin(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	result, err := h.svc.Spin(userID)
	if err != nil {
		return rewardsError(err)
	}

	return c.JSON(fiber.Map{"success": true, "data": result})
}

// ListFlashSales returns flash-sale items with live counters.
func (h *RewardsHandler) ListFlashSales(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"success": true, "data": h.svc.FlashSales()})
}

// ClaimFlashSale converts a flash-sale allocation into a cart line.
func (h *RewardsHandler) ClaimFlashSale(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	view, err := h.svc.ClaimFlashSale(userID, c.Params("id"))
	if err != nil {
		return rewardsError(err)
	}

	return c.JSON(fiber.Map{"success": true, "data": view})
}

// ListNotifications returns the user's notification feed, newest first.
func (h *RewardsHandler) ListNotifications(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	return c.JSON(fiber.Map{"success": true, "data": h.feed.List(userID)})
}

// rewardsError maps domain rejections onto HTTP statuses.
func rewardsError(err error) error {
	switch {
	case errors.Is(err, rewards.ErrUnknownSale):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case errors.Is(err, rewards.ErrQuizAlreadyCompleted),
		errors.Is(err, rewards.ErrQuizInProgress),
		errors.Is(err, rewards.ErrSpinInProgress),
		errors.Is(err, rewards.ErrSaleExpired),
		errors.Is(err, rewards.ErrSaleSoldOut):
		return fiber.NewError(fiber.StatusConflict, err.Error())
	case errors.Is(err, rewards.ErrSpinNotAvailable):
		return fiber.NewError(fiber.StatusTooManyRequests, err.Error())
	case errors.Is(err, rewards.ErrNoActiveQuestion),
		errors.Is(err, rewards.ErrAnswerAlreadyChosen),
		errors.Is(err, rewards.ErrInvalidAnswer):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	default:
		return err
	}
}
