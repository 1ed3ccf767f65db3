package controllers

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/Kariqs/confectionary-api/models"
	"github.com/Kariqs/confectionary-api/services"
	"github.com/Kariqs/confectionary-api/utils"
	"github.com/gin-gonic/gin"
)

type OrderController struct {
	Orders *services.OrderService
	Mail   utils.MailConfig
}

func NewOrderController(orders *services.OrderService, mail utils.MailConfig) *OrderController {
	return &OrderController{Orders: orders, Mail: mail}
}

func (c *OrderController) GetOrders(ctx *gin.Context) {
	user, ok := currentUser(ctx)
	if !ok {
		return
	}
	var filter models.OrderFilter
	if !bindQuery(ctx, &filter) {
		return
	}

	orders, err := c.Orders.Fetch(ctx.Request.Context(), filter, user)
	if err != nil {
		respondWithServiceError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, orders)
}

func (c *OrderController) GetAllOrders(ctx *gin.Context) {
	orders, err := c.Orders.FetchAll(ctx.Request.Context())
	if err != nil {
		respondWithServiceError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, orders)
}

func (c *OrderController) GetOrder(ctx *gin.Context) {
	user, ok := currentUser(ctx)
	if !ok {
		return
	}

	order, err := c.Orders.FetchByID(ctx.Request.Context(), ctx.Param("id"), user)
	if err != nil {
		respondWithServiceError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, order)
}

// GetOrderItems lets admins read any order; everyone else only their own.
func (c *OrderController) GetOrderItems(ctx *gin.Context) {
	user, ok := currentUser(ctx)
	if !ok {
		return
	}
	orderID := ctx.Param("id")

	if user.Role != models.RoleAdmin {
		if _, err := c.Orders.FetchByID(ctx.Request.Context(), orderID, user); err != nil {
			respondWithServiceError(ctx, err)
			return
		}
	}

	items, err := c.Orders.FetchOrderItems(ctx.Request.Context(), orderID)
	if err != nil {
		respondWithServiceError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, items)
}

func (c *OrderController) GetInvoice(ctx *gin.Context) {
	user, ok := currentUser(ctx)
	if !ok {
		return
	}

	order, err := c.Orders.FetchByID(ctx.Request.Context(), ctx.Param("id"), user)
	if err != nil {
		respondWithServiceError(ctx, err)
		return
	}

	pdf, err := c.Orders.CreateInvoice(ctx.Request.Context(), user, order)
	if err != nil {
		respondWithServiceError(ctx, err)
		return
	}

	ctx.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="invoice-%s.pdf"`, order.ID))
	ctx.Data(http.StatusOK, "application/pdf", pdf)
}

func (c *OrderController) CreateOrder(ctx *gin.Context) {
	user, ok := currentUser(ctx)
	if !ok {
		return
	}
	var dto models.CreateOrderDTO
	if !bindJSON(ctx, &dto) {
		return
	}

	order, err := c.Orders.Create(ctx.Request.Context(), dto, user)
	if err != nil {
		respondWithServiceError(ctx, err)
		return
	}

	if c.Mail.Enabled() {
		go c.sendOrderConfirmation(*user, *order)
	}

	sendJSONResponse(ctx, http.StatusCreated, order)
}

func (c *OrderController) AddOrderItems(ctx *gin.Context) {
	user, ok := currentUser(ctx)
	if !ok {
		return
	}

	added, err := c.Orders.AddOrderItems(ctx.Request.Context(), ctx.Param("id"), user)
	if err != nil {
		respondWithServiceError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"added": added})
}

func (c *OrderController) UpdateOrder(ctx *gin.Context) {
	var dto models.UpdateOrderDTO
	if !bindJSON(ctx, &dto) {
		return
	}

	order, err := c.Orders.Update(ctx.Request.Context(), dto, ctx.Param("id"))
	if err != nil {
		respondWithServiceError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, order)
}

func (c *OrderController) DeleteOrder(ctx *gin.Context) {
	if err := c.Orders.RemoveOrder(ctx.Request.Context(), ctx.Param("id")); err != nil {
		respondWithServiceError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Order deleted"})
}

// sendOrderConfirmation runs after the response is written, so it cannot use the request context.
func (c *OrderController) sendOrderConfirmation(user models.User, order models.Order) {
	items, err := c.Orders.FetchOrderItems(context.Background(), order.ID)
	if err != nil {
		log.Printf("Unable to load items for order %s confirmation: %v", order.ID, err)
		return
	}

	data := utils.OrderEmailData{
		Email:      user.Email,
		OrderID:    order.ID,
		Total:      order.TotalPrice.StringFixed(2),
		Address:    order.Address,
		City:       order.City,
		Country:    order.Country,
		PostalCode: order.PostalCode,
	}
	for _, item := range items {
		data.Items = append(data.Items, utils.OrderEmailLine{
			Title:    item.Title,
			Quantity: item.Quantity,
			Price:    item.Price.StringFixed(2),
		})
	}

	if err := utils.SendEmail(c.Mail, user.Email, "Order confirmation", "order_confirmation.html", data); err != nil {
		log.Printf("Unable to send confirmation for order %s: %v", order.ID, err)
		return
	}
	log.Printf("Order confirmation sent to %s", user.Email)
}
