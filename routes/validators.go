package routes

import (
	"sync"

	"github.com/Kariqs/confectionary-api/models"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var validatorsOnce sync.Once

func registerValidators() {
	validatorsOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterValidation("order_status", func(fl validator.FieldLevel) bool {
			return models.OrderStatus(fl.Field().String()).Valid()
		})
		v.RegisterValidation("product_status", func(fl validator.FieldLevel) bool {
			return models.ProductStatus(fl.Field().String()).Valid()
		})
		v.RegisterValidation("user_role", func(fl validator.FieldLevel) bool {
			return models.Role(fl.Field().String()).Valid()
		})
	})
}
