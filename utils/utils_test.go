package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateCode(t *testing.T) {
	a, err := GenerateCode(16)
	require.NoError(t, err)
	b, err := GenerateCode(16)
	require.NoError(t, err)

	assert.Len(t, a, 32)
	assert.NotEqual(t, a, b)
}

func TestRenderOrderConfirmation(t *testing.T) {
	body, err := RenderTemplate("order_confirmation.html", OrderEmailData{
		Email:   "jane@example.com",
		OrderID: "order-1",
		Total:   "25.50",
		City:    "Nairobi",
		Items: []OrderEmailLine{
			{Title: "Chocolate <cake>", Quantity: 2, Price: "10.00"},
		},
	})
	require.NoError(t, err)

	assert.Contains(t, body, "order-1")
	assert.Contains(t, body, "Total: 25.50")
	assert.Contains(t, body, "Chocolate &lt;cake&gt;")
	assert.Contains(t, body, "Nairobi")
}

func TestMailConfigEnabled(t *testing.T) {
	assert.False(t, MailConfig{}.Enabled())
	assert.True(t, MailConfig{From: "shop@example.com", Address: "smtp.example.com:587"}.Enabled())
}
