// FILE: internal/controller/generate_controller_test.go
package controller

import (
	"net/http/httptest"
	"testing"

	"ai-charstudio-be/internal/service"
	"ai-charstudio-be/pkg/ledger"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func TestLedgerErrorStatusMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "insufficient credits", err: ledger.ErrInsufficientCredits, want: fiber.StatusPaymentRequired},
		{name: "missing account", err: ledger.ErrAccountNotFound, want: fiber.StatusNotFound},
		{name: "missing source project", err: service.ErrProjectNotFound, want: fiber.StatusNotFound},
		{name: "retries exhausted", err: ledger.ErrTransactionFailed, want: fiber.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/boom", func(c *fiber.Ctx) error { return ledgerError(c, tt.err) })

			resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/boom", nil))
			assert.NoError(t, err)
			assert.Equal(t, tt.want, resp.StatusCode)
		})
	}
}
