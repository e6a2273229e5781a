package commands_test

import (
	"testing"

	"warehouse/internal/core/application/usecases/commands"
	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/order"
	"warehouse/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCheckoutCommand(t *testing.T) {
	productID := kernel.NewUUID()
	shipping := newShipping(t)

	tests := []struct {
		name       string
		orderID    kernel.UUID
		customerID kernel.UUID
		items      []commands.CheckoutItem
		shipping   order.ShippingInfo
		wantErr    error
	}{
		{
			name:       "valid",
			orderID:    kernel.NewUUID(),
			customerID: kernel.NewUUID(),
			items:      []commands.CheckoutItem{{ProductID: productID, Quantity: 2}},
			shipping:   shipping,
		},
		{
			name:       "no items",
			orderID:    kernel.NewUUID(),
			customerID: kernel.NewUUID(),
			shipping:   shipping,
			wantErr:    commands.ErrCheckoutItemsAreRequired,
		},
		{
			name:       "zero quantity",
			orderID:    kernel.NewUUID(),
			customerID: kernel.NewUUID(),
			items:      []commands.CheckoutItem{{ProductID: productID, Quantity: 0}},
			shipping:   shipping,
			wantErr:    errs.ErrValueIsInvalid,
		},
		{
			name:       "missing customer",
			orderID:    kernel.NewUUID(),
			items:      []commands.CheckoutItem{{ProductID: productID, Quantity: 1}},
			shipping:   shipping,
			wantErr:    errs.ErrValueIsRequired,
		},
		{
			name:       "shipping not constructed",
			orderID:    kernel.NewUUID(),
			customerID: kernel.NewUUID(),
			items:      []commands.CheckoutItem{{ProductID: productID, Quantity: 1}},
			wantErr:    order.ErrShippingInfoIsNotConstructed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, err := commands.NewCheckoutCommand(tt.orderID, tt.customerID, " Ann Lee ", tt.items, tt.shipping)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.NoError(t, cmd.Validate())
			assert.Equal(t, "Ann Lee", cmd.CustomerName())
			assert.Len(t, cmd.Items(), 1)
		})
	}
}

func TestCheckoutCommand_NotConstructed(t *testing.T) {
	cmd := commands.CheckoutCommand{}

	require.ErrorIs(t, cmd.Validate(), commands.ErrCheckoutCommandIsNotConstructed)
}
