package service

import (
	"context"
	"testing"

	"github.com/imonsheikh/a11-b10-restaurant-management-server/internal/utils"
	"github.com/imonsheikh/a11-b10-restaurant-management-server/models"
	"github.com/stretchr/testify/assert"
)

func TestCheckOwnership(t *testing.T) {
	withEmail := func(email string) context.Context {
		return utils.WithIdentity(context.Background(), models.Identity{Email: email})
	}

	tests := []struct {
		name    string
		ctx     context.Context
		owner   string
		wantErr error
	}{
		{"match", withEmail("chef@example.com"), "chef@example.com", nil},
		{"mismatch", withEmail("chef@example.com"), "guest@example.com", ErrEmailMismatch},
		{"case differs", withEmail("Chef@example.com"), "chef@example.com", ErrEmailMismatch},
		{"empty owner", withEmail("chef@example.com"), "", ErrEmailMismatch},
		{"no identity", context.Background(), "chef@example.com", ErrUnauthenticated},
		{"empty identity", withEmail(""), "", ErrUnauthenticated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckOwnership(tt.ctx, tt.owner)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
