package validator

import (
	"testing"

	ierr "github.com/itrgo/tax-estimator/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type profile struct {
	Year string `json:"financialYear" validate:"required"`
	Kind string `json:"kind,omitempty" validate:"omitempty,oneof=a b"`
}

type payload struct {
	Profile profile `json:"profile"`
}

func TestValidateRequest(t *testing.T) {
	tests := []struct {
		name    string
		req     payload
		field   string
		wantErr bool
	}{
		{name: "valid", req: payload{Profile: profile{Year: "2025-2026", Kind: "a"}}},
		{name: "empty enum is allowed", req: payload{Profile: profile{Year: "2025-2026"}}},
		{name: "missing year", req: payload{}, field: "profile.financialYear", wantErr: true},
		{name: "bad enum", req: payload{Profile: profile{Year: "x", Kind: "c"}}, field: "profile.kind", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRequest(&tt.req)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, ierr.IsInvalidInput(err))
			assert.Contains(t, ierr.Details(err), tt.field)
			assert.Equal(t, "Request validation failed", ierr.DisplayMessage(err, ""))
		})
	}
}
