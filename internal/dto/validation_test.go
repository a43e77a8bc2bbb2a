package dto_test

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spendlog/spendlog_backend/internal/dto"
)

func newValidator(t *testing.T) *validator.Validate {
	t.Helper()
	v := validator.New()
	// Match gin's binding engine, which reads the binding tag.
	v.SetTagName("binding")
	require.NoError(t, dto.RegisterCustomValidations(v))
	return v
}

func TestUsernameRule(t *testing.T) {
	v := newValidator(t)

	tests := []struct {
		name     string
		username string
		wantOK   bool
	}{
		{"plain word", "alice", true},
		{"with digits", "alice99", true},
		{"underscore", "al_ice", true},
		{"single dot between words", "alice.smith", true},
		{"multiple separated dots", "a.b.c", true},
		{"leading dot", ".alice", false},
		{"trailing dot", "alice.", false},
		{"consecutive dots", "alice..smith", false},
		{"space", "alice smith", false},
		{"dash", "alice-smith", false},
		{"thirty characters", "abcdefghijklmnopqrstuvwxyz1234", true},
		{"thirty one characters", "abcdefghijklmnopqrstuvwxyz12345", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Var(tt.username, "username")
			if tt.wantOK {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestTransactionDirectionRule(t *testing.T) {
	v := newValidator(t)

	tests := []struct {
		name   string
		req    dto.CreateTransactionRequest
		wantOK bool
	}{
		{
			name: "negative amount as expense",
			req: dto.CreateTransactionRequest{
				Description: "coffee",
				Amount:      decimal.NewFromInt(-5),
				Type:        "EXPENSE",
			},
			wantOK: true,
		},
		{
			name: "positive amount as income",
			req: dto.CreateTransactionRequest{
				Description: "salary",
				Amount:      decimal.NewFromInt(1000),
				Type:        "INCOME",
			},
			wantOK: true,
		},
		{
			name: "negative amount mislabelled as income",
			req: dto.CreateTransactionRequest{
				Description: "coffee",
				Amount:      decimal.NewFromInt(-5),
				Type:        "INCOME",
			},
			wantOK: false,
		},
		{
			name: "positive amount mislabelled as expense",
			req: dto.CreateTransactionRequest{
				Description: "salary",
				Amount:      decimal.NewFromInt(1000),
				Type:        "EXPENSE",
			},
			wantOK: false,
		},
		{
			name: "unknown type is rejected by oneof",
			req: dto.CreateTransactionRequest{
				Description: "transfer",
				Amount:      decimal.NewFromInt(10),
				Type:        "TRANSFER",
			},
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Struct(tt.req)
			if tt.wantOK {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestTransactionDirectionRuleOnUpdate(t *testing.T) {
	v := newValidator(t)

	strPtr := func(s string) *string { return &s }
	decPtr := func(d decimal.Decimal) *decimal.Decimal { return &d }

	tests := []struct {
		name   string
		req    dto.UpdateTransactionRequest
		wantOK bool
	}{
		{
			name: "negative amount as expense",
			req: dto.UpdateTransactionRequest{
				Amount: decPtr(decimal.NewFromInt(-5)),
				Type:   strPtr("EXPENSE"),
			},
			wantOK: true,
		},
		{
			name: "negative amount mislabelled as income",
			req: dto.UpdateTransactionRequest{
				Amount: decPtr(decimal.NewFromInt(-5)),
				Type:   strPtr("INCOME"),
			},
			wantOK: false,
		},
		{
			name: "positive amount mislabelled as expense",
			req: dto.UpdateTransactionRequest{
				Amount: decPtr(decimal.NewFromInt(1000)),
				Type:   strPtr("EXPENSE"),
			},
			wantOK: false,
		},
		{
			name: "type alone passes",
			req: dto.UpdateTransactionRequest{
				Type: strPtr("INCOME"),
			},
			wantOK: true,
		},
		{
			name: "amount alone passes",
			req: dto.UpdateTransactionRequest{
				Amount: decPtr(decimal.NewFromInt(-5)),
			},
			wantOK: true,
		},
		{
			name:   "empty patch passes",
			req:    dto.UpdateTransactionRequest{},
			wantOK: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Struct(tt.req)
			if tt.wantOK {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}
