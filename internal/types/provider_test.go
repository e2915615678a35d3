package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProviderValid(t *testing.T) {
	for _, p := range []Provider{ProviderAPI, ProviderGraph, ProviderChain} {
		assert.True(t, p.Valid())
	}
	assert.False(t, Provider("").Valid())
	assert.False(t, Provider("oracle").Valid())
}

func TestActionValid(t *testing.T) {
	for _, a := range []Action{ActionDeposit, ActionWithdraw, ActionApprove} {
		assert.True(t, a.Valid())
	}
	assert.False(t, Action("").Valid())
	assert.False(t, Action("borrow").Valid())
}

func TestRedemptionVariantValid(t *testing.T) {
	for _, v := range []RedemptionVariant{VariantSync, VariantAsync} {
		assert.True(t, v.Valid())
	}
	assert.False(t, RedemptionVariant("").Valid())
	assert.False(t, RedemptionVariant("escrow").Valid())
}
