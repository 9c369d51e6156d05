// Copyright (c) 2026 Fashion Fiesta. All rights reserved.
// Author: avi4306

package uuidv7_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Avi4306/FashionFiesta-sub001/pkg/uuidv7"
)

func TestNew(t *testing.T) {
	first, second := uuidv7.New(), uuidv7.New()

	parsed, err := uuid.Parse(first)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), parsed.Version())
	assert.NotEqual(t, first, second)
}

func TestValid(t *testing.T) {
	assert.True(t, uuidv7.Valid(uuidv7.New()))
	assert.False(t, uuidv7.Valid("109876543210987654321"))
	assert.False(t, uuidv7.Valid(""))
}
