package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewKidoctorCommand(t *testing.T) {
	cmd := NewKidoctorCommand()
	require.NotNil(t, cmd)

	assert.Equal(t, "kidoctor", cmd.Use)
	assert.True(t, cmd.HasSubCommands())

	uses := make([]string, 0)
	for _, sub := range cmd.Commands() {
		uses = append(uses, sub.Name())
	}
	assert.Contains(t, uses, "ask")
	assert.Contains(t, uses, "speak")
	assert.Contains(t, uses, "version")

	assert.NotNil(t, cmd.PersistentFlags().Lookup("config"))
	assert.NotNil(t, cmd.PersistentFlags().Lookup("debug"))
}
