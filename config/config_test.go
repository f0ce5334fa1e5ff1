package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	conf := &Configuration{}
	require.NotNil(t, conf.Validate())

	conf.Auth.JWTSecret = "   "
	require.NotNil(t, conf.Validate())

	conf.Auth.JWTSecret = "0123456789abcdef"
	require.Nil(t, conf.Validate())
}
